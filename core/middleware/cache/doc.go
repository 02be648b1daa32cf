// Package cache provides a component-scoped response cache for read-heavy
// catalog routes.
//
// Entries are keyed by request path (plus query string) and evicted purely by
// TTL — there is no manual invalidation, so a short TTL is the consistency
// knob. The backing store is redis in production; tests swap in an in-memory
// Store. Concurrent misses on the same key are collapsed with singleflight so
// a cold popular route does one database round trip, not N.
package cache
