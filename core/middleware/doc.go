// Package middleware groups the HTTP middleware used by the catalog API:
// ray-id request correlation, static API-key auth, and a time-evicted
// response cache for read-heavy catalog routes.
package middleware
