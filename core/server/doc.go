// Package server holds configuration for the HTTP surface of the catalog
// administration API. The actual Fiber app is assembled in cmd/start.go; this
// package only carries the partial config consumed there.
package server
