// Package database manages the MySQL connection that backs the product
// catalog. It exposes a single Connect function returning a configured
// *gorm.DB with pool limits and I/O timeouts applied.
package database
