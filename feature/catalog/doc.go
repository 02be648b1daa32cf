// Package catalog provides the product catalog administration surface:
// CRUD over products and categories, bulk import from CSV/XLSX uploads, and
// catalog export. Its repository doubles as the product store the sync
// engine reads snapshots from and writes partial updates through.
package catalog
