// Package distributor implements the inventory/catalog reconciliation
// pipeline: it pulls a delimited feed from the distributor's SFTP drop,
// matches records against local products by business key (SKU / manufacturer
// part number), applies partial updates, and produces a structured sync
// report.
//
// # Failure semantics
//
// Connection, transfer, and parse failures are fatal to a run: the report
// comes back with Success=false, the triggering error appended, and no
// records processed. Failures on individual records are isolated — recorded
// in the report's error list while the run continues. Callers should inspect
// Errors even on a successful run.
//
// # What the engine will not do
//
// The engine never creates local products. Feed records with stock but no
// matching product are counted as NewProducts and logged; promotion to a real
// product is an explicit approval step owned by the supplier feature.
package distributor
