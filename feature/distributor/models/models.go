package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncResult is the report returned by one reconciliation run. It is created
// when the run starts, mutated only by the engine during that run, and
// returned to the caller once the run ends. Never persisted.
type SyncResult struct {
	// Success is true only when the fetch and parse phases succeeded.
	// Record-level failures do not clear it; inspect Errors for those.
	Success bool `json:"success"`
	// TotalRecords is the number of parsed records in the feed.
	TotalRecords int `json:"total_records"`
	// UpdatedProducts counts records matched to a local product and applied.
	UpdatedProducts int `json:"updated_products"`
	// NewProducts counts feed records with stock that have no local product.
	// Informational only: the engine never creates products; promotion goes
	// through the supplier approval workflow.
	NewProducts int `json:"new_products"`
	// Errors holds one diagnostic string per fatal phase failure or failed
	// record, in encounter order.
	Errors []string `json:"errors"`
	// Timestamp is the run start time.
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncResult creates an empty result stamped with the run start time.
func NewSyncResult() *SyncResult {
	return &SyncResult{
		Errors:    []string{},
		Timestamp: time.Now(),
	}
}

// Fail marks the run as failed with the given fatal error.
func (r *SyncResult) Fail(err error) *SyncResult {
	r.Success = false
	r.Errors = append(r.Errors, err.Error())
	return r
}

// LookupResult is the answer to an on-demand single-SKU lookup against the
// distributor feed.
type LookupResult struct {
	SKU string `json:"sku"`
	// Quantities maps warehouse location (derived from the feed's qty column
	// suffix, e.g. "fl" for qtyfl) to available stock.
	Quantities map[string]int  `json:"quantities"`
	Cost       decimal.Decimal `json:"cost"`
}

// TotalQuantity returns the stock available across all locations.
func (l *LookupResult) TotalQuantity() int {
	total := 0
	for _, q := range l.Quantities {
		total += q
	}
	return total
}
