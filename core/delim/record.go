package delim

import (
	"strings"

	"catalog-sync/core/utils"

	"github.com/shopspring/decimal"
)

// Record is one parsed row, keyed by lower-cased header name.
type Record map[string]string

// Get returns the value for the given field name, matching headers
// case-insensitively. The second return reports whether the field exists.
func (r Record) Get(name string) (string, bool) {
	v, ok := r[strings.ToLower(name)]
	return v, ok
}

// Int decodes the field as a non-negative integer.
// Missing, unparsable, or negative values decode to 0 instead of failing the
// record: distributor feeds routinely carry junk in quantity columns.
func (r Record) Int(name string) int {
	v, ok := r.Get(name)
	if !ok {
		return 0
	}
	n := utils.ToInt(strings.TrimSpace(v))
	if n < 0 {
		return 0
	}
	return n
}

// Decimal decodes the field as a non-negative decimal.
// Missing, unparsable, or negative values decode to zero.
func (r Record) Decimal(name string) decimal.Decimal {
	v, ok := r.Get(name)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Fields returns the sorted-insensitive set of field names present.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for k := range r {
		fields = append(fields, k)
	}
	return fields
}
