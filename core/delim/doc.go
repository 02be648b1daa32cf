// Package delim parses delimited distributor files into field-keyed records.
//
// The first row is treated as the header and defines the field names; headers
// are normalized to lower case so that feeds with inconsistent casing
// ("SKU", "Sku", "sku") all resolve to the same key. Blank lines are skipped
// and a row with the wrong column count fails the whole parse.
//
// Record carries the validated decode step for loosely-typed fields: Int and
// Decimal return explicit zero defaults for missing, unparsable, or negative
// values rather than forcing every caller to probe and convert by hand.
package delim
