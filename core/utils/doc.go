// Package utils provides loose-type conversion helpers used when decoding
// values from distributor feeds and import files, where numeric columns
// frequently arrive as strings or bytes.
package utils
