package delim

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError indicates the retrieved content is not valid delimited data.
// Fatal to a sync run; the source format is trusted to be homogeneous, so a
// ragged row means the whole file is suspect.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse failed at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts delimited text into an ordered sequence of records.
// The first row is the header and defines the field names for every
// subsequent row. Blank lines are skipped. A row with the wrong column count
// yields a *ParseError.
func Parse(r io.Reader, delimiter rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.TrimLeadingSpace = true
	// FieldsPerRecord defaults to the header width, so ragged rows surface as
	// csv.ErrFieldCount below.

	header, err := cr.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &ParseError{Line: line, Err: err}
		}

		rec := make(Record, len(fields))
		for i, value := range row {
			rec[fields[i]] = strings.TrimSpace(value)
		}
		records = append(records, rec)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ParseString is a convenience wrapper over Parse for in-memory content.
func ParseString(raw string, delimiter rune) ([]Record, error) {
	return Parse(strings.NewReader(raw), delimiter)
}
