package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// newDelimitedReader configures encoding/csv the way spreadsheet exports
// need: variable field counts and lazy quotes, so one ragged row does not
// kill the whole file.
func newDelimitedReader(r io.Reader, opts tabload.CSVOptions) *csv.Reader {
	cr := csv.NewReader(sanitizedReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	delim := opts.Delimiter
	if delim == "" {
		delim = tabload.DefaultCSVDelimiter
	}
	cr.Comma = []rune(delim)[0]

	return cr
}

// nullSet builds the lookup for configured null literals.
func nullSet(opts tabload.CSVOptions) map[string]struct{} {
	if len(opts.NullLiterals) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(opts.NullLiterals))
	for _, lit := range opts.NullLiterals {
		set[lit] = struct{}{}
	}
	return set
}

// classifyCell turns one delimited-text field into a cell value. Empty and
// whitespace-only fields are missing, as are configured null literals.
func classifyCell(field string, nulls map[string]struct{}) tabload.Value {
	if strings.TrimSpace(field) == "" {
		return tabload.MissingValue()
	}
	if nulls != nil {
		if _, ok := nulls[field]; ok {
			return tabload.MissingValue()
		}
	}
	return tabload.StringValue(field)
}

// shapeRow pads or truncates a record to the header width and classifies
// each field.
func shapeRow(record []string, width int, nulls map[string]struct{}) []tabload.Value {
	row := make([]tabload.Value, width)
	for i := 0; i < width; i++ {
		if i < len(record) {
			row[i] = classifyCell(record[i], nulls)
		} else {
			row[i] = tabload.MissingValue()
		}
	}
	return row
}

// parseDelimited reads a whole delimited file into one table. The first
// record is the header; every data row is shaped to the header width.
func parseDelimited(r io.Reader, opts tabload.CSVOptions) (*tabload.Table, error) {
	cr := newDelimitedReader(r, opts)
	nulls := nullSet(opts)

	header, err := cr.Read()
	if err == io.EOF {
		return &tabload.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	table := &tabload.Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, shapeRow(record, len(header), nulls))
	}

	return table, nil
}
