package tabload

import (
	"fmt"
	"io"
	"time"
)

// SourceFormat identifies the tabular file format detected from the extension.
type SourceFormat int

const (
	FormatCSV  SourceFormat = iota // delimited text
	FormatXLSX                     // Office Open XML workbook
	FormatXLS                      // legacy BIFF workbook
)

// String returns the lowercase format name.
func (f SourceFormat) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// Delimited reports whether the format is delimited text. Only delimited
// sources are eligible for chunked loading; workbooks always load whole.
func (f SourceFormat) Delimited() bool {
	return f == FormatCSV
}

// ValueKind classifies a cell value as read from the source.
type ValueKind int

const (
	// KindMissing marks an empty or whitespace-only cell, or a configured
	// null literal. Missing cells become SQL NULL and are excluded from
	// type inference samples.
	KindMissing ValueKind = iota

	// KindString is untyped text. Delimited files produce only KindString
	// and KindMissing cells.
	KindString

	// KindNumber is a numeric cell carried natively by the source format.
	KindNumber

	// KindBool is a boolean cell carried natively by the source format.
	KindBool

	// KindTime is a date or timestamp cell carried natively by the source format.
	KindTime
)

// String returns the kind name used in conversion errors.
func (k ValueKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Value is one cell. Str always holds the display text; the typed fields are
// meaningful only for the matching kind.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// MissingValue returns the canonical missing cell.
func MissingValue() Value {
	return Value{Kind: KindMissing}
}

// StringValue returns a text cell.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Table is one rectangular block of data: a delimited file, or one worksheet.
// Rows are data rows only; the header row becomes Columns.
type Table struct {
	// Sheet is the source worksheet name ("" for delimited files)
	Sheet string

	// Columns are the header names exactly as read, before sanitization
	Columns []string

	// Rows holds the data cells. Every row has len(Columns) cells; short
	// source rows are padded with missing cells during reading.
	Rows [][]Value
}

// SkippedSheet records a worksheet the reader could not extract rows from.
// Skipped sheets never abort a workbook import.
type SkippedSheet struct {
	Name   string
	Reason string
}

// Source is the result of reading one tabular file: one table for delimited
// files, one table per readable worksheet for workbooks, in workbook order.
type Source struct {
	// Path is the file that was read
	Path string

	// Format is the detected format
	Format SourceFormat

	// Bytes is the file size on disk
	Bytes int64

	// Tables are the extracted data blocks in source order
	Tables []Table

	// Skipped lists worksheets that could not be read
	Skipped []SkippedSheet
}

// RowSource yields data rows one at a time. Implementations return io.EOF
// after the last row. The chunked loader consumes rows through this interface
// so a large delimited file never has to sit in memory twice.
type RowSource interface {
	// Next returns the next data row, or io.EOF when exhausted.
	Next() ([]Value, error)
}

// SliceRows adapts an in-memory row slice to the RowSource interface.
func SliceRows(rows [][]Value) RowSource {
	return &sliceRowSource{rows: rows}
}

type sliceRowSource struct {
	rows [][]Value
	pos  int
}

func (s *sliceRowSource) Next() ([]Value, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
