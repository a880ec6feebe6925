package tabload

import "context"

// SourceReader loads tabular data from a file on disk. The format is chosen
// by extension: .csv reads as delimited text, .xlsx and .xls as workbooks.
// Implementations must be safe for concurrent use by multiple goroutines.
type SourceReader interface {
	// Read loads the whole file. For workbooks, each readable worksheet
	// becomes one Table and unreadable worksheets are listed as skipped.
	// Returns ErrUnsupportedFormat for unknown extensions.
	Read(ctx context.Context, path string, csv CSVOptions) (*Source, error)

	// OpenRows streams data rows from a delimited file without holding them
	// in memory, for chunked loading. The header row is consumed and
	// returned; subsequent Next() calls yield data rows. The caller must
	// call the returned close function.
	OpenRows(ctx context.Context, path string, csv CSVOptions) (header []string, rows RowSource, close func() error, err error)
}
