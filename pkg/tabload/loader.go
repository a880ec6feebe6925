package tabload

import "context"

// LoadRequest describes one table's worth of data to write.
type LoadRequest struct {
	// Table is the sanitized destination table name
	Table string

	// Schema is the destination schema in source column order
	Schema Schema

	// IfExists controls the DDL applied before the first write
	IfExists IfExistsPolicy

	// Rows yields the data rows to write
	Rows RowSource

	// ChunkSize is the rows-per-batch when Chunked is true
	ChunkSize int

	// Chunked selects multi-batch writing. All batches still share one
	// transaction, so results are identical to a single-shot load.
	Chunked bool
}

// LoadResult reports what one Load call wrote.
type LoadResult struct {
	// Rows is the number of data rows written
	Rows int64

	// Batches is the number of write batches executed
	Batches int
}

// TableLoader writes tabular data into a destination table. One Load call is
// one transaction: the table DDL and every batch commit together or not at
// all.
type TableLoader interface {
	// Load acquires a connection, opens a transaction, applies the IfExists
	// policy, writes all rows and commits. Any failure rolls back and
	// returns an error wrapping ErrImportFailed (or ErrImportFailed itself
	// for an if-exists=fail conflict).
	Load(ctx context.Context, conn DBConnection, req LoadRequest) (*LoadResult, error)
}
