package tabload

import "context"

// TableCatalog answers questions about existing destination tables. Every
// call reads the live database catalog; implementations must not cache
// results between calls, because concurrent DDL by other clients would make
// a cached answer stale.
type TableCatalog interface {
	// TableExists reports whether the named table exists in the public schema.
	TableExists(ctx context.Context, conn DBConnection, table string) (bool, error)

	// TableColumns returns the column names of an existing table in
	// ordinal order.
	TableColumns(ctx context.Context, conn DBConnection, table string) ([]string, error)
}
