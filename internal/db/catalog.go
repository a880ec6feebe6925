package db

import (
	"context"
	"fmt"

	"github.com/dexhamter/tabload/pkg/tabload"
)

const (
	queryTableExists = "SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)"

	queryTableColumns = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`
)

// Catalog answers table questions from the live information_schema. Every
// call is a fresh query, so answers stay correct when other clients run DDL
// between calls. Stateless and safe for concurrent use; thread safety depends
// on the injected DBConnection.
type Catalog struct{}

// NewCatalog creates a new TableCatalog instance.
func NewCatalog() tabload.TableCatalog {
	return &Catalog{}
}

// TableExists checks if a table exists in the public schema.
func (c *Catalog) TableExists(ctx context.Context, conn tabload.DBConnection, table string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, queryTableExists, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// TableColumns returns the column names of a table in ordinal order.
func (c *Catalog) TableColumns(ctx context.Context, conn tabload.DBConnection, table string) ([]string, error) {
	rows, err := conn.Query(ctx, queryTableColumns, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of table %q: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list columns of table %q: %w", table, err)
	}
	return columns, nil
}

// Verify Catalog implements the TableCatalog interface at compile time
var _ tabload.TableCatalog = (*Catalog)(nil)
