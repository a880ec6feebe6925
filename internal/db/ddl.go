package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// createTableSQL renders a CREATE TABLE statement with the schema's columns
// in source order. Every identifier goes through pgx.Identifier.Sanitize() so
// arbitrary header text cannot escape the statement.
func createTableSQL(table string, schema tabload.Schema, ifNotExists bool) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" (")
	for i, col := range schema {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col.Name}.Sanitize())
		b.WriteByte(' ')
		b.WriteString(col.Type.String())
	}
	b.WriteString(")")
	return b.String()
}

func dropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{table}.Sanitize())
}
