package schema

import (
	"fmt"
	"strings"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// controlChars are never allowed in a column name. They break COPY framing
// and identifier quoting.
const controlChars = "\x00\n\r\t"

// Validate rejects standalone tables that are unsafe to import. It fails when
// the table has no data rows, any column name is blank after trimming, or a
// column name contains control characters. A Validate failure aborts the run.
func Validate(t *tabload.Table) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("file contains no data rows: %w", tabload.ErrInvalidInput)
	}
	for _, name := range t.Columns {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("file contains blank column names: %w", tabload.ErrInvalidInput)
		}
		if strings.ContainsAny(trimmed, controlChars) {
			return fmt.Errorf("column %q contains invalid control characters: %w", name, tabload.ErrInvalidInput)
		}
	}
	return nil
}

// IsValidSheet reports whether a workbook sheet looks like a real table, with
// a human-readable reason when it does not. It never fails: unreadable sheets
// are skipped and logged while the rest of the workbook continues to import.
func IsValidSheet(t *tabload.Table) (bool, string) {
	if len(t.Rows) == 0 {
		return false, "sheet has no data rows"
	}
	if len(t.Columns) < 2 {
		return false, "sheet has fewer than two columns"
	}
	readable := false
	for _, name := range t.Columns {
		if strings.TrimSpace(name) != "" {
			readable = true
			break
		}
	}
	if !readable {
		return false, "sheet has no readable column names"
	}
	if !hasNonEmptyRow(t.Rows) {
		return false, "sheet has no non-empty cells"
	}
	return true, ""
}

func hasNonEmptyRow(rows [][]tabload.Value) bool {
	for _, row := range rows {
		for _, v := range row {
			if v.Kind != tabload.KindMissing {
				return true
			}
		}
	}
	return false
}
