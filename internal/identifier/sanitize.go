// Package identifier derives valid PostgreSQL identifiers from arbitrary
// column headers, sheet names and requested table names.
package identifier

import (
	"strings"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// fallbackPrefix anchors names that would otherwise be empty or start with
// a character PostgreSQL identifiers cannot start with.
const fallbackPrefix = "sheet"

// Sanitize converts an arbitrary name into a valid lowercase PostgreSQL
// identifier. The function is pure and idempotent: feeding its output back
// in returns the same string, so names recorded in reports, logs and the
// database never drift between runs.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isWordChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	s := strings.Trim(b.String(), "_")

	switch {
	case s == "":
		s = fallbackPrefix
	case !isNameStart(rune(s[0])):
		s = fallbackPrefix + "_" + s
	}

	if len(s) > tabload.MaxIdentifierLength {
		s = s[:tabload.MaxIdentifierLength]
	}

	s = strings.ToLower(s)

	// Truncation can leave a trailing underscore; drop it so the result is
	// a fixed point of this function
	return strings.TrimRight(s, "_")
}

// ForSheet builds the destination table name for one worksheet:
// <table>_<sheet>, sanitized as a whole so the length limit holds.
func ForSheet(table, sheet string) string {
	return Sanitize(Sanitize(table) + "_" + Sanitize(sheet))
}

func isWordChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}

func isNameStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}
