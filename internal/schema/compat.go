package schema

import (
	"sort"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// CheckCompatibility compares an incoming schema's column names against the
// columns of an existing destination table. Only the column sets are compared;
// type drift between runs is not checked. Returns a
// *tabload.SchemaMismatchError when the sets differ, nil when they match.
//
// Callers must fetch the existing columns fresh for every check. A table that
// does not exist yet is trivially compatible and should not reach this
// function.
func CheckCompatibility(table string, existing, incoming []string) error {
	missing := difference(existing, incoming)
	extra := difference(incoming, existing)
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	return &tabload.SchemaMismatchError{Table: table, Missing: missing, Extra: extra}
}

// difference returns the elements of a not present in b, sorted.
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}

	var out []string
	for _, s := range a {
		if _, ok := in[s]; !ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
