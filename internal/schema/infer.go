package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dexhamter/tabload/internal/identifier"
	"github.com/dexhamter/tabload/pkg/tabload"
)

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// Timestamp layouts accepted during inference and value conversion. Four-digit
// year layouts are tried first because they are unambiguous.
var (
	timestampLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

// twoDigitYearPivot bounds how far into the future a two-digit year may land.
// Parsed years beyond currentYear+pivot are pulled back a century so "1/2/50"
// resolves to 1950, not 2050.
const twoDigitYearPivot = 20

// ParseTimestamp reports whether s is a recognizable date or date/time value
// and returns its parsed form.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivot := time.Now().Year() + twoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivot {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// InferSchema derives the destination schema for a table. Column labels are
// sanitized into destination identifiers (deduplicated left to right with a
// numeric suffix) and each column is mapped to the narrowest type its values
// support. Returns the schema together with a warning for every column that
// fell back to TEXT because its values were mixed or ambiguous.
func InferSchema(t *tabload.Table) (tabload.Schema, []string) {
	schema := make(tabload.Schema, 0, len(t.Columns))
	var warnings []string
	used := make(map[string]int, len(t.Columns))

	for ci, label := range t.Columns {
		typ, ambiguous := inferColumnType(profileColumn(t.Rows, ci))
		if ambiguous {
			warnings = append(warnings, fmt.Sprintf("column %q is mixed or ambiguous, using TEXT", label))
		}
		schema = append(schema, tabload.Column{Name: destinationName(label, used), Type: typ})
	}

	return schema, warnings
}

// columnProfile summarizes one column: how many non-missing values it holds,
// how many of each native kind, and the stringified sample for pass two.
type columnProfile struct {
	nonMissing int
	numbers    int
	bools      int
	times      int
	integral   bool
	sample     []string
}

func profileColumn(rows [][]tabload.Value, ci int) columnProfile {
	p := columnProfile{integral: true}
	for _, row := range rows {
		v := row[ci]
		if v.Kind == tabload.KindMissing {
			continue
		}
		p.nonMissing++
		switch v.Kind {
		case tabload.KindNumber:
			p.numbers++
			if !IsIntegral(v.Num) {
				p.integral = false
			}
		case tabload.KindBool:
			p.bools++
		case tabload.KindTime:
			p.times++
		}
		if len(p.sample) < tabload.TypeInferenceSampleSize {
			p.sample = append(p.sample, strings.TrimSpace(Stringify(v)))
		}
	}
	return p
}

// inferColumnType classifies one column. Pass one trusts native value kinds
// when the column is uniform; pass two inspects the stringified sample and
// tests integer, float and timestamp shapes in order. The second return is
// true when the column fell through every test and defaulted to TEXT.
func inferColumnType(p columnProfile) (tabload.TypeTag, bool) {
	if p.nonMissing == 0 {
		return tabload.TypeText, false
	}

	switch {
	case p.numbers == p.nonMissing:
		if p.integral {
			return tabload.TypeBigInt, false
		}
		return tabload.TypeDoublePrecision, false
	case p.bools == p.nonMissing:
		return tabload.TypeBoolean, false
	case p.times == p.nonMissing:
		return tabload.TypeTimestamp, false
	}

	if all(p.sample, integerPattern.MatchString) {
		return tabload.TypeBigInt, false
	}
	if all(p.sample, func(s string) bool {
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	}) {
		return tabload.TypeDoublePrecision, false
	}
	if all(p.sample, func(s string) bool {
		_, ok := ParseTimestamp(s)
		return ok
	}) {
		return tabload.TypeTimestamp, false
	}

	return tabload.TypeText, true
}

func all(sample []string, ok func(string) bool) bool {
	for _, s := range sample {
		if !ok(s) {
			return false
		}
	}
	return true
}

// IsIntegral reports whether n can be stored in a BIGINT without loss.
// Integral values outside the int64 range stay DOUBLE PRECISION so conversion
// never silently truncates. Inference and value conversion share this bound.
func IsIntegral(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0) && math.Trunc(n) == n && math.Abs(n) < float64(1<<63)
}

// Stringify returns the display text for a cell: the source text when the
// reader captured it, otherwise a canonical rendering of the typed value.
func Stringify(v tabload.Value) string {
	switch v.Kind {
	case tabload.KindString:
		return v.Str
	case tabload.KindNumber:
		if v.Str != "" {
			return v.Str
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case tabload.KindBool:
		if v.Str != "" {
			return v.Str
		}
		return strconv.FormatBool(v.Bool)
	case tabload.KindTime:
		if v.Str != "" {
			return v.Str
		}
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// destinationName sanitizes a column label and keeps it unique within the
// table by appending a numeric suffix to repeats.
func destinationName(label string, used map[string]int) string {
	name := identifier.Sanitize(label)
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}

	suffix := "_" + strconv.Itoa(n+1)
	if len(name)+len(suffix) > tabload.MaxIdentifierLength {
		name = name[:tabload.MaxIdentifierLength-len(suffix)]
	}
	return name + suffix
}
