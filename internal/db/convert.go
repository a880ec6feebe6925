package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dexhamter/tabload/internal/schema"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// convertRow maps one source row to CopyFrom arguments following the
// destination schema. Inference samples only a prefix of each column, so a
// value past the sample can still disagree with the inferred type; such a
// conversion fails here and surfaces as an insert error for the table.
func convertRow(dest tabload.Schema, row []tabload.Value) ([]any, error) {
	if len(row) != len(dest) {
		return nil, fmt.Errorf("row has %d cells, schema has %d columns", len(row), len(dest))
	}
	args := make([]any, len(dest))
	for i, col := range dest {
		v, err := convertValue(col.Type, row[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		args[i] = v
	}
	return args, nil
}

// convertValue produces the driver value for one cell. Missing cells become
// SQL NULL regardless of column type.
func convertValue(t tabload.TypeTag, v tabload.Value) (any, error) {
	if v.Kind == tabload.KindMissing {
		return nil, nil
	}

	switch t {
	case tabload.TypeBigInt:
		return bigintValue(v)
	case tabload.TypeDoublePrecision:
		return doubleValue(v)
	case tabload.TypeBoolean:
		return booleanValue(v)
	case tabload.TypeTimestamp:
		return timestampValue(v)
	default:
		return schema.Stringify(v), nil
	}
}

func bigintValue(v tabload.Value) (any, error) {
	switch v.Kind {
	case tabload.KindNumber:
		if !schema.IsIntegral(v.Num) {
			return nil, fmt.Errorf("cannot convert %v to bigint", v.Num)
		}
		return int64(v.Num), nil
	case tabload.KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to bigint", v.Str)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("cannot convert %s cell to bigint", v.Kind)
	}
}

func doubleValue(v tabload.Value) (any, error) {
	switch v.Kind {
	case tabload.KindNumber:
		return v.Num, nil
	case tabload.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to double precision", v.Str)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot convert %s cell to double precision", v.Kind)
	}
}

func booleanValue(v tabload.Value) (any, error) {
	switch v.Kind {
	case tabload.KindBool:
		return v.Bool, nil
	case tabload.KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.Str))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to boolean", v.Str)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("cannot convert %s cell to boolean", v.Kind)
	}
}

func timestampValue(v tabload.Value) (any, error) {
	switch v.Kind {
	case tabload.KindTime:
		return v.Time, nil
	case tabload.KindString:
		ts, ok := schema.ParseTimestamp(v.Str)
		if !ok {
			return nil, fmt.Errorf("cannot convert %q to timestamp", v.Str)
		}
		return ts, nil
	default:
		return nil, fmt.Errorf("cannot convert %s cell to timestamp", v.Kind)
	}
}
