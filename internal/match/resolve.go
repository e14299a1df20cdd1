package match

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/errs"
)

// resolvedValues is the prepared matching key for one catalog: the
// canonical key encodings restricted to non-missing rows, the missing
// mask over all rows, and the compact index map from non-missing position
// back to original row index.
type resolvedValues struct {
	keys    []string // one entry per non-missing row, in compact order
	missing []bool   // length = catalog length
	compact []int    // strictly increasing, values in [0, len(missing))
}

// resolveValues resolves a value specification against a catalog.
func resolveValues(op string, spec ValueSpec, cat *catalog.Catalog) (*resolvedValues, error) {
	var col catalog.ISeries

	switch s := spec.(type) {
	case columnSpec:
		c, ok := cat.Column(s.name)
		if !ok {
			return nil, errs.NewColumnNotFound(op, cat.Name(), s.name)
		}
		col = c
	case valuesSpec:
		if s.series == nil {
			return nil, errs.NewSpecTypeError(op, "value specification is nil")
		}
		if s.series.Len() != cat.Len() {
			return nil, errs.NewLengthMismatch(op, cat.Name(), s.series.Len(), cat.Len())
		}
		col = s.series
	case nil:
		return nil, errs.NewSpecTypeError(op, "value specification is nil")
	default:
		return nil, errs.NewSpecTypeError(op, "unsupported value specification: expected a column name or a series of values")
	}

	missing := missingMask(col)
	compact := compactIndex(missing)

	arr := col.Array()
	defer arr.Release()

	keys := make([]string, len(compact))
	for i, row := range compact {
		keys[i] = encodeKey(arr, row)
	}

	return &resolvedValues{
		keys:    keys,
		missing: missing,
		compact: compact,
	}, nil
}

// missingMask computes the per-row missing mask of a column from its
// validity bitmap. Columns of unmasked catalogs have no nulls, yielding
// an all-false mask.
func missingMask(col catalog.ISeries) []bool {
	missing := make([]bool, col.Len())
	if !col.HasNulls() {
		return missing
	}
	for i := range missing {
		missing[i] = col.IsNull(i)
	}
	return missing
}

// compactIndex builds the strictly increasing sequence of original row
// indices where the mask is false.
func compactIndex(missing []bool) []int {
	compact := make([]int, 0, len(missing))
	for i, m := range missing {
		if !m {
			compact = append(compact, i)
		}
	}
	return compact
}

// encodeKey produces the canonical encoding of one key value, used both
// for hashing and for equality. Values of the same type encode equally
// iff they are equal; callers are responsible for matching key columns of
// comparable types across the two catalogs.
func encodeKey(arr arrow.Array, row int) string {
	switch a := arr.(type) {
	case *array.Int64:
		return strconv.FormatInt(a.Value(row), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(row)), 10)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(row), 'g', -1, 64)
	case *array.Float32:
		return strconv.FormatFloat(float64(a.Value(row)), 'g', -1, 32)
	case *array.String:
		return a.Value(row)
	case *array.Boolean:
		return strconv.FormatBool(a.Value(row))
	default:
		return arr.ValueStr(row)
	}
}

// floatAt extracts a numeric value from an arrow array as float64.
// ok is false for non-numeric arrays.
func floatAt(arr arrow.Array, row int) (float64, bool) {
	switch a := arr.(type) {
	case *array.Float64:
		return a.Value(row), true
	case *array.Float32:
		return float64(a.Value(row)), true
	case *array.Int64:
		return float64(a.Value(row)), true
	case *array.Int32:
		return float64(a.Value(row)), true
	default:
		return 0, false
	}
}
