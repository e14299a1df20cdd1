// Package series provides typed catalog columns backed by Apache Arrow arrays.
package series

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Series represents a typed catalog column with an Apache Arrow backend.
// The Arrow validity bitmap doubles as the column's missing-value mask,
// and an optional unit string carries per-column physical-unit metadata
// (e.g. "deg" on an RA column).
type Series[T any] struct {
	name  string
	unit  string
	array arrow.Array
}

// New creates a new Series from a slice of values with no missing entries.
func New[T any](name string, values []T, mem memory.Allocator) *Series[T] {
	return NewWithMask(name, values, nil, mem)
}

// NewWithMask creates a new Series from a slice of values and a validity
// mask. valid[i] == false marks row i as missing. A nil mask means all
// rows are valid.
func NewWithMask[T any](name string, values []T, valid []bool, mem memory.Allocator) *Series[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	var arr arrow.Array

	switch v := any(values).(type) {
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.AppendStringValues(v, valid)
		arr = builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []int32:
		builder := array.NewInt32Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []float32:
		builder := array.NewFloat32Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	default:
		panic(fmt.Sprintf("unsupported type: %T", values))
	}

	return &Series[T]{
		name:  name,
		array: arr,
	}
}

// Name returns the column name.
func (s *Series[T]) Name() string {
	return s.name
}

// Len returns the length of the series.
func (s *Series[T]) Len() int {
	return s.array.Len()
}

// Unit returns the physical-unit metadata of the column, or "" if unset.
func (s *Series[T]) Unit() string {
	return s.unit
}

// SetUnit sets the physical-unit metadata of the column.
func (s *Series[T]) SetUnit(unit string) {
	s.unit = unit
}

// WithUnit sets the physical-unit metadata and returns the series,
// for use in construction chains.
func (s *Series[T]) WithUnit(unit string) *Series[T] {
	s.unit = unit
	return s
}

// Value returns the value at the given index. Missing rows and
// out-of-range indices yield the zero value.
func (s *Series[T]) Value(index int) T {
	var result T
	if index < 0 || index >= s.array.Len() || s.array.IsNull(index) {
		return result
	}

	switch arr := s.array.(type) {
	case *array.String:
		if v, ok := any(&result).(*string); ok {
			*v = arr.Value(index)
		}
	case *array.Int64:
		if v, ok := any(&result).(*int64); ok {
			*v = arr.Value(index)
		}
	case *array.Int32:
		if v, ok := any(&result).(*int32); ok {
			*v = arr.Value(index)
		}
	case *array.Float64:
		if v, ok := any(&result).(*float64); ok {
			*v = arr.Value(index)
		}
	case *array.Float32:
		if v, ok := any(&result).(*float32); ok {
			*v = arr.Value(index)
		}
	case *array.Boolean:
		if v, ok := any(&result).(*bool); ok {
			*v = arr.Value(index)
		}
	}

	return result
}

// DataType returns the Arrow data type.
func (s *Series[T]) DataType() arrow.DataType {
	return s.array.DataType()
}

// IsNull checks if the value at index is missing.
func (s *Series[T]) IsNull(index int) bool {
	return s.array.IsNull(index)
}

// HasNulls reports whether any row of the column is missing.
func (s *Series[T]) HasNulls() bool {
	return s.array.NullN() > 0
}

// String returns a string representation of the series.
func (s *Series[T]) String() string {
	if s.unit != "" {
		return fmt.Sprintf("Series[%s]: %s [%s] (len=%d)",
			reflect.TypeOf(new(T)).Elem().Name(), s.name, s.unit, s.Len())
	}
	return fmt.Sprintf("Series[%s]: %s (len=%d)",
		reflect.TypeOf(new(T)).Elem().Name(), s.name, s.Len())
}

// Array returns the underlying Arrow array (retains a reference).
func (s *Series[T]) Array() arrow.Array {
	if s.array != nil {
		s.array.Retain()
		return s.array
	}
	return nil
}

// Release releases the underlying Arrow memory.
func (s *Series[T]) Release() {
	if s.array != nil {
		s.array.Release()
	}
}
