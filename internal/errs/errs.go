// Package errs provides standardized error types for catalog matching
// operations. It defines MatchError for consistent error handling across
// all public APIs, with a failure-kind taxonomy, catalog/column context
// and error wrapping support.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a matching failure.
type Kind int

const (
	// KindLookup indicates a named column or key was not found in a catalog.
	KindLookup Kind = iota
	// KindValue indicates a supplied raw array does not fit its catalog.
	KindValue
	// KindUnit indicates a coordinate column carries a unit that is not an
	// angular measure.
	KindUnit
	// KindType indicates a value or coordinate specification of an
	// unsupported shape.
	KindType
	// KindState indicates an operation was called in the wrong matcher state,
	// e.g. Match before Prepare.
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "lookup"
	case KindValue:
		return "value"
	case KindUnit:
		return "unit"
	case KindType:
		return "type"
	case KindState:
		return "state"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// MatchError represents standardized errors across all matcher operations.
type MatchError struct {
	Kind    Kind   // Failure classification
	Op      string // Operation name (e.g. "Prepare", "Match")
	Catalog string // Catalog name if applicable
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	switch {
	case e.Column != "" && e.Catalog != "":
		return fmt.Sprintf("%s failed on column '%s' of catalog '%s': %s", e.Op, e.Column, e.Catalog, e.Message)
	case e.Catalog != "":
		return fmt.Sprintf("%s failed on catalog '%s': %s", e.Op, e.Catalog, e.Message)
	default:
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *MatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a MatchError of the same kind. Context
// fields are compared only when the target sets them, so a bare
// &MatchError{Kind: KindLookup} matches any lookup failure.
func (e *MatchError) Is(target error) bool {
	t, ok := target.(*MatchError)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if t.Op != "" && e.Op != t.Op {
		return false
	}
	if t.Column != "" && e.Column != t.Column {
		return false
	}
	return true
}

// IsKind reports whether err is (or wraps) a MatchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var me *MatchError
	if !errors.As(err, &me) {
		return false
	}
	return me.Kind == kind
}

// Common error constructors for consistent error creation

// NewColumnNotFound creates a lookup error for a missing column.
func NewColumnNotFound(op, cat, column string) *MatchError {
	return &MatchError{
		Kind:    KindLookup,
		Op:      op,
		Catalog: cat,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewCoordinateNotFound creates a lookup error for failed RA/Dec
// auto-detection, listing the candidate names that were tried.
func NewCoordinateNotFound(op, cat, axis string, candidates []string) *MatchError {
	return &MatchError{
		Kind:    KindLookup,
		Op:      op,
		Catalog: cat,
		Message: fmt.Sprintf("%s column not found (tried %v)", axis, candidates),
	}
}

// NewLengthMismatch creates a value error for raw arrays whose length does
// not equal the catalog length.
func NewLengthMismatch(op, cat string, got, want int) *MatchError {
	return &MatchError{
		Kind:    KindValue,
		Op:      op,
		Catalog: cat,
		Message: fmt.Sprintf("supplied values have length %d, catalog has %d rows", got, want),
	}
}

// NewUnitError creates a unit error naming the offending column and the
// unit that was found instead of an angular measure.
func NewUnitError(op, cat, column, got string) *MatchError {
	return &MatchError{
		Kind:    KindUnit,
		Op:      op,
		Catalog: cat,
		Column:  column,
		Message: fmt.Sprintf("expected a unit equivalent to 'rad', got '%s'; try setting the unit of column '%s'", got, column),
	}
}

// NewSpecTypeError creates a type error for an unsupported specification shape.
func NewSpecTypeError(op, message string) *MatchError {
	return &MatchError{
		Kind:    KindType,
		Op:      op,
		Message: message,
	}
}

// NewNotPrepared creates a state error for matching before preparation.
func NewNotPrepared(op string) *MatchError {
	return &MatchError{
		Kind:    KindState,
		Op:      op,
		Message: "matcher has not been prepared; call Prepare first",
	}
}
