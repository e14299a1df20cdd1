package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *MatchError
		want string
	}{
		{
			name: "column and catalog",
			err:  NewColumnNotFound("Prepare", "gaia", "objid"),
			want: "Prepare failed on column 'objid' of catalog 'gaia': column does not exist",
		},
		{
			name: "catalog only",
			err:  NewLengthMismatch("Prepare", "gaia", 3, 5),
			want: "Prepare failed on catalog 'gaia': supplied values have length 3, catalog has 5 rows",
		},
		{
			name: "bare",
			err:  NewNotPrepared("Match"),
			want: "Match failed: matcher has not been prepared; call Prepare first",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnitErrorNamesColumn(t *testing.T) {
	err := NewUnitError("Prepare", "gaia", "ra", "hour")
	assert.Contains(t, err.Error(), "'hour'")
	assert.Contains(t, err.Error(), "try setting the unit of column 'ra'")
}

func TestCoordinateNotFoundListsCandidates(t *testing.T) {
	err := NewCoordinateNotFound("Prepare", "gaia", "RA", []string{"ra", "RA"})
	assert.Contains(t, err.Error(), "RA column not found")
	assert.Contains(t, err.Error(), "ra")
}

func TestIsMatchesOnSetFieldsOnly(t *testing.T) {
	err := NewColumnNotFound("Prepare", "gaia", "objid")

	assert.True(t, errors.Is(err, &MatchError{Kind: KindLookup}))
	assert.True(t, errors.Is(err, &MatchError{Kind: KindLookup, Column: "objid"}))
	assert.False(t, errors.Is(err, &MatchError{Kind: KindLookup, Column: "other"}))
	assert.False(t, errors.Is(err, &MatchError{Kind: KindUnit}))
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotPrepared("Match"))

	assert.True(t, IsKind(err, KindState))
	assert.False(t, IsKind(err, KindLookup))
	assert.False(t, IsKind(errors.New("plain"), KindState))
	assert.False(t, IsKind(nil, KindState))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &MatchError{Kind: KindUnit, Op: "Prepare", Message: "bad unit", Cause: cause}

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "lookup", KindLookup.String())
	assert.Equal(t, "state", KindState.String())
	assert.Contains(t, Kind(99).String(), "unknown")
}
