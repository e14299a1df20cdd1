package sphere

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolab/xmatch/internal/sky"
	"github.com/astrolab/xmatch/internal/units"
)

func degrees(t *testing.T, ra, dec []float64) *sky.Coords {
	t.Helper()
	c, err := sky.New(ra, dec, units.Degree, units.Degree)
	require.NoError(t, err)
	return c
}

func TestNearest(t *testing.T) {
	ix := NewIndex(degrees(t, []float64{0, 90, 180}, []float64{0, 0, 0}))

	q := degrees(t, []float64{85}, []float64{1}).UnitVector(0)
	nearest, sep, ok := ix.Nearest(q)
	require.True(t, ok)
	assert.Equal(t, 1, nearest)
	assert.Greater(t, sep, 0.0)
}

func TestNearestEmptyIndex(t *testing.T) {
	ix := NewIndex(degrees(t, nil, nil))
	assert.Equal(t, 0, ix.Len())

	_, _, ok := ix.Nearest([3]float64{1, 0, 0})
	assert.False(t, ok)
}

func TestMatchToCatalogSeparations(t *testing.T) {
	// One degree apart along the equator is exactly 3600 arcsec.
	ix := NewIndex(degrees(t, []float64{1}, []float64{0}))

	_, sep, ok := ix.MatchToCatalog(degrees(t, []float64{0}, []float64{0}))
	require.True(t, ok)
	require.Len(t, sep, 1)
	assert.InDelta(t, 3600, sep[0], 1e-6)
}

func TestMatchToCatalogSmallAngles(t *testing.T) {
	// Sub-arcsecond separations must survive the round trip through unit
	// vectors without catastrophic cancellation.
	ix := NewIndex(degrees(t, []float64{0}, []float64{0.0001}))

	_, sep, ok := ix.MatchToCatalog(degrees(t, []float64{0}, []float64{0}))
	require.True(t, ok)
	assert.InDelta(t, 0.36, sep[0], 1e-9)
}

func TestMatchToCatalogPicksNearestPerRow(t *testing.T) {
	ix := NewIndex(degrees(t, []float64{0, 10, 20}, []float64{0, 0, 0}))

	idx, sep, ok := ix.MatchToCatalog(degrees(t, []float64{19, 1}, []float64{0, 0}))
	require.True(t, ok)
	assert.Equal(t, []int{2, 0}, idx)
	assert.InDelta(t, 3600.0, sep[0], 1e-3)
	assert.InDelta(t, 3600.0, sep[1], 1e-3)
}

func TestMatchToCatalogCoincidentPoints(t *testing.T) {
	ix := NewIndex(degrees(t, []float64{45}, []float64{45}))

	_, sep, ok := ix.MatchToCatalog(degrees(t, []float64{45}, []float64{45}))
	require.True(t, ok)
	assert.InDelta(t, 0, sep[0], 1e-9)
}

func TestMatchToCatalogEmptyIndex(t *testing.T) {
	ix := NewIndex(degrees(t, nil, nil))

	_, _, ok := ix.MatchToCatalog(degrees(t, []float64{0}, []float64{0}))
	assert.False(t, ok)
}

func TestChordToAngleAntipodal(t *testing.T) {
	// Antipodal points have the maximum chord length of 2; the angle must
	// clamp cleanly to pi instead of producing NaN.
	a := [3]float64{1, 0, 0}
	b := [3]float64{-1, 0, 0}
	angle := chordToAngle(squaredL2(a, b))
	assert.InDelta(t, 3.14159265, angle, 1e-6)
}
