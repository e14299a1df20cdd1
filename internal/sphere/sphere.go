// Package sphere provides a flat nearest-neighbor index over points on the
// unit sphere. Positions are projected to unit vectors once at build time;
// queries do a brute-force scan minimizing squared chord distance, which is
// monotonic in angular separation, so the squared-L2 winner is also the
// nearest neighbor on the great circle.
package sphere

import (
	"math"

	"github.com/astrolab/xmatch/internal/sky"
	"github.com/astrolab/xmatch/internal/units"
)

// Index is a flat index of sky positions for nearest-neighbor search.
type Index struct {
	vectors [][3]float64
}

// NewIndex builds an index over the given coordinate set.
func NewIndex(c *sky.Coords) *Index {
	vectors := make([][3]float64, c.Len())
	for i := range vectors {
		vectors[i] = c.UnitVector(i)
	}
	return &Index{vectors: vectors}
}

// Len returns the number of indexed positions.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Nearest returns the indexed position closest to q and their angular
// separation in radians. ok is false when the index is empty.
func (ix *Index) Nearest(q [3]float64) (nearest int, sep float64, ok bool) {
	if len(ix.vectors) == 0 {
		return 0, 0, false
	}

	best := 0
	bestDist := squaredL2(q, ix.vectors[0])
	for i := 1; i < len(ix.vectors); i++ {
		if d := squaredL2(q, ix.vectors[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, chordToAngle(bestDist), true
}

// MatchToCatalog finds, for every position of base, the nearest indexed
// position and the angular separation in arcseconds. The returned slices
// have length base.Len(). ok is false when the index is empty.
func (ix *Index) MatchToCatalog(base *sky.Coords) (idx []int, sepArcsec []float64, ok bool) {
	if len(ix.vectors) == 0 {
		return nil, nil, false
	}

	idx = make([]int, base.Len())
	sepArcsec = make([]float64, base.Len())
	for i := 0; i < base.Len(); i++ {
		nearest, sep, _ := ix.Nearest(base.UnitVector(i))
		idx[i] = nearest
		sepArcsec[i] = sep * units.ArcsecPerRadian
	}
	return idx, sepArcsec, true
}

// squaredL2 calculates the squared L2 (Euclidean) distance between two
// unit vectors, i.e. the squared chord length.
func squaredL2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// chordToAngle converts a squared chord length between two unit vectors to
// the great-circle angle in radians. Numerically stable for small angles,
// unlike acos of the dot product.
func chordToAngle(chordSq float64) float64 {
	half := 0.5 * math.Sqrt(chordSq)
	if half > 1 {
		half = 1
	}
	return 2 * math.Asin(half)
}
