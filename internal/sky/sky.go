// Package sky provides sky coordinate sets for angular cross-matching.
package sky

import (
	"fmt"
	"math"

	"github.com/astrolab/xmatch/internal/units"
)

// Coords holds a set of sky positions. RA and Dec are stored in radians
// regardless of the units they were constructed from.
type Coords struct {
	ra  []float64
	dec []float64
}

// New builds a coordinate set from RA and Dec values in the given units.
// Both slices must have the same length and both units must be angular.
func New(ra, dec []float64, raUnit, decUnit units.Unit) (*Coords, error) {
	if len(ra) != len(dec) {
		return nil, fmt.Errorf("ra has %d entries, dec has %d", len(ra), len(dec))
	}
	if !raUnit.Angular() {
		return nil, fmt.Errorf("ra unit '%s' is not angular", raUnit)
	}
	if !decUnit.Angular() {
		return nil, fmt.Errorf("dec unit '%s' is not angular", decUnit)
	}

	c := &Coords{
		ra:  make([]float64, len(ra)),
		dec: make([]float64, len(dec)),
	}
	for i := range ra {
		c.ra[i] = raUnit.ToRadians(ra[i])
		c.dec[i] = decUnit.ToRadians(dec[i])
	}
	return c, nil
}

// FromRadians builds a coordinate set from values already in radians.
// The slices are used directly, not copied.
func FromRadians(ra, dec []float64) *Coords {
	return &Coords{ra: ra, dec: dec}
}

// Len returns the number of positions.
func (c *Coords) Len() int {
	return len(c.ra)
}

// RA returns the right ascension of position i in radians.
func (c *Coords) RA(i int) float64 {
	return c.ra[i]
}

// Dec returns the declination of position i in radians.
func (c *Coords) Dec(i int) float64 {
	return c.dec[i]
}

// UnitVector projects position i onto the unit sphere.
func (c *Coords) UnitVector(i int) [3]float64 {
	cosDec := math.Cos(c.dec[i])
	return [3]float64{
		cosDec * math.Cos(c.ra[i]),
		cosDec * math.Sin(c.ra[i]),
		math.Sin(c.dec[i]),
	}
}

// Subset returns the positions selected by idx, in order.
func (c *Coords) Subset(idx []int) *Coords {
	ra := make([]float64, len(idx))
	dec := make([]float64, len(idx))
	for i, j := range idx {
		ra[i] = c.ra[j]
		dec[i] = c.dec[j]
	}
	return &Coords{ra: ra, dec: dec}
}

// String returns a short description of the coordinate set.
func (c *Coords) String() string {
	return fmt.Sprintf("Coords(%d positions)", c.Len())
}
