// Package match implements catalog cross-matching: exact key matching and
// nearest-neighbor sky matching between two catalogs.
//
// Both matchers follow the same two-phase protocol: Prepare resolves the
// configured value or coordinate specifications against a pair of catalogs
// (columns are looked up, missing-value masks and compact index maps are
// computed), and Match is then a pure function of that prepared state.
package match

import (
	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/sky"
)

// ValueSpec designates the matching key for one catalog: either a column
// to look up by name, or precomputed values supplied as a series.
type ValueSpec interface {
	isValueSpec()
}

type columnSpec struct {
	name string
}

type valuesSpec struct {
	series catalog.ISeries
}

func (columnSpec) isValueSpec() {}
func (valuesSpec) isValueSpec() {}

// Column designates a catalog column as the matching key.
func Column(name string) ValueSpec {
	return columnSpec{name: name}
}

// Values supplies precomputed key values. The series must have the same
// length as the catalog it is resolved against; its validity mask marks
// rows as missing.
func Values(s catalog.ISeries) ValueSpec {
	return valuesSpec{series: s}
}

// CoordSpec designates the sky position source for one catalog: automatic
// RA/Dec column detection, an explicit "RA-DEC" column pair, or a
// precomputed coordinate set.
type CoordSpec interface {
	isCoordSpec()
}

type autoCoordSpec struct{}

type columnPairSpec struct {
	pair string
}

type fixedCoordSpec struct {
	coords *sky.Coords
}

func (autoCoordSpec) isCoordSpec()  {}
func (columnPairSpec) isCoordSpec() {}
func (fixedCoordSpec) isCoordSpec() {}

// AutoCoords selects RA/Dec columns by trying the configured candidate
// names in order.
func AutoCoords() CoordSpec {
	return autoCoordSpec{}
}

// CoordColumns names the RA and Dec columns explicitly as "RA_COL-DEC_COL".
func CoordColumns(pair string) CoordSpec {
	return columnPairSpec{pair: pair}
}

// Coords supplies a precomputed coordinate set. Unit configuration is
// ignored for catalogs resolved this way.
func Coords(c *sky.Coords) CoordSpec {
	return fixedCoordSpec{coords: c}
}
