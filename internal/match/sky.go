package match

import (
	"fmt"
	"strings"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/config"
	"github.com/astrolab/xmatch/internal/errs"
	"github.com/astrolab/xmatch/internal/sky"
	"github.com/astrolab/xmatch/internal/sphere"
	"github.com/astrolab/xmatch/internal/units"
)

// SkyOptions contains configuration options for the sky matcher.
type SkyOptions struct {
	// ThresholdArcsec is the acceptance threshold: a nearest neighbor
	// qualifies iff its separation is strictly below this many arcseconds.
	ThresholdArcsec float64

	// Coord and Coord1 designate the sky positions of the base and
	// matched catalogs.
	Coord  CoordSpec
	Coord1 CoordSpec

	// Unit and Unit1 apply to coordinate columns without unit metadata.
	// Column metadata, when present, takes precedence.
	Unit  units.Unit
	Unit1 units.Unit

	// RACandidates and DecCandidates are the column names tried, in
	// order, during automatic coordinate detection.
	RACandidates  []string
	DecCandidates []string
}

// DefaultSkyOptions returns the default sky matcher configuration:
// threshold 1 arcsec, automatic RA/Dec detection, degrees.
func DefaultSkyOptions() SkyOptions {
	cfg := config.Default()
	return SkyOptions{
		ThresholdArcsec: cfg.ThresholdArcsec,
		Coord:           AutoCoords(),
		Coord1:          AutoCoords(),
		Unit:            units.Parse(cfg.AngularUnit),
		Unit1:           units.Parse(cfg.AngularUnit),
		RACandidates:    cfg.RACandidates,
		DecCandidates:   cfg.DecCandidates,
	}
}

// SkyMatcher matches rows of a matched catalog (data1) to rows of a base
// catalog (data) by nearest angular separation on the sphere, accepting a
// match only when the separation is below the configured threshold.
type SkyMatcher struct {
	opts SkyOptions

	// Single-slot prepared state, as in ExactMatcher.
	prepared *skyPrepared
}

// resolvedCoords is the prepared coordinate set for one catalog.
type resolvedCoords struct {
	coords  *sky.Coords // restricted to non-missing rows
	missing []bool
	compact []int
	raName  string // "" when a precomputed coordinate set was supplied
	decName string
}

type skyPrepared struct {
	base  *resolvedCoords
	other *resolvedCoords
	index *sphere.Index // over other.coords
}

// NewSkyMatcher creates a sky matcher with the given options.
func NewSkyMatcher(optFns ...func(o *SkyOptions)) *SkyMatcher {
	opts := DefaultSkyOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &SkyMatcher{opts: opts}
}

// WithThreshold sets the acceptance threshold in arcseconds.
func WithThreshold(arcsec float64) func(o *SkyOptions) {
	return func(o *SkyOptions) {
		o.ThresholdArcsec = arcsec
	}
}

// WithCoord sets the coordinate specification for the base catalog.
func WithCoord(spec CoordSpec) func(o *SkyOptions) {
	return func(o *SkyOptions) {
		o.Coord = spec
	}
}

// WithCoord1 sets the coordinate specification for the matched catalog.
func WithCoord1(spec CoordSpec) func(o *SkyOptions) {
	return func(o *SkyOptions) {
		o.Coord1 = spec
	}
}

// WithUnit sets the fallback angular unit for the base catalog's
// coordinate columns.
func WithUnit(u units.Unit) func(o *SkyOptions) {
	return func(o *SkyOptions) {
		o.Unit = u
	}
}

// WithUnit1 sets the fallback angular unit for the matched catalog's
// coordinate columns.
func WithUnit1(u units.Unit) func(o *SkyOptions) {
	return func(o *SkyOptions) {
		o.Unit1 = u
	}
}

// Prepare resolves both coordinate sets and builds the nearest-neighbor
// index over the matched catalog's non-missing positions.
func (m *SkyMatcher) Prepare(data, data1 *catalog.Catalog) error {
	const op = "Prepare"

	base, err := m.resolveCoords(op, m.opts.Coord, data, m.opts.Unit)
	if err != nil {
		return err
	}
	other, err := m.resolveCoords(op, m.opts.Coord1, data1, m.opts.Unit1)
	if err != nil {
		return err
	}

	m.prepared = &skyPrepared{
		base:  base,
		other: other,
		index: sphere.NewIndex(other.coords),
	}
	return nil
}

// Match finds the nearest matched-catalog position for every non-missing
// base row and accepts it iff the separation is strictly below the
// threshold. Pure function of the prepared state; re-callable.
func (m *SkyMatcher) Match() (Result, error) {
	if m.prepared == nil {
		return Result{}, errs.NewNotPrepared("Match")
	}

	p := m.prepared
	res := newResult(len(p.base.missing))

	nn, sep, ok := p.index.MatchToCatalog(p.base.coords)
	if !ok {
		// No usable rows on the matched side; nothing can match.
		return res, nil
	}

	for ci, row := range p.base.compact {
		if sep[ci] < m.opts.ThresholdArcsec {
			res.Matched[row] = true
			res.Idx[row] = p.other.compact[nn[ci]]
		}
	}
	return res, nil
}

// Explore prepares the matcher for the given catalog pair and returns the
// nearest-neighbor angular separation in arcseconds for every non-missing
// base row, for threshold calibration. It does not apply the threshold.
func (m *SkyMatcher) Explore(data, data1 *catalog.Catalog) ([]float64, error) {
	if err := m.Prepare(data, data1); err != nil {
		return nil, err
	}

	p := m.prepared
	_, sep, ok := p.index.MatchToCatalog(p.base.coords)
	if !ok {
		return []float64{}, nil
	}
	return sep, nil
}

// Threshold returns the configured acceptance threshold in arcseconds.
func (m *SkyMatcher) Threshold() float64 {
	return m.opts.ThresholdArcsec
}

// CoordNames returns the resolved RA and Dec column names for the base
// and matched catalogs. Empty strings are reported for precomputed
// coordinate sets. Valid only after Prepare.
func (m *SkyMatcher) CoordNames() (ra, dec, ra1, dec1 string) {
	if m.prepared == nil {
		return "", "", "", ""
	}
	return m.prepared.base.raName, m.prepared.base.decName,
		m.prepared.other.raName, m.prepared.other.decName
}

// String returns a short description of the matcher.
func (m *SkyMatcher) String() string {
	return fmt.Sprintf("SkyMatcher with thres=%g", m.opts.ThresholdArcsec)
}

// resolveCoords resolves a coordinate specification against a catalog.
func (m *SkyMatcher) resolveCoords(op string, spec CoordSpec, cat *catalog.Catalog, unit units.Unit) (*resolvedCoords, error) {
	switch s := spec.(type) {
	case nil, autoCoordSpec:
		raName, ok := firstPresent(cat, m.opts.RACandidates)
		if !ok {
			return nil, errs.NewCoordinateNotFound(op, cat.Name(), "RA", m.opts.RACandidates)
		}
		decName, ok := firstPresent(cat, m.opts.DecCandidates)
		if !ok {
			return nil, errs.NewCoordinateNotFound(op, cat.Name(), "Dec", m.opts.DecCandidates)
		}
		return coordsFromColumns(op, cat, raName, decName, unit)

	case columnPairSpec:
		raName, decName, ok := strings.Cut(s.pair, "-")
		if !ok || raName == "" || decName == "" {
			return nil, errs.NewSpecTypeError(op, fmt.Sprintf("coordinate spec %q is not of the form 'RA_COL-DEC_COL'", s.pair))
		}
		return coordsFromColumns(op, cat, raName, decName, unit)

	case fixedCoordSpec:
		if s.coords == nil {
			return nil, errs.NewSpecTypeError(op, "coordinate specification is nil")
		}
		if s.coords.Len() != cat.Len() {
			return nil, errs.NewLengthMismatch(op, cat.Name(), s.coords.Len(), cat.Len())
		}
		// Precomputed coordinates carry no missing rows; supplied units
		// were already applied at construction.
		missing := make([]bool, cat.Len())
		return &resolvedCoords{
			coords:  s.coords,
			missing: missing,
			compact: compactIndex(missing),
		}, nil

	default:
		return nil, errs.NewSpecTypeError(op, "unsupported coordinate specification: expected auto-detection, an 'RA-DEC' column pair or precomputed coordinates")
	}
}

// firstPresent returns the first candidate name that exists as a column.
func firstPresent(cat *catalog.Catalog, candidates []string) (string, bool) {
	for _, name := range candidates {
		if cat.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// coordsFromColumns resolves the named RA/Dec columns: combined missing
// mask, compact index map, unit resolution and conversion to radians.
func coordsFromColumns(op string, cat *catalog.Catalog, raName, decName string, unit units.Unit) (*resolvedCoords, error) {
	raCol, ok := cat.Column(raName)
	if !ok {
		return nil, errs.NewColumnNotFound(op, cat.Name(), raName)
	}
	decCol, ok := cat.Column(decName)
	if !ok {
		return nil, errs.NewColumnNotFound(op, cat.Name(), decName)
	}

	raUnit, err := columnUnit(op, cat.Name(), raCol, unit)
	if err != nil {
		return nil, err
	}
	decUnit, err := columnUnit(op, cat.Name(), decCol, unit)
	if err != nil {
		return nil, err
	}

	// A row is missing when either coordinate of the pair is missing.
	missing := missingMask(raCol)
	for i, m := range missingMask(decCol) {
		missing[i] = missing[i] || m
	}
	compact := compactIndex(missing)

	ra, err := angularValues(op, cat.Name(), raCol, compact, raUnit)
	if err != nil {
		return nil, err
	}
	dec, err := angularValues(op, cat.Name(), decCol, compact, decUnit)
	if err != nil {
		return nil, err
	}

	return &resolvedCoords{
		coords:  sky.FromRadians(ra, dec),
		missing: missing,
		compact: compact,
		raName:  raName,
		decName: decName,
	}, nil
}

// columnUnit resolves the effective unit of a coordinate column: unit
// metadata on the column wins over the configured fallback. Non-angular
// units are rejected.
func columnUnit(op, catName string, col catalog.ISeries, fallback units.Unit) (units.Unit, error) {
	u := fallback
	if col.Unit() != "" {
		u = units.Parse(col.Unit())
	}
	if !u.Angular() {
		return "", errs.NewUnitError(op, catName, col.Name(), string(u))
	}
	return u, nil
}

// angularValues extracts the selected rows of a coordinate column as
// radians.
func angularValues(op, catName string, col catalog.ISeries, rows []int, u units.Unit) ([]float64, error) {
	arr := col.Array()
	defer arr.Release()

	out := make([]float64, len(rows))
	for i, row := range rows {
		v, ok := floatAt(arr, row)
		if !ok {
			return nil, errs.NewSpecTypeError(op, fmt.Sprintf("column '%s' of catalog '%s' is not numeric", col.Name(), catName))
		}
		out[i] = u.ToRadians(v)
	}
	return out, nil
}
