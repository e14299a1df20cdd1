// Package xmatch provides in-memory cross-matching of tabular catalogs.
// This package is the sole public API for the library.
//
// Records of two catalogs are matched either by exact equality of a key
// column (ExactMatcher) or by nearest angular separation on the sky within
// a threshold (SkyMatcher). Both matchers follow a two-phase protocol:
// Prepare resolves the configured specifications against a catalog pair,
// Match then computes the result purely from the prepared state.
package xmatch

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/config"
	"github.com/astrolab/xmatch/internal/diagnostics"
	"github.com/astrolab/xmatch/internal/errs"
	"github.com/astrolab/xmatch/internal/match"
	"github.com/astrolab/xmatch/internal/series"
	"github.com/astrolab/xmatch/internal/sky"
	"github.com/astrolab/xmatch/internal/units"
)

// ISeries provides a type-erased interface for catalog columns of any type.
type ISeries interface {
	Name() string
	Len() int
	Unit() string
	SetUnit(unit string)
	DataType() arrow.DataType
	IsNull(index int) bool
	HasNulls() bool
	String() string
	Array() arrow.Array
	Release()
}

// NewSeries creates a new typed column from values, with no missing rows.
func NewSeries[T any](name string, values []T, mem memory.Allocator) ISeries {
	return series.New(name, values, mem)
}

// NewMaskedSeries creates a new typed column from values and a validity
// mask; valid[i] == false marks row i as missing.
func NewMaskedSeries[T any](name string, values []T, valid []bool, mem memory.Allocator) ISeries {
	return series.NewWithMask(name, values, valid, mem)
}

// Catalog is the public type for a named table of equal-length columns.
// It wraps the internal catalog.Catalog to hide implementation details.
type Catalog struct {
	cat *catalog.Catalog
}

// NewCatalog creates a new Catalog from columns.
func NewCatalog(name string, columns ...ISeries) *Catalog {
	internal := make([]catalog.ISeries, len(columns))
	for i, c := range columns {
		internal[i] = c
	}
	return &Catalog{cat: catalog.New(name, internal...)}
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.cat.Name() }

// Len returns the number of rows.
func (c *Catalog) Len() int { return c.cat.Len() }

// Width returns the number of columns.
func (c *Catalog) Width() int { return c.cat.Width() }

// Columns returns the column names in order.
func (c *Catalog) Columns() []string { return c.cat.Columns() }

// HasColumn returns true if the catalog has the given column.
func (c *Catalog) HasColumn(name string) bool { return c.cat.HasColumn(name) }

// Column returns the column with the given name.
func (c *Catalog) Column(name string) (ISeries, bool) {
	s, ok := c.cat.Column(name)
	if !ok {
		return nil, false
	}
	ps, ok := s.(ISeries)
	return ps, ok
}

// Masked reports whether any column of the catalog has missing rows.
func (c *Catalog) Masked() bool { return c.cat.Masked() }

// String returns a string representation of the catalog.
func (c *Catalog) String() string { return c.cat.String() }

// Release frees the Arrow memory held by all columns.
func (c *Catalog) Release() { c.cat.Release() }

// Unit names an angular unit for coordinate values.
type Unit string

// Angular units accepted for coordinate columns.
const (
	Degree    Unit = "deg"
	Radian    Unit = "rad"
	HourAngle Unit = "hourangle"
	Arcmin    Unit = "arcmin"
	Arcsec    Unit = "arcsec"
)

// SkyCoords is a precomputed set of sky positions, one per catalog row.
type SkyCoords struct {
	c *sky.Coords
}

// NewSkyCoords builds sky positions from RA and Dec values in the given
// unit. Fails when the unit is not angular or the slices differ in length.
func NewSkyCoords(ra, dec []float64, unit Unit) (*SkyCoords, error) {
	u := units.Parse(string(unit))
	c, err := sky.New(ra, dec, u, u)
	if err != nil {
		return nil, &errs.MatchError{
			Kind:    errs.KindUnit,
			Op:      "NewSkyCoords",
			Message: err.Error(),
			Cause:   err,
		}
	}
	return &SkyCoords{c: c}, nil
}

// Len returns the number of positions.
func (s *SkyCoords) Len() int { return s.c.Len() }

// Result holds the per-row match outcome for the base catalog. Idx and
// Matched have the base catalog's length; Idx[i] is a valid row index
// into the matched catalog only where Matched[i] is true, and holds the
// sentinel Sentinel(len) everywhere else.
type Result struct {
	Idx     []int
	Matched []bool
}

// Sentinel returns the no-match index value -(n+1) for a base catalog of
// length n.
func Sentinel(n int) int { return match.Sentinel(n) }

// ValueSpec designates the matching key for one catalog.
type ValueSpec struct {
	spec match.ValueSpec
}

// Column designates a catalog column as the matching key.
func Column(name string) ValueSpec {
	return ValueSpec{spec: match.Column(name)}
}

// Values supplies precomputed key values; the series must have the
// catalog's length and may carry its own missing mask.
func Values(s ISeries) ValueSpec {
	return ValueSpec{spec: match.Values(s)}
}

// CoordSpec designates the sky position source for one catalog. The zero
// value selects automatic RA/Dec column detection.
type CoordSpec struct {
	spec match.CoordSpec
}

// AutoCoords selects RA/Dec columns automatically by trying candidate
// names in order (RA among "ra", "RA"; Dec among "DEC", "Dec", "dec").
func AutoCoords() CoordSpec {
	return CoordSpec{spec: match.AutoCoords()}
}

// CoordColumns names the RA and Dec columns explicitly as "RA_COL-DEC_COL".
func CoordColumns(pair string) CoordSpec {
	return CoordSpec{spec: match.CoordColumns(pair)}
}

// Coords supplies precomputed sky positions; unit configuration is
// ignored for catalogs resolved this way.
func Coords(c *SkyCoords) CoordSpec {
	return CoordSpec{spec: match.Coords(c.c)}
}

// ExactMatcher is the public type for exact key matching.
type ExactMatcher struct {
	m *match.ExactMatcher
}

// NewExactMatcher creates a matcher keyed on value (for the base catalog)
// and value1 (for the matched catalog).
//
// Duplicate keys in the matched catalog resolve deterministically to the
// first occurrence among its non-missing rows.
func NewExactMatcher(value, value1 ValueSpec) *ExactMatcher {
	return &ExactMatcher{m: match.NewExactMatcher(value.spec, value1.spec)}
}

// Prepare resolves the key specifications against the catalog pair.
func (m *ExactMatcher) Prepare(data, data1 *Catalog) error {
	return m.m.Prepare(data.cat, data1.cat)
}

// Match returns the per-row match outcome; requires a prior Prepare.
func (m *ExactMatcher) Match() (Result, error) {
	res, err := m.m.Match()
	if err != nil {
		return Result{}, err
	}
	return Result{Idx: res.Idx, Matched: res.Matched}, nil
}

// String returns a short description of the matcher.
func (m *ExactMatcher) String() string { return m.m.String() }

// SkyConfig holds the sky matcher configuration.
type SkyConfig struct {
	// ThresholdArcsec is the acceptance threshold; a nearest neighbor
	// qualifies iff its separation is strictly below it. Default 1.
	ThresholdArcsec float64
	// Coord and Coord1 designate the position sources of the base and
	// matched catalogs. Zero values mean automatic detection.
	Coord  CoordSpec
	Coord1 CoordSpec
	// Unit and Unit1 apply to coordinate columns without unit metadata;
	// column metadata takes precedence. Default degrees.
	Unit  Unit
	Unit1 Unit
	// RACandidates and DecCandidates override the column names tried
	// during automatic detection.
	RACandidates  []string
	DecCandidates []string
}

// SkyOption configures a SkyMatcher.
type SkyOption func(*SkyConfig)

// WithThreshold sets the acceptance threshold in arcseconds.
func WithThreshold(arcsec float64) SkyOption {
	return func(c *SkyConfig) { c.ThresholdArcsec = arcsec }
}

// WithCoord sets the position source for the base catalog.
func WithCoord(spec CoordSpec) SkyOption {
	return func(c *SkyConfig) { c.Coord = spec }
}

// WithCoord1 sets the position source for the matched catalog.
func WithCoord1(spec CoordSpec) SkyOption {
	return func(c *SkyConfig) { c.Coord1 = spec }
}

// WithUnit sets the fallback unit for the base catalog's coordinates.
func WithUnit(u Unit) SkyOption {
	return func(c *SkyConfig) { c.Unit = u }
}

// WithUnit1 sets the fallback unit for the matched catalog's coordinates.
func WithUnit1(u Unit) SkyOption {
	return func(c *SkyConfig) { c.Unit1 = u }
}

// FromConfigFile returns an option applying defaults from a YAML
// configuration file, with XMATCH_* environment overrides.
func FromConfigFile(path string) (SkyOption, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg = config.FromEnv(cfg)
	return func(c *SkyConfig) {
		c.ThresholdArcsec = cfg.ThresholdArcsec
		c.Unit = Unit(cfg.AngularUnit)
		c.Unit1 = Unit(cfg.AngularUnit)
		c.RACandidates = cfg.RACandidates
		c.DecCandidates = cfg.DecCandidates
	}, nil
}

// SkyMatcher is the public type for nearest-neighbor sky matching.
type SkyMatcher struct {
	m *match.SkyMatcher
}

// NewSkyMatcher creates a sky matcher. Without options it uses a 1 arcsec
// threshold, automatic RA/Dec detection and degrees.
func NewSkyMatcher(opts ...SkyOption) *SkyMatcher {
	var cfg SkyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &SkyMatcher{m: match.NewSkyMatcher(func(o *match.SkyOptions) {
		if cfg.ThresholdArcsec != 0 {
			o.ThresholdArcsec = cfg.ThresholdArcsec
		}
		if cfg.Coord.spec != nil {
			o.Coord = cfg.Coord.spec
		}
		if cfg.Coord1.spec != nil {
			o.Coord1 = cfg.Coord1.spec
		}
		if cfg.Unit != "" {
			o.Unit = units.Parse(string(cfg.Unit))
		}
		if cfg.Unit1 != "" {
			o.Unit1 = units.Parse(string(cfg.Unit1))
		}
		if len(cfg.RACandidates) > 0 {
			o.RACandidates = cfg.RACandidates
		}
		if len(cfg.DecCandidates) > 0 {
			o.DecCandidates = cfg.DecCandidates
		}
	})}
}

// Prepare resolves both coordinate sets against the catalog pair and
// builds the nearest-neighbor index over the matched catalog.
func (m *SkyMatcher) Prepare(data, data1 *Catalog) error {
	return m.m.Prepare(data.cat, data1.cat)
}

// Match returns the per-row match outcome; requires a prior Prepare.
func (m *SkyMatcher) Match() (Result, error) {
	res, err := m.m.Match()
	if err != nil {
		return Result{}, err
	}
	return Result{Idx: res.Idx, Matched: res.Matched}, nil
}

// Explore prepares the matcher for the catalog pair and returns the
// nearest-neighbor separation in arcseconds for every non-missing base
// row, without applying the threshold. Use SeparationHistogram to render
// the distribution for threshold calibration.
func (m *SkyMatcher) Explore(data, data1 *Catalog) ([]float64, error) {
	return m.m.Explore(data.cat, data1.cat)
}

// String returns a short description of the matcher.
func (m *SkyMatcher) String() string { return m.m.String() }

// SeparationHistogram renders the distribution of nearest-neighbor
// separations as a text histogram of lg(separation/arcsec), with a marker
// at the given threshold.
func SeparationHistogram(sepArcsec []float64, thresholdArcsec float64) string {
	return diagnostics.NewSeparationHistogram(sepArcsec, thresholdArcsec).String()
}

// Error kind predicates. All matcher failures are *errs.MatchError values
// classified by kind; these helpers test a kind through wrapped errors.

// IsLookupError reports whether err is a missing column/key failure.
func IsLookupError(err error) bool { return errs.IsKind(err, errs.KindLookup) }

// IsValueError reports whether err is a length-mismatch failure.
func IsValueError(err error) bool { return errs.IsKind(err, errs.KindValue) }

// IsUnitError reports whether err is a non-angular-unit failure.
func IsUnitError(err error) bool { return errs.IsKind(err, errs.KindUnit) }

// IsTypeError reports whether err is an unsupported-specification failure.
func IsTypeError(err error) bool { return errs.IsKind(err, errs.KindType) }

// IsStateError reports whether err is a match-before-prepare failure.
func IsStateError(err error) bool { return errs.IsKind(err, errs.KindState) }
