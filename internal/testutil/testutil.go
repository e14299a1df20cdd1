// Package testutil provides common testing utilities for the xmatch
// library: memory allocator setup, standard test catalogs and shared
// assertions on match results.
package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/series"
)

// TestMemoryContext provides a memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator with automatic cleanup for
// tests. Returns a TestMemoryContext that should be released with defer.
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// CatalogOption configures test catalog creation.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	name     string
	raName   string
	decName  string
	raUnit   string
	decUnit  string
	raValid  []bool
	decValid []bool
}

// WithName sets the catalog name.
func WithName(name string) CatalogOption {
	return func(cfg *catalogConfig) { cfg.name = name }
}

// WithColumnNames sets the RA and Dec column names.
func WithColumnNames(ra, dec string) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.raName = ra
		cfg.decName = dec
	}
}

// WithColumnUnits sets unit metadata on the RA and Dec columns.
func WithColumnUnits(ra, dec string) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.raUnit = ra
		cfg.decUnit = dec
	}
}

// WithValidity sets validity masks on the RA and Dec columns.
func WithValidity(raValid, decValid []bool) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.raValid = raValid
		cfg.decValid = decValid
	}
}

// SkyCatalog creates a test catalog with RA/Dec columns in degrees.
// Defaults: name "cat", columns "ra" and "dec", no unit metadata, no
// missing rows.
func SkyCatalog(mem memory.Allocator, ra, dec []float64, opts ...CatalogOption) *catalog.Catalog {
	cfg := &catalogConfig{
		name:    "cat",
		raName:  "ra",
		decName: "dec",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	raCol := series.NewWithMask(cfg.raName, ra, cfg.raValid, mem)
	decCol := series.NewWithMask(cfg.decName, dec, cfg.decValid, mem)
	if cfg.raUnit != "" {
		raCol.SetUnit(cfg.raUnit)
	}
	if cfg.decUnit != "" {
		decCol.SetUnit(cfg.decUnit)
	}

	return catalog.New(cfg.name, raCol, decCol)
}

// KeyCatalog creates a test catalog with a single int64 key column.
func KeyCatalog(mem memory.Allocator, name, column string, keys []int64, valid []bool) *catalog.Catalog {
	return catalog.New(name, series.NewWithMask(column, keys, valid, mem))
}

// AssertResultShape asserts the base-length and sentinel invariants of a
// match result: len(idx) == len(matched) == n, unmatched rows hold the
// sentinel -(n+1), matched rows hold a valid index into [0, otherLen).
func AssertResultShape(t *testing.T, idx []int, matched []bool, n, otherLen int) {
	t.Helper()

	assert.Len(t, idx, n)
	assert.Len(t, matched, n)

	sentinel := -(n + 1)
	for i := range idx {
		if matched[i] {
			assert.GreaterOrEqual(t, idx[i], 0, "row %d", i)
			assert.Less(t, idx[i], otherLen, "row %d", i)
		} else {
			assert.Equal(t, sentinel, idx[i], "row %d", i)
		}
	}
}
