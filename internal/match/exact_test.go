package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/errs"
	"github.com/astrolab/xmatch/internal/match"
	"github.com/astrolab/xmatch/internal/series"
	"github.com/astrolab/xmatch/internal/testutil"
)

func TestExactMatcher_Basic(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{1, 2, 3}, nil)
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{3, 1, 5}, nil)
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, []int{1, -4, 0}, res.Idx)
	assert.Equal(t, []bool{true, false, true}, res.Matched)
	testutil.AssertResultShape(t, res.Idx, res.Matched, 3, 3)
}

func TestExactMatcher_DuplicateKeysFirstOccurrenceWins(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{7, 8}, nil)
	defer data.Release()
	// Key 7 appears at rows 0 and 1 of data1; row 0 must win.
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{7, 7, 8}, nil)
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, res.Idx)
	assert.Equal(t, []bool{true, true}, res.Matched)
}

func TestExactMatcher_DuplicateTieBreakSkipsMaskedRows(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{7}, nil)
	defer data.Release()
	// The first occurrence of key 7 in data1 is masked, so the first
	// NON-MISSING occurrence (row 1) wins.
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id",
		[]int64{7, 7, 8}, []bool{false, true, true})
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, []int{1}, res.Idx)
	assert.Equal(t, []bool{true}, res.Matched)
}

func TestExactMatcher_MaskedBaseRowNeverMatches(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	// Row 1 of the base catalog is masked; its key value would match.
	data := testutil.KeyCatalog(mem.Allocator, "base", "id",
		[]int64{1, 2, 3}, []bool{true, false, true})
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{2, 3}, nil)
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.False(t, res.Matched[1])
	assert.Equal(t, match.Sentinel(3), res.Idx[1])
	assert.True(t, res.Matched[2])
	assert.Equal(t, 1, res.Idx[2])
}

func TestExactMatcher_StringKeys(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := catalog.New("base",
		series.New("name", []string{"M31", "M33", "NGC 253"}, mem.Allocator))
	defer data.Release()
	data1 := catalog.New("other",
		series.New("name", []string{"NGC 253", "M31"}, mem.Allocator))
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("name"), match.Column("name"))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, []int{1, -4, 0}, res.Idx)
	assert.Equal(t, []bool{true, false, true}, res.Matched)
}

func TestExactMatcher_RawValues(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{10, 20}, nil)
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{0, 0, 0}, nil)
	defer data1.Release()

	// Match on supplied values instead of data1's own column.
	keys := series.New("id", []int64{20, 99, 10}, mem.Allocator)
	defer keys.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Values(keys))
	require.NoError(t, m.Prepare(data, data1))

	res, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, []int{2, 0}, res.Idx)
	assert.Equal(t, []bool{true, true}, res.Matched)
}

func TestExactMatcher_RawValuesLengthMismatch(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{1, 2, 3}, nil)
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{1, 2}, nil)
	defer data1.Release()

	short := series.New("id", []int64{1}, mem.Allocator)
	defer short.Release()

	m := match.NewExactMatcher(match.Values(short), match.Column("id"))
	err := m.Prepare(data, data1)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValue))
	assert.Contains(t, err.Error(), "base")
}

func TestExactMatcher_ColumnNotFound(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{1}, nil)
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{1}, nil)
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("object_id"), match.Column("id"))
	err := m.Prepare(data, data1)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindLookup))
	assert.Contains(t, err.Error(), "object_id")
}

func TestExactMatcher_MatchBeforePrepare(t *testing.T) {
	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	_, err := m.Match()
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindState))
}

func TestExactMatcher_MatchIsPure(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	data := testutil.KeyCatalog(mem.Allocator, "base", "id", []int64{1, 2, 3}, nil)
	defer data.Release()
	data1 := testutil.KeyCatalog(mem.Allocator, "other", "id", []int64{3, 1, 5}, nil)
	defer data1.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(data, data1))

	first, err := m.Match()
	require.NoError(t, err)
	second, err := m.Match()
	require.NoError(t, err)

	assert.Equal(t, first.Idx, second.Idx)
	assert.Equal(t, first.Matched, second.Matched)
}

func TestExactMatcher_PrepareOverwritesPriorState(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	dataA := testutil.KeyCatalog(mem.Allocator, "baseA", "id", []int64{1}, nil)
	defer dataA.Release()
	data1A := testutil.KeyCatalog(mem.Allocator, "otherA", "id", []int64{1}, nil)
	defer data1A.Release()

	dataB := testutil.KeyCatalog(mem.Allocator, "baseB", "id", []int64{5, 6}, nil)
	defer dataB.Release()
	data1B := testutil.KeyCatalog(mem.Allocator, "otherB", "id", []int64{6}, nil)
	defer data1B.Release()

	m := match.NewExactMatcher(match.Column("id"), match.Column("id"))
	require.NoError(t, m.Prepare(dataA, data1A))
	require.NoError(t, m.Prepare(dataB, data1B))

	res, err := m.Match()
	require.NoError(t, err)

	// Result reflects the second catalog pair only.
	assert.Equal(t, []int{-3, 0}, res.Idx)
	assert.Equal(t, []bool{false, true}, res.Matched)
}

func TestExactMatcher_String(t *testing.T) {
	m := match.NewExactMatcher(match.Column("id"), match.Column("objid"))
	assert.Equal(t, "ExactMatcher('id', 'objid')", m.String())
}
