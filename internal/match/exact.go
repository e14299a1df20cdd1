package match

import (
	"fmt"

	"github.com/astrolab/xmatch/internal/catalog"
	"github.com/astrolab/xmatch/internal/errs"
)

// ExactMatcher matches rows of a matched catalog (data1) to rows of a base
// catalog (data) by exact equality of a designated key.
//
// When data1 contains duplicate key values, a base row matching that key is
// paired with the FIRST occurrence in data1's non-missing subset, i.e. the
// duplicate with the lowest compact index.
type ExactMatcher struct {
	value  ValueSpec
	value1 ValueSpec

	// Prepared state is a single slot: preparing again with a different
	// catalog pair overwrites it. One instance serves one match session
	// at a time.
	prepared *exactPrepared
}

type exactPrepared struct {
	base  *resolvedValues
	other *resolvedValues
	index *keyIndex
}

// NewExactMatcher creates a matcher keyed on value (resolved against the
// base catalog) and value1 (resolved against the matched catalog).
func NewExactMatcher(value, value1 ValueSpec) *ExactMatcher {
	return &ExactMatcher{
		value:  value,
		value1: value1,
	}
}

// Prepare resolves the key specifications against the catalog pair:
// column lookups, missing masks and compact index maps for both sides,
// and the key index over data1's non-missing subset.
func (m *ExactMatcher) Prepare(data, data1 *catalog.Catalog) error {
	const op = "Prepare"

	base, err := resolveValues(op, m.value, data)
	if err != nil {
		return err
	}
	other, err := resolveValues(op, m.value1, data1)
	if err != nil {
		return err
	}

	index := newKeyIndex(len(other.keys))
	for pos, key := range other.keys {
		index.Put(key, pos)
	}

	m.prepared = &exactPrepared{
		base:  base,
		other: other,
		index: index,
	}
	return nil
}

// Match pairs each non-missing base row with the first data1 row holding
// an equal key. It is a pure function of the prepared state and may be
// called repeatedly.
func (m *ExactMatcher) Match() (Result, error) {
	if m.prepared == nil {
		return Result{}, errs.NewNotPrepared("Match")
	}

	p := m.prepared
	res := newResult(len(p.base.missing))

	for ci, row := range p.base.compact {
		if pos, ok := p.index.Get(p.base.keys[ci]); ok {
			res.Matched[row] = true
			res.Idx[row] = p.other.compact[pos]
		}
	}
	return res, nil
}

// String returns a short description of the matcher.
func (m *ExactMatcher) String() string {
	return fmt.Sprintf("ExactMatcher(%s, %s)", specName(m.value), specName(m.value1))
}

func specName(spec ValueSpec) string {
	switch s := spec.(type) {
	case columnSpec:
		return fmt.Sprintf("'%s'", s.name)
	case valuesSpec:
		if s.series != nil {
			return fmt.Sprintf("'%s'", s.series.Name())
		}
	}
	return "<values>"
}
