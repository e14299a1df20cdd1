package match

// Result holds the per-row outcome of matching the base catalog against
// the other catalog. Both slices have the length of the base catalog.
//
// Matched[i] is true iff a qualifying match was found for base row i, and
// only then is Idx[i] a valid row index into the other catalog. For all
// other rows Idx[i] holds the sentinel value Sentinel(n), which lies
// outside [0, n) for any catalog length, so it can never collide with a
// valid index.
type Result struct {
	Idx     []int
	Matched []bool
}

// Sentinel returns the no-match index value -(n+1) for a base catalog of
// length n.
func Sentinel(n int) int {
	return -(n + 1)
}

// newResult creates an all-unmatched result for a base catalog of length n.
func newResult(n int) Result {
	idx := make([]int, n)
	sentinel := Sentinel(n)
	for i := range idx {
		idx[i] = sentinel
	}
	return Result{
		Idx:     idx,
		Matched: make([]bool, n),
	}
}
