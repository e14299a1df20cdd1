// Package diagnostics provides a text rendering of the nearest-neighbor
// separation distribution, for calibrating the sky-match threshold.
package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	maxBins      = 200
	rowsPerBin   = 20 // target number of samples per bin
	maxBarWidth  = 50
	defaultTitle = "min. separation distribution"
)

// Histogram bins the base-10 logarithm of nearest-neighbor separations.
type Histogram struct {
	counts    []int
	lo, hi    float64 // range of log10(separation/arcsec)
	threshold float64 // arcsec
	title     string
	skipped   int // non-positive separations, not representable in log space
}

// NewSeparationHistogram bins the given separations (arcsec). The bin
// count follows the sample size, capped at 200 bins, mirroring hist(bins=
// min(200, n/20)).
func NewSeparationHistogram(sepArcsec []float64, thresholdArcsec float64) *Histogram {
	h := &Histogram{
		threshold: thresholdArcsec,
		title:     defaultTitle,
	}

	logs := make([]float64, 0, len(sepArcsec))
	for _, s := range sepArcsec {
		if s > 0 {
			logs = append(logs, math.Log10(s))
		} else {
			h.skipped++
		}
	}
	if len(logs) == 0 {
		return h
	}

	bins := clampInt(len(logs)/rowsPerBin, 1, maxBins)
	h.lo, h.hi = minMax(logs)
	h.counts = make([]int, bins)

	if h.hi == h.lo {
		h.counts[0] = len(logs)
		return h
	}

	width := (h.hi - h.lo) / float64(bins)
	for _, v := range logs {
		bin := int((v - h.lo) / width)
		if bin >= bins {
			bin = bins - 1
		}
		h.counts[bin]++
	}
	return h
}

// WithTitle sets the histogram title used by String.
func (h *Histogram) WithTitle(title string) *Histogram {
	h.title = title
	return h
}

// Bins returns the bin counts.
func (h *Histogram) Bins() []int {
	return append([]int(nil), h.counts...)
}

// String renders the histogram as rows of lg(separation) ranges and
// count bars, with a marker at the threshold.
func (h *Histogram) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (threshold=%g\")\n", h.title, h.threshold)

	if len(h.counts) == 0 {
		b.WriteString("  (no separations to plot)\n")
		return b.String()
	}

	peak := 0
	for _, c := range h.counts {
		if c > peak {
			peak = c
		}
	}

	logThres := math.Log10(h.threshold)
	width := (h.hi - h.lo) / float64(len(h.counts))
	markerDrawn := false

	for i, c := range h.counts {
		binLo := h.lo + float64(i)*width
		if !markerDrawn && logThres < binLo {
			fmt.Fprintf(&b, "  %8s | ---- threshold ----\n", "")
			markerDrawn = true
		}
		bar := strings.Repeat("#", scaleBar(c, peak))
		fmt.Fprintf(&b, "  %8.3f | %s %d\n", binLo, bar, c)
	}
	if !markerDrawn {
		fmt.Fprintf(&b, "  %8s | ---- threshold ----\n", "")
	}
	if h.skipped > 0 {
		fmt.Fprintf(&b, "  (%d zero separations omitted)\n", h.skipped)
	}
	return b.String()
}

func scaleBar(count, peak int) int {
	if peak == 0 {
		return 0
	}
	n := count * maxBarWidth / peak
	if n == 0 && count > 0 {
		n = 1
	}
	return n
}

// minMax returns the smallest and largest value of a non-empty slice.
func minMax[T constraints.Ordered](values []T) (lo, hi T) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
