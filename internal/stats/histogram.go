package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/frame"
)

// DefaultBins is the bin count used when the caller passes bins <= 0.
const DefaultBins = 10

// Histogram holds equal-width bin counts over a numeric column. Bins
// are half-open [lo, lo+width) except the last, which is closed so the
// maximum is counted. Edges has one more entry than Counts. A column
// without non-null values yields zero counts and NaN edges.
type Histogram struct {
	Column string
	Edges  []float64
	Counts []int
}

// PlotHistogram bins the non-null values of the named column into
// equal-width intervals over [min, max]. A zero range puts every value
// into a single occupied bin. NaN observations are excluded; infinite
// observations count toward the nearest boundary bin.
func PlotHistogram(f *frame.Frame, column string, bins int) (*Histogram, error) {
	col, err := f.ColumnByName(column)
	if err != nil {
		return nil, errors.NewNotFoundError("PlotHistogram", column)
	}
	if !col.Kind().IsNumeric() {
		return nil, errors.NewTypeError("PlotHistogram", column,
			"histogram requires a numeric column, have "+col.Kind().String())
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	xs := nonNullFloats(col)
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			xs[n] = x
			n++
		}
	}
	xs = xs[:n]
	h := &Histogram{
		Column: column,
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	if len(xs) == 0 {
		for i := range h.Edges {
			h.Edges[i] = math.NaN()
		}
		return h, nil
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + width*float64(i)
	}
	h.Edges[bins] = hi

	for _, x := range xs {
		h.Counts[binIndex(x, lo, width, bins)]++
	}
	return h, nil
}

// binIndex clamps every observation into [0, bins-1]. An infinite
// value, or an infinite range making the division indeterminate,
// resolves to a boundary bin instead of an out-of-range index.
func binIndex(x, lo, width float64, bins int) int {
	if math.IsInf(x, -1) {
		return 0
	}
	if math.IsInf(x, 1) {
		return bins - 1
	}
	if width <= 0 || math.IsNaN(width) {
		return 0
	}
	p := (x - lo) / width
	switch {
	case math.IsNaN(p) || p >= float64(bins):
		return bins - 1 // the closed last bin owns the maximum
	case p < 0:
		return 0
	default:
		return int(p)
	}
}

// Render draws the histogram as ASCII bars, one bin per line, scaled to
// a fixed maximum bar width.
func (h *Histogram) Render() string {
	const barWidth = 40

	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "histogram of %s\n", h.Column)
	for i, c := range h.Counts {
		bar := 0
		if maxCount > 0 {
			bar = c * barWidth / maxCount
		}
		fmt.Fprintf(&b, "[%10.4g, %10.4g) %6d %s\n",
			h.Edges[i], h.Edges[i+1], c, strings.Repeat("#", bar))
	}
	return b.String()
}
