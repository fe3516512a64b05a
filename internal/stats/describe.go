// Package stats provides the statistics engine over frames: per-column
// describe summaries, Pearson and Spearman correlation matrices, and
// histogram binning.
//
// Undefined aggregates (an all-null numeric column, a zero-variance
// correlation, too few observations for a moment) are reported as NaN
// rather than zero, so downstream comparisons cannot silently succeed.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/rudolfterhaar/duckframe/internal/frame"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// NumericSummary holds the describe aggregates of one numeric column,
// computed over its non-null values.
type NumericSummary struct {
	Min      float64
	Max      float64
	Mean     float64
	SD       float64 // sample standard deviation (n-1), 0 when n <= 1
	P25      float64
	Median   float64
	P75      float64
	Skew     float64
	Kurtosis float64 // excess kurtosis
}

// ValueCount pairs a factor level with its frequency.
type ValueCount struct {
	Text  string
	Count int
}

// FactorSummary holds the describe aggregates of one categorical column.
type FactorSummary struct {
	NUnique   int
	TopCounts []ValueCount // descending frequency, ties in first-seen order
	Ordered   bool         // static property of the kind, never inferred
}

// ColumnSummary describes one column: completeness plus a numeric or
// factor section depending on the column kind. Columns that are neither
// numeric nor factor (dates, blobs, ...) carry completeness only.
type ColumnSummary struct {
	Name         string
	Kind         value.Kind
	Missing      int
	CompleteRate float64
	Numeric      *NumericSummary
	Factor       *FactorSummary
}

// Report is the result of Describe.
type Report struct {
	Rows    int
	Columns []ColumnSummary
}

// Describe computes a per-column summary of the frame: null counts and
// completeness for every column, order statistics and moments for the
// numeric columns, level frequencies for the factor columns.
func Describe(f *frame.Frame) *Report {
	rows := f.RowCount()
	report := &Report{Rows: rows}

	for i := 0; i < f.ColumnCount(); i++ {
		col, _ := f.ColumnAt(i)
		missing := col.NullCount()
		summary := ColumnSummary{
			Name:         col.Name(),
			Kind:         col.Kind(),
			Missing:      missing,
			CompleteRate: completeRate(rows, missing),
		}
		switch {
		case col.Kind().IsNumeric():
			summary.Numeric = numericSummary(col)
		case col.Kind().IsFactor():
			summary.Factor = factorSummary(col)
		}
		report.Columns = append(report.Columns, summary)
	}
	return report
}

func completeRate(rows, missing int) float64 {
	if rows == 0 {
		return math.NaN()
	}
	return float64(rows-missing) / float64(rows)
}

func numericSummary(col *frame.Column) *NumericSummary {
	xs := nonNullFloats(col)
	if len(xs) == 0 {
		nan := math.NaN()
		return &NumericSummary{
			Min: nan, Max: nan, Mean: nan, SD: nan,
			P25: nan, Median: nan, P75: nan, Skew: nan, Kurtosis: nan,
		}
	}
	sort.Float64s(xs)

	s := &NumericSummary{
		Min:      xs[0],
		Max:      xs[len(xs)-1],
		Mean:     stat.Mean(xs, nil),
		SD:       0,
		P25:      quantile(xs, 0.25),
		Median:   quantile(xs, 0.50),
		P75:      quantile(xs, 0.75),
		Skew:     stat.Skew(xs, nil),
		Kurtosis: stat.ExKurtosis(xs, nil),
	}
	if len(xs) > 1 {
		s.SD = stat.StdDev(xs, nil)
	}
	return s
}

// quantile interpolates linearly on the sorted sample at fraction p
// (the "type 7" method: h = (n-1)p, interpolate between the two
// surrounding order statistics).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func factorSummary(col *frame.Column) *FactorSummary {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		text := col.Value(i).String()
		if _, ok := counts[text]; !ok {
			firstSeen[text] = len(order)
			order = append(order, text)
		}
		counts[text]++
	}

	top := make([]ValueCount, 0, len(order))
	for _, text := range order {
		top = append(top, ValueCount{Text: text, Count: counts[text]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return firstSeen[top[i].Text] < firstSeen[top[j].Text]
	})

	return &FactorSummary{NUnique: len(order), TopCounts: top}
}

// nonNullFloats extracts the non-null values of a numeric column as
// float64.
func nonNullFloats(col *frame.Column) []float64 {
	xs := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if f, ok := col.Value(i).AsFloat(); ok {
			xs = append(xs, f)
		}
	}
	return xs
}

// Render lays the report out as text, one block per column.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rows: %d\n", r.Rows)
	for _, col := range r.Columns {
		fmt.Fprintf(&b, "\n%s (%s)\n", col.Name, col.Kind)
		fmt.Fprintf(&b, "  n_missing=%d complete_rate=%.4g\n", col.Missing, col.CompleteRate)
		if col.Numeric != nil {
			n := col.Numeric
			fmt.Fprintf(&b, "  min=%.6g p25=%.6g median=%.6g p75=%.6g max=%.6g\n",
				n.Min, n.P25, n.Median, n.P75, n.Max)
			fmt.Fprintf(&b, "  mean=%.6g sd=%.6g skew=%.6g kurt=%.6g\n",
				n.Mean, n.SD, n.Skew, n.Kurtosis)
		}
		if col.Factor != nil {
			fmt.Fprintf(&b, "  n_unique=%d ordered=%v\n", col.Factor.NUnique, col.Factor.Ordered)
			for i, vc := range col.Factor.TopCounts {
				if i == 5 {
					break
				}
				fmt.Fprintf(&b, "    %s: %d\n", vc.Text, vc.Count)
			}
		}
	}
	return b.String()
}
