package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rudolfterhaar/duckframe/internal/frame"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// CorrPearson computes the Pearson correlation matrix over the frame's
// numeric columns. Each coefficient uses only the rows where both
// columns are non-null (pairwise-complete observations). The result is
// a square Frame: a leading "column" label column, then one Float64
// column per numeric column. The diagonal is 1.0; undefined cells
// (fewer than two paired observations, or zero variance) are NaN.
func CorrPearson(f *frame.Frame) (*frame.Frame, error) {
	return corrMatrix(f, pearson)
}

// CorrSpearman computes the Spearman rank correlation matrix: the
// Pearson correlation of the two columns' rank sequences, with average
// ranks for ties, under the same pairwise-complete policy and matrix
// layout as CorrPearson.
func CorrSpearman(f *frame.Frame) (*frame.Frame, error) {
	return corrMatrix(f, spearman)
}

func corrMatrix(f *frame.Frame, coeff func(x, y []float64) float64) (*frame.Frame, error) {
	var cols []*frame.Column
	for i := 0; i < f.ColumnCount(); i++ {
		col, _ := f.ColumnAt(i)
		if col.Kind().IsNumeric() {
			cols = append(cols, col)
		}
	}

	names := make([]string, 0, len(cols)+1)
	kinds := make([]value.Kind, 0, len(cols)+1)
	names = append(names, "column")
	kinds = append(kinds, value.KindString)
	for _, col := range cols {
		names = append(names, col.Name())
		kinds = append(kinds, value.KindFloat64)
	}
	out, err := frame.CreateBlank(names, kinds)
	if err != nil {
		return nil, err
	}

	n := len(cols)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		matrix[i][i] = diagonal(cols[i])
		for j := i + 1; j < n; j++ {
			x, y := pairwiseComplete(cols[i], cols[j])
			c := math.NaN()
			if len(x) >= 2 {
				c = coeff(x, y)
			}
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}

	for i := 0; i < n; i++ {
		row := make([]value.Value, n+1)
		row[0] = value.NewString(cols[i].Name())
		for j := 0; j < n; j++ {
			row[j+1] = value.NewFloat64(matrix[i][j])
		}
		if err := out.AddRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// diagonal is 1 when the column has at least two non-null observations,
// NaN otherwise.
func diagonal(col *frame.Column) float64 {
	if col.Len()-col.NullCount() >= 2 {
		return 1.0
	}
	return math.NaN()
}

// pairwiseComplete extracts the rows where both columns carry a value.
func pairwiseComplete(a, b *frame.Column) (x, y []float64) {
	n := a.Len()
	for i := 0; i < n; i++ {
		fa, oka := a.Value(i).AsFloat()
		fb, okb := b.Value(i).AsFloat()
		if oka && okb {
			x = append(x, fa)
			y = append(y, fb)
		}
	}
	return x, y
}

func pearson(x, y []float64) float64 {
	if stat.StdDev(x, nil) == 0 || stat.StdDev(y, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

func spearman(x, y []float64) float64 {
	return pearson(ranks(x), ranks(y))
}

// ranks assigns 1-based ranks with ties receiving the average of the
// ranks they span.
func ranks(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}
