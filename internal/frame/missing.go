package frame

import (
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// NullCount returns a single-row Frame with one Int64 column per source
// column, each cell holding the number of null values in that column.
func (f *Frame) NullCount() *Frame {
	out := New()
	counts := make([]value.Value, len(f.columns))
	for i, col := range f.columns {
		// Names are unique in the receiver, so AddColumn cannot fail.
		_ = out.AddColumn(col.name, value.KindInt64)
		counts[i] = value.NewInt64(int64(col.NullCount()))
	}
	if len(counts) > 0 {
		_ = out.AddRow(counts)
	}
	return out
}

// FillNA returns a new Frame with every null cell replaced by v coerced
// to the column's kind. Cells whose column kind the fill value cannot
// coerce into stay null.
func (f *Frame) FillNA(v value.Value) *Frame {
	out := f.Clone()
	for _, col := range out.columns {
		fill := value.Coerce(v, col.kind)
		if fill.IsNull() {
			continue
		}
		for i := range col.values {
			if col.values[i].IsNull() {
				col.values[i] = cloneValue(fill)
			}
		}
	}
	return out
}

// DropNA returns a new Frame containing only the rows without any null
// cell, preserving row order.
func (f *Frame) DropNA() *Frame {
	out := New()
	for _, col := range f.columns {
		_ = out.AddColumn(col.name, col.kind)
	}
	rows := f.RowCount()
	for r := 0; r < rows; r++ {
		complete := true
		for _, col := range f.columns {
			if col.values[r].IsNull() {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		row := make([]value.Value, len(f.columns))
		for i, col := range f.columns {
			row[i] = cloneValue(col.values[r])
		}
		_ = out.AddRow(row)
	}
	return out
}
