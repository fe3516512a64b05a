// Package frame provides the columnar Frame type and the operations that
// read and transform it: construction and mutation, projection, missing
// data handling, set algebra, Arrow interchange and text rendering.
//
// A Frame owns its data outright. Every derived frame is an independent
// copy; mutating methods (AddColumn, AddRow, SetValue, Clear) change only
// their receiver. A single Frame must not be mutated concurrently.
package frame

import (
	"fmt"
	"strings"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// Column is a named, typed, ordered sequence of values. Every value in a
// column carries either the column's kind or the null tag.
type Column struct {
	name   string
	kind   value.Kind
	values []value.Value
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the declared value kind.
func (c *Column) Kind() value.Kind { return c.kind }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the value at index. The caller is responsible for bounds;
// Frame.Value is the checked accessor.
func (c *Column) Value(index int) value.Value { return c.values[index] }

// IsNull reports whether the value at index carries the null tag.
func (c *Column) IsNull(index int) bool { return c.values[index].IsNull() }

// NullCount returns the number of null values in the column.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Frame represents a table of data with typed columns of equal length.
type Frame struct {
	columns []*Column
	byName  map[string]int
}

// New creates an empty Frame with no columns and no rows.
func New() *Frame {
	return &Frame{byName: make(map[string]int)}
}

// CreateBlank creates a Frame with the given column names and kinds and
// zero rows. Names and kinds must pair up one to one and names must be
// unique.
func CreateBlank(names []string, kinds []value.Kind) (*Frame, error) {
	if len(names) != len(kinds) {
		return nil, errors.NewArityMismatchError("CreateBlank", len(kinds), len(names))
	}
	f := New()
	for i, name := range names {
		if err := f.AddColumn(name, kinds[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// RowCount returns the number of rows (0 for a frame without columns).
func (f *Frame) RowCount() int {
	if len(f.columns) == 0 {
		return 0
	}
	return len(f.columns[0].values)
}

// ColumnCount returns the number of columns.
func (f *Frame) ColumnCount() int { return len(f.columns) }

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.name
	}
	return names
}

// FindColumnIndex returns the position of the named column, or -1 when no
// such column exists. Matching is case-sensitive.
func (f *Frame) FindColumnIndex(name string) int {
	if idx, ok := f.byName[name]; ok {
		return idx
	}
	return -1
}

// HasColumn checks if a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// ColumnAt returns the column at index.
func (f *Frame) ColumnAt(index int) (*Column, error) {
	if index < 0 || index >= len(f.columns) {
		return nil, errors.NewOutOfRangeError("ColumnAt", index, len(f.columns))
	}
	return f.columns[index], nil
}

// ColumnByName returns the named column.
func (f *Frame) ColumnByName(name string) (*Column, error) {
	idx, ok := f.byName[name]
	if !ok {
		return nil, errors.NewNotFoundError("ColumnByName", name)
	}
	return f.columns[idx], nil
}

// Value returns the cell at (row, column), bounds-checked.
func (f *Frame) Value(row, column int) (value.Value, error) {
	if column < 0 || column >= len(f.columns) {
		return value.Null(), errors.NewOutOfRangeError("Value", column, len(f.columns))
	}
	if row < 0 || row >= f.RowCount() {
		return value.Null(), errors.NewOutOfRangeError("Value", row, f.RowCount())
	}
	return f.columns[column].values[row], nil
}

// AddColumn appends a column with the given name and kind, filled with
// null for every existing row.
func (f *Frame) AddColumn(name string, kind value.Kind) error {
	if _, ok := f.byName[name]; ok {
		return errors.NewDuplicateNameError("AddColumn", name)
	}
	rows := f.RowCount()
	col := &Column{name: name, kind: kind, values: make([]value.Value, rows)}
	for i := range col.values {
		col.values[i] = value.Null()
	}
	f.byName[name] = len(f.columns)
	f.columns = append(f.columns, col)
	return nil
}

// AddRow appends one row. The value count must equal the column count;
// each value is coerced to its column's kind, degrading to null when the
// coercion fails. The frame is unchanged on error.
func (f *Frame) AddRow(values []value.Value) error {
	if len(values) != len(f.columns) {
		return errors.NewArityMismatchError("AddRow", len(values), len(f.columns))
	}
	for i, col := range f.columns {
		col.values = append(col.values, value.Coerce(values[i], col.kind))
	}
	return nil
}

// SetValue replaces the cell at (row, column) with v coerced to the
// column's kind, degrading to null when the coercion fails.
func (f *Frame) SetValue(row, column int, v value.Value) error {
	if column < 0 || column >= len(f.columns) {
		return errors.NewOutOfRangeError("SetValue", column, len(f.columns))
	}
	if row < 0 || row >= f.RowCount() {
		return errors.NewOutOfRangeError("SetValue", row, f.RowCount())
	}
	col := f.columns[column]
	col.values[row] = value.Coerce(v, col.kind)
	return nil
}

// Clear removes all rows while retaining the column schema.
func (f *Frame) Clear() {
	for _, col := range f.columns {
		col.values = col.values[:0]
	}
}

// Select returns a new Frame containing only the requested columns, in
// the requested order. Unknown names fail with a not-found error; a
// name requested twice fails with a duplicate-name error, since column
// names must stay unique.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := New()
	for _, name := range names {
		idx, ok := f.byName[name]
		if !ok {
			return nil, errors.NewNotFoundError("Select", name)
		}
		if out.HasColumn(name) {
			return nil, errors.NewDuplicateNameError("Select", name)
		}
		out.appendColumnCopy(f.columns[idx], 0, f.RowCount())
	}
	return out, nil
}

// Drop returns a new Frame without the named columns. Unknown names are
// ignored.
func (f *Frame) Drop(names ...string) *Frame {
	dropSet := make(map[string]bool, len(names))
	for _, name := range names {
		dropSet[name] = true
	}
	out := New()
	for _, col := range f.columns {
		if !dropSet[col.name] {
			out.appendColumnCopy(col, 0, f.RowCount())
		}
	}
	return out
}

// Slice returns a new Frame containing rows from start (inclusive) to
// end (exclusive), clamped to the frame's bounds. The schema is always
// retained, even when the resulting range is empty.
func (f *Frame) Slice(start, end int) *Frame {
	rows := f.RowCount()
	if start < 0 {
		start = 0
	}
	if end > rows {
		end = rows
	}
	if start >= end {
		start, end = 0, 0
	}
	out := New()
	for _, col := range f.columns {
		out.appendColumnCopy(col, start, end)
	}
	return out
}

// Head returns a new Frame with the first min(n, RowCount) rows. A
// non-positive n yields zero rows with the schema retained.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	return f.Slice(0, n)
}

// Tail returns a new Frame with the last min(n, RowCount) rows. A
// non-positive n yields zero rows with the schema retained.
func (f *Frame) Tail(n int) *Frame {
	if n < 0 {
		n = 0
	}
	rows := f.RowCount()
	return f.Slice(rows-n, rows)
}

// Clone returns an independent deep copy of the frame.
func (f *Frame) Clone() *Frame {
	return f.Slice(0, f.RowCount())
}

// Row returns a copy of the values across all columns at the given row.
func (f *Frame) Row(row int) ([]value.Value, error) {
	if row < 0 || row >= f.RowCount() {
		return nil, errors.NewOutOfRangeError("Row", row, f.RowCount())
	}
	out := make([]value.Value, len(f.columns))
	for i, col := range f.columns {
		out[i] = col.values[row]
	}
	return out, nil
}

// String returns a one-line-per-column summary of the frame.
func (f *Frame) String() string {
	if len(f.columns) == 0 {
		return "Frame[empty]"
	}
	parts := []string{fmt.Sprintf("Frame[%dx%d]", f.RowCount(), f.ColumnCount())}
	for _, col := range f.columns {
		parts = append(parts, fmt.Sprintf("  %s: %s", col.name, col.kind))
	}
	return strings.Join(parts, "\n")
}

// appendColumnCopy appends an independent copy of rows [start, end) of
// col. Blob payloads are copied so no byte slice is shared between
// frames.
func (f *Frame) appendColumnCopy(col *Column, start, end int) {
	values := make([]value.Value, 0, end-start)
	for i := start; i < end; i++ {
		values = append(values, cloneValue(col.values[i]))
	}
	f.byName[col.name] = len(f.columns)
	f.columns = append(f.columns, &Column{name: col.name, kind: col.kind, values: values})
}

func cloneValue(v value.Value) value.Value {
	if v.Kind() == value.KindBlob {
		return value.NewBlob(append([]byte(nil), v.Blob()...))
	}
	return v
}
