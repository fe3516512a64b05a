package frame

import (
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// UnionMode selects how two frames' schemas are reconciled before their
// rows are concatenated.
type UnionMode int

const (
	// ModeStrict requires identical column names and kinds in the same
	// order; the result keeps the receiver's schema.
	ModeStrict UnionMode = iota
	// ModeCommon keeps only columns present in both frames, typed as in
	// the receiver.
	ModeCommon
	// ModeAll keeps the union of both frames' columns; cells absent from
	// a source are null, and name collisions with differing kinds are
	// resolved by type precedence.
	ModeAll
)

// String returns the canonical name of the mode.
func (m UnionMode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeCommon:
		return "common"
	case ModeAll:
		return "all"
	default:
		return "unknown"
	}
}

// UnionAll concatenates the rows of f and other under a schema
// reconciled per mode. Values are coerced into the reconciled column
// kinds, degrading to null where the coercion fails.
func (f *Frame) UnionAll(other *Frame, mode UnionMode) (*Frame, error) {
	names, kinds, err := f.reconcileSchema(other, mode)
	if err != nil {
		return nil, err
	}
	out, err := CreateBlank(names, kinds)
	if err != nil {
		return nil, err
	}
	appendProjected(out, f, names)
	appendProjected(out, other, names)
	return out, nil
}

// Union concatenates like UnionAll and removes duplicate rows, keeping
// the first occurrence.
func (f *Frame) Union(other *Frame, mode UnionMode) (*Frame, error) {
	all, err := f.UnionAll(other, mode)
	if err != nil {
		return nil, err
	}
	return all.Distinct(), nil
}

// Distinct returns a new Frame without duplicate rows, comparing every
// column. Null cells compare equal to each other, so rows identical up
// to shared nulls deduplicate. Retained rows keep first-occurrence
// order.
func (f *Frame) Distinct() *Frame {
	out := New()
	for _, col := range f.columns {
		_ = out.AddColumn(col.name, col.kind)
	}
	seen := newRowSet()
	rows := f.RowCount()
	for r := 0; r < rows; r++ {
		if !seen.add(f.rowKey(r)) {
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

// reconcileSchema computes the result schema for a union under the given
// mode.
func (f *Frame) reconcileSchema(other *Frame, mode UnionMode) ([]string, []value.Kind, error) {
	switch mode {
	case ModeStrict:
		if len(f.columns) != len(other.columns) {
			return nil, nil, errors.NewSchemaMismatchError("UnionAll",
				"frames have different column counts")
		}
		for i, col := range f.columns {
			o := other.columns[i]
			if col.name != o.name || col.kind != o.kind {
				return nil, nil, errors.NewSchemaMismatchError("UnionAll",
					"column "+strconv.Itoa(i)+" differs: "+col.name+" "+col.kind.String()+
						" vs "+o.name+" "+o.kind.String())
			}
		}
		names := make([]string, len(f.columns))
		kinds := make([]value.Kind, len(f.columns))
		for i, col := range f.columns {
			names[i], kinds[i] = col.name, col.kind
		}
		return names, kinds, nil

	case ModeCommon:
		var names []string
		var kinds []value.Kind
		for _, col := range f.columns {
			if other.HasColumn(col.name) {
				names = append(names, col.name)
				kinds = append(kinds, col.kind)
			}
		}
		if len(names) == 0 && (len(f.columns) > 0 || len(other.columns) > 0) {
			return nil, nil, errors.NewSchemaMismatchError("UnionAll",
				"frames share no column names")
		}
		return names, kinds, nil

	case ModeAll:
		var names []string
		var kinds []value.Kind
		for _, col := range f.columns {
			kind := col.kind
			if idx := other.FindColumnIndex(col.name); idx >= 0 {
				kind = reconcileKinds(col.kind, other.columns[idx].kind)
			}
			names = append(names, col.name)
			kinds = append(kinds, kind)
		}
		for _, col := range other.columns {
			if !f.HasColumn(col.name) {
				names = append(names, col.name)
				kinds = append(kinds, col.kind)
			}
		}
		return names, kinds, nil

	default:
		return nil, nil, errors.NewSchemaMismatchError("UnionAll", "unknown union mode")
	}
}

// numericRank orders the numeric kinds for type precedence; a wider kind
// has a higher rank.
var numericRank = map[value.Kind]int{
	value.KindInt8:    1,
	value.KindInt16:   2,
	value.KindInt32:   3,
	value.KindInt64:   4,
	value.KindDecimal: 5,
	value.KindFloat32: 6,
	value.KindFloat64: 7,
}

// reconcileKinds picks the column kind when the same name carries two
// different kinds in an all-mode union: the wider numeric kind wins, any
// mix involving String resolves to String, and otherwise-incompatible
// pairs fall back to String with per-value coercion.
func reconcileKinds(a, b value.Kind) value.Kind {
	if a == b {
		return a
	}
	ra, aNum := numericRank[a]
	rb, bNum := numericRank[b]
	if aNum && bNum {
		if ra >= rb {
			return a
		}
		return b
	}
	if a == value.KindDate && b == value.KindTimestamp || a == value.KindTimestamp && b == value.KindDate {
		return value.KindTimestamp
	}
	if a == value.KindTime && b == value.KindInterval || a == value.KindInterval && b == value.KindTime {
		return value.KindInterval
	}
	return value.KindString
}

// appendProjected appends every row of src onto dst, projecting src onto
// dst's column names. Columns absent from src contribute null cells.
func appendProjected(dst *Frame, src *Frame, names []string) {
	indexes := make([]int, len(names))
	for i, name := range names {
		indexes[i] = src.FindColumnIndex(name)
	}
	rows := src.RowCount()
	for r := 0; r < rows; r++ {
		row := make([]value.Value, len(names))
		for i, idx := range indexes {
			if idx < 0 {
				row[i] = value.Null()
			} else {
				row[i] = cloneValue(src.columns[idx].values[r])
			}
		}
		_ = dst.AddRow(row)
	}
}

// rowKey builds a canonical textual encoding of row r: each cell's tagged
// canonical form, length-prefixed so cell boundaries never collide.
func (f *Frame) rowKey(r int) string {
	var b strings.Builder
	for _, col := range f.columns {
		enc := col.values[r].EncodeKey()
		b.WriteString(strconv.Itoa(len(enc)))
		b.WriteByte(':')
		b.WriteString(enc)
	}
	return b.String()
}

// rowSet is a hash set of canonical row keys. Keys are bucketed by their
// xxhash digest with a full-key comparison on collision.
type rowSet struct {
	buckets map[uint64][]string
}

func newRowSet() *rowSet {
	return &rowSet{buckets: make(map[uint64][]string)}
}

// add inserts the key and reports whether it was absent before.
func (s *rowSet) add(key string) bool {
	h := xxhash.Sum64String(key)
	for _, existing := range s.buckets[h] {
		if existing == key {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], key)
	return true
}
