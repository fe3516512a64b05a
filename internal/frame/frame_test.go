package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// requireStructure asserts the core invariant: every column has length
// equal to the frame's row count.
func requireStructure(t *testing.T, f *Frame) {
	t.Helper()
	rows := f.RowCount()
	for i := 0; i < f.ColumnCount(); i++ {
		col, err := f.ColumnAt(i)
		require.NoError(t, err)
		require.Equal(t, rows, col.Len(), "column %s length", col.Name())
	}
}

func newPeopleFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := CreateBlank(
		[]string{"id", "name", "age"},
		[]value.Kind{value.KindInt64, value.KindString, value.KindInt32},
	)
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(1), value.NewString("alice"), value.NewInt32(30)}))
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(2), value.NewString("bob"), value.Null()}))
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(3), value.NewString("carol"), value.NewInt32(41)}))
	return f
}

func TestEmptyFrame(t *testing.T) {
	f := New()
	assert.Equal(t, 0, f.RowCount())
	assert.Equal(t, 0, f.ColumnCount())
	assert.Equal(t, "Frame[empty]", f.String())
	assert.Equal(t, -1, f.FindColumnIndex("anything"))
}

func TestCreateBlank(t *testing.T) {
	f, err := CreateBlank([]string{"a", "b"}, []value.Kind{value.KindInt64, value.KindString})
	require.NoError(t, err)
	assert.Equal(t, 2, f.ColumnCount())
	assert.Equal(t, 0, f.RowCount())
	assert.Equal(t, []string{"a", "b"}, f.ColumnNames())

	_, err = CreateBlank([]string{"a", "a"}, []value.Kind{value.KindInt64, value.KindInt64})
	assert.Equal(t, errors.KindDuplicateName, errors.KindOf(err))

	_, err = CreateBlank([]string{"a"}, nil)
	assert.Equal(t, errors.KindArityMismatch, errors.KindOf(err))
}

func TestAddColumnBackfillsNull(t *testing.T) {
	f := newPeopleFrame(t)
	require.NoError(t, f.AddColumn("dept", value.KindString))
	requireStructure(t, f)

	col, err := f.ColumnByName("dept")
	require.NoError(t, err)
	assert.Equal(t, 3, col.NullCount())

	err = f.AddColumn("id", value.KindInt64)
	assert.Equal(t, errors.KindDuplicateName, errors.KindOf(err))
}

func TestAddRow(t *testing.T) {
	f := newPeopleFrame(t)

	t.Run("arity is validated before any mutation", func(t *testing.T) {
		before := f.RowCount()
		err := f.AddRow([]value.Value{value.NewInt64(9)})
		assert.Equal(t, errors.KindArityMismatch, errors.KindOf(err))
		assert.Equal(t, before, f.RowCount())
		requireStructure(t, f)
	})

	t.Run("values are coerced to column kinds", func(t *testing.T) {
		// The age column is int32: text that parses is accepted, text
		// that does not degrades to null rather than failing the row.
		require.NoError(t, f.AddRow([]value.Value{
			value.NewInt32(4), value.NewString("dave"), value.NewString("28"),
		}))
		require.NoError(t, f.AddRow([]value.Value{
			value.NewInt64(5), value.NewString("eve"), value.NewString("not a number"),
		}))
		requireStructure(t, f)

		v, err := f.Value(3, 2)
		require.NoError(t, err)
		assert.Equal(t, value.KindInt32, v.Kind())
		assert.Equal(t, int64(28), v.Int())

		v, err = f.Value(4, 2)
		require.NoError(t, err)
		assert.True(t, v.IsNull())
	})
}

func TestSetValue(t *testing.T) {
	f := newPeopleFrame(t)

	require.NoError(t, f.SetValue(1, 2, value.NewInt32(35)))
	v, err := f.Value(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(35), v.Int())

	// Lossy coercion degrades to null in place.
	require.NoError(t, f.SetValue(1, 2, value.NewFloat64(2.5)))
	v, err = f.Value(1, 2)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	assert.Equal(t, errors.KindOutOfRange, errors.KindOf(f.SetValue(99, 0, value.Null())))
	assert.Equal(t, errors.KindOutOfRange, errors.KindOf(f.SetValue(0, 99, value.Null())))
}

func TestClearRetainsSchema(t *testing.T) {
	f := newPeopleFrame(t)
	f.Clear()
	assert.Equal(t, 0, f.RowCount())
	assert.Equal(t, 3, f.ColumnCount())
	requireStructure(t, f)
}

func TestSelect(t *testing.T) {
	f := newPeopleFrame(t)

	out, err := f.Select("age", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "id"}, out.ColumnNames())
	assert.Equal(t, 3, out.RowCount())

	// The selection is an independent copy.
	require.NoError(t, out.SetValue(0, 1, value.NewInt64(99)))
	orig, err := f.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), orig.Int())

	_, err = f.Select("age", "missing")
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestSelectRejectsRepeatedName(t *testing.T) {
	f := newPeopleFrame(t)

	// A repeated name would yield two columns called "age" and break
	// the unique-name invariant every other operation relies on.
	_, err := f.Select("age", "age")
	assert.Equal(t, errors.KindDuplicateName, errors.KindOf(err))

	_, err = f.Select("id", "name", "id")
	assert.Equal(t, errors.KindDuplicateName, errors.KindOf(err))
}

func TestDrop(t *testing.T) {
	f := newPeopleFrame(t)
	out := f.Drop("name", "unknown")
	assert.Equal(t, []string{"id", "age"}, out.ColumnNames())
	assert.Equal(t, 3, out.RowCount())
}

func TestHeadTail(t *testing.T) {
	f := newPeopleFrame(t)

	tests := []struct {
		name     string
		result   *Frame
		expected int
	}{
		{"head within range", f.Head(2), 2},
		{"head beyond range", f.Head(10), 3},
		{"head zero keeps schema", f.Head(0), 0},
		{"head negative keeps schema", f.Head(-1), 0},
		{"tail within range", f.Tail(1), 1},
		{"tail beyond range", f.Tail(10), 3},
		{"tail zero keeps schema", f.Tail(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.RowCount())
			assert.Equal(t, 3, tt.result.ColumnCount())
			requireStructure(t, tt.result)
		})
	}

	tail := f.Tail(1)
	v, err := tail.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int())
}

func TestValueBoundsChecking(t *testing.T) {
	f := newPeopleFrame(t)

	_, err := f.Value(0, 7)
	assert.Equal(t, errors.KindOutOfRange, errors.KindOf(err))
	_, err = f.Value(-1, 0)
	assert.Equal(t, errors.KindOutOfRange, errors.KindOf(err))
	_, err = f.ColumnAt(3)
	assert.Equal(t, errors.KindOutOfRange, errors.KindOf(err))
	_, err = f.ColumnByName("ghost")
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestCloneIsIndependent(t *testing.T) {
	f := newPeopleFrame(t)
	c := f.Clone()
	require.NoError(t, c.SetValue(0, 1, value.NewString("zora")))

	v, err := f.Value(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", v.Str())
}

func TestRenderAndInfo(t *testing.T) {
	f := newPeopleFrame(t)

	out := f.Render(2)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "... 1 more rows")
	assert.NotContains(t, out, "carol")

	full := f.Render(0)
	assert.Contains(t, full, "carol")
	assert.Contains(t, full, "<null>")

	info := f.Info()
	assert.Contains(t, info, "3 rows x 3 columns")
	assert.Contains(t, info, "nulls=1")
}
