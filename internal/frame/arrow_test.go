package frame

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfterhaar/duckframe/internal/value"
)

func TestRecordRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()

	f, err := CreateBlank(
		[]string{"flag", "n", "score", "label", "day"},
		[]value.Kind{value.KindBool, value.KindInt64, value.KindFloat64, value.KindString, value.KindDate},
	)
	require.NoError(t, err)
	day := value.NewDate(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.AddRow([]value.Value{
		value.NewBool(true), value.NewInt64(10), value.NewFloat64(0.5), value.NewString("a"), day,
	}))
	require.NoError(t, f.AddRow([]value.Value{
		value.Null(), value.Null(), value.Null(), value.Null(), value.Null(),
	}))

	rec, err := f.ToRecord(mem)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(5), rec.NumCols())

	back, err := FromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, f.RowCount(), back.RowCount())
	require.Equal(t, f.ColumnNames(), back.ColumnNames())

	for r := 0; r < f.RowCount(); r++ {
		for c := 0; c < f.ColumnCount(); c++ {
			want, err := f.Value(r, c)
			require.NoError(t, err)
			got, err := back.Value(r, c)
			require.NoError(t, err)
			assert.True(t, value.Equal(want, got), "cell (%d,%d): %v vs %v", r, c, want, got)
		}
	}
}

func TestToRecordTextFallbackKinds(t *testing.T) {
	mem := memory.NewGoAllocator()

	f, err := CreateBlank([]string{"iv"}, []value.Kind{value.KindInterval})
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewInterval(90 * time.Minute)}))

	rec, err := f.ToRecord(mem)
	require.NoError(t, err)
	defer rec.Release()

	col, ok := rec.Column(0).(*array.String)
	require.True(t, ok, "interval columns travel as text")
	assert.Equal(t, "1h30m0s", col.Value(0))
}

func TestFromRecordTimestampUnits(t *testing.T) {
	mem := memory.NewGoAllocator()
	instant := time.Date(2023, time.May, 4, 12, 30, 0, 0, time.UTC)

	b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Millisecond})
	b.Append(arrow.Timestamp(instant.UnixMilli()))
	arr := b.NewArray()
	b.Release()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Millisecond}, Nullable: true},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 1)
	defer rec.Release()

	f, err := FromRecord(rec)
	require.NoError(t, err)

	v, err := f.Value(0, 0)
	require.NoError(t, err)
	require.Equal(t, value.KindTimestamp, v.Kind())
	assert.Equal(t, instant, v.Timestamp())
}

func TestFromRecordBlob(t *testing.T) {
	mem := memory.NewGoAllocator()

	b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	b.Append([]byte{0xca, 0xfe})
	b.AppendNull()
	arr := b.NewArray()
	b.Release()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "payload", Type: arrow.BinaryTypes.Binary, Nullable: true},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 2)
	defer rec.Release()

	f, err := FromRecord(rec)
	require.NoError(t, err)

	col, err := f.ColumnByName("payload")
	require.NoError(t, err)
	assert.Equal(t, value.KindBlob, col.Kind())
	assert.Equal(t, 1, col.NullCount())

	v, err := f.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, v.Blob())
}
