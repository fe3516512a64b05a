package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/frame"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

func readString(t *testing.T, csv string, options CSVOptions) *frame.Frame {
	t.Helper()
	f, err := NewCSVReader(strings.NewReader(csv), options).Read()
	require.NoError(t, err)
	return f
}

func writeString(t *testing.T, f *frame.Frame, options CSVOptions) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, NewCSVWriter(&b, options).Write(f))
	return b.String()
}

func TestReadBasic(t *testing.T) {
	f := readString(t, "id,name\r\n1,alice\r\n2,bob\r\n", DefaultCSVOptions())

	assert.Equal(t, []string{"id", "name"}, f.ColumnNames())
	assert.Equal(t, 2, f.RowCount())

	id, err := f.ColumnByName("id")
	require.NoError(t, err)
	assert.Equal(t, value.KindInt8, id.Kind(), "small integers infer the narrowest width")

	name, err := f.ColumnByName("name")
	require.NoError(t, err)
	assert.Equal(t, value.KindString, name.Kind())
}

func TestReadTypeInference(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		expected value.Kind
	}{
		{"booleans", "true\nfalse\nTRUE\n", value.KindBool},
		{"small ints", "1\n-5\n100\n", value.KindInt8},
		{"wide ints", "1\n40000\n", value.KindInt32},
		{"huge ints", "1\n3000000000\n", value.KindInt64},
		{"floats", "1\n2.5\n", value.KindFloat64},
		{"dates", "01/02/2003\n", value.KindDate},
		{"times", "12:30:00\n", value.KindTime},
		{"timestamps", "01/02/2003 12:30:00\n", value.KindTimestamp},
		{"mixed falls back to string", "1\nhello\n", value.KindString},
		{"all empty defaults to string", "\n\n", value.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := readString(t, "v\n"+tt.column, DefaultCSVOptions())
			col, err := f.ColumnByName("v")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, col.Kind())
		})
	}
}

func TestReadEmptyFieldIsNull(t *testing.T) {
	f := readString(t, "a,b\r\n1,\r\n,2\r\n", DefaultCSVOptions())

	v, err := f.Value(0, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = f.Value(1, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestReadQuotedEmptyIsEmptyString(t *testing.T) {
	f := readString(t, "a\r\n\"\"\r\n", DefaultCSVOptions())

	col, err := f.ColumnByName("a")
	require.NoError(t, err)
	assert.Equal(t, value.KindString, col.Kind())

	v, err := f.Value(0, 0)
	require.NoError(t, err)
	require.False(t, v.IsNull())
	assert.Equal(t, "", v.Str())
}

func TestReadQuotedFieldWithNewlineAndQuotes(t *testing.T) {
	csv := "note\r\n\"He said \"\"hi\"\"\nand left\"\r\n"
	f := readString(t, csv, DefaultCSVOptions())

	v, err := f.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "He said \"hi\"\nand left", v.Str())
}

func TestReadWithoutHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.Header = false
	f := readString(t, "1,x\r\n2,y\r\n", opts)

	assert.Equal(t, []string{"column_0", "column_1"}, f.ColumnNames())
	assert.Equal(t, 2, f.RowCount())
}

func TestReadCustomDelimiter(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.Delimiter = ';'
	f := readString(t, "a;b\r\n1;2\r\n", opts)

	assert.Equal(t, []string{"a", "b"}, f.ColumnNames())
	assert.Equal(t, 1, f.RowCount())
}

func TestReadPreservesNonUTF8Bytes(t *testing.T) {
	// Latin-1 and other non-UTF-8 payloads must survive byte for byte,
	// not be rewritten to U+FFFD.
	f := readString(t, "v\r\n\xffabc\r\n", DefaultCSVOptions())

	v, err := f.Value(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "\xffabc", v.Str())
}

func TestReadLFOnlyLineEndings(t *testing.T) {
	f := readString(t, "a\n1\n2\n", DefaultCSVOptions())
	assert.Equal(t, 2, f.RowCount())
}

func TestReadFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"unterminated quote", "a\r\n\"unclosed\r\n"},
		{"bare quote in field", "a\r\nab\"c\r\n"},
		{"garbage after closing quote", "a\r\n\"x\"y\r\n"},
		{"ragged record", "a,b\r\n1\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVReader(strings.NewReader(tt.csv), DefaultCSVOptions()).Read()
			assert.Equal(t, errors.KindFormatError, errors.KindOf(err))
		})
	}
}

func TestReadEmptyInput(t *testing.T) {
	f := readString(t, "", DefaultCSVOptions())
	assert.Equal(t, 0, f.ColumnCount())
	assert.Equal(t, 0, f.RowCount())
}

func TestWriteBasic(t *testing.T) {
	f, err := frame.CreateBlank(
		[]string{"id", "name"},
		[]value.Kind{value.KindInt64, value.KindString},
	)
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(1), value.NewString("alice")}))
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(2), value.Null()}))

	out := writeString(t, f, DefaultCSVOptions())
	assert.Equal(t, "id,name\r\n1,alice\r\n2,\r\n", out)
}

func TestWriteQuoting(t *testing.T) {
	f, err := frame.CreateBlank([]string{"v"}, []value.Kind{value.KindString})
	require.NoError(t, err)
	for _, s := range []string{"plain", "has,comma", `has"quote`, "has\nnewline", ""} {
		require.NoError(t, f.AddRow([]value.Value{value.NewString(s)}))
	}
	require.NoError(t, f.AddRow([]value.Value{value.Null()}))

	out := writeString(t, f, DefaultCSVOptions())
	lines := []string{
		"v",
		"plain",
		`"has,comma"`,
		`"has""quote"`,
		"\"has\nnewline\"",
		`""`, // empty string stays distinguishable
		"",   // null is a bare empty field
		"",
	}
	assert.Equal(t, strings.Join(lines, "\r\n"), out)
}

func TestWriteWithoutHeader(t *testing.T) {
	f, err := frame.CreateBlank([]string{"v"}, []value.Kind{value.KindInt64})
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(7)}))

	opts := DefaultCSVOptions()
	opts.Header = false
	assert.Equal(t, "7\r\n", writeString(t, f, opts))
}

func TestRoundTrip(t *testing.T) {
	f, err := frame.CreateBlank(
		[]string{"n", "x", "flag", "note"},
		[]value.Kind{value.KindInt8, value.KindFloat64, value.KindBool, value.KindString},
	)
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{
		value.NewInt8(1), value.NewFloat64(2.5), value.NewBool(true), value.NewString("He said \"\"hi\"\"\nok"),
	}))
	require.NoError(t, f.AddRow([]value.Value{
		value.NewInt8(2), value.Null(), value.NewBool(false), value.NewString(""),
	}))

	text := writeString(t, f, DefaultCSVOptions())
	back := readString(t, text, DefaultCSVOptions())

	require.Equal(t, f.RowCount(), back.RowCount())
	require.Equal(t, f.ColumnNames(), back.ColumnNames())
	for r := 0; r < f.RowCount(); r++ {
		for c := 0; c < f.ColumnCount(); c++ {
			want, err := f.Value(r, c)
			require.NoError(t, err)
			got, err := back.Value(r, c)
			require.NoError(t, err)
			assert.True(t, value.Equal(want, got), "cell (%d,%d): %q vs %q", r, c, want, got)
		}
	}
}

func TestRoundTripMixedIntFloatWidensToFloat(t *testing.T) {
	f, err := frame.CreateBlank([]string{"v"}, []value.Kind{value.KindFloat64})
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewFloat64(1)}))
	require.NoError(t, f.AddRow([]value.Value{value.NewFloat64(2.5)}))

	back := readString(t, writeString(t, f, DefaultCSVOptions()), DefaultCSVOptions())
	col, err := back.ColumnByName("v")
	require.NoError(t, err)
	assert.Equal(t, value.KindFloat64, col.Kind())
}

func TestReadFileAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/data.csv"

	f, err := frame.CreateBlank([]string{"v"}, []value.Kind{value.KindInt64})
	require.NoError(t, err)
	require.NoError(t, f.AddRow([]value.Value{value.NewInt64(5)}))

	require.NoError(t, WriteFile(path, f, DefaultCSVOptions()))
	back, err := ReadFile(path, DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, back.RowCount())

	_, err = ReadFile(dir+"/missing.csv", DefaultCSVOptions())
	assert.Equal(t, errors.KindIOError, errors.KindOf(err))
}

func TestInferenceSampleRows(t *testing.T) {
	// Only the first row is sampled, so the column infers as integer
	// and the unparseable later value degrades to null.
	opts := DefaultCSVOptions()
	opts.SampleRows = 1
	f := readString(t, "v\r\n1\r\noops\r\n", opts)

	col, err := f.ColumnByName("v")
	require.NoError(t, err)
	assert.Equal(t, value.KindInt8, col.Kind())

	v, err := f.Value(1, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}
