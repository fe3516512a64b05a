package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/frame"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// field is one parsed CSV cell. The quoting flag distinguishes an empty
// quoted field (empty string) from an empty bare field (null).
type field struct {
	text   string
	quoted bool
}

// Read parses the CSV input and returns a Frame with per-column
// inferred kinds.
func (r *CSVReader) Read() (*frame.Frame, error) {
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, errors.NewIOError("ReadCSV", err)
	}
	records, err := parseRecords(string(data), r.options.Delimiter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return frame.New(), nil
	}

	var headers []string
	var rows [][]field
	if r.options.Header {
		headers = make([]string, len(records[0]))
		for i, f := range records[0] {
			headers[i] = f.text
		}
		rows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = defaultColumnName(i)
		}
		rows = records
	}

	width := len(headers)
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.NewFormatError("ReadCSV",
				recordWidthError(i, len(row), width))
		}
	}

	kinds := make([]value.Kind, width)
	for c := 0; c < width; c++ {
		kinds[c] = inferColumnKind(rows, c, r.options.SampleRows)
	}

	out, err := frame.CreateBlank(headers, kinds)
	if err != nil {
		return nil, err
	}
	rowBuf := make([]value.Value, width)
	for _, row := range rows {
		for c, f := range row {
			rowBuf[c] = fieldValue(f, kinds[c])
		}
		if err := out.AddRow(rowBuf); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// fieldValue converts one cell to a typed value: a bare empty field is
// null regardless of the column kind, and text that does not parse as
// the inferred kind degrades to null.
func fieldValue(f field, kind value.Kind) value.Value {
	if f.text == "" && !f.quoted {
		return value.Null()
	}
	return value.Parse(f.text, kind)
}

func defaultColumnName(i int) string {
	return fmt.Sprintf("column_%d", i)
}

func recordWidthError(row, got, want int) error {
	return fmt.Errorf("record %d has %d fields, want %d", row, got, want)
}

var (
	errUnterminatedQuote = fmt.Errorf("unterminated quoted field")
	errBareQuote         = fmt.Errorf("bare quote in unquoted field")
	errGarbageAfterQuote = fmt.Errorf("unexpected character after closing quote")
)

// parseRecords is an RFC 4180 state machine. It keeps per-field quoting
// information, accepts CRLF and LF line terminators, and treats an
// unescaped newline inside a quoted field as literal data. The scan is
// byte-wise so field payloads pass through untouched, invalid UTF-8
// included; the quote, CR and LF bytes it dispatches on are ASCII and
// cannot occur inside a multi-byte sequence.
func parseRecords(s string, delim rune) ([][]field, error) {
	var records [][]field
	var current []field
	var b strings.Builder

	d := string(delim)
	i := 0
	for i < len(s) {
		// One field per iteration, then its terminator.
		quoted := false
		if s[i] == '"' {
			quoted = true
			i++
			closed := false
			for i < len(s) {
				if s[i] == '"' {
					if i+1 < len(s) && s[i+1] == '"' {
						b.WriteByte('"')
						i += 2
						continue
					}
					i++
					closed = true
					break
				}
				b.WriteByte(s[i])
				i++
			}
			if !closed {
				return nil, errors.NewFormatError("ReadCSV", errUnterminatedQuote)
			}
		} else {
			for i < len(s) && !strings.HasPrefix(s[i:], d) && s[i] != '\r' && s[i] != '\n' {
				if s[i] == '"' {
					return nil, errors.NewFormatError("ReadCSV", errBareQuote)
				}
				b.WriteByte(s[i])
				i++
			}
		}
		current = append(current, field{text: b.String(), quoted: quoted})
		b.Reset()

		if i >= len(s) {
			break
		}
		switch {
		case strings.HasPrefix(s[i:], d):
			i += len(d)
			if i >= len(s) {
				// Trailing delimiter: the record ends with an empty field.
				current = append(current, field{})
			}
		case s[i] == '\r':
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			records = append(records, current)
			current = nil
		case s[i] == '\n':
			i++
			records = append(records, current)
			current = nil
		default:
			return nil, errors.NewFormatError("ReadCSV", errGarbageAfterQuote)
		}
	}
	if current != nil {
		records = append(records, current)
	}
	return records, nil
}

// Write encodes the frame as RFC 4180 CSV with CRLF line terminators.
// Null cells become empty bare fields; empty strings become empty
// quoted fields so the reader can tell the two apart.
func (w *CSVWriter) Write(f *frame.Frame) error {
	var b strings.Builder
	delim := string(w.options.Delimiter)

	if w.options.Header && f.ColumnCount() > 0 {
		for i, name := range f.ColumnNames() {
			if i > 0 {
				b.WriteString(delim)
			}
			b.WriteString(w.encodeField(name, false))
		}
		b.WriteString("\r\n")
	}

	rows := f.RowCount()
	cols := f.ColumnCount()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString(delim)
			}
			v, err := f.Value(r, c)
			if err != nil {
				return err
			}
			if v.IsNull() {
				continue // null is an empty bare field
			}
			b.WriteString(w.encodeField(v.String(), v.Kind() == value.KindString))
		}
		b.WriteString("\r\n")
	}

	if _, err := io.WriteString(w.writer, b.String()); err != nil {
		return errors.NewIOError("WriteCSV", err)
	}
	return nil
}

// encodeField applies the quoting rules: a field is quoted iff it
// contains the delimiter, a quote, or a line break, or when it is an
// empty string value (to stay distinguishable from null).
func (w *CSVWriter) encodeField(text string, isString bool) string {
	if text == "" && isString {
		return `""`
	}
	if !strings.ContainsAny(text, string(w.options.Delimiter)+"\"\r\n") {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

// ReadFile reads a CSV file into a Frame.
func ReadFile(path string, options CSVOptions) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("ReadCSVFile", err)
	}
	defer file.Close()
	return NewCSVReader(file, options).Read()
}

// WriteFile writes a Frame to a CSV file.
func WriteFile(path string, f *frame.Frame, options CSVOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("WriteCSVFile", err)
	}
	defer file.Close()
	return NewCSVWriter(file, options).Write(f)
}
