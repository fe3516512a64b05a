package frame

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const nullMarker = "<null>"

// Render returns the frame as an aligned text table. At most limit data
// rows are included (all rows when limit <= 0); a trailing note reports
// elided rows. Null cells render as <null>; dates and times use the
// canonical day-first forms.
func (f *Frame) Render(limit int) string {
	if len(f.columns) == 0 {
		return "(empty frame)\n"
	}
	rows := f.RowCount()
	shown := rows
	if limit > 0 && limit < rows {
		shown = limit
	}

	cells := make([][]string, shown+1)
	cells[0] = f.ColumnNames()
	for r := 0; r < shown; r++ {
		row := make([]string, len(f.columns))
		for i, col := range f.columns {
			if col.values[r].IsNull() {
				row[i] = nullMarker
			} else {
				row[i] = col.values[r].String()
			}
		}
		cells[r+1] = row
	}

	widths := make([]int, len(f.columns))
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteByte('\n')
	}
	writeRow(cells[0])
	sep := make([]string, len(f.columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range cells[1:] {
		writeRow(row)
	}
	if shown < rows {
		fmt.Fprintf(&b, "... %d more rows\n", rows-shown)
	}
	return b.String()
}

// Print writes the rendered table to w, or to standard output when w is
// nil.
func (f *Frame) Print(w io.Writer, limit int) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprint(w, f.Render(limit))
}

// Info returns a schema summary: dimensions, then one line per column
// with its kind and null count.
func (f *Frame) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frame: %d rows x %d columns\n", f.RowCount(), f.ColumnCount())
	for _, col := range f.columns {
		fmt.Fprintf(&b, "  %-20s %-10s nulls=%d\n", col.name, col.kind, col.NullCount())
	}
	return b.String()
}
