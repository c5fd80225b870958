package records

import (
	"io"
)

// SliceReader serves rows from memory. Entries of Errs, keyed by zero-based
// row position, are returned instead of the row at that position.
type SliceReader struct {
	name   string
	header Row
	rows   []Row
	pos    int

	Errs map[int]error
}

// NewSliceReader creates a reader over rows. header may be nil.
func NewSliceReader(name string, header Row, rows ...Row) *SliceReader {
	return &SliceReader{name: name, header: header, rows: rows}
}

// Name implements Reader.
func (r *SliceReader) Name() string { return r.name }

// Header implements Reader.
func (r *SliceReader) Header() Row { return r.header }

// Read implements Reader.
func (r *SliceReader) Read() (Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	i := r.pos
	r.pos++
	if err, ok := r.Errs[i]; ok {
		return nil, err
	}
	return r.rows[i].Clone(), nil
}

// SliceWriter collects written rows in memory.
type SliceWriter struct {
	Rows    []Row
	Flushes int
}

// Write implements Writer.
func (w *SliceWriter) Write(row Row) error {
	w.Rows = append(w.Rows, row.Clone())
	return nil
}

// Flush implements Writer.
func (w *SliceWriter) Flush() error {
	w.Flushes++
	return nil
}

// Keys returns the value of column c of every collected row. Rows too short
// for c contribute an empty string.
func (w *SliceWriter) Keys(c Column) []string {
	keys := make([]string, 0, len(w.Rows))
	for _, row := range w.Rows {
		if int(c) < len(row) {
			keys = append(keys, row[c])
		} else {
			keys = append(keys, "")
		}
	}
	return keys
}

// Discard is a Writer that drops every row.
var Discard Writer = discard{}

type discard struct{}

func (discard) Write(Row) error { return nil }
func (discard) Flush() error    { return nil }
