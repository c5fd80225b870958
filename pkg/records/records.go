// Package records defines the positional row model shared by every engine:
// a Row is an ordered list of string fields whose meaning comes from its
// column index. Readers produce rows, Writers accept them.
package records

import (
	"context"
	"fmt"
	"io"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
)

// Row is one record: an ordered sequence of string fields.
type Row []string

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Fit returns a copy of r with exactly width fields, padding with empty
// strings or truncating as needed.
func (r Row) Fit(width int) Row {
	out := make(Row, width)
	copy(out, r)
	return out
}

// Reader is a source of rows.
//
// Read returns io.EOF after the last row. A *errors.DecodeError means the
// current row is unusable but the reader can continue; any other error is fatal.
type Reader interface {
	// Name identifies the source in diagnostics, usually its path.
	Name() string
	// Header returns the header row, or nil when the source has none.
	Header() Row
	// Read returns the next data row.
	Read() (Row, error)
}

// Writer is a sink of rows.
type Writer interface {
	Write(row Row) error
	Flush() error
}

// Each calls fn for every decodable row of r. Decode failures are logged as
// warnings and skipped; the number skipped is returned. Iteration stops at the
// first fatal read error or the first error returned by fn.
func Each(ctx context.Context, r Reader, fn func(line int, row Row) error) (skipped int, err error) {
	logger := logging.FromContext(ctx)
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			return skipped, nil
		}
		if err != nil {
			if errors.IsDecodeError(err) {
				skipped++
				logger.Warn().
					Err(err).
					Str("source", r.Name()).
					Int("line", line).
					Msg("Skipping undecodable row")
				continue
			}
			if errors.IsIOError(err) {
				return skipped, err
			}
			return skipped, errors.WrapIO("read", r.Name(), err)
		}
		if err := fn(line, row); err != nil {
			return skipped, err
		}
	}
}

// WriteHeader writes the header of r to every writer when r has one.
func WriteHeader(r Reader, ws ...Writer) error {
	header := r.Header()
	if header == nil {
		return nil
	}
	for _, w := range ws {
		if w == nil {
			continue
		}
		if err := w.Write(header.Clone()); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Column is a validated accessor for one zero-based field position.
type Column int

// Validate reports an invalid-input error for a negative column index.
func (c Column) Validate(field string) error {
	if c < 0 {
		return errors.NewValidationError(field, int(c), "column index must not be negative")
	}
	return nil
}

// Get returns the field at c, or a decode error when row is too short.
func (c Column) Get(source string, line int, row Row) (string, error) {
	if int(c) < 0 || int(c) >= len(row) {
		return "", errors.NewDecodeError(source, line, int(c),
			fmt.Errorf("row has %d fields", len(row)))
	}
	return row[c], nil
}

// Set replaces the field at c in row, or returns a decode error when row is too short.
func (c Column) Set(source string, line int, row Row, value string) error {
	if int(c) < 0 || int(c) >= len(row) {
		return errors.NewDecodeError(source, line, int(c),
			fmt.Errorf("row has %d fields", len(row)))
	}
	row[c] = value
	return nil
}

// Columns converts plain indices to validated columns.
func Columns(field string, indices ...int) ([]Column, error) {
	if len(indices) == 0 {
		return nil, errors.NewValidationError(field, indices, "at least one column is required")
	}
	seen := make(map[int]bool, len(indices))
	cols := make([]Column, 0, len(indices))
	for _, i := range indices {
		c := Column(i)
		if err := c.Validate(field); err != nil {
			return nil, err
		}
		if seen[i] {
			return nil, errors.NewValidationError(field, indices, fmt.Sprintf("column %d listed twice", i))
		}
		seen[i] = true
		cols = append(cols, c)
	}
	return cols, nil
}
