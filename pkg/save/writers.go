package save

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/transform"

	"github.com/agentstation/leadmerge/pkg/charset"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/records"
)

// sink is a row writer that must be closed to finish its output.
type sink interface {
	records.Writer
	close() error
}

// CSVWriter writes rows as CSV in a configured text encoding.
type CSVWriter struct {
	enc *transform.Writer
	csv *csv.Writer
}

// NewCSVWriter returns a CSV writer on w. Close must be called to flush
// encoder state; it does not close w.
func NewCSVWriter(w io.Writer, opts ...Option) (*CSVWriter, error) {
	o := Defaults()
	o.Apply(opts...)
	return newCSVWriter(w, o)
}

func newCSVWriter(w io.Writer, o *Options) (*CSVWriter, error) {
	encoder, err := charset.Encoder(o.encoding)
	if err != nil {
		return nil, err
	}
	enc := transform.NewWriter(w, encoder)
	cw := csv.NewWriter(enc)
	cw.Comma = o.comma
	return &CSVWriter{enc: enc, csv: cw}, nil
}

// Write implements records.Writer.
func (w *CSVWriter) Write(row records.Row) error {
	if err := w.csv.Write(row); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}

// Flush implements records.Writer.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.WrapIO("flush", "", err)
	}
	return nil
}

// Close flushes buffered rows and encoder state.
func (w *CSVWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if err := w.enc.Close(); err != nil {
		return errors.WrapIO("flush", "", err)
	}
	return nil
}

func (w *CSVWriter) close() error { return w.Close() }

// xlsxWriter streams rows into one worksheet. The workbook is serialized to
// out when closed.
type xlsxWriter struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	out    io.Writer
	row    int
}

func newXLSXWriter(out io.Writer, o *Options) (*xlsxWriter, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if o.sheet != sheet {
		if err := f.SetSheetName(sheet, o.sheet); err != nil {
			_ = f.Close()
			return nil, errors.WrapValidation("sheet", err)
		}
		sheet = o.sheet
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		_ = f.Close()
		return nil, errors.WrapIO("create", sheet, err)
	}
	return &xlsxWriter{file: f, stream: sw, out: out}, nil
}

func (w *xlsxWriter) Write(row records.Row) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return errors.WrapIO("write", "", err)
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := w.stream.SetRow(cell, values); err != nil {
		return errors.WrapIO("write", cell, err)
	}
	return nil
}

// Flush is a no-op: the stream is finished once, on close.
func (w *xlsxWriter) Flush() error { return nil }

func (w *xlsxWriter) close() error {
	defer w.file.Close()
	if err := w.stream.Flush(); err != nil {
		return errors.WrapIO("flush", "", err)
	}
	if err := w.file.Write(w.out); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}
