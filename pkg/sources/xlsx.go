package sources

import (
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/records"
)

type xlsxSource struct {
	path   string
	sheet  string
	file   *excelize.File
	rows   *excelize.Rows
	header records.Row
	width  int
	line   int
}

func openXLSX(path string, o *Options) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	sheets := f.GetSheetList()
	sheet := o.Sheet
	switch {
	case sheet == "" && len(sheets) > 0:
		sheet = sheets[0]
	case !slices.Contains(sheets, sheet):
		_ = f.Close()
		return nil, errors.NewNotFoundError("sheet", sheet)
	}

	width, err := sheetWidth(f, sheet)
	if err != nil {
		_ = f.Close()
		return nil, errors.NewParseError("xlsx", path, "cannot read sheet "+sheet, err)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, errors.NewParseError("xlsx", path, "cannot read sheet "+sheet, err)
	}
	src := &xlsxSource{path: path, sheet: sheet, file: f, rows: rows, width: width}

	if o.Header {
		header, err := src.Read()
		switch {
		case err == io.EOF:
		case err != nil:
			_ = src.Close()
			return nil, errors.NewParseError("xlsx", path, "cannot read header row", err)
		default:
			src.header = header
		}
	}
	return src, nil
}

func (s *xlsxSource) Name() string { return s.path }

func (s *xlsxSource) Header() records.Row { return s.header }

// sheetWidth is the width of the widest row of the sheet.
func sheetWidth(f *excelize.File, sheet string) (int, error) {
	width := 0
	rows, err := f.Rows(sheet)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return 0, err
		}
		width = max(width, len(cols))
	}
	return width, rows.Error()
}

// Read returns the next row padded to the sheet width, since the workbook
// does not store trailing empty cells.
func (s *xlsxSource) Read() (records.Row, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, errors.WrapIO("read", s.path, err)
		}
		return nil, io.EOF
	}
	s.line++
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, errors.NewDecodeError(s.path, s.line, -1, err)
	}
	return records.Row(cols).Fit(max(s.width, len(cols))), nil
}

func (s *xlsxSource) Close() error {
	var errs []error
	if err := s.rows.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.WrapIO("close", s.path, errors.Join(errs...))
}
