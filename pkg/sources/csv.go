package sources

import (
	"encoding/csv"
	"io"
	"os"

	"golang.org/x/text/transform"

	"github.com/agentstation/leadmerge/pkg/charset"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/records"
)

type csvSource struct {
	path   string
	file   *os.File
	reader *csv.Reader
	header records.Row
}

func openCSV(path string, o *Options) (*csvSource, error) {
	decoder, err := charset.Decoder(o.Encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	src := newCSV(path, transform.NewReader(f, decoder), o)
	src.file = f

	if o.Header {
		header, err := src.reader.Read()
		switch {
		case err == io.EOF:
		case err != nil:
			_ = f.Close()
			return nil, errors.NewParseError("csv", path, "cannot read header row", err)
		default:
			src.header = records.Row(header)
		}
	}
	return src, nil
}

func newCSV(path string, r io.Reader, o *Options) *csvSource {
	reader := csv.NewReader(r)
	reader.Comma = o.Comma
	reader.FieldsPerRecord = -1
	return &csvSource{path: path, reader: reader}
}

func (s *csvSource) Name() string { return s.path }

func (s *csvSource) Header() records.Row { return s.header }

func (s *csvSource) Read() (records.Row, error) {
	rec, err := s.reader.Read()
	if err == nil {
		return records.Row(rec), nil
	}
	if err == io.EOF {
		return nil, io.EOF
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, errors.NewDecodeError(s.path, pe.StartLine, -1, pe.Err)
	}
	return nil, errors.WrapIO("read", s.path, err)
}

func (s *csvSource) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return errors.WrapIO("close", s.path, err)
	}
	return nil
}
