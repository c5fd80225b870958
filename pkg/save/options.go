package save

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Format is the file format of a destination.
type Format int

// Format constants.
const (
	FormatCSV Format = iota
	FormatXLSX
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

// FormatFromPath picks a format from the destination's extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}
	return FormatCSV
}

// Options is the configuration for save.
type Options struct {
	path     string
	writer   io.Writer
	format   Format
	encoding string
	comma    rune
	sheet    string
	detect   bool
}

// Path returns the destination path.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the custom output writer, if any.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the destination format.
func (s *Options) Format() Format {
	if s.detect && s.path != "" {
		return FormatFromPath(s.path)
	}
	return s.format
}

// Encoding returns the text encoding of CSV output.
func (s *Options) Encoding() string {
	return s.encoding
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		path:     "",
		writer:   nil,
		format:   FormatCSV,
		encoding: constants.DefaultEncoding,
		comma:    constants.CSVComma,
		sheet:    "Sheet1",
		detect:   true,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

func (s *Options) validate() error {
	if !s.Format().IsValid() {
		return errors.NewValidationError("format", s.format, "unsupported destination format")
	}
	if s.path == "" && s.writer == nil {
		return errors.NewValidationError("path", "", "a destination path or writer is required")
	}
	return nil
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for an explicit output format instead of the path extension.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
		s.detect = false
	}
}

// WithPath for filesystem saves.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithEncoding sets the text encoding of CSV output.
func WithEncoding(name string) Option {
	return func(s *Options) {
		s.encoding = name
	}
}

// WithComma sets the CSV field delimiter.
func WithComma(comma rune) Option {
	return func(s *Options) {
		s.comma = comma
	}
}

// WithSheet names the worksheet of XLSX output.
func WithSheet(sheet string) Option {
	return func(s *Options) {
		if sheet != "" {
			s.sheet = sheet
		}
	}
}
