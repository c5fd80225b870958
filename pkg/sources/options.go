package sources

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Format identifies a source file format.
type Format int

// Format constants.
const (
	FormatAuto Format = iota
	FormatCSV
	FormatXLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	}
	return FormatAuto, errors.NewValidationError("format", s, "expected csv or xlsx")
}

// FormatFromPath picks a format from the file extension. Unknown extensions
// are read as CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}
	return FormatCSV
}

// Options configures how a source file is read.
type Options struct {
	Header   bool   // first row is a header
	Encoding string // text encoding of CSV files
	Sheet    string // worksheet of XLSX files, empty for the first one
	Comma    rune   // CSV field delimiter
	Format   Format // FormatAuto picks by extension
}

// Defaults returns the default source options.
func Defaults() *Options {
	return &Options{
		Header:   false,
		Encoding: constants.DefaultEncoding,
		Sheet:    constants.DefaultSheet,
		Comma:    constants.CSVComma,
		Format:   FormatAuto,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option is a function that configures source options.
type Option func(*Options)

// WithHeader marks the first row as a header.
func WithHeader(header bool) Option {
	return func(o *Options) {
		o.Header = header
	}
}

// WithEncoding sets the text encoding of CSV sources.
func WithEncoding(name string) Option {
	return func(o *Options) {
		o.Encoding = name
	}
}

// WithSheet selects the worksheet read from XLSX sources.
func WithSheet(sheet string) Option {
	return func(o *Options) {
		o.Sheet = sheet
	}
}

// WithComma sets the CSV field delimiter.
func WithComma(comma rune) Option {
	return func(o *Options) {
		o.Comma = comma
	}
}

// WithFormat forces a file format instead of detecting it from the extension.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}
