// Package sources opens lead files as record readers.
//
// CSV and XLSX files are supported. Every source reports a row that cannot be
// decoded as an *errors.DecodeError so engines can skip it and continue.
//
// Example usage:
//
//	src, err := sources.Open("leads.csv", sources.WithHeader(true), sources.WithEncoding("gbk"))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
package sources

import (
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
)

// Source is a file-backed row reader.
type Source interface {
	records.Reader
	Close() error
}

// Open opens the file at path for reading.
func Open(path string, opts ...Option) (Source, error) {
	o := Defaults().Apply(opts...)

	format := o.Format
	if format == FormatAuto {
		format = FormatFromPath(path)
	}

	var (
		src Source
		err error
	)
	switch format {
	case FormatXLSX:
		src, err = openXLSX(path, o)
	default:
		src, err = openCSV(path, o)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("source", path).
		Str("format", format.String()).
		Bool("header", src.Header() != nil).
		Msg("Source opened")
	return src, nil
}

// OpenAll opens every path. When one fails, the ones already opened are
// closed and the error is returned.
func OpenAll(paths []string, opts ...Option) ([]Source, error) {
	srcs := make([]Source, 0, len(paths))
	for _, path := range paths {
		src, err := Open(path, opts...)
		if err != nil {
			_ = CloseAll(srcs)
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

// CloseAll closes every source and joins the errors.
func CloseAll(srcs []Source) error {
	var errs []error
	for _, src := range srcs {
		if err := src.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Readers returns srcs as plain readers.
func Readers(srcs []Source) []records.Reader {
	out := make([]records.Reader, len(srcs))
	for i, src := range srcs {
		out[i] = src
	}
	return out
}
