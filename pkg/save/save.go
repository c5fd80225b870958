// Package save writes engine output to destinations.
//
// A file destination is written to a temporary file next to its final path
// and renamed into place on Commit. Abort removes the temporary file, so a
// failed operation never leaves partial output behind.
package save

import (
	"io"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/records"
)

// Destination is a row writer whose output is published by Commit.
type Destination interface {
	records.Writer

	// Path returns the final path, or "" for writer destinations.
	Path() string

	// Commit finishes the output and publishes it. Abort discards the
	// output and is a no-op after Commit.
	Publisher
}

// Create opens a destination.
func Create(opts ...Option) (Destination, error) {
	o := Defaults()
	o.Apply(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}

	if o.path == "" {
		s, err := newSink(o.writer, o)
		if err != nil {
			return nil, err
		}
		return &streamDestination{sink: s}, nil
	}

	f, err := CreateFile(o.path)
	if err != nil {
		return nil, err
	}
	s, err := newSink(f, o)
	if err != nil {
		_ = f.discard()
		return nil, err
	}
	return &fileDestination{file: f, sink: s}, nil
}

func newSink(w io.Writer, o *Options) (sink, error) {
	if o.Format() == FormatXLSX {
		return newXLSXWriter(w, o)
	}
	return newCSVWriter(w, o)
}

type fileDestination struct {
	sink
	file *File
}

func (d *fileDestination) Path() string { return d.file.path }

func (d *fileDestination) Commit() error {
	if d.file.done {
		return nil
	}
	if err := d.sink.close(); err != nil {
		d.file.done = true
		_ = d.file.discard()
		return withPath(err, d.file.path)
	}
	return d.file.Commit()
}

func (d *fileDestination) Abort() error { return d.file.Abort() }

type streamDestination struct {
	sink
	done bool
}

func (d *streamDestination) Path() string { return "" }

func (d *streamDestination) Commit() error {
	if d.done {
		return nil
	}
	d.done = true
	return d.sink.close()
}

func (d *streamDestination) Abort() error {
	d.done = true
	return nil
}

// withPath fills in the path of an IOError raised by a sink.
func withPath(err error, path string) error {
	var ioErr *errors.IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
	}
	return err
}

// AbortAll aborts every destination and joins the errors.
func AbortAll[P Publisher](dests ...P) error {
	var errs []error
	for _, d := range dests {
		if any(d) == nil {
			continue
		}
		if err := d.Abort(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CommitAll commits every destination in order. After the first failure the
// remaining destinations are aborted.
func CommitAll[P Publisher](dests ...P) error {
	for i, d := range dests {
		if any(d) == nil {
			continue
		}
		if err := d.Commit(); err != nil {
			_ = AbortAll(dests[i+1:]...)
			return err
		}
	}
	return nil
}

