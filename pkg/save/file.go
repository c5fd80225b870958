package save

import (
	"os"
	"path/filepath"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
)

// Publisher is output that becomes visible only on Commit.
type Publisher interface {
	Commit() error
	Abort() error
}

// File is a byte destination published like a row destination: it is
// written to a temporary file and renamed into place on Commit.
type File struct {
	path string
	tmp  *os.File
	done bool
}

// CreateFile opens a temporary file next to path.
func CreateFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "output path must not be empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	tmp, err := os.CreateTemp(dir, constants.TempFilePattern)
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	return &File{path: path, tmp: tmp}, nil
}

// Path returns the final path.
func (f *File) Path() string { return f.path }

func (f *File) Write(p []byte) (int, error) {
	n, err := f.tmp.Write(p)
	if err != nil {
		return n, errors.WrapIO("write", f.path, err)
	}
	return n, nil
}

// Commit closes the temporary file and renames it to the final path.
func (f *File) Commit() error {
	if f.done {
		return nil
	}
	f.done = true

	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return errors.WrapIO("close", f.path, err)
	}
	if err := os.Chmod(f.tmp.Name(), constants.FilePermissions); err != nil {
		_ = os.Remove(f.tmp.Name())
		return errors.WrapIO("chmod", f.path, err)
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		_ = os.Remove(f.tmp.Name())
		return errors.WrapIO("rename", f.path, err)
	}

	logging.Debug().Str("path", f.path).Msg("File published")
	return nil
}

// Abort removes the temporary file. It is a no-op after Commit.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	return f.discard()
}

func (f *File) discard() error {
	_ = f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("remove", f.tmp.Name(), err)
	}
	return nil
}
