// Package hints provides actionable user guidance for failed commands.
package hints

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/leadmerge/pkg/errors"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// WithCommand adds a command to the hint.
func (h *Hint) WithCommand(command string) *Hint {
	h.Command = command
	return h
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	s := "hint: " + h.Message
	if h.Command != "" {
		s += "\n  run: " + h.Command
	}
	return s
}

// ForError returns the hints that apply to err, most specific first.
func ForError(err error) []*Hint {
	if err == nil {
		return nil
	}

	var hints []*Hint

	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Component == "keyword_groups" {
			hints = append(hints, New("define keyword_groups in .leadmerge.yaml or pass a group file").
				WithCommand("leadmerge partition FILE -c 1 --groups groups.yaml --out-dir split/"))
		} else {
			hints = append(hints, New("check the config file syntax, or pass another file with --config"))
		}
	}

	var valErr *errors.ValidationError
	if errors.As(err, &valErr) {
		switch {
		case strings.Contains(valErr.Field, "column"):
			hints = append(hints, New("column numbers are zero-based and must be distinct"))
		case valErr.Field == "encoding":
			hints = append(hints, New("supported encodings are utf-8, utf-8-bom, gbk and gb18030"))
		}
	}

	if errors.IsDecodeError(err) {
		hints = append(hints, New("the input may use another encoding; try --encoding gbk"))
	}

	var ioErr *errors.IOError
	if errors.As(err, &ioErr) && ioErr.Operation == "open" {
		hints = append(hints, New(fmt.Sprintf("check that %s exists and is readable", ioErr.Path)))
	}

	return hints
}

// Write prints the hints for err to w.
func Write(w io.Writer, err error) {
	for _, h := range ForError(err) {
		_, _ = fmt.Fprintln(w, h.String())
	}
}
