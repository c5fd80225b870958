package hints

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/pkg/errors"
)

func TestForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing keyword groups",
			err:  errors.NewConfigError("keyword_groups", "none", nil),
			want: "define keyword_groups",
		},
		{
			name: "bad config",
			err:  errors.NewConfigError("config", "reading config file", fmt.Errorf("boom")),
			want: "--config",
		},
		{
			name: "column",
			err:  errors.NewValidationError("key_column", -1, "must not be negative"),
			want: "zero-based",
		},
		{
			name: "encoding",
			err:  errors.NewValidationError("encoding", "x", "unsupported"),
			want: "gb18030",
		},
		{
			name: "decode",
			err:  fmt.Errorf("reading: %w", errors.NewDecodeError("a.csv", 2, -1, fmt.Errorf("bad"))),
			want: "--encoding gbk",
		},
		{
			name: "open",
			err:  errors.WrapIO("open", "leads.csv", fmt.Errorf("no such file")),
			want: "leads.csv exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := ForError(tt.err)
			require.NotEmpty(t, hints)
			assert.Contains(t, hints[0].String(), tt.want)
		})
	}
}

func TestForErrorNone(t *testing.T) {
	assert.Nil(t, ForError(nil))
	assert.Empty(t, ForError(fmt.Errorf("plain")))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, errors.NewConfigError("keyword_groups", "none", nil))
	assert.Contains(t, buf.String(), "hint: ")
	assert.Contains(t, buf.String(), "run: leadmerge partition")
}
