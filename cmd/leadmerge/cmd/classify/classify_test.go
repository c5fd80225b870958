package classify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/pkg/classify"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
)

func mockApp(t *testing.T, groups ...classify.Group) *appcontext.Mock {
	t.Helper()
	logging.DisableLoggingForTest(t)
	return &appcontext.Mock{
		KeywordGroupsFunc: func(string) ([]classify.Group, error) { return groups, nil },
		OutputFormatFunc:  func() string { return "json" },
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSearchWithGroup(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.csv", "Sunrise Inn\nSteel Works\nGrand Hotel\n")
	out := filepath.Join(dir, "out.csv")

	app := mockApp(t, classify.Group{Name: "Hotels", Keywords: []string{"Hotel", "Inn"}})
	cmd := NewSearchCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{in, "-c", "0", "--group", "Hotels", "--out", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "Sunrise Inn\nGrand Hotel\n", read(t, out))
}

func TestSearchUnknownGroup(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.csv", "a\n")

	cmd := NewSearchCommand(mockApp(t))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{in, "-c", "0", "--group", "Hotels", "--out", filepath.Join(dir, "out.csv")})
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestSearchNeedsKeywords(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.csv", "a\n")

	cmd := NewExcludeCommand(mockApp(t))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{in, "-c", "0", "--out", filepath.Join(dir, "out.csv")})
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsValidationError(err))
}

func TestPartitionCommand(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "in.csv", "1,A\n2,AB\n3,B\n4,C\n")
	outDir := filepath.Join(dir, "split")

	app := mockApp(t,
		classify.Group{Name: "G1", Keywords: []string{"A"}},
		classify.Group{Name: "G2", Keywords: []string{"B"}},
	)
	cmd := NewPartitionCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{in, "-c", "1", "--out-dir", outDir})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "1,A\n2,AB\n", read(t, filepath.Join(outDir, "G1.csv")))
	assert.Equal(t, "3,B\n", read(t, filepath.Join(outDir, "G2.csv")))
	assert.NoFileExists(t, filepath.Join(outDir, "C.csv"))
}
