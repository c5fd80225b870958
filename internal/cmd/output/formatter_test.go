package output

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/cmd/table"
	"github.com/agentstation/leadmerge/pkg/provenance"
)

func testSummary() *leadmerge.Summary {
	return &leadmerge.Summary{
		RunID:     "r1",
		Operation: "merge-sources",
		Inputs:    []string{"a.csv", "b.csv"},
		Outputs:   []string{"out.csv"},
		Written:   2,
		Counts:    []leadmerge.Count{{Name: "merged", Value: 1}},
		Duration:  time.Second,
		Provenance: provenance.GenerateReport(provenance.Map{
			"acme": {{Source: "A", Value: "1"}, {Source: "B", Value: "2"}},
		}),
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers: []string{"Name", "Value"},
		Rows:    [][]string{{"written", "2"}},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "written")
	assert.Contains(t, buf.String(), "2")
}

func TestSummaryFormats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, FormatJSON, "", testSummary()))
		assert.Contains(t, buf.String(), `"operation": "merge-sources"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, FormatYAML, "", testSummary()))
		assert.Contains(t, buf.String(), "operation: merge-sources")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, FormatTable, "", testSummary()))
		out := buf.String()
		assert.Contains(t, out, "Merged")
		assert.Contains(t, out, "✓ out.csv")
		assert.NotContains(t, out, "acme", "provenance only in wide output")
	})

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summary(&buf, FormatWide, "", testSummary()))
		out := buf.String()
		assert.Contains(t, out, "a.csv")
		assert.Contains(t, out, "acme")
	})
}

func TestSummaryReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, FormatJSON, path, testSummary()))
	assert.FileExists(t, path)
}

type settings struct{ format, report string }

func (s settings) OutputFormat() string { return s.format }
func (s settings) ReportPath() string   { return s.report }

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, settings{format: "yaml"}, testSummary()))
	assert.Contains(t, buf.String(), "written: 2")

	assert.Error(t, Emit(&buf, settings{format: "xml"}, testSummary()))
}
