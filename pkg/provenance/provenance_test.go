package provenance_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/pkg/provenance"
)

func TestTracker(t *testing.T) {
	t.Run("records in first-tracked order", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.Track("zeta", provenance.Provenance{Source: "source A", Value: "1"})
		tr.Track("alpha", provenance.Provenance{Source: "source A", Value: "2"})
		tr.Track("zeta", provenance.Provenance{Source: "source B", Value: "3"})

		assert.Equal(t, []string{"zeta", "alpha"}, tr.Keys())
		assert.Equal(t, 2, tr.Len())
		got := tr.FindByKey("zeta")
		require.Len(t, got, 2)
		assert.Equal(t, "source B", got[1].Source)
		assert.False(t, got[0].Timestamp.IsZero())
	})

	t.Run("disabled tracker ignores everything", func(t *testing.T) {
		tr := provenance.NewTracker(false)
		tr.Track("x", provenance.Provenance{Source: "a"})
		assert.Zero(t, tr.Len())
		assert.Nil(t, tr.FindByKey("x"))
		assert.Nil(t, tr.Map())
	})

	t.Run("map is a copy", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.Track("x", provenance.Provenance{Source: "a"})
		m := tr.Map()
		m["x"][0].Source = "changed"
		assert.Equal(t, "a", tr.FindByKey("x")[0].Source)
	})

	t.Run("clear", func(t *testing.T) {
		tr := provenance.NewTracker(true)
		tr.Track("x", provenance.Provenance{Source: "a"})
		tr.Clear()
		assert.Zero(t, tr.Len())
		assert.Empty(t, tr.Keys())
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "source A；source B", provenance.Label("source A", "source B"))
	assert.Equal(t, "only", provenance.Label("only"))
}

func TestGenerateReport(t *testing.T) {
	m := provenance.Map{
		"b": {
			{Source: "source A", Value: "111;"},
			{Source: "source B", Value: "222;"},
		},
		"a": {
			{Source: "source A", Value: "333;"},
			{Source: "source B", Value: "333;"},
		},
	}
	report := provenance.GenerateReport(m)
	require.Len(t, report.Keys, 2)

	assert.Equal(t, "a", report.Keys[0].Key)
	assert.False(t, report.Keys[0].Conflict)
	assert.Equal(t, "source A；source B", report.Keys[0].Label)

	assert.Equal(t, "b", report.Keys[1].Key)
	assert.True(t, report.Keys[1].Conflict)
	assert.Equal(t, []string{"111;", "222;"}, report.Keys[1].Values)
	assert.Equal(t, 1, report.Conflicts())

	out := report.String()
	assert.Contains(t, out, "Provenance Report")
	assert.Contains(t, out, "b: source A；source B")
	assert.Contains(t, out, "values: 111;, 222;")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "provenance.yaml")
	m := provenance.Map{
		"acme": {
			{Source: "source A", Field: "contact", Value: "13800000000;"},
			{Source: "source B", Field: "contact", Value: "055512345;"},
		},
	}
	require.NoError(t, provenance.Save(path, m))

	pf, err := provenance.Load(path)
	require.NoError(t, err)
	require.NotNil(t, pf)
	require.Len(t, pf.Provenance["acme"], 2)
	assert.Equal(t, "source B", pf.Provenance["acme"][1].Source)
	assert.Equal(t, "055512345;", pf.Provenance["acme"][1].Value)
}

func TestLoadMissingFile(t *testing.T) {
	pf, err := provenance.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, pf)
}
