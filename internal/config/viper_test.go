package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/pkg/errors"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLabels(t *testing.T) {
	resetViper(t)
	viper.Set(KeyLabels, []string{" crm ", "", "expo"})
	assert.Equal(t, []string{"crm", "expo"}, Labels())
}

func TestKeywordGroupsFromConfigFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), ".leadmerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`header: true
keyword_groups:
  Hotels: [hotel, inn]
  Factories: [works]
`), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	groups, err := KeywordGroups("")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Factories", groups[0].Name)
	assert.Equal(t, "Hotels", groups[1].Name)
	assert.Equal(t, []string{"hotel", "inn"}, groups[1].Keywords)
}

func TestKeywordGroupsFromGroupsFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte("G1: [A]\n"), 0o644))

	viper.Set(KeyGroupsFile, path)
	groups, err := KeywordGroups("")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "G1", groups[0].Name)
}

func TestKeywordGroupsMissing(t *testing.T) {
	resetViper(t)
	_, err := KeywordGroups("")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
