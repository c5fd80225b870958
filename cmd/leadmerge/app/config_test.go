package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/pkg/errors"
)

// TestLoadConfig verifies defaults when nothing is configured.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, config.KeyColumn)
	assert.Equal(t, "utf-8", config.Encoding)
	assert.Equal(t, ",", config.Comma)
	assert.False(t, config.Header)
	assert.Empty(t, config.ConfigFile)
	assert.Equal(t, "auto", config.LogFormat)
}

// TestLoadConfig_File verifies the config file in the working directory is read.
func TestLoadConfig_File(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".leadmerge.yaml", `header: true
key_column: 1
encoding: gbk
labels: [CRM, Expo]
`)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.Header)
	assert.Equal(t, 1, config.KeyColumn)
	assert.Equal(t, "gbk", config.Encoding)
	assert.Equal(t, []string{"CRM", "Expo"}, config.Labels)
	assert.NotEmpty(t, config.ConfigFile)
}

// TestLoadConfig_EnvOverridesFile verifies environment precedence.
func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".leadmerge.yaml", "key_column: 1\n")
	t.Setenv("LEADMERGE_KEY_COLUMN", "3")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, config.KeyColumn)
}

// TestLoadConfig_DotEnv verifies .env files feed the environment.
func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".env", "LEADMERGE_SHEET=Leads\n")
	// Registered for restore, then removed so godotenv may set it
	t.Setenv("LEADMERGE_SHEET", "")
	require.NoError(t, os.Unsetenv("LEADMERGE_SHEET"))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Leads", config.Sheet)
}

// TestLoadConfig_Malformed verifies a broken config file is reported.
func TestLoadConfig_Malformed(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".leadmerge.yaml", "key_column: [1\n")

	_, err := LoadConfig()
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

// TestReadConfigFile_Explicit verifies an explicit missing file is an error.
func TestReadConfigFile_Explicit(t *testing.T) {
	dir := isolate(t)

	err := readConfigFile(dir + "/missing.yaml")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
