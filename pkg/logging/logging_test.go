package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/leadmerge/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
	assert.NotContains(t, output, "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithOperation(ctx, "union")
	ctx = logging.WithSource(ctx, "leads-a.csv")
	ctx = logging.WithGroup(ctx, "hotels")

	logging.FromContext(ctx).Info().Msg("rows written")

	testLogger.AssertContains(t, `"operation":"union"`)
	testLogger.AssertContains(t, `"source":"leads-a.csv"`)
	testLogger.AssertContains(t, `"group":"hotels"`)
	testLogger.AssertContains(t, "rows written")
}

func TestRunID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRunID(ctx, "run-123")

	assert.Equal(t, "run-123", logging.RunID(ctx))
	assert.Empty(t, logging.RunID(context.Background()))

	logging.Ctx(ctx).Info().Msg("hello")
	testLogger.AssertContains(t, `"run_id":"run-123"`)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestWithFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"key_column": 2,
		"header":     true,
		"columns":    []int{1, 3},
	})

	logging.FromContext(ctx).Info().Msg("configured")
	testLogger.AssertContains(t, `"key_column":2`)
	testLogger.AssertContains(t, `"header":true`)
	testLogger.AssertContains(t, `"columns":[1,3]`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	tests := []struct {
		name    string
		level   string
		emitted []string
		dropped []string
	}{
		{name: "debug", level: "debug", emitted: []string{"dbg", "inf"}},
		{name: "warn", level: "warn", emitted: []string{"wrn"}, dropped: []string{"inf"}},
		{name: "invalid falls back to info", level: "loud", emitted: []string{"inf"}, dropped: []string{"dbg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: path,
			})
			logger.Debug().Msg("dbg")
			logger.Info().Msg("inf")
			logger.Warn().Msg("wrn")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, s := range tt.emitted {
				assert.Contains(t, string(data), s)
			}
			for _, s := range tt.dropped {
				assert.NotContains(t, string(data), s)
			}
		})
	}
}

func TestNewLoggerFromConfigFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"app": "leadmerge"},
	})
	logger.Info().Msg("x")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"app":"leadmerge"`))
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	logging.Warn().Int("line", 3).Msg("skipping row")
	logging.Info().Msg("done")

	assert.Equal(t, 1, captured.CountLevel(zerolog.WarnLevel))
	assert.Equal(t, 2, len(captured.Lines()))
}
