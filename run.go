package leadmerge

import (
	"context"
	"time"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
	"github.com/agentstation/leadmerge/pkg/save"
	"github.com/agentstation/leadmerge/pkg/sources"
)

// operation is the engine part of a run: it reads srcs and writes dests.
type operation func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error

// run opens every input, creates every output, runs op and publishes the
// outputs. On any failure nothing is published.
func (c *client) run(ctx context.Context, name string, inputs, outputs []string, op operation) (*Summary, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With().Str("run", name).Logger()

	if len(inputs) == 0 {
		return nil, errors.NewValidationError("inputs", 0, name+" requires at least one input")
	}
	for _, out := range outputs {
		if out == "" {
			return nil, errors.NewValidationError("output", out, "output path must not be empty")
		}
	}

	srcs, err := sources.OpenAll(inputs, c.config.sourceOptions()...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sources.CloseAll(srcs); err != nil {
			logger.Warn().Err(err).Msg("Closing inputs failed")
		}
	}()

	dests := make([]save.Destination, 0, len(outputs))
	for _, out := range outputs {
		d, err := save.Create(c.config.saveOptions(out)...)
		if err != nil {
			_ = save.AbortAll(dests...)
			return nil, err
		}
		dests = append(dests, d)
	}

	summary := &Summary{
		RunID:     logging.RunID(ctx),
		Operation: name,
		Inputs:    inputs,
		Outputs:   outputs,
	}
	err = op(ctx, sources.Readers(srcs), dests, summary)
	pending := make([]save.Publisher, 0, len(dests)+len(summary.staged))
	for _, d := range dests {
		pending = append(pending, d)
	}
	pending = append(pending, summary.staged...)
	if err != nil {
		if abortErr := save.AbortAll(pending...); abortErr != nil {
			logger.Warn().Err(abortErr).Msg("Discarding outputs failed")
		}
		return nil, err
	}
	if err := save.CommitAll(pending...); err != nil {
		return nil, err
	}
	summary.staged = nil
	summary.Duration = time.Since(start)

	logger.Info().
		Strs("outputs", outputs).
		Int("written", summary.Written).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.Duration).
		Msg("Outputs published")

	c.hooks.triggerComplete(summary)
	return summary, nil
}
