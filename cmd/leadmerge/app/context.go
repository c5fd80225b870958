package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/agentstation/leadmerge/pkg/logging"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. A cancelled run discards its
// outputs.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// runContext attaches the application logger and a fresh run id to ctx.
func (a *App) runContext(ctx context.Context) context.Context {
	ctx = logging.WithLogger(ctx, a.logger)
	return logging.WithRunID(ctx, uuid.NewString())
}
