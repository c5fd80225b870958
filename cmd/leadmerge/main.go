// Package main provides the entry point for the leadmerge CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/leadmerge/cmd/leadmerge/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancelling on a signal discards the outputs of the running operation
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Logger().Debug().Err(err).Msg("Command failed")
		cancel()
		app.ExitOnError(err)
	}
}
