package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge/internal/cmd/cmdutil"
	"github.com/agentstation/leadmerge/internal/cmd/hints"
	"github.com/agentstation/leadmerge/internal/cmd/output"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Execute runs the leadmerge CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "leadmerge",
		Short:   "Reconcile business-lead spreadsheets",
		Version: a.version,
		Long: `leadmerge reconciles CSV and XLSX lead lists that identify the same
company by one column, such as its registered name.

It subtracts, unions and intersects lists by that column, merges rows
that describe the same company, and splits lists by keyword groups.
Every output is written to a temporary file and published only when
the whole operation succeeded.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "sets",
		Title: "Set Operations:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "merge",
		Title: "Merge Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "classify",
		Title: "Keyword Commands:",
	})

	rootCmd.PersistentFlags().AddFlagSet(cmdutil.GlobalFlagSet())
	rootCmd.PersistentFlags().AddFlagSet(cmdutil.SourceFlagSet())

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("leadmerge {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. Parsed flags override
// the environment and the config file, so the configuration is rebuilt
// from viper once they are bound.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if err := cmdutil.Bind(cmd); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup(cmdutil.FlagConfig); f != nil && f.Changed {
		if err := readConfigFile(f.Value.String()); err != nil {
			return err
		}
	}
	config := configFromViper()
	if _, err := output.ParseFormat(config.Format); err != nil {
		return errors.NewValidationError(cmdutil.FlagFormat, config.Format, err.Error())
	}
	a.setConfig(config)

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(a.runContext(cmd.Context()))
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		hints.Write(os.Stderr, err)
		os.Exit(1)
	}
}
