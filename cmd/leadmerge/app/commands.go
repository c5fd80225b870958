package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge/cmd/leadmerge/cmd/classify"
	"github.com/agentstation/leadmerge/cmd/leadmerge/cmd/completion"
	"github.com/agentstation/leadmerge/cmd/leadmerge/cmd/merge"
	"github.com/agentstation/leadmerge/cmd/leadmerge/cmd/sets"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Set operations
	rootCmd.AddCommand(sets.NewComplementCommand(a))
	rootCmd.AddCommand(sets.NewUnionCommand(a))
	rootCmd.AddCommand(sets.NewIntersectCommand(a))

	// Merge
	rootCmd.AddCommand(merge.NewCommand(a))

	// Keyword commands
	rootCmd.AddCommand(classify.NewSearchCommand(a))
	rootCmd.AddCommand(classify.NewExcludeCommand(a))
	rootCmd.AddCommand(classify.NewPartitionCommand(a))

	// Utility commands
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("leadmerge %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
