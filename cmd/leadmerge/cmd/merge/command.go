// Package merge provides the merge command and its runs and sources
// subcommands.
package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge/internal/appcontext"
)

const (
	flagOut         = "out"
	flagContact     = "contact"
	flagConsolidate = "consolidate"
)

// NewCommand creates the merge command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merge",
		GroupID: "merge",
		Short:   "Merge rows that describe the same company",
		Long: `Merge combines rows that share an identity value.

Available subcommands:
  runs      - collapse contiguous runs of one sorted file
  sources   - merge files of different shapes with provenance labels`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewRunsCommand(app))
	cmd.AddCommand(NewSourcesCommand(app))

	return cmd
}
