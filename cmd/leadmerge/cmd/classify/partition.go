package classify

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/cmdutil"
	"github.com/agentstation/leadmerge/internal/cmd/output"
)

// NewPartitionCommand creates the partition command.
func NewPartitionCommand(app appcontext.Interface) *cobra.Command {
	var (
		outDir    string
		columns   []int
		remainder string
		ext       string
	)
	cmd := &cobra.Command{
		Use:     "partition FILE --columns C... --out-dir DIR",
		GroupID: "classify",
		Short:   "Split rows into one file per keyword group",
		Long: `Partition writes every row to the file of the first keyword group,
in name order, that matches it. A row is written to at most one group;
keys that repeat in the input keep only their last row.

Groups come from --groups or from the keyword_groups section of the
config file:

  keyword_groups:
    Hotels: [hotel, inn]
    Factories: [works, plant]`,
		Example: `  leadmerge partition leads.csv -c 1,4 --out-dir split/
  leadmerge partition leads.csv -c 1 --groups groups.yaml --remainder other.csv --out-dir split/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := app.KeywordGroups("")
			if err != nil {
				return err
			}
			lm, err := app.Client()
			if err != nil {
				return err
			}
			summary, err := lm.Partition(cmd.Context(), args[0], groups, outDir, leadmerge.PartitionOptions{
				Columns:   columns,
				Remainder: remainder,
				Extension: ext,
			})
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory receiving one file per group")
	cmdutil.AddColumnsFlag(cmd, &columns, flagColumns, "c", "zero-based columns searched, in order")
	cmd.Flags().StringVar(&remainder, "remainder", "", "file name, inside --out-dir, for rows matching no group")
	cmd.Flags().StringVar(&ext, "ext", ".csv", "extension of the group files: .csv or .xlsx")
	cmd.Flags().String(cmdutil.FlagGroups, "", "keyword group file (default: keyword_groups in the config file)")
	_ = cmd.MarkFlagRequired("out-dir")
	_ = cmd.MarkFlagRequired(flagColumns)

	return cmd
}
