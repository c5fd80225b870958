package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/output"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// NewRunsCommand creates the merge runs command.
func NewRunsCommand(app appcontext.Interface) *cobra.Command {
	var (
		out         string
		contact     []int
		consolidate bool
	)
	cmd := &cobra.Command{
		Use:   "runs FILE --out FILE --contact C1,C2",
		Short: "Collapse contiguous rows with the same key",
		Long: `Runs merges every contiguous run of rows sharing an identity value
into the first row of the run. Its two contact columns receive every
contact value seen in the run, each terminated by ";".

Sort the input by the identity column first: a key that appears in two
separate runs produces two rows.`,
		Example: `  leadmerge merge runs sorted.csv --contact 3,4 --out merged.csv
  leadmerge merge runs sorted.csv --contact 3,4 --consolidate --out merged.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(contact) != 2 {
				return errors.NewValidationError(flagContact, contact, "exactly two contact columns are required")
			}
			lm, err := app.Client()
			if err != nil {
				return err
			}
			summary, err := lm.MergeRuns(cmd.Context(), args[0], out, leadmerge.MergeRunsOptions{
				ContactColumns: [2]int{contact[0], contact[1]},
				Consolidate:    consolidate,
			})
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}

	cmd.Flags().StringVar(&out, flagOut, "", "output file (.csv or .xlsx)")
	cmd.Flags().IntSliceVar(&contact, flagContact, nil, "the two zero-based contact columns")
	cmd.Flags().BoolVar(&consolidate, flagConsolidate, false, "combine both contact columns into the first, mobile numbers first")
	_ = cmd.MarkFlagRequired(flagOut)
	_ = cmd.MarkFlagRequired(flagContact)

	return cmd
}
