// Package sets provides the complement, union and intersect commands.
package sets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/output"
)

const flagOut = "out"

// NewComplementCommand creates the complement command.
func NewComplementCommand(app appcontext.Interface) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "complement BASE SUBTRACT --out FILE",
		GroupID: "sets",
		Short:   "Write the rows of BASE whose key is not in SUBTRACT",
		Long: `Complement writes every row of BASE whose identity value does not
occur in SUBTRACT. Rows keep the order of BASE. When a key repeats in
BASE, the last row for that key is kept, at the position the key first
appeared.`,
		Example: `  leadmerge complement master.csv called.csv --out todo.csv
  leadmerge complement master.xlsx called.csv -k 1 -H --out todo.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Client()
			if err != nil {
				return err
			}
			summary, err := lm.Complement(cmd.Context(), args[0], args[1], out)
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}
	addOutFlag(cmd, &out)
	return cmd
}

// NewUnionCommand creates the union command.
func NewUnionCommand(app appcontext.Interface) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "union FILE... --out FILE",
		GroupID: "sets",
		Short:   "Write one row per key across all inputs",
		Long: `Union writes one row per distinct identity value across the inputs.
The first row seen for a key wins, so earlier inputs take precedence.`,
		Example: `  leadmerge union crm.csv expo.csv web.xlsx --out all.csv`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Client()
			if err != nil {
				return err
			}
			summary, err := lm.Union(cmd.Context(), args, out)
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}
	addOutFlag(cmd, &out)
	return cmd
}

// NewIntersectCommand creates the intersect command.
func NewIntersectCommand(app appcontext.Interface) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "intersect FILE... --out FILE",
		GroupID: "sets",
		Short:   "Write the rows of the first input whose key is in every input",
		Example: `  leadmerge intersect crm.csv expo.csv --out both.csv`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Client()
			if err != nil {
				return err
			}
			summary, err := lm.Intersect(cmd.Context(), args, out)
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}
	addOutFlag(cmd, &out)
	return cmd
}

func addOutFlag(cmd *cobra.Command, out *string) {
	cmd.Flags().StringVar(out, flagOut, "", "output file (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired(flagOut)
}
