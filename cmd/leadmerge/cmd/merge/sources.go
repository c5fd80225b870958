package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/output"
)

// NewSourcesCommand creates the merge sources command.
func NewSourcesCommand(app appcontext.Interface) *cobra.Command {
	var (
		out            string
		contact        int
		contactColumns []int
		provColumn     int
		labels         []string
		consolidate    bool
		provFile       string
	)
	cmd := &cobra.Command{
		Use:   "sources FILE FILE... --out FILE",
		Short: "Merge files of different shapes and label each row's sources",
		Long: `Sources indexes the first file, then streams every later file
against it. A row whose key is already indexed is merged into the
indexed row: the provenance column receives the labels of both files
joined by "；" and the contact column receives the incoming value.
Merged rows are written as they happen; rows that never merged follow
at the end.

Rows are padded or truncated to the width of the first file.`,
		Example: `  leadmerge merge sources crm.csv expo.csv --contact 2 --provenance-column 6 --out merged.csv
  leadmerge merge sources crm.csv expo.xlsx --labels CRM,Expo --contact-columns 2,1 --out merged.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				lm  leadmerge.Client
				err error
			)
			if cmd.Flags().Changed("labels") {
				lm, err = app.ClientWithOptions(leadmerge.WithLabels(labels...))
			} else {
				lm, err = app.Client()
			}
			if err != nil {
				return err
			}

			summary, err := lm.MergeSources(cmd.Context(), args, out, leadmerge.MergeSourcesOptions{
				ProvenanceColumn: provColumn,
				ContactColumn:    contact,
				ContactColumns:   contactColumns,
				Consolidate:      consolidate,
				ProvenanceFile:   provFile,
			})
			if err != nil {
				return err
			}
			return output.Emit(cmd.OutOrStdout(), app, summary)
		},
	}

	cmd.Flags().StringVar(&out, flagOut, "", "output file (.csv or .xlsx)")
	cmd.Flags().IntVar(&contact, flagContact, 1, "zero-based contact column")
	cmd.Flags().IntSliceVar(&contactColumns, "contact-columns", nil, "contact column of each input's rows, by position (default: --contact)")
	cmd.Flags().IntVar(&provColumn, "provenance-column", 2, "zero-based column receiving the source labels")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, `source labels by position (default: config labels, then "source A", "source B", ...)`)
	cmd.Flags().BoolVar(&consolidate, flagConsolidate, false, "consolidate old and new contact values instead of replacing")
	cmd.Flags().StringVar(&provFile, "provenance-file", "", "write per-key provenance as YAML to this path")
	_ = cmd.MarkFlagRequired(flagOut)

	return cmd
}
