// Package classify provides the keyword commands: search, exclude and
// partition.
package classify

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/cmdutil"
	"github.com/agentstation/leadmerge/internal/cmd/output"
	"github.com/agentstation/leadmerge/pkg/classify"
	"github.com/agentstation/leadmerge/pkg/errors"
)

const (
	flagOut      = "out"
	flagColumns  = "columns"
	flagKeywords = "keyword"
	flagGroup    = "group"
)

// filterFlags are shared by search and exclude.
type filterFlags struct {
	out      string
	columns  []int
	keywords []string
	group    string
}

func (f *filterFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.out, flagOut, "", "output file (.csv or .xlsx)")
	cmdutil.AddColumnsFlag(cmd, &f.columns, flagColumns, "c", "zero-based columns searched, in order")
	cmd.Flags().StringSliceVarP(&f.keywords, flagKeywords, "w", nil, "keyword to look for (repeatable)")
	cmd.Flags().StringVar(&f.group, flagGroup, "", "use the keywords of this configured keyword group")
	cmd.Flags().String(cmdutil.FlagGroups, "", "keyword group file (default: keyword_groups in the config file)")
	_ = cmd.MarkFlagRequired(flagOut)
	_ = cmd.MarkFlagRequired(flagColumns)
	cmd.MarkFlagsMutuallyExclusive(flagKeywords, flagGroup)
}

// options resolves the keywords from the flags or the named group.
func (f *filterFlags) options(app appcontext.Interface) (leadmerge.SearchOptions, error) {
	keywords := f.keywords
	if f.group != "" {
		groups, err := app.KeywordGroups("")
		if err != nil {
			return leadmerge.SearchOptions{}, err
		}
		g, err := classify.Find(groups, f.group)
		if err != nil {
			return leadmerge.SearchOptions{}, err
		}
		keywords = g.Keywords
	}
	if len(keywords) == 0 {
		return leadmerge.SearchOptions{}, errors.NewValidationError(flagKeywords, keywords, "pass --keyword or --group")
	}
	return leadmerge.SearchOptions{Columns: f.columns, Keywords: keywords}, nil
}

type filterFunc func(lm leadmerge.Client, ctx context.Context, input, out string, opts leadmerge.SearchOptions) (*leadmerge.Summary, error)

func runFilter(app appcontext.Interface, f *filterFlags, fn filterFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := f.options(app)
		if err != nil {
			return err
		}
		lm, err := app.Client()
		if err != nil {
			return err
		}
		summary, err := fn(lm, cmd.Context(), args[0], f.out, opts)
		if err != nil {
			return err
		}
		return output.Emit(cmd.OutOrStdout(), app, summary)
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(app appcontext.Interface) *cobra.Command {
	f := &filterFlags{}
	cmd := &cobra.Command{
		Use:     "search FILE --columns C... --keyword K... --out FILE",
		GroupID: "classify",
		Short:   "Write the rows containing a keyword",
		Long: `Search writes every row that contains one of the keywords as a
substring of one of the searched columns. Each row is written at most
once, in input order. Matching is case-sensitive.`,
		Example: `  leadmerge search leads.csv -c 1 -w hotel -w inn --out hotels.csv
  leadmerge search leads.csv -c 1,4 --group Hotels --out hotels.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runFilter(app, f, leadmerge.Client.Search),
	}
	f.add(cmd)
	return cmd
}

// NewExcludeCommand creates the exclude command.
func NewExcludeCommand(app appcontext.Interface) *cobra.Command {
	f := &filterFlags{}
	cmd := &cobra.Command{
		Use:     "exclude FILE --columns C... --keyword K... --out FILE",
		GroupID: "classify",
		Short:   "Write the rows containing none of the keywords",
		Long: `Exclude writes every row that contains none of the keywords in any
of the searched columns. It is the complement of search over the same
input.`,
		Example: `  leadmerge exclude leads.csv -c 1 -w agency -w broker --out direct.csv`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFilter(app, f, leadmerge.Client.Exclude),
	}
	f.add(cmd)
	return cmd
}
