// Package leadmerge reconciles business-lead spreadsheets that share an
// identity column but no other key.
//
// The Client works on file paths. Every operation opens all of its inputs
// before it creates any output, writes each output to a temporary file and
// publishes it only when the whole operation succeeded. The engines
// underneath work on in-memory row streams and live in pkg/setops,
// pkg/merge and pkg/classify.
//
// Example usage:
//
//	lm, err := leadmerge.New(
//	    leadmerge.WithHeader(true),
//	    leadmerge.WithKeyColumn(1),
//	    leadmerge.WithEncoding("gbk"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Leads in the master sheet that the expo sheet does not have
//	summary, err := lm.Complement(ctx, "master.csv", "expo.csv", "todo.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d rows written\n", summary.Written)
//
//	// Split leads into one file per keyword group
//	groups, _ := classify.LoadGroups("groups.yaml")
//	summary, err = lm.Partition(ctx, "todo.csv", groups, "out/", leadmerge.PartitionOptions{
//	    Columns: []int{1, 4},
//	})
package leadmerge

import (
	"context"

	"github.com/agentstation/leadmerge/pkg/classify"
)

// Client runs reconciliation operations on files.
type Client interface {
	// Complement writes the rows of base whose key is absent from subtract.
	Complement(ctx context.Context, base, subtract, out string) (*Summary, error)

	// Union writes one row per distinct key across inputs, earliest input first.
	Union(ctx context.Context, inputs []string, out string) (*Summary, error)

	// Intersect writes the rows of the first input whose key is in every input.
	Intersect(ctx context.Context, inputs []string, out string) (*Summary, error)

	// MergeRuns collapses contiguous runs of rows with the same key.
	MergeRuns(ctx context.Context, input, out string, opts MergeRunsOptions) (*Summary, error)

	// MergeSources merges inputs of different shapes with provenance tags.
	MergeSources(ctx context.Context, inputs []string, out string, opts MergeSourcesOptions) (*Summary, error)

	// Search writes the rows containing a keyword in one of the columns.
	Search(ctx context.Context, input, out string, opts SearchOptions) (*Summary, error)

	// Exclude writes the rows containing none of the keywords.
	Exclude(ctx context.Context, input, out string, opts SearchOptions) (*Summary, error)

	// Partition writes every row to the file of the first group it matches.
	Partition(ctx context.Context, input string, groups []classify.Group, outDir string, opts PartitionOptions) (*Summary, error)

	// OnComplete registers a callback run after every successful operation.
	OnComplete(fn CompleteHook)
}

// client is the default implementation of Client.
type client struct {
	config *config
	hooks  *hooks
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *client) OnComplete(fn CompleteHook) {
	c.hooks.OnComplete(fn)
}
