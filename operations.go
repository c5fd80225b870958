package leadmerge

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agentstation/leadmerge/pkg/classify"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/merge"
	"github.com/agentstation/leadmerge/pkg/provenance"
	"github.com/agentstation/leadmerge/pkg/records"
	"github.com/agentstation/leadmerge/pkg/save"
	"github.com/agentstation/leadmerge/pkg/setops"
)

// MergeRunsOptions configures MergeRuns.
type MergeRunsOptions struct {
	ContactColumns [2]int
	Consolidate    bool
}

// MergeSourcesOptions configures MergeSources.
type MergeSourcesOptions struct {
	ProvenanceColumn int
	ContactColumn    int

	// ContactColumns overrides, per input, the contact column of that
	// input's rows. Inputs without an entry use ContactColumn.
	ContactColumns []int

	Consolidate bool

	// ProvenanceFile, when set, receives the per-key provenance as YAML.
	ProvenanceFile string
}

// SearchOptions configures Search and Exclude.
type SearchOptions struct {
	Columns  []int
	Keywords []string
}

// PartitionOptions configures Partition.
type PartitionOptions struct {
	Columns []int

	// Remainder names the file, inside the output directory, that receives
	// rows matching no group. Empty means unmatched rows are dropped.
	Remainder string

	// Extension of the group files, ".csv" when empty.
	Extension string
}

func (c *client) setopsOptions() setops.Options {
	return setops.Options{KeyColumn: c.config.keyColumn}
}

func (c *client) Complement(ctx context.Context, base, subtract, out string) (*Summary, error) {
	return c.run(ctx, "complement", []string{base, subtract}, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			res, err := setops.Complement(ctx, srcs[0], srcs[1], dests[0], c.setopsOptions())
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			return nil
		})
}

func (c *client) Union(ctx context.Context, inputs []string, out string) (*Summary, error) {
	return c.run(ctx, "union", inputs, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			res, err := setops.Union(ctx, srcs, dests[0], c.setopsOptions())
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			for i, n := range res.Contributed {
				s.add(inputs[i], n)
			}
			if len(inputs) == 2 {
				s.add("new", res.New)
			}
			return nil
		})
}

func (c *client) Intersect(ctx context.Context, inputs []string, out string) (*Summary, error) {
	return c.run(ctx, "intersect", inputs, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			res, err := setops.Intersection(ctx, srcs, dests[0], c.setopsOptions())
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			return nil
		})
}

func (c *client) MergeRuns(ctx context.Context, input, out string, opts MergeRunsOptions) (*Summary, error) {
	return c.run(ctx, "merge-runs", []string{input}, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			res, err := merge.AdjacentRuns(ctx, srcs[0], dests[0], merge.AdjacentOptions{
				KeyColumn:      c.config.keyColumn,
				ContactColumns: opts.ContactColumns,
				Consolidate:    opts.Consolidate,
			})
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			s.add("rows", res.Rows)
			return nil
		})
}

func (c *client) MergeSources(ctx context.Context, inputs []string, out string, opts MergeSourcesOptions) (*Summary, error) {
	return c.run(ctx, "merge-sources", inputs, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			in := make([]merge.Source, len(srcs))
			for i, src := range srcs {
				in[i] = merge.Source{Reader: src, ContactColumn: opts.ContactColumn}
				if i < len(opts.ContactColumns) {
					in[i].ContactColumn = opts.ContactColumns[i]
				}
				if i < len(c.config.labels) {
					in[i].Label = c.config.labels[i]
				}
			}

			res, err := merge.CrossSource(ctx, in, dests[0], merge.CrossOptions{
				KeyColumn:        c.config.keyColumn,
				ProvenanceColumn: opts.ProvenanceColumn,
				ContactColumn:    opts.ContactColumn,
				Consolidate:      opts.Consolidate,
			})
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			s.add("merged", res.Merged)
			s.add("new", res.New)
			s.add("unmerged", res.Unmerged)
			s.Provenance = provenance.GenerateReport(res.Provenance.Map())

			if opts.ProvenanceFile == "" {
				return nil
			}
			f, err := save.CreateFile(opts.ProvenanceFile)
			if err != nil {
				return err
			}
			s.stage(f)
			return provenance.Write(f, res.Provenance.Map())
		})
}

func (c *client) Search(ctx context.Context, input, out string, opts SearchOptions) (*Summary, error) {
	return c.filter(ctx, "search", input, out, opts, classify.Search)
}

func (c *client) Exclude(ctx context.Context, input, out string, opts SearchOptions) (*Summary, error) {
	return c.filter(ctx, "exclude", input, out, opts, classify.Exclude)
}

type filterFunc func(context.Context, records.Reader, records.Writer, classify.SearchOptions) (*classify.SearchResult, error)

func (c *client) filter(ctx context.Context, name, input, out string, opts SearchOptions, fn filterFunc) (*Summary, error) {
	return c.run(ctx, name, []string{input}, []string{out},
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			res, err := fn(ctx, srcs[0], dests[0], classify.SearchOptions{
				Columns:  opts.Columns,
				Keywords: opts.Keywords,
			})
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Written, res.Skipped
			s.add("matched", res.Matched)
			for _, k := range opts.Keywords {
				if n := res.Hits[k]; n > 0 {
					s.add(k, n)
				}
			}
			return nil
		})
}

func (c *client) Partition(ctx context.Context, input string, groups []classify.Group, outDir string, opts PartitionOptions) (*Summary, error) {
	if len(groups) == 0 {
		return nil, errors.NewValidationError("keyword_groups", 0, "partition requires at least one group")
	}
	ext := opts.Extension
	if ext == "" {
		ext = ".csv"
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	outputs := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		outputs = append(outputs, filepath.Join(outDir, FileName(g.Name)+ext))
	}
	if opts.Remainder != "" {
		outputs = append(outputs, filepath.Join(outDir, opts.Remainder))
	}
	if err := distinctOutputs(outputs); err != nil {
		return nil, err
	}

	return c.run(ctx, "partition", []string{input}, outputs,
		func(ctx context.Context, srcs []records.Reader, dests []save.Destination, s *Summary) error {
			ds := make([]classify.Destination, len(groups))
			for i, g := range groups {
				ds[i] = classify.Destination{Group: g, Writer: dests[i]}
			}
			po := classify.PartitionOptions{KeyColumn: c.config.keyColumn, Columns: opts.Columns}
			if opts.Remainder != "" {
				po.Remainder = dests[len(groups)]
			}

			res, err := classify.Partition(ctx, srcs[0], ds, po)
			if err != nil {
				return err
			}
			s.Written, s.Skipped = res.Assigned, res.Skipped
			for _, name := range res.Order {
				s.add(name, res.Counts[name])
			}
			s.add("unassigned", res.Unassigned)
			return nil
		})
}

// distinctOutputs rejects outputs that resolve to the same file, which would
// otherwise overwrite each other on publish.
func distinctOutputs(outputs []string) error {
	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		p := filepath.Clean(out)
		if seen[p] {
			return errors.NewValidationError("output", out, "two destinations resolve to the same file; rename a keyword group or the remainder")
		}
		seen[p] = true
	}
	return nil
}

// FileName turns a group name into a safe file name.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}
