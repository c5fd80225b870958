// Package classify selects and partitions rows by keyword.
//
// A keyword matches a field when the field contains it as a substring. Columns
// are tried in the order given and keywords in the order given; the first hit
// decides, and nothing after it is examined.
package classify

import (
	"context"
	"fmt"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/index"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
)

// SearchOptions configures Search and Exclude.
type SearchOptions struct {
	// Columns are the zero-based columns searched, in order.
	Columns []int

	// Keywords is the flat keyword list, tried in order.
	Keywords []string
}

// SearchResult is the outcome of Search and Exclude.
type SearchResult struct {
	Rows    int // decodable rows read
	Matched int // rows containing a keyword
	Written int // rows written
	Skipped int // rows dropped as undecodable

	// Hits counts, per keyword, the rows that keyword decided.
	Hits map[string]int
}

// matcher holds validated search columns and keywords.
type matcher struct {
	columns  []records.Column
	keywords []string
}

func newMatcher(columns []int, keywords []string) (*matcher, error) {
	cols, err := records.Columns("search_columns", columns...)
	if err != nil {
		return nil, err
	}
	if err := validateKeywords("keywords", keywords); err != nil {
		return nil, err
	}
	return &matcher{columns: cols, keywords: keywords}, nil
}

// check returns an error when row does not reach every searched column.
func (m *matcher) check(source string, line int, row records.Row) error {
	for _, c := range m.columns {
		if _, err := c.Get(source, line, row); err != nil {
			return err
		}
	}
	return nil
}

// match returns the deciding keyword. row must have passed check.
func (m *matcher) match(row records.Row) (string, bool) {
	for _, c := range m.columns {
		if k, ok := Match(row[c], m.keywords); ok {
			return k, true
		}
	}
	return "", false
}

// Search writes every row that contains a keyword in one of the searched
// columns. A row is written at most once.
func Search(ctx context.Context, r records.Reader, w records.Writer, opts SearchOptions) (*SearchResult, error) {
	return filter(logging.WithOperation(ctx, "search"), r, w, opts, true)
}

// Exclude writes every row that contains none of the keywords in any of the
// searched columns. It is the complement of Search over the same input.
func Exclude(ctx context.Context, r records.Reader, w records.Writer, opts SearchOptions) (*SearchResult, error) {
	return filter(logging.WithOperation(ctx, "exclude"), r, w, opts, false)
}

func filter(ctx context.Context, r records.Reader, w records.Writer, opts SearchOptions, keep bool) (*SearchResult, error) {
	m, err := newMatcher(opts.Columns, opts.Keywords)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	if err := records.WriteHeader(r, w); err != nil {
		return nil, err
	}

	result := &SearchResult{Hits: make(map[string]int)}
	skipped, err := records.Each(ctx, r, func(line int, row records.Row) error {
		if err := m.check(r.Name(), line, row); err != nil {
			result.Skipped++
			logger.Warn().
				Err(err).
				Str("source", r.Name()).
				Int("line", line).
				Msg("Skipping row without search column")
			return nil
		}
		result.Rows++

		keyword, hit := m.match(row)
		if hit {
			result.Matched++
			result.Hits[keyword]++
			logger.Debug().Str("keyword", keyword).Int("line", line).Msg("Keyword matched")
		}
		if hit != keep {
			return nil
		}
		if err := w.Write(row); err != nil {
			return err
		}
		result.Written++
		return w.Flush()
	})
	result.Skipped += skipped
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", r.Name()).
		Int("rows", result.Rows).
		Int("matched", result.Matched).
		Int("written", result.Written).
		Msg("Keyword filter finished")
	return result, nil
}

// Destination pairs a keyword group with the writer receiving its rows.
type Destination struct {
	Group  Group
	Writer records.Writer
}

// PartitionOptions configures Partition.
type PartitionOptions struct {
	// KeyColumn is the identity column the row pool is indexed by.
	KeyColumn int

	// Columns are the zero-based columns searched, in order.
	Columns []int

	// Remainder, when set, receives the rows no group matched.
	Remainder records.Writer
}

// PartitionResult is the outcome of Partition.
type PartitionResult struct {
	Rows       int // rows in the pool after identity deduplication
	Assigned   int // rows written to a group destination
	Unassigned int // rows left in the pool after every group
	Skipped    int // rows dropped as undecodable

	// Counts maps group name to the number of rows assigned to it.
	Counts map[string]int

	// Order lists group names in processing order.
	Order []string
}

// Partition assigns every row of r to at most one destination. Destinations
// are processed in the order given; each one takes the rows of the current
// pool that match its group and removes them from the pool, so a row lands in
// the earliest matching group only.
func Partition(ctx context.Context, r records.Reader, dests []Destination, opts PartitionOptions) (*PartitionResult, error) {
	if len(dests) == 0 {
		return nil, errors.NewValidationError("keyword_groups", 0, "partition requires at least one group")
	}
	key := records.Column(opts.KeyColumn)
	if err := key.Validate("key_column"); err != nil {
		return nil, err
	}
	cols, err := records.Columns("search_columns", opts.Columns...)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(dests))
	for _, d := range dests {
		if err := d.Group.Validate(); err != nil {
			return nil, err
		}
		if d.Writer == nil {
			return nil, errors.NewValidationError("destinations", d.Group.Name, "group has no destination")
		}
		if seen[d.Group.Name] {
			return nil, errors.NewValidationError("keyword_groups", d.Group.Name,
				fmt.Sprintf("group %s listed twice", d.Group.Name))
		}
		seen[d.Group.Name] = true
	}

	ctx = logging.WithOperation(ctx, "partition")
	logger := logging.FromContext(ctx)

	checker := &matcher{columns: cols}
	pool := index.New(key)
	short := 0
	stats, err := index.Scan(ctx, r, key, func(line int, k string, row records.Row) error {
		if err := checker.check(r.Name(), line, row); err != nil {
			short++
			logger.Warn().
				Err(err).
				Str("source", r.Name()).
				Int("line", line).
				Str("key", k).
				Msg("Skipping row without search column")
			return nil
		}
		pool.Put(k, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result := &PartitionResult{
		Rows:    pool.Len(),
		Skipped: stats.Skipped + short,
		Counts:  make(map[string]int, len(dests)),
	}

	writers := make([]records.Writer, 0, len(dests)+1)
	for _, d := range dests {
		writers = append(writers, d.Writer)
	}
	writers = append(writers, opts.Remainder)
	if err := records.WriteHeader(r, writers...); err != nil {
		return nil, err
	}

	for _, d := range dests {
		m := &matcher{columns: cols, keywords: d.Group.Keywords}
		glog := logging.FromContext(logging.WithGroup(ctx, d.Group.Name))

		var matched []string
		err := pool.Each(func(k string, row records.Row) error {
			if _, ok := m.match(row); !ok {
				return nil
			}
			if err := d.Writer.Write(row); err != nil {
				return err
			}
			if err := d.Writer.Flush(); err != nil {
				return err
			}
			matched = append(matched, k)
			return nil
		})
		if err != nil {
			return nil, err
		}

		for _, k := range matched {
			if !pool.Delete(k) {
				glog.Warn().
					Err(&errors.MissingKeyError{Operation: "partition", Key: k}).
					Msg("Matched row missing from pool")
			}
		}
		result.Counts[d.Group.Name] = len(matched)
		result.Order = append(result.Order, d.Group.Name)
		result.Assigned += len(matched)
		glog.Debug().
			Int("matched", len(matched)).
			Int("remaining", pool.Len()).
			Msg("Group assigned")
	}

	result.Unassigned = pool.Len()
	if opts.Remainder != nil {
		if _, err := pool.WriteTo(opts.Remainder); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("source", r.Name()).
		Int("groups", len(dests)).
		Int("assigned", result.Assigned).
		Int("unassigned", result.Unassigned).
		Msg("Partition finished")
	return result, nil
}
