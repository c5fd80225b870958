package merge

import (
	"context"

	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/phone"
	"github.com/agentstation/leadmerge/pkg/records"
)

// AdjacentOptions configures AdjacentRuns.
type AdjacentOptions struct {
	// KeyColumn is the identity column rows are grouped by.
	KeyColumn int

	// ContactColumns are the two contact columns accumulated across a run.
	ContactColumns [2]int

	// Consolidate combines both accumulated columns into the first one with
	// the phone consolidator and clears the second.
	Consolidate bool
}

// AdjacentResult is the outcome of AdjacentRuns.
type AdjacentResult struct {
	Rows    int // data rows read
	Written int // groups written
	Skipped int // rows dropped as undecodable
}

// run is the group being accumulated. It is replaced, never reset, when the
// identity value changes.
type run struct {
	key    string
	base   records.Row
	first  string
	second string
	size   int
}

func (g *run) add(row records.Row, c1, c2 records.Column) {
	g.first = phone.Append(g.first, row[c1])
	g.second = phone.Append(g.second, row[c2])
	g.size++
}

func (g *run) row(c1, c2 records.Column, consolidate bool) records.Row {
	out := g.base.Clone()
	if consolidate {
		out[c1] = phone.Consolidate(g.first, g.second)
		out[c2] = ""
		return out
	}
	out[c1] = g.first
	out[c2] = g.second
	return out
}

// AdjacentRuns merges contiguous runs of rows that share an identity value
// into one row per run. The written row is the first row of the run with its
// two contact columns replaced by every contact value seen in the run.
//
// Rows are not reordered: a key that appears in two separate runs produces
// two output rows.
func AdjacentRuns(ctx context.Context, r records.Reader, w records.Writer, opts AdjacentOptions) (*AdjacentResult, error) {
	cols, err := records.Columns("columns", opts.KeyColumn, opts.ContactColumns[0], opts.ContactColumns[1])
	if err != nil {
		return nil, err
	}
	key, c1, c2 := cols[0], cols[1], cols[2]

	ctx = logging.WithOperation(ctx, "merge-runs")
	logger := logging.FromContext(ctx)

	if err := records.WriteHeader(r, w); err != nil {
		return nil, err
	}

	result := &AdjacentResult{}
	var current *run
	finalize := func() error {
		if current == nil {
			return nil
		}
		if err := w.Write(current.row(c1, c2, opts.Consolidate)); err != nil {
			return err
		}
		result.Written++
		return w.Flush()
	}

	skipped, err := records.Each(ctx, r, func(line int, row records.Row) error {
		k, err := fields(r.Name(), line, row, key, c1, c2)
		if err != nil {
			result.Skipped++
			logger.Warn().
				Err(err).
				Str("source", r.Name()).
				Int("line", line).
				Msg("Skipping row without identity or contact columns")
			return nil
		}
		result.Rows++

		if current != nil && current.key == k {
			current.add(row, c1, c2)
			return nil
		}
		if err := finalize(); err != nil {
			return err
		}
		current = &run{key: k, base: row}
		current.add(row, c1, c2)
		return nil
	})
	result.Skipped += skipped
	if err != nil {
		return nil, err
	}
	if err := finalize(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", r.Name()).
		Int("rows", result.Rows).
		Int("written", result.Written).
		Int("skipped", result.Skipped).
		Msg("Adjacent runs merged")
	return result, nil
}

// fields checks that row reaches every column and returns the identity value.
func fields(source string, line int, row records.Row, key records.Column, others ...records.Column) (string, error) {
	k, err := key.Get(source, line, row)
	if err != nil {
		return "", err
	}
	for _, c := range others {
		if _, err := c.Get(source, line, row); err != nil {
			return "", err
		}
	}
	return k, nil
}
