// Package setops computes complement, union and intersection of sources that
// are keyed by an identity column.
//
// All three operations materialize identity indexes in memory and write their
// output in source order. The header of the governing source (the base source
// for complement, the first source otherwise) is copied before any data row.
package setops

import (
	"context"
	"fmt"

	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/index"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
)

// Options configures a set operation.
type Options struct {
	// KeyColumn is the zero-based identity column shared by every source.
	KeyColumn int
}

// Result is the outcome of Complement and Intersection.
type Result struct {
	Written int // data rows written
	Skipped int // rows dropped as undecodable across all sources
}

// UnionResult is the outcome of Union.
type UnionResult struct {
	Written int // data rows written, one per distinct key
	Skipped int

	// Contributed counts, per source, the keys that source saw first.
	Contributed []int

	// New is the number of keys only the second source brought in. It is
	// set only when exactly two sources are unioned.
	New int
}

func validate(op string, opts Options, n, min int) (records.Column, error) {
	if n < min {
		return 0, errors.NewValidationError("sources", n,
			fmt.Sprintf("%s requires at least %d source(s)", op, min))
	}
	column := records.Column(opts.KeyColumn)
	if err := column.Validate("key_column"); err != nil {
		return 0, err
	}
	return column, nil
}

// Complement writes the rows of base whose identity key does not appear in
// subtract.
func Complement(ctx context.Context, base, subtract records.Reader, w records.Writer, opts Options) (*Result, error) {
	if base == nil || subtract == nil {
		return nil, errors.NewValidationError("sources", nil, "complement requires a base and a subtracting source")
	}
	column, err := validate("complement", opts, 2, 2)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(ctx, "complement")
	logger := logging.FromContext(ctx)

	ix, stats, err := index.Build(ctx, base, column, index.LastWins)
	if err != nil {
		return nil, err
	}
	result := &Result{Skipped: stats.Skipped}

	removed := 0
	subStats, err := index.Scan(ctx, subtract, column, func(_ int, key string, _ records.Row) error {
		if ix.Delete(key) {
			removed++
		}
		return nil
	})
	result.Skipped += subStats.Skipped
	if err != nil {
		return nil, err
	}

	if err := records.WriteHeader(base, w); err != nil {
		return nil, err
	}
	if result.Written, err = ix.WriteTo(w); err != nil {
		return nil, err
	}

	logger.Info().
		Str("base", base.Name()).
		Str("subtract", subtract.Name()).
		Int("removed", removed).
		Int("written", result.Written).
		Msg("Complement written")
	return result, nil
}

// Union writes one row per distinct identity key across srcs. When several
// sources share a key the row from the earliest source is kept.
func Union(ctx context.Context, srcs []records.Reader, w records.Writer, opts Options) (*UnionResult, error) {
	column, err := validate("union", opts, len(srcs), 1)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(ctx, "union")
	logger := logging.FromContext(ctx)

	ix := index.New(column)
	result := &UnionResult{Contributed: make([]int, len(srcs))}
	for i, src := range srcs {
		stats, err := index.Scan(ctx, src, column, func(_ int, key string, row records.Row) error {
			if ix.PutIfAbsent(key, row) {
				result.Contributed[i]++
			}
			return nil
		})
		result.Skipped += stats.Skipped
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("source", src.Name()).
			Int("rows", stats.Rows).
			Int("new_keys", result.Contributed[i]).
			Msg("Source merged into union")
	}
	if len(srcs) == 2 {
		result.New = result.Contributed[1]
	}

	if err := records.WriteHeader(srcs[0], w); err != nil {
		return nil, err
	}
	if result.Written, err = ix.WriteTo(w); err != nil {
		return nil, err
	}

	logger.Info().
		Int("sources", len(srcs)).
		Int("written", result.Written).
		Ints("contributed", result.Contributed).
		Msg("Union written")
	return result, nil
}

// Intersection writes the rows whose identity key appears in every source.
// The row kept for a key is the one from the first source.
func Intersection(ctx context.Context, srcs []records.Reader, w records.Writer, opts Options) (*Result, error) {
	column, err := validate("intersection", opts, len(srcs), 1)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(ctx, "intersection")
	logger := logging.FromContext(ctx)

	running, stats, err := index.Build(ctx, srcs[0], column, index.LastWins)
	if err != nil {
		return nil, err
	}
	result := &Result{Skipped: stats.Skipped}

	if err := records.WriteHeader(srcs[0], w); err != nil {
		return nil, err
	}

	for _, src := range srcs[1:] {
		if running.Len() == 0 {
			break
		}
		present := make(map[string]bool)
		stats, err := index.Scan(ctx, src, column, func(_ int, key string, _ records.Row) error {
			if running.Has(key) {
				present[key] = true
			}
			return nil
		})
		result.Skipped += stats.Skipped
		if err != nil {
			return nil, err
		}
		running = running.Retain(func(key string) bool { return present[key] })
		logger.Debug().
			Str("source", src.Name()).
			Int("surviving", running.Len()).
			Msg("Intersected with source")
	}

	if running.Len() == 0 {
		logger.Info().Msg("Intersection is empty")
		return result, w.Flush()
	}
	if result.Written, err = running.WriteTo(w); err != nil {
		return nil, err
	}

	logger.Info().
		Int("sources", len(srcs)).
		Int("written", result.Written).
		Msg("Intersection written")
	return result, nil
}
