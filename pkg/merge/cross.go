// Package merge combines rows that describe the same lead.
//
// AdjacentRuns collapses contiguous runs of one sorted source. CrossSource
// merges differently shaped sources and tags every merged row with the labels
// of the sources it came from.
package merge

import (
	"context"
	"fmt"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/index"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/phone"
	"github.com/agentstation/leadmerge/pkg/provenance"
	"github.com/agentstation/leadmerge/pkg/records"
)

// Source is one input of a cross-source merge.
type Source struct {
	Reader records.Reader

	// Label names the source in provenance tags. Empty labels default to
	// "source A", "source B" and so on by position.
	Label string

	// ContactColumn is the contact column in this source's own rows.
	ContactColumn int
}

// CrossOptions configures CrossSource. Column indices refer to the first
// source's shape, which every output row takes.
type CrossOptions struct {
	KeyColumn        int
	ProvenanceColumn int
	ContactColumn    int

	// Consolidate combines the stored and incoming contact values instead of
	// letting the incoming one overwrite.
	Consolidate bool

	// Tracker receives per-key provenance. When nil a new tracker is used.
	Tracker provenance.Tracker
}

// CrossResult is the outcome of CrossSource.
type CrossResult struct {
	Written  int // rows written in total
	Merged   int // keys found in an earlier source and merged
	New      int // rows from later sources whose key was not yet indexed
	Unmerged int // rows flushed at the end without a merge partner
	Skipped  int // rows dropped as undecodable across all sources

	Provenance provenance.Tracker
}

// DefaultLabel returns the provenance label of the source at position i.
func DefaultLabel(i int) string {
	switch i {
	case 0:
		return constants.DefaultFirstLabel
	case 1:
		return constants.DefaultSecondLabel
	}
	return fmt.Sprintf("source %c", 'A'+rune(i%26))
}

// CrossSource indexes the first source, then streams every later source
// against that index. A row whose key is already indexed is merged with the
// indexed row and written immediately: the provenance column receives the
// joined labels of both sources and the contact column receives the incoming
// contact value. The merged key leaves the index. A row with an unseen key
// joins the index. Whatever remains indexed is written last, in index order.
//
// Rows narrower than the first source, or than the provenance and contact
// columns, are padded with empty fields. Wider rows are truncated.
func CrossSource(ctx context.Context, srcs []Source, w records.Writer, opts CrossOptions) (*CrossResult, error) {
	if len(srcs) == 0 {
		return nil, errors.NewValidationError("sources", 0, "cross-source merge requires at least 1 source")
	}
	cols, err := records.Columns("columns", opts.KeyColumn, opts.ProvenanceColumn, opts.ContactColumn)
	if err != nil {
		return nil, err
	}
	key, prov, contact := cols[0], cols[1], cols[2]

	labels := make([]string, len(srcs))
	for i, src := range srcs {
		if src.Reader == nil {
			return nil, errors.NewValidationError("sources", i, "source has no reader")
		}
		if err := records.Column(src.ContactColumn).Validate("contact_column"); err != nil {
			return nil, err
		}
		labels[i] = src.Label
		if labels[i] == "" {
			labels[i] = DefaultLabel(i)
		}
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = provenance.NewTracker(true)
	}
	result := &CrossResult{Provenance: tracker}

	ctx = logging.WithOperation(ctx, "merge-sources")
	logger := logging.FromContext(ctx)

	first := srcs[0].Reader
	width := max(len(first.Header()), int(prov)+1, int(contact)+1)
	ix := index.New(key)
	// owner records the source and line each indexed key came from.
	type origin struct{ source, line int }
	owner := make(map[string]origin)

	stats, err := index.Scan(ctx, first, key, func(line int, k string, row records.Row) error {
		width = max(width, len(row))
		ix.Put(k, row)
		owner[k] = origin{source: 0, line: line}
		return nil
	})
	result.Skipped += stats.Skipped
	if err != nil {
		return nil, err
	}

	if err := records.WriteHeader(first, w); err != nil {
		return nil, err
	}

	for i := 1; i < len(srcs); i++ {
		src := srcs[i]
		incoming := records.Column(src.ContactColumn)
		merged, added := 0, 0
		stats, err := index.Scan(ctx, src.Reader, key, func(line int, k string, row records.Row) error {
			value, err := incoming.Get(src.Reader.Name(), line, row)
			if err != nil {
				result.Skipped++
				logger.Warn().
					Err(err).
					Str("source", src.Reader.Name()).
					Int("line", line).
					Str("key", k).
					Msg("Skipping row without contact column")
				return nil
			}

			stored, ok := ix.Get(k)
			if !ok {
				ix.Put(k, row.Fit(width))
				owner[k] = origin{source: i, line: line}
				added++
				return nil
			}

			out := stored.Fit(width)
			before := out[contact]
			from := owner[k]
			out[prov] = provenance.Label(labels[from.source], labels[i])
			if opts.Consolidate {
				out[contact] = phone.Consolidate(before, value)
			} else {
				out[contact] = value
			}
			if err := w.Write(out); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}

			tracker.Track(k, provenance.Provenance{Source: labels[from.source], Field: "contact", Value: before, Line: from.line})
			tracker.Track(k, provenance.Provenance{Source: labels[i], Field: "contact", Value: value, Line: line})

			if !ix.Delete(k) {
				logger.Warn().
					Err(&errors.MissingKeyError{Operation: "merge-sources", Key: k}).
					Msg("Merged key vanished from index")
			}
			delete(owner, k)
			result.Written++
			merged++
			return nil
		})
		result.Skipped += stats.Skipped
		if err != nil {
			return nil, err
		}
		result.Merged += merged
		result.New += added

		logger.Debug().
			Str("source", src.Reader.Name()).
			Str("label", labels[i]).
			Int("merged", merged).
			Int("new", added).
			Msg("Source merged")
	}

	err = ix.Each(func(_ string, row records.Row) error {
		if err := w.Write(row.Fit(width)); err != nil {
			return err
		}
		result.Unmerged++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	result.Written += result.Unmerged

	logger.Info().
		Int("sources", len(srcs)).
		Int("written", result.Written).
		Int("merged", result.Merged).
		Int("new", result.New).
		Int("unmerged", result.Unmerged).
		Msg("Sources merged")
	return result, nil
}
