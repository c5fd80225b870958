// Package index builds the in-memory identity index every engine works from:
// a mapping from an identity key (the value of one designated column) to
// exactly one row.
//
// The index remembers first-insertion order, so anything written from it comes
// out in source order. Overwriting a key keeps the key's original position.
package index

import (
	"container/list"
	"context"

	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
)

// Policy decides which row survives when a key is inserted twice.
type Policy int

const (
	// LastWins replaces the stored row. This is the default for plain indexing.
	LastWins Policy = iota
	// FirstWins keeps the stored row and drops the newcomer. Union uses it.
	FirstWins
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case FirstWins:
		return "first-wins"
	default:
		return "unknown"
	}
}

type entry struct {
	key string
	row records.Row
}

// Index maps identity keys to rows in insertion order.
// It is not safe for concurrent use.
type Index struct {
	column  records.Column
	entries map[string]*list.Element
	order   *list.List
}

// New creates an empty index keyed by column.
func New(column records.Column) *Index {
	return &Index{
		column:  column,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Column returns the identity column of the index.
func (ix *Index) Column() records.Column {
	return ix.column
}

// Len returns the number of keys.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Put stores row under key, replacing any previous row (last-wins).
// It reports whether a previous row was replaced.
func (ix *Index) Put(key string, row records.Row) bool {
	if el, ok := ix.entries[key]; ok {
		el.Value.(*entry).row = row
		return true
	}
	ix.entries[key] = ix.order.PushBack(&entry{key: key, row: row})
	return false
}

// PutIfAbsent stores row only when key is not present yet (first-wins).
// It reports whether the row was stored.
func (ix *Index) PutIfAbsent(key string, row records.Row) bool {
	if _, ok := ix.entries[key]; ok {
		return false
	}
	ix.entries[key] = ix.order.PushBack(&entry{key: key, row: row})
	return true
}

// Insert stores row under key according to policy and reports whether the
// stored row for key is now row.
func (ix *Index) Insert(policy Policy, key string, row records.Row) bool {
	if policy == FirstWins {
		return ix.PutIfAbsent(key, row)
	}
	ix.Put(key, row)
	return true
}

// Get returns the row stored under key.
func (ix *Index) Get(key string) (records.Row, bool) {
	el, ok := ix.entries[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry).row, true
}

// Has reports whether key is present.
func (ix *Index) Has(key string) bool {
	_, ok := ix.entries[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (ix *Index) Delete(key string) bool {
	el, ok := ix.entries[key]
	if !ok {
		return false
	}
	ix.order.Remove(el)
	delete(ix.entries, key)
	return true
}

// Keys returns the keys in insertion order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, len(ix.entries))
	for el := ix.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry).key)
	}
	return keys
}

// Each calls fn for every key in insertion order. fn must not modify the index.
func (ix *Index) Each(fn func(key string, row records.Row) error) error {
	for el := ix.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if err := fn(e.key, e.row); err != nil {
			return err
		}
	}
	return nil
}

// Retain returns a new index holding, in this index's order, the rows whose
// key satisfies keep.
func (ix *Index) Retain(keep func(key string) bool) *Index {
	out := New(ix.column)
	for el := ix.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if keep(e.key) {
			out.Put(e.key, e.row)
		}
	}
	return out
}

// WriteTo writes every row to w in insertion order and returns how many rows
// were written.
func (ix *Index) WriteTo(w records.Writer) (int, error) {
	n := 0
	err := ix.Each(func(_ string, row records.Row) error {
		if err := w.Write(row); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	return n, w.Flush()
}

// Stats describes one pass over a source.
type Stats struct {
	Rows       int // rows that produced a key
	Skipped    int // rows dropped as undecodable
	Duplicates int // rows whose key was already present
}

// Scan reads every row of r and calls fn with the row's identity key.
// Rows that cannot be decoded, including rows too short for column, are
// logged and skipped.
func Scan(ctx context.Context, r records.Reader, column records.Column, fn func(line int, key string, row records.Row) error) (Stats, error) {
	var stats Stats
	logger := logging.FromContext(ctx)
	skipped, err := records.Each(ctx, r, func(line int, row records.Row) error {
		key, err := column.Get(r.Name(), line, row)
		if err != nil {
			stats.Skipped++
			logger.Warn().
				Err(err).
				Str("source", r.Name()).
				Int("line", line).
				Msg("Skipping row without identity column")
			return nil
		}
		stats.Rows++
		return fn(line, key, row)
	})
	stats.Skipped += skipped
	return stats, err
}

// Build indexes every row of r by column using policy.
func Build(ctx context.Context, r records.Reader, column records.Column, policy Policy) (*Index, Stats, error) {
	if err := column.Validate("key_column"); err != nil {
		return nil, Stats{}, err
	}
	ix := New(column)
	dups := 0
	stats, err := Scan(ctx, r, column, func(_ int, key string, row records.Row) error {
		if ix.Has(key) {
			dups++
		}
		ix.Insert(policy, key, row)
		return nil
	})
	stats.Duplicates = dups
	if err != nil {
		return nil, stats, err
	}
	if dups > 0 {
		logging.FromContext(ctx).Debug().
			Str("source", r.Name()).
			Str("policy", policy.String()).
			Int("duplicates", dups).
			Msg("Duplicate identity keys collapsed")
	}
	return ix, stats, nil
}
