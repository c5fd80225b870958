package leadmerge

import (
	"time"

	"github.com/agentstation/leadmerge/pkg/provenance"
	"github.com/agentstation/leadmerge/pkg/save"
)

// Summary describes one finished operation.
type Summary struct {
	RunID     string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Operation string        `json:"operation" yaml:"operation"`
	Inputs    []string      `json:"inputs" yaml:"inputs"`
	Outputs   []string      `json:"outputs" yaml:"outputs"`
	Written   int           `json:"written" yaml:"written"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Counts    []Count       `json:"counts,omitempty" yaml:"counts,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	// Provenance is set by MergeSources.
	Provenance *provenance.Report `json:"provenance,omitempty" yaml:"provenance,omitempty"`

	// staged outputs are published or discarded with the row outputs.
	staged []save.Publisher
}

// Count is a named counter reported by an operation, such as the rows a
// keyword group received or the keys a source contributed.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Count returns the value of the named counter.
func (s *Summary) Count(name string) (int, bool) {
	for _, c := range s.Counts {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

func (s *Summary) add(name string, value int) {
	s.Counts = append(s.Counts, Count{Name: name, Value: value})
}

func (s *Summary) stage(p save.Publisher) {
	s.staged = append(s.staged, p)
}
