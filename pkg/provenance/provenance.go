// Package provenance records which sources contributed to each merged lead.
package provenance

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/save"
)

// Provenance records one source's contribution to a merged key.
type Provenance struct {
	Source    string    `yaml:"source"`              // source label, e.g. "source A"
	Field     string    `yaml:"field,omitempty"`     // column the value was taken for
	Value     string    `yaml:"value,omitempty"`     // the contributed value
	Line      int       `yaml:"line,omitempty"`      // line in the contributing source, 0 when unknown
	Timestamp time.Time `yaml:"timestamp,omitempty"` // when the contribution was recorded
}

// Map tracks provenance per identity key.
type Map map[string][]Provenance

// Tracker records provenance during a merge.
type Tracker interface {
	// Track records a contribution for key.
	Track(key string, p Provenance)

	// FindByKey returns the contributions recorded for key.
	FindByKey(key string) []Provenance

	// Keys returns every tracked key in first-tracked order.
	Keys() []string

	// Len returns the number of tracked keys.
	Len() int

	// Map returns a copy of the complete provenance map.
	Map() Map

	// Clear removes all provenance data.
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	order      []string
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker ignores
// every Track call.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a key.
func (p *tracker) Track(key string, history Provenance) {
	if !p.enabled {
		return
	}
	if history.Timestamp.IsZero() {
		history.Timestamp = time.Now()
	}
	if _, ok := p.provenance[key]; !ok {
		p.order = append(p.order, key)
	}
	p.provenance[key] = append(p.provenance[key], history)
}

func (p *tracker) FindByKey(key string) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[key]
}

func (p *tracker) Keys() []string {
	return slices.Clone(p.order)
}

func (p *tracker) Len() int {
	return len(p.order)
}

func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	// Return a copy to prevent external modification
	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

func (p *tracker) Clear() {
	p.provenance = make(Map)
	p.order = nil
}

// Label joins source labels the way merged rows are tagged.
func Label(sources ...string) string {
	return strings.Join(sources, constants.ProvenanceSeparator)
}

// Report summarizes provenance per merged key.
type Report struct {
	Keys []KeyProvenance `json:"keys" yaml:"keys"`
}

// KeyProvenance describes one merged key.
type KeyProvenance struct {
	Key     string   `json:"key" yaml:"key"`
	Sources []string `json:"sources" yaml:"sources"` // contributing labels in contribution order, deduplicated
	Label   string   `json:"label" yaml:"label"`     // joined label written to the provenance column
	Values  []string `json:"values" yaml:"values"`   // distinct contributed values in contribution order

	// Conflict is set when sources contributed different non-empty values.
	Conflict bool `json:"conflict" yaml:"conflict"`
}

// GenerateReport creates a report from m with keys sorted lexically.
func GenerateReport(m Map) *Report {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	report := &Report{Keys: make([]KeyProvenance, 0, len(keys))}
	for _, key := range keys {
		kp := KeyProvenance{Key: key}
		for _, info := range m[key] {
			if !slices.Contains(kp.Sources, info.Source) {
				kp.Sources = append(kp.Sources, info.Source)
			}
			if info.Value != "" && !slices.Contains(kp.Values, info.Value) {
				kp.Values = append(kp.Values, info.Value)
			}
		}
		kp.Label = Label(kp.Sources...)
		kp.Conflict = len(kp.Values) > 1
		report.Keys = append(report.Keys, kp)
	}
	return report
}

// Conflicts returns the number of keys whose sources disagreed.
func (r *Report) Conflicts() int {
	n := 0
	for _, k := range r.Keys {
		if k.Conflict {
			n++
		}
	}
	return n
}

// String generates a plain-text rendering of the report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	for _, k := range r.Keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k.Key, k.Label))
		if k.Conflict {
			sb.WriteString(fmt.Sprintf("  values: %s\n", strings.Join(k.Values, ", ")))
		}
	}
	return sb.String()
}

// File represents a provenance file stored on disk.
type File struct {
	Provenance Map `yaml:"provenance"`
}

// Write encodes m as a provenance YAML document.
func Write(w io.Writer, m Map) error {
	data, err := yaml.Marshal(&File{Provenance: m})
	if err != nil {
		return errors.WrapParse("yaml", "provenance", err)
	}
	_, err = w.Write(data)
	return err
}

// Save writes m as YAML to path. The file is replaced only once it is
// completely written.
func Save(path string, m Map) error {
	f, err := save.CreateFile(path)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		_ = f.Abort()
		return err
	}
	return f.Commit()
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &pf, nil
}
