package table

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/cmd/emoji"
	"github.com/agentstation/leadmerge/pkg/provenance"
)

// SummaryToTableData converts a run summary to a property/value table.
// Counters follow the fixed properties in the order the operation reported
// them. The wide form adds the run id and the input and output paths.
func SummaryToTableData(s *leadmerge.Summary, wide bool) Data {
	caser := cases.Title(language.English)
	rows := [][]string{
		{"Operation", s.Operation},
	}
	if wide {
		rows = append(rows,
			[]string{"Run ID", s.RunID},
			[]string{"Inputs", strings.Join(s.Inputs, "\n")},
			[]string{"Outputs", strings.Join(s.Outputs, "\n")},
		)
	}
	rows = append(rows,
		[]string{"Written", strconv.Itoa(s.Written)},
		[]string{"Skipped", strconv.Itoa(s.Skipped)},
	)
	for _, c := range s.Counts {
		name := c.Name
		if !strings.ContainsAny(name, "/\\.") {
			name = caser.String(name)
		}
		rows = append(rows, []string{name, strconv.Itoa(c.Value)})
	}
	rows = append(rows, []string{"Duration", s.Duration.Round(time.Millisecond).String()})

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ProvenanceToTableData converts a provenance report to one row per merged
// key. Keys whose sources disagreed are flagged.
func ProvenanceToTableData(r *provenance.Report) Data {
	rows := make([][]string, 0, len(r.Keys))
	for _, k := range r.Keys {
		flag := ""
		if k.Conflict {
			flag = emoji.Warning
		}
		rows = append(rows, []string{k.Key, k.Label, strings.Join(k.Values, " | "), flag})
	}
	return Data{
		Headers: []string{"Key", "Sources", "Values", "Conflict"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft, AlignCenter,
		},
	}
}
