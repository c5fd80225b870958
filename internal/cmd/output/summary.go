package output

import (
	"fmt"
	"io"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/cmd/emoji"
	"github.com/agentstation/leadmerge/internal/cmd/table"
	"github.com/agentstation/leadmerge/internal/report"
)

// Summary writes s to w in the given format and, when reportPath is set,
// saves the markdown run report there.
func Summary(w io.Writer, format Format, reportPath string, s *leadmerge.Summary) error {
	switch format {
	case FormatJSON, FormatYAML:
		if err := NewFormatter(format).Format(w, s); err != nil {
			return err
		}
	default:
		wide := format == FormatWide
		if err := NewFormatter(FormatTable).Format(w, table.SummaryToTableData(s, wide)); err != nil {
			return err
		}
		if wide && s.Provenance != nil && len(s.Provenance.Keys) > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			if err := NewFormatter(FormatTable).Format(w, table.ProvenanceToTableData(s.Provenance)); err != nil {
				return err
			}
		}
		for _, out := range s.Outputs {
			if _, err := fmt.Fprintf(w, "%s %s\n", emoji.Success, out); err != nil {
				return err
			}
		}
	}

	if reportPath == "" {
		return nil
	}
	return report.Save(reportPath, s)
}

// Settings is what Emit needs from the application.
type Settings interface {
	OutputFormat() string
	ReportPath() string
}

// Emit writes s with the application's output format and report settings.
func Emit(w io.Writer, app Settings, s *leadmerge.Summary) error {
	format, err := ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	return Summary(w, format, app.ReportPath(), s)
}
