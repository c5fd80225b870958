// Package report renders a markdown report of one leadmerge run.
package report

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Write renders s as markdown to w.
func Write(w io.Writer, s *leadmerge.Summary) error {
	doc := md.NewMarkdown(w)

	doc.H1("leadmerge " + s.Operation).LF()
	if s.RunID != "" {
		doc.PlainText(md.Italic("run " + s.RunID)).LF().LF()
	}

	doc.H2("Inputs").LF()
	doc.OrderedList(codes(s.Inputs)...).LF()

	doc.H2("Outputs").LF()
	doc.OrderedList(codes(s.Outputs)...).LF()

	rows := [][]string{
		{"Written", strconv.Itoa(s.Written)},
		{"Skipped", strconv.Itoa(s.Skipped)},
	}
	for _, c := range s.Counts {
		rows = append(rows, []string{escape(c.Name), strconv.Itoa(c.Value)})
	}
	rows = append(rows, []string{"Duration", s.Duration.String()})

	doc.H2("Counts").LF()
	doc.Table(md.TableSet{
		Header: []string{"Counter", "Value"},
		Rows:   rows,
	}).LF()

	if p := s.Provenance; p != nil && len(p.Keys) > 0 {
		doc.H2("Provenance").LF()
		doc.PlainTextf("%d merged keys, %d with differing values.", len(p.Keys), p.Conflicts()).LF().LF()

		prov := make([][]string, 0, len(p.Keys))
		for _, k := range p.Keys {
			conflict := ""
			if k.Conflict {
				conflict = md.Bold("yes")
			}
			prov = append(prov, []string{
				escape(k.Key),
				escape(k.Label),
				escape(strings.Join(k.Values, ", ")),
				conflict,
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Key", "Sources", "Values", "Conflict"},
			Rows:   prov,
		}).LF()
	}

	return doc.Build()
}

// Save writes the report for s to path, creating parent directories.
func Save(path string, s *leadmerge.Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Write(f, s); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

func codes(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = md.Code(p)
	}
	return out
}

// escape keeps cell text from breaking the table layout.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
