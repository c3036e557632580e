package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

// RenderSummary writes human-readable tables describing result: sheet
// verdicts, the column mapping, validation counts and reported issues.
func RenderSummary(w io.Writer, result *models.Result) error {
	_, _ = fmt.Fprintf(w, "%s (run %s)\n\n", result.BookName, result.RunID)

	renderSheets(w, result.Analysis)
	renderMapping(w, result)
	renderValidation(w, result)
	renderIssues(w, result.Validation)
	return nil
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderSheets(w io.Writer, a models.WorkbookAnalysis) {
	processed := make(map[string]bool, len(a.ProcessedSheets))
	for _, s := range a.ProcessedSheets {
		processed[s.Name] = true
	}

	t := newTable(w, fmt.Sprintf("Sheets (%s)", a.ClassificationSource))
	t.AppendHeader(table.Row{"Sheet", "Type", "Processed", "Confidence", "Reason"})
	for _, c := range a.Classifications {
		t.AppendRow(table.Row{c.SheetName, c.Type, yesNo(processed[c.SheetName]), percent(c.Confidence), c.Reason})
	}
	t.Render()
	_, _ = fmt.Fprintln(w)
}

func renderMapping(w io.Writer, result *models.Result) {
	t := newTable(w, fmt.Sprintf("Column mapping (%s)", result.MappingSource))
	t.AppendHeader(table.Row{"Column", "Schema key"})
	seen := make(map[string]bool, len(result.Headers))
	for _, h := range result.Headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		target := string(result.Mapping[h])
		if target == "" {
			target = "-"
		}
		t.AppendRow(table.Row{h, target})
	}
	t.Render()
	_, _ = fmt.Fprintln(w)
}

func renderValidation(w io.Writer, result *models.Result) {
	v := result.Validation
	t := newTable(w, "Validation")
	t.AppendRows([]table.Row{
		{"Mapping confidence", percent(result.Confidence)},
		{"Total rows", v.TotalRows},
		{"Successful", v.SuccessfulRows},
		{"Warnings", v.WarningRows},
		{"Errors", v.ErrorRows},
		{"Critical fields missing", orNone(v.CriticalMissing)},
	})
	t.Render()
	_, _ = fmt.Fprintln(w)
}

func renderIssues(w io.Writer, v models.ValidationSummary) {
	if len(v.Issues) == 0 {
		_, _ = fmt.Fprintln(w, "(no issues)")
		return
	}

	t := newTable(w, "Issues")
	t.AppendHeader(table.Row{"Row", "Field", "Severity", "Issue"})
	for _, issue := range v.Issues {
		t.AppendRow(table.Row{issue.Row, issue.Field, issue.Severity, issue.Issue})
	}
	t.Render()
	if v.TotalIssues > len(v.Issues) {
		_, _ = fmt.Fprintf(w, "(showing %d of %d issues)\n", len(v.Issues), v.TotalIssues)
	}
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
