// Package render turns an AuditReport into console or markdown output. Purely
// presentational: the only side effect is the markdown file written in report
// mode.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/jorge-barreto/improve/internal/fixer"
	"github.com/jorge-barreto/improve/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)

	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// SetColor toggles color output globally (--no-color, or a non-TTY stdout).
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func gradeColor(grade string) func(...interface{}) string {
	switch grade {
	case "A+", "A":
		return green
	case "B", "C":
		return yellow
	default:
		return red
	}
}

func severityColor(sev string) string {
	switch sev {
	case "high":
		return red(sev)
	case "medium":
		return yellow(sev)
	default:
		return sev
	}
}

// Console prints the summary plus the itemized issue and missing-pattern
// tables.
func Console(w io.Writer, rep *report.AuditReport) {
	high, medium, low := rep.CountBySeverity()

	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Documentation audit"))
	fmt.Fprintf(w, "  scanned:  %d files\n", rep.ScannedCount)
	fmt.Fprintf(w, "  issues:   %d (%d high, %d medium, %d low)\n", len(rep.Issues), high, medium, low)
	fmt.Fprintf(w, "  missing:  %d patterns\n", len(rep.Missing))
	fmt.Fprintf(w, "  outdated: %d patterns\n", len(rep.Outdated))
	grade := gradeColor(rep.Grade)
	fmt.Fprintf(w, "  score:    %s\n\n", grade(fmt.Sprintf("%.1f / 100 (%s)", rep.Score, rep.Grade)))
	if rep.Incomplete {
		fmt.Fprintf(w, "  %s\n\n", yellow("run cancelled before all phases completed — results are partial"))
	}

	if len(rep.Issues) > 0 {
		t := newTable().Headers("FILE", "KIND", "SEVERITY", "DETAIL")
		for _, is := range rep.Issues {
			t.Row(is.File, is.Kind.String(), severityColor(is.Severity.String()), is.Detail)
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(rep.Missing) > 0 {
		fmt.Fprintf(w, "\n%s\n", headerStyle.Render("Missing patterns"))
		t := newTable().Headers("PATTERN", "CATEGORY", "PRIORITY", "CATALOG")
		for _, m := range rep.Missing {
			t.Row(m.Name, m.Category, m.Priority.String(), m.SourceCatalog)
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(rep.Outdated) > 0 {
		fmt.Fprintf(w, "\n%s\n", headerStyle.Render("Outdated patterns"))
		t := newTable().Headers("PATTERN", "CATEGORY", "FILE")
		for _, f := range rep.Outdated {
			t.Row(f.Name, f.Category, f.File)
		}
		fmt.Fprintln(w, t.Render())
	}

	fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("run %s in %s", rep.RunID, rep.Finished.Sub(rep.Started).Round(time.Millisecond))))
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// FixSummary lists the concrete file mutations of a fix run.
func FixSummary(w io.Writer, res *fixer.Result) {
	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Fixes applied"))
	fmt.Fprintf(w, "  sections added: %d\n", res.Fixed)
	fmt.Fprintf(w, "  files created:  %d\n", res.Created)
	fmt.Fprintf(w, "  files updated:  %d\n", res.Updated)
	if len(res.Remaining) > 0 {
		fmt.Fprintf(w, "  %s\n", yellow(fmt.Sprintf("skipped (modified externally): %s", strings.Join(res.Remaining, ", "))))
	}
	fmt.Fprintln(w)
}
