package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jorge-barreto/improve/internal/fixer"
	"github.com/jorge-barreto/improve/internal/report"
)

// WriteMarkdown renders the full report as a markdown file. Same structure as
// the console output: summary, per-category breakdown, issues, missing
// patterns, outdated patterns. The file is written atomically so a report
// reader never sees a half-rendered document.
func WriteMarkdown(rep *report.AuditReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Documentation audit report\n\n")
	fmt.Fprintf(&b, "> Run `%s` on %s in %s", rep.RunID, rep.Finished.Format(time.DateOnly),
		rep.Finished.Sub(rep.Started).Round(time.Millisecond))
	if rep.Incomplete {
		fmt.Fprintf(&b, " — **partial**: the run was cancelled before all phases completed")
	}
	fmt.Fprintf(&b, "\n\n")

	high, medium, low := rep.CountBySeverity()
	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Files scanned | %d |\n", rep.ScannedCount)
	fmt.Fprintf(&b, "| Issues | %d (%d high / %d medium / %d low) |\n", len(rep.Issues), high, medium, low)
	fmt.Fprintf(&b, "| Missing patterns | %d |\n", len(rep.Missing))
	fmt.Fprintf(&b, "| Outdated patterns | %d |\n", len(rep.Outdated))
	fmt.Fprintf(&b, "| Score | %.1f / 100 |\n", rep.Score)
	fmt.Fprintf(&b, "| Grade | %s |\n\n", rep.Grade)

	if rows := categoryRows(rep); len(rows) > 0 {
		fmt.Fprintf(&b, "## By category\n\n")
		fmt.Fprintf(&b, "| Category | Issues | Missing | Outdated |\n|----------|--------|---------|----------|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", r.name, r.issues, r.missing, r.outdated)
		}
		b.WriteString("\n")
	}

	if len(rep.Issues) > 0 {
		fmt.Fprintf(&b, "## Issues\n\n")
		fmt.Fprintf(&b, "| File | Kind | Severity | Detail |\n|------|------|----------|--------|\n")
		for _, is := range rep.Issues {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", is.File, is.Kind, is.Severity, escapeCell(is.Detail))
		}
		b.WriteString("\n")
	}

	if len(rep.Missing) > 0 {
		fmt.Fprintf(&b, "## Missing patterns\n\n")
		fmt.Fprintf(&b, "| Pattern | Category | Priority | Catalog |\n|---------|----------|----------|--------|\n")
		for _, m := range rep.Missing {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", m.Name, m.Category, m.Priority, m.SourceCatalog)
		}
		b.WriteString("\n")
	}

	if len(rep.Outdated) > 0 {
		fmt.Fprintf(&b, "## Outdated patterns\n\n")
		fmt.Fprintf(&b, "| Pattern | Category | File |\n|---------|----------|------|\n")
		for _, f := range rep.Outdated {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Name, f.Category, f.File)
		}
		b.WriteString("\n")
	}

	return fixer.WriteFileAtomic(path, []byte(b.String()), 0644)
}

type categoryRow struct {
	name     string
	issues   int
	missing  int
	outdated int
}

// categoryRows tallies findings per category, sorted by name. The category of
// an issue is the first path element of its file.
func categoryRows(rep *report.AuditReport) []categoryRow {
	tally := make(map[string]*categoryRow)
	row := func(name string) *categoryRow {
		if name == "" {
			return &categoryRow{} // root-level findings stay out of the breakdown
		}
		r, ok := tally[name]
		if !ok {
			r = &categoryRow{name: name}
			tally[name] = r
		}
		return r
	}

	for _, is := range rep.Issues {
		name := ""
		if i := strings.Index(is.File, "/"); i >= 0 {
			name = is.File[:i]
		}
		row(name).issues++
	}
	for _, m := range rep.Missing {
		row(m.Category).missing++
	}
	for _, f := range rep.Outdated {
		row(f.Category).outdated++
	}

	rows := make([]categoryRow, 0, len(tally))
	for _, r := range tally {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows
}

// escapeCell keeps issue details from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
