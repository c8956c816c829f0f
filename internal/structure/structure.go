// Package structure validates each document against the required-section
// schema for its kind. Checks are per-file, deterministic, and
// order-independent: the same file always yields the same issue set.
package structure

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

// rule is one required or recommended element of a document kind.
type rule struct {
	section  string
	severity issue.Severity
	present  func(*mdscan.Doc) bool
}

var patternRules = []rule{
	{"title", issue.SeverityHigh, func(d *mdscan.Doc) bool { return d.Title != "" }},
	{"description", issue.SeverityHigh, func(d *mdscan.Doc) bool { return d.HasBlockquote }},
	{"code example", issue.SeverityHigh, (*mdscan.Doc).HasRecognizedCode},
	{"when to use", issue.SeverityHigh, (*mdscan.Doc).HasWhenToUse},
	{"related patterns", issue.SeverityHigh, (*mdscan.Doc).HasRelatedSection},
	{"sources", issue.SeverityLow, (*mdscan.Doc).HasSources},
}

var indexRules = []rule{
	{"title", issue.SeverityHigh, func(d *mdscan.Doc) bool { return d.Title != "" }},
	{"patterns table", issue.SeverityHigh, func(d *mdscan.Doc) bool { return len(d.PatternsTables()) > 0 }},
	{"decision table", issue.SeverityHigh, func(d *mdscan.Doc) bool { return len(d.DecisionTables()) > 0 }},
	{"sources", issue.SeverityLow, (*mdscan.Doc).HasSources},
}

// Validate checks one document against the schema for its kind and returns
// exactly one MissingSection issue per absent element. Templates are not
// validated.
func Validate(f inventory.File, doc *mdscan.Doc) []issue.Issue {
	var rules []rule
	switch f.Kind {
	case inventory.KindPattern:
		rules = patternRules
	case inventory.KindCategoryIndex:
		rules = indexRules
	default:
		return nil
	}

	var issues []issue.Issue
	for _, r := range rules {
		if r.present(doc) {
			continue
		}
		detail := fmt.Sprintf("missing required section %q", r.section)
		if r.severity == issue.SeverityLow {
			detail = fmt.Sprintf("missing recommended section %q", r.section)
		}
		issues = append(issues, issue.Issue{
			File:     f.Rel,
			Kind:     issue.MissingSection,
			Severity: r.severity,
			Detail:   detail,
		})
	}
	return issues
}

// FixableSections lists the sections the fixer knows a deterministic template
// stub for. Everything else stays manual.
var FixableSections = map[string]bool{
	"sources":          true,
	"related patterns": true,
}

// SectionOf extracts the section name from a MissingSection issue detail, or
// "" if the issue is not a MissingSection.
func SectionOf(is issue.Issue) string {
	if is.Kind != issue.MissingSection {
		return ""
	}
	i := strings.Index(is.Detail, `"`)
	j := strings.LastIndex(is.Detail, `"`)
	if i < 0 || j <= i {
		return ""
	}
	return is.Detail[i+1 : j]
}
