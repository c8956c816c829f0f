package report

import (
	"time"

	"github.com/jorge-barreto/improve/internal/freshness"
	"github.com/jorge-barreto/improve/internal/issue"
)

// AuditReport is the single merged result of one run. Built exactly once by
// Aggregate; the fixer and renderers only read it.
type AuditReport struct {
	RunID        string
	Root         string
	ScannedCount int

	Issues       []issue.Issue
	IssuesByKind map[issue.Kind]int
	Missing      []issue.MissingPattern
	Outdated     []freshness.Finding

	Score float64
	Grade string

	// Incomplete is set when the run was cancelled before every dispatched
	// phase finished; the report then covers whatever was collected.
	Incomplete bool

	Started  time.Time
	Finished time.Time
}

// score weights
const (
	costHigh          = 3
	costMedium        = 1
	costLow           = 0.5
	costMissingHigh   = 2
	costMissingMedium = 0.5
)

// Aggregate merges the issue streams into one scored report. Pure function of
// its inputs: the same issues, gaps, and findings always produce the same
// report.
func Aggregate(issues []issue.Issue, missing []issue.MissingPattern, outdated []freshness.Finding, scanned int) *AuditReport {
	byKind := make(map[issue.Kind]int)
	score := 100.0
	for _, is := range issues {
		byKind[is.Kind]++
		switch is.Severity {
		case issue.SeverityHigh:
			score -= costHigh
		case issue.SeverityMedium:
			score -= costMedium
		case issue.SeverityLow:
			score -= costLow
		}
	}
	for _, m := range missing {
		if m.Priority == issue.PriorityHigh {
			score -= costMissingHigh
		} else {
			score -= costMissingMedium
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &AuditReport{
		ScannedCount: scanned,
		Issues:       issues,
		IssuesByKind: byKind,
		Missing:      missing,
		Outdated:     outdated,
		Score:        score,
		Grade:        GradeOf(score),
	}
}

// GradeOf maps a score to its letter grade.
func GradeOf(score float64) string {
	switch {
	case score >= 100:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "F"
	}
}

// CountBySeverity returns the issue counts split by severity.
func (r *AuditReport) CountBySeverity() (high, medium, low int) {
	for _, is := range r.Issues {
		switch is.Severity {
		case issue.SeverityHigh:
			high++
		case issue.SeverityMedium:
			medium++
		case issue.SeverityLow:
			low++
		}
	}
	return
}
