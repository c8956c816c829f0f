package report

import (
	"testing"

	"github.com/jorge-barreto/improve/internal/freshness"
	"github.com/jorge-barreto/improve/internal/issue"
)

func TestAggregate_PerfectScore(t *testing.T) {
	rep := Aggregate(nil, nil, nil, 12)
	if rep.Score != 100 {
		t.Fatalf("score = %v, want 100", rep.Score)
	}
	if rep.Grade != "A+" {
		t.Fatalf("grade = %q, want A+", rep.Grade)
	}
	if rep.ScannedCount != 12 {
		t.Fatalf("scanned = %d", rep.ScannedCount)
	}
}

// One high missing-section plus one low recommended section costs 3.5 points.
func TestAggregate_ScenarioWeights(t *testing.T) {
	issues := []issue.Issue{
		{File: "cloud/x.md", Kind: issue.MissingSection, Severity: issue.SeverityHigh},
		{File: "cloud/x.md", Kind: issue.MissingSection, Severity: issue.SeverityLow},
	}
	rep := Aggregate(issues, nil, nil, 1)
	if rep.Score != 96.5 {
		t.Fatalf("score = %v, want 96.5", rep.Score)
	}
	if rep.Grade != "A" {
		t.Fatalf("grade = %q, want A", rep.Grade)
	}
}

func TestAggregate_MissingPatternWeights(t *testing.T) {
	missing := []issue.MissingPattern{
		{Name: "Builder", Priority: issue.PriorityHigh},
		{Name: "Prototype", Priority: issue.PriorityMedium},
	}
	rep := Aggregate(nil, missing, nil, 1)
	if rep.Score != 97.5 {
		t.Fatalf("score = %v, want 97.5", rep.Score)
	}
}

func TestAggregate_ClampsAtZero(t *testing.T) {
	var issues []issue.Issue
	for i := 0; i < 100; i++ {
		issues = append(issues, issue.Issue{Severity: issue.SeverityHigh})
	}
	rep := Aggregate(issues, nil, nil, 1)
	if rep.Score != 0 {
		t.Fatalf("score = %v, want 0", rep.Score)
	}
	if rep.Grade != "F" {
		t.Fatalf("grade = %q, want F", rep.Grade)
	}
}

func TestAggregate_IssuesByKind(t *testing.T) {
	issues := []issue.Issue{
		{Kind: issue.MissingSection, Severity: issue.SeverityHigh},
		{Kind: issue.MissingSection, Severity: issue.SeverityLow},
		{Kind: issue.BrokenLink, Severity: issue.SeverityMedium},
	}
	rep := Aggregate(issues, nil, nil, 3)
	if rep.IssuesByKind[issue.MissingSection] != 2 || rep.IssuesByKind[issue.BrokenLink] != 1 {
		t.Fatalf("IssuesByKind = %v", rep.IssuesByKind)
	}
	high, medium, low := rep.CountBySeverity()
	if high != 1 || medium != 1 || low != 1 {
		t.Fatalf("severity counts = %d/%d/%d", high, medium, low)
	}
}

func TestAggregate_Pure(t *testing.T) {
	issues := []issue.Issue{{Kind: issue.BrokenLink, Severity: issue.SeverityMedium}}
	outdated := []freshness.Finding{{Name: "Saga", Verdict: freshness.VerdictOutdated}}
	a := Aggregate(issues, nil, outdated, 5)
	b := Aggregate(issues, nil, outdated, 5)
	if a.Score != b.Score || a.Grade != b.Grade || len(a.Outdated) != len(b.Outdated) {
		t.Fatal("Aggregate is not deterministic")
	}
}

func TestGradeOf(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{99.5, "A"},
		{90, "A"},
		{89.5, "B"},
		{70, "B"},
		{69.5, "C"},
		{50, "C"},
		{49.5, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := GradeOf(tt.score); got != tt.want {
			t.Errorf("GradeOf(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
