package structure

import (
	"testing"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

func patternFile(rel string) inventory.File {
	return inventory.File{Rel: rel, Category: "cloud", Kind: inventory.KindPattern}
}

const completePattern = `# Circuit Breaker

> Coupe les appels vers un service defaillant.

` + "```go" + `
type Breaker struct{}
` + "```" + `

## Quand l'utiliser

- Appels instables

## Patterns lies

| Pattern | Relation |
|---------|----------|
| Retry | Complementaire |

## Sources

- Release It!
`

func TestValidate_CompletePattern(t *testing.T) {
	issues := Validate(patternFile("cloud/circuit-breaker.md"), mdscan.Parse(completePattern))
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

// A pattern with title, description, and code, but no related-patterns
// section and no sources, yields exactly one high and one low issue.
func TestValidate_MissingRelatedAndSources(t *testing.T) {
	content := `# Outbox

> Publie les evenements via une table tampon.

` + "```typescript" + `
const x = 1;
` + "```" + `

## Quand l'utiliser

- Publication transactionnelle
`
	issues := Validate(patternFile("cloud/outbox.md"), mdscan.Parse(content))
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}

	var high, low int
	for _, is := range issues {
		if is.Kind != issue.MissingSection {
			t.Fatalf("unexpected kind %v", is.Kind)
		}
		switch is.Severity {
		case issue.SeverityHigh:
			high++
			if SectionOf(is) != "related patterns" {
				t.Errorf("high issue section = %q, want related patterns", SectionOf(is))
			}
		case issue.SeverityLow:
			low++
			if SectionOf(is) != "sources" {
				t.Errorf("low issue section = %q, want sources", SectionOf(is))
			}
		}
	}
	if high != 1 || low != 1 {
		t.Fatalf("high=%d low=%d, want 1 and 1", high, low)
	}
}

func TestValidate_EmptyPattern_OneIssuePerSection(t *testing.T) {
	issues := Validate(patternFile("cloud/empty.md"), mdscan.Parse(""))
	if len(issues) != len(patternRules) {
		t.Fatalf("expected %d issues, got %d", len(patternRules), len(issues))
	}
	seen := make(map[string]bool)
	for _, is := range issues {
		section := SectionOf(is)
		if seen[section] {
			t.Fatalf("duplicate issue for section %q", section)
		}
		seen[section] = true
	}
}

func TestValidate_UnrecognizedCodeLangDoesNotCount(t *testing.T) {
	content := "# X\n\n> D\n\n```text\nnot code\n```\n\n## Quand l'utiliser\n\n## Patterns lies\n\n## Sources\n"
	issues := Validate(patternFile("cloud/x.md"), mdscan.Parse(content))
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if SectionOf(issues[0]) != "code example" {
		t.Fatalf("section = %q, want code example", SectionOf(issues[0]))
	}
}

func TestValidate_CategoryIndex(t *testing.T) {
	content := `# Cloud

## Patterns

| Pattern | Description |
|---------|-------------|
| Retry | Reessaie |

## Decision

| Besoin | Pattern |
|--------|---------|
| Resilience | Retry |
`
	f := inventory.File{Rel: "cloud/README.md", Category: "cloud", Kind: inventory.KindCategoryIndex}
	issues := Validate(f, mdscan.Parse(content))
	if len(issues) != 1 {
		t.Fatalf("expected only the sources issue, got %v", issues)
	}
	if issues[0].Severity != issue.SeverityLow || SectionOf(issues[0]) != "sources" {
		t.Fatalf("unexpected issue %v", issues[0])
	}
}

func TestValidate_TemplateSkipped(t *testing.T) {
	f := inventory.File{Rel: "TEMPLATE-PATTERN.md", Kind: inventory.KindTemplate}
	if issues := Validate(f, mdscan.Parse("")); issues != nil {
		t.Fatalf("templates must not be validated, got %v", issues)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	doc := mdscan.Parse("# Only Title")
	f := patternFile("cloud/t.md")
	a := Validate(f, doc)
	b := Validate(f, doc)
	if len(a) != len(b) {
		t.Fatalf("re-validation differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("issue %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
