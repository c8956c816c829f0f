package mdscan

import "strings"

// Section keyword sets. The corpus mixes English and French headings
// ("Patterns liés", "Quand l'utiliser"), so both spellings are recognized.
var (
	relatedKeys  = []string{"related pattern", "patterns lies", "patterns associes"}
	whenKeys     = []string{"when to use", "quand l'utiliser", "quand utiliser"}
	sourcesKeys  = []string{"sources", "references"}
	decisionKeys = []string{"decision", "quel pattern", "which pattern", "choisir"}
	patternsKeys = []string{"patterns"}
)

// Terse headings accepted as a usage section on exact match only, so "When"
// counts but "Whenever possible" does not.
var whenExact = map[string]bool{
	"when":        true,
	"usage":       true,
	"quand":       true,
	"utilisation": true,
}

// recognized fence language tags counting as a real code example
var codeLangs = map[string]bool{
	"go": true, "typescript": true, "ts": true, "javascript": true, "js": true,
	"python": true, "py": true, "java": true, "csharp": true, "cs": true,
	"rust": true, "kotlin": true, "swift": true, "ruby": true, "php": true,
	"sql": true, "yaml": true, "json": true, "bash": true, "sh": true,
	"shell": true, "hcl": true, "terraform": true, "proto": true, "http": true,
}

func matchAny(normalized string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

func (d *Doc) hasHeading(keys []string) bool {
	for _, h := range d.Headings {
		if matchAny(Normalize(h.Text), keys) {
			return true
		}
	}
	return false
}

func (d *Doc) tablesUnder(keys []string) []Table {
	var out []Table
	for _, t := range d.Tables {
		if matchAny(t.Section, keys) {
			out = append(out, t)
		}
	}
	return out
}

// HasRecognizedCode reports whether at least one fenced block carries a
// recognized language tag.
func (d *Doc) HasRecognizedCode() bool {
	for _, lang := range d.CodeLangs {
		if codeLangs[lang] {
			return true
		}
	}
	return false
}

// HasWhenToUse accepts either a heading or a standalone bold label.
func (d *Doc) HasWhenToUse() bool {
	if d.hasHeading(whenKeys) {
		return true
	}
	for _, h := range d.Headings {
		if whenExact[Normalize(h.Text)] {
			return true
		}
	}
	for _, b := range d.BoldLabels {
		if matchAny(b, whenKeys) || whenExact[b] {
			return true
		}
	}
	return false
}

func (d *Doc) HasRelatedSection() bool { return d.hasHeading(relatedKeys) }
func (d *Doc) HasSources() bool        { return d.hasHeading(sourcesKeys) }

// RelatedTables returns the tables under a "related patterns" heading.
func (d *Doc) RelatedTables() []Table { return d.tablesUnder(relatedKeys) }

// DecisionTables returns the tables under a decision-guide heading.
func (d *Doc) DecisionTables() []Table { return d.tablesUnder(decisionKeys) }

// PatternsTables returns the index tables of a category README: tables under
// a "patterns" heading, excluding decision tables.
func (d *Doc) PatternsTables() []Table {
	var out []Table
	for _, t := range d.tablesUnder(patternsKeys) {
		if !matchAny(t.Section, decisionKeys) {
			out = append(out, t)
		}
	}
	return out
}

// RelatedNames returns the first-column pattern names of every related table,
// link syntax stripped, in table order.
func (d *Doc) RelatedNames() []string {
	var names []string
	for _, t := range d.RelatedTables() {
		for _, row := range t.Rows {
			if len(row) == 0 {
				continue
			}
			if name := CellText(row[0]); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
