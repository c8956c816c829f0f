package mdscan

import (
	"regexp"
	"strings"
)

// Heading is one markdown heading with its level and line number.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Table is one pipe table, tagged with the heading it appears under.
type Table struct {
	Section string // normalized text of the owning heading, "" if none
	Headers []string
	Rows    [][]string // raw cell text, links included
	Line    int
}

// Link is one inline markdown link.
type Link struct {
	Text   string
	Target string
	Line   int
}

// Doc holds the observable features of one markdown document. Section
// presence is derived from these features, never stored.
type Doc struct {
	Title         string // first H1 text, "" if the file has none
	HasBlockquote bool   // at least one "> ..." description line
	CodeLangs     []string
	Headings      []Heading
	BoldLabels    []string // normalized standalone **labels**
	Tables        []Table
	Links         []Link
}

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	fenceRe     = regexp.MustCompile("^```\\s*(\\S*)")
	boldLabelRe = regexp.MustCompile(`^\*\*([^*]+)\*\*:?\s*$`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	tableSepRe  = regexp.MustCompile(`^\|?[\s:|-]+\|?$`)
)

// Parse scans content once, line by line, tracking fence state so that
// markdown syntax inside code blocks is never misread as structure.
func Parse(content string) *Doc {
	doc := &Doc{}
	lines := strings.Split(content, "\n")

	inFence := false
	section := ""
	var tableStart int
	var tableLines []string

	flushTable := func(end int) {
		if len(tableLines) >= 2 && tableSepRe.MatchString(strings.TrimSpace(tableLines[1])) {
			t := Table{
				Section: section,
				Headers: splitRow(tableLines[0]),
				Line:    tableStart + 1,
			}
			for i := range t.Headers {
				t.Headers[i] = Normalize(t.Headers[i])
			}
			for _, row := range tableLines[2:] {
				t.Rows = append(t.Rows, splitRow(row))
			}
			doc.Tables = append(doc.Tables, t)
		}
		tableLines = nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
			if inFence {
				inFence = false
			} else {
				inFence = true
				if m[1] != "" {
					doc.CodeLangs = append(doc.CodeLangs, strings.ToLower(m[1]))
				}
			}
			flushTable(i)
			continue
		}
		if inFence {
			continue
		}

		// links are collected everywhere, table rows included
		for _, m := range linkRe.FindAllStringSubmatchIndex(line, -1) {
			doc.Links = append(doc.Links, Link{
				Text:   line[m[2]:m[3]],
				Target: line[m[4]:m[5]],
				Line:   i + 1,
			})
		}

		if strings.HasPrefix(trimmed, "|") {
			if tableLines == nil {
				tableStart = i
			}
			tableLines = append(tableLines, trimmed)
			continue
		}
		flushTable(i)

		if m := headingRe.FindStringSubmatch(line); m != nil {
			h := Heading{Level: len(m[1]), Text: m[2], Line: i + 1}
			doc.Headings = append(doc.Headings, h)
			section = Normalize(h.Text)
			if h.Level == 1 && doc.Title == "" {
				doc.Title = h.Text
			}
			continue
		}

		if strings.HasPrefix(trimmed, "> ") && len(trimmed) > 2 {
			doc.HasBlockquote = true
		}

		if m := boldLabelRe.FindStringSubmatch(trimmed); m != nil {
			doc.BoldLabels = append(doc.BoldLabels, Normalize(m[1]))
		}
	}
	flushTable(len(lines))

	return doc
}

func splitRow(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// accent folding for the French section names used across the corpus
var accentFold = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "î", "i", "ï", "i",
	"ô", "o", "û", "u", "ù", "u", "ç", "c",
)

// Normalize lowercases, folds accents, and collapses runs of whitespace so
// section names and table headers compare case- and accent-insensitively.
func Normalize(s string) string {
	s = accentFold.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// CellText strips markdown link syntax from a table cell, leaving the label.
func CellText(cell string) string {
	if m := linkRe.FindStringSubmatch(cell); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.Trim(strings.TrimSpace(cell), "*`")
}

// CellLink returns the link target of a table cell, or "" if the cell is
// plain text.
func CellLink(cell string) string {
	if m := linkRe.FindStringSubmatch(cell); m != nil {
		return m[2]
	}
	return ""
}
