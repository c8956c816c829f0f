package catalog

import (
	"path"
	"strings"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

// Compare diffs the documented pattern set against the reference catalogs and
// returns the gaps in dataset order. A pattern counts as documented when its
// H1 title or its filename matches a catalog entry's normalized name. If
// category is non-empty, only gaps in that category are reported.
//
// Priority heuristic: a gap is High when some related-patterns table already
// references the name (a demand signal), or when a category README's decision
// table names it without a link target; otherwise Medium.
func Compare(files []inventory.File, docs map[string]*mdscan.Doc, set *Set, category string) []issue.MissingPattern {
	documented := make(map[string]bool)
	demanded := make(map[string]bool)

	for _, f := range files {
		doc := docs[f.Rel]
		if doc == nil {
			continue
		}
		switch f.Kind {
		case inventory.KindPattern:
			if doc.Title != "" {
				documented[Normalize(doc.Title)] = true
			}
			documented[Normalize(baseName(f.Rel))] = true
			for _, name := range doc.RelatedNames() {
				demanded[Normalize(name)] = true
			}
		case inventory.KindCategoryIndex:
			// any unlinked cell of a decision table can name a pattern
			for _, t := range doc.DecisionTables() {
				for _, row := range t.Rows {
					for _, cell := range row {
						if mdscan.CellLink(cell) == "" {
							demanded[Normalize(mdscan.CellText(cell))] = true
						}
					}
				}
			}
		}
	}

	var missing []issue.MissingPattern
	seen := make(map[string]bool)
	for _, e := range set.Entries {
		if category != "" && e.Category != category {
			continue
		}
		key := Normalize(e.Name)
		if documented[key] || seen[key] {
			continue
		}
		seen[key] = true
		prio := issue.PriorityMedium
		if demanded[key] {
			prio = issue.PriorityHigh
		}
		missing = append(missing, issue.MissingPattern{
			Name:          e.Name,
			Category:      e.Category,
			Priority:      prio,
			SourceCatalog: e.SourceCatalog,
		})
	}
	return missing
}

func baseName(rel string) string {
	return strings.TrimSuffix(path.Base(rel), ".md")
}
