// Package consistency runs the cross-file checks: table-header shape, internal
// link resolution, and related-pattern name resolution. It needs the whole
// inventory as input but touches no shared mutable state, so the coordinator
// can run it concurrently with the per-file checkers.
package consistency

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/jorge-barreto/improve/internal/catalog"
	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

// Check runs all three sub-checks over the full inventory. Issues are emitted
// in file-scan order within each sub-check.
func Check(files []inventory.File, docs map[string]*mdscan.Doc, set *catalog.Set) []issue.Issue {
	var issues []issue.Issue
	issues = append(issues, checkTableShapes(files, docs)...)
	issues = append(issues, checkLinks(files, docs)...)
	issues = append(issues, checkRelatedNames(files, docs, set)...)
	return issues
}

// tableClass identifies a comparable group of tables across files.
type tableClass struct {
	kind  inventory.Kind
	class string
}

func classTables(f inventory.File, doc *mdscan.Doc) map[string][]mdscan.Table {
	switch f.Kind {
	case inventory.KindPattern:
		return map[string][]mdscan.Table{"related patterns": doc.RelatedTables()}
	case inventory.KindCategoryIndex:
		return map[string][]mdscan.Table{
			"patterns": doc.PatternsTables(),
			"decision": doc.DecisionTables(),
		}
	}
	return nil
}

// checkTableShapes flags tables whose header row deviates from the dominant
// shape for their class. The baseline is the most common signature across
// files of the same kind; ties break toward the lexically smallest signature
// so re-runs stay deterministic.
func checkTableShapes(files []inventory.File, docs map[string]*mdscan.Doc) []issue.Issue {
	type sig struct {
		file string
		sig  string
	}
	groups := make(map[tableClass][]sig)

	for _, f := range files {
		doc := docs[f.Rel]
		if doc == nil {
			continue
		}
		for class, tables := range classTables(f, doc) {
			for _, t := range tables {
				key := tableClass{f.Kind, class}
				groups[key] = append(groups[key], sig{f.Rel, strings.Join(t.Headers, "|")})
			}
		}
	}

	var issues []issue.Issue
	keys := make([]tableClass, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].class < keys[j].class
	})

	for _, k := range keys {
		sigs := groups[k]
		if len(sigs) < 2 {
			continue
		}
		counts := make(map[string]int)
		for _, s := range sigs {
			counts[s.sig]++
		}
		baseline := ""
		for s, n := range counts {
			if baseline == "" || n > counts[baseline] || (n == counts[baseline] && s < baseline) {
				baseline = s
			}
		}
		for _, s := range sigs {
			if s.sig == baseline {
				continue
			}
			issues = append(issues, issue.Issue{
				File:     s.file,
				Kind:     issue.TableShape,
				Severity: issue.SeverityLow,
				Detail: fmt.Sprintf("%s table headers [%s] differ from the dominant shape [%s]",
					k.class, s.sig, baseline),
			})
		}
	}
	return issues
}

// checkLinks resolves relative markdown links against the inventory.
func checkLinks(files []inventory.File, docs map[string]*mdscan.Doc) []issue.Issue {
	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f.Rel] = true
	}

	var issues []issue.Issue
	for _, f := range files {
		doc := docs[f.Rel]
		if doc == nil {
			continue
		}
		for _, l := range doc.Links {
			target, ok := relativeTarget(l.Target)
			if !ok {
				continue
			}
			resolved := path.Clean(path.Join(path.Dir(f.Rel), target))
			if !known[resolved] {
				issues = append(issues, issue.Issue{
					File:     f.Rel,
					Kind:     issue.BrokenLink,
					Severity: issue.SeverityMedium,
					Detail:   fmt.Sprintf("link %q (line %d) resolves to %s, which is not in the inventory", l.Target, l.Line, resolved),
				})
			}
		}
	}
	return issues
}

// relativeTarget strips anchors and reports whether the link points at a
// markdown file inside the tree. External URLs and pure anchors are ignored.
func relativeTarget(target string) (string, bool) {
	if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "#") {
		return "", false
	}
	if i := strings.Index(target, "#"); i >= 0 {
		target = target[:i]
	}
	if !strings.HasSuffix(target, ".md") {
		return "", false
	}
	return target, true
}

// checkRelatedNames verifies that every name in a related-patterns table
// resolves to a documented pattern file or a reference-catalog entry.
func checkRelatedNames(files []inventory.File, docs map[string]*mdscan.Doc, set *catalog.Set) []issue.Issue {
	documented := make(map[string]bool)
	for _, f := range files {
		if f.Kind != inventory.KindPattern {
			continue
		}
		documented[catalog.Normalize(strings.TrimSuffix(path.Base(f.Rel), ".md"))] = true
		if doc := docs[f.Rel]; doc != nil && doc.Title != "" {
			documented[catalog.Normalize(doc.Title)] = true
		}
	}

	var issues []issue.Issue
	for _, f := range files {
		if f.Kind != inventory.KindPattern {
			continue
		}
		doc := docs[f.Rel]
		if doc == nil {
			continue
		}
		for _, name := range doc.RelatedNames() {
			if documented[catalog.Normalize(name)] {
				continue
			}
			if _, ok := set.Lookup(name); ok {
				continue
			}
			issues = append(issues, issue.Issue{
				File:     f.Rel,
				Kind:     issue.UnknownPatternReference,
				Severity: issue.SeverityMedium,
				Detail:   fmt.Sprintf("related pattern %q matches no documented file and no catalog entry", name),
			})
		}
	}
	return issues
}
