package inventory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a markdown file within the documentation tree.
type Kind int

const (
	KindPattern Kind = iota
	KindCategoryIndex
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindCategoryIndex:
		return "category-index"
	case KindTemplate:
		return "template"
	}
	return "unknown"
}

// File is one indexed document. Immutable after the scan; a re-scan builds a
// fresh inventory rather than mutating this one.
type File struct {
	Path     string // absolute path on disk
	Rel      string // root-relative slash path
	Category string // first path element under root, "" for root-level files
	Kind     Kind
}

// InvalidCategoryError reports a --category value that matches no directory.
type InvalidCategoryError struct {
	Category string
	Known    []string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q (known: %s)", e.Category, strings.Join(e.Known, ", "))
}

// templatePattern matches the section-shape templates at the tree root.
const templatePattern = "TEMPLATE-*.md"

// skipDirs are directories excluded from the walk.
var skipDirs = map[string]bool{
	".git":          true,
	".github":       true,
	"node_modules":  true,
	".devcontainer": true,
}

// Options narrows a scan.
type Options struct {
	Category string   // restrict to one category directory
	Excludes []string // doublestar patterns matched against root-relative paths
}

// Scan walks root and builds the inventory in lexical walk order. The root
// being unreadable is the only fatal condition; per-entry errors inside the
// tree are skipped. Category filtering is applied after the walk so that a
// filtered scan equals the unfiltered scan restricted to that category.
func Scan(root string, opts Options) ([]File, error) {
	var files []File
	categories := make(map[string]bool)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("reading root %s: %w", root, err)
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if p != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if p != root && !strings.Contains(rel, "/") {
				categories[rel] = true
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		for _, pat := range opts.Excludes {
			if ok, _ := doublestar.Match(pat, rel); ok {
				return nil
			}
		}

		f, ok := classify(p, rel, d.Name())
		if !ok {
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Category != "" {
		if !categories[opts.Category] {
			return nil, &InvalidCategoryError{Category: opts.Category, Known: sortedKeys(categories)}
		}
		var kept []File
		for _, f := range files {
			if f.Category == opts.Category {
				kept = append(kept, f)
			}
		}
		files = kept
	}

	return files, nil
}

// classify applies the naming rules: README.md is a category index,
// TEMPLATE-*.md is a template, anything else under a category directory is a
// pattern. Root-level files other than templates (CLAUDE.md, the top README)
// are operator-facing and not indexed.
func classify(abs, rel, name string) (File, bool) {
	f := File{Path: abs, Rel: rel}
	if i := strings.Index(rel, "/"); i >= 0 {
		f.Category = rel[:i]
	}

	if ok, _ := doublestar.Match(templatePattern, name); ok {
		f.Kind = KindTemplate
		return f, true
	}
	if f.Category == "" {
		return File{}, false
	}
	if name == "README.md" {
		// only the top-level README of a category is its index; a README in a
		// nested sub-directory still describes its own sub-tree
		f.Kind = KindCategoryIndex
		return f, true
	}
	// files in nested sub-directories inherit the top-level category
	f.Kind = KindPattern
	return f, true
}

// Categories returns the distinct categories present in the inventory, sorted.
func Categories(files []File) []string {
	set := make(map[string]bool)
	for _, f := range files {
		if f.Category != "" {
			set[f.Category] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
