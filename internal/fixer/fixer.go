// Package fixer turns a narrow set of well-known findings into deterministic
// file edits. The hard guard rail: it only ever adds missing sections or
// files from templates, and never deletes or rewrites user content. Broken
// links, unknown pattern references, catalog gaps, and freshness findings are
// always left for manual review.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/mdscan"
	"github.com/jorge-barreto/improve/internal/report"
	"github.com/jorge-barreto/improve/internal/structure"
	"golang.org/x/sync/errgroup"
)

// WriteConflictError reports that a target file changed on disk between scan
// and apply. The file is skipped and counted as remaining; other files still
// get their fixes.
type WriteConflictError struct {
	Path string
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("write conflict: %s was modified externally since the scan", e.Path)
}

// section stubs appended to existing files. Section names follow the corpus
// convention (French headings for the authored sections).
var sectionStubs = map[string]string{
	"sources": "\n## Sources\n\n- _A completer_\n",
	"related patterns": "\n## Patterns lies\n\n" +
		"| Pattern | Relation |\n" +
		"|---------|----------|\n" +
		"| _A completer_ | |\n",
}

// readmeStub seeds a category README that is missing entirely.
const readmeStub = "# %s\n\n> _A completer : description de la categorie._\n\n" +
	"## Patterns\n\n" +
	"| Pattern | Description |\n" +
	"|---------|-------------|\n\n" +
	"## Decision\n\n" +
	"| Besoin | Pattern |\n" +
	"|--------|---------|\n\n" +
	"## Sources\n\n- _A completer_\n"

// Action is one planned deterministic edit.
type Action struct {
	Path    string // absolute target path
	Rel     string // root-relative, for reporting
	Section string // section to append, "" when creating a file
	Snippet string
	Create  bool
}

// Result summarises an apply pass.
type Result struct {
	Fixed     int      // sections appended
	Created   int      // files created from templates
	Updated   int      // existing files written
	Remaining []string // actions skipped (conflicts), for manual follow-up
}

// Plan converts the auto-fixable subset of a report into concrete actions:
// MissingSection issues with a known stub, plus a seeded README for any
// category directory that lacks one. Everything else stays manual.
func Plan(rep *report.AuditReport, files []inventory.File, root string) []Action {
	byRel := make(map[string]inventory.File, len(files))
	hasIndex := make(map[string]bool)
	for _, f := range files {
		byRel[f.Rel] = f
		if f.Kind == inventory.KindCategoryIndex {
			hasIndex[f.Category] = true
		}
	}

	var actions []Action
	for _, is := range rep.Issues {
		section := structure.SectionOf(is)
		if section == "" || !structure.FixableSections[section] {
			continue
		}
		f, ok := byRel[is.File]
		if !ok {
			continue
		}
		actions = append(actions, Action{
			Path:    f.Path,
			Rel:     f.Rel,
			Section: section,
			Snippet: sectionStubs[section],
		})
	}

	for _, cat := range inventory.Categories(files) {
		if hasIndex[cat] {
			continue
		}
		rel := cat + "/README.md"
		actions = append(actions, Action{
			Path:    filepath.Join(root, cat, "README.md"),
			Rel:     rel,
			Snippet: fmt.Sprintf(readmeStub, titleCase(cat)),
			Create:  true,
		})
	}

	return actions
}

// Applier applies planned actions. Writes to the same file are serialized by
// a per-path mutex; distinct files apply concurrently.
type Applier struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewApplier() *Applier {
	return &Applier{locks: make(map[string]*sync.Mutex)}
}

func (a *Applier) pathLock(path string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[path]
	if !ok {
		l = &sync.Mutex{}
		a.locks[path] = l
	}
	return l
}

// Apply executes the actions. Re-running Apply over an already-fixed tree is
// a no-op: a section that is now present, or a file that now exists, is
// simply skipped.
func (a *Applier) Apply(ctx context.Context, actions []Action) (*Result, error) {
	perFile := make(map[string][]Action)
	var order []string
	for _, act := range actions {
		if _, ok := perFile[act.Path]; !ok {
			order = append(order, act.Path)
		}
		perFile[act.Path] = append(perFile[act.Path], act)
	}

	res := &Result{}
	var resMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, path := range order {
		path := path
		acts := perFile[path]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			lock := a.pathLock(path)
			lock.Lock()
			defer lock.Unlock()

			fixed, created, updated, err := applyFile(path, acts)
			resMu.Lock()
			defer resMu.Unlock()
			res.Fixed += fixed
			res.Created += created
			res.Updated += updated
			if err != nil {
				var conflict *WriteConflictError
				if !errors.As(err, &conflict) {
					return err
				}
				for _, act := range acts {
					res.Remaining = append(res.Remaining, act.Rel)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// applyFile performs the per-file edit as one atomic write.
func applyFile(path string, acts []Action) (fixed, created, updated int, err error) {
	if acts[0].Create {
		if _, statErr := os.Stat(path); statErr == nil {
			return 0, 0, 0, nil // already created, no-op
		}
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return 0, 0, 0, mkErr
		}
		if wErr := WriteFileAtomic(path, []byte(acts[0].Snippet), 0644); wErr != nil {
			return 0, 0, 0, wErr
		}
		return 0, 1, 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, 0, &WriteConflictError{Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, 0, err
	}

	doc := mdscan.Parse(string(data))
	content := string(data)
	appended := 0
	for _, act := range acts {
		if sectionPresent(doc, act.Section) {
			continue
		}
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += act.Snippet
		appended++
	}
	if appended == 0 {
		return 0, 0, 0, nil
	}

	// refuse to clobber concurrent external edits
	again, err := os.Stat(path)
	if err != nil || !again.ModTime().Equal(info.ModTime()) || again.Size() != info.Size() {
		return 0, 0, 0, &WriteConflictError{Path: path}
	}
	if err := WriteFileAtomic(path, []byte(content), info.Mode().Perm()); err != nil {
		return 0, 0, 0, err
	}
	return appended, 0, 1, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sectionPresent(doc *mdscan.Doc, section string) bool {
	switch section {
	case "sources":
		return doc.HasSources()
	case "related patterns":
		return doc.HasRelatedSection()
	}
	return true // unknown section: treat as present, never touch the file
}
