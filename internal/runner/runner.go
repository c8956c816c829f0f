// Package runner coordinates one audit run: scan, dispatch the enabled check
// phases concurrently, join at the aggregator.
package runner

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jorge-barreto/improve/internal/catalog"
	"github.com/jorge-barreto/improve/internal/config"
	"github.com/jorge-barreto/improve/internal/consistency"
	"github.com/jorge-barreto/improve/internal/freshness"
	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
	"github.com/jorge-barreto/improve/internal/report"
	"github.com/jorge-barreto/improve/internal/structure"
	"golang.org/x/sync/errgroup"
)

// Phase is one dispatchable check. The scope is evaluated once into an
// explicit phase list; nothing re-interprets skip conditions at runtime.
type Phase int

const (
	PhaseStructure Phase = iota
	PhaseConsistency
	PhaseCompleteness
	PhaseFreshness
)

func (p Phase) String() string {
	switch p {
	case PhaseStructure:
		return "structure"
	case PhaseConsistency:
		return "consistency"
	case PhaseCompleteness:
		return "completeness"
	case PhaseFreshness:
		return "freshness"
	}
	return "unknown"
}

// Plan maps a scope to its static phase list.
func Plan(scope config.Scope) []Phase {
	switch scope {
	case config.ScopeStructureOnly:
		return []Phase{PhaseStructure}
	case config.ScopeFreshnessOnly:
		return []Phase{PhaseFreshness}
	case config.ScopeMissingOnly:
		return []Phase{PhaseCompleteness}
	default:
		return []Phase{PhaseStructure, PhaseConsistency, PhaseCompleteness, PhaseFreshness}
	}
}

const parseWorkers = 8

// Runner drives one audit run.
type Runner struct {
	Config   *config.RunConfig
	Catalogs *catalog.Set
	Oracle   freshness.Oracle // optional override; defaults from config

	files []inventory.File
	docs  map[string]*mdscan.Doc
}

// Files returns the inventory of the last completed Run.
func (r *Runner) Files() []inventory.File { return r.files }

// Docs returns the parsed documents of the last completed Run.
func (r *Runner) Docs() map[string]*mdscan.Doc { return r.docs }

// Run executes the audit. Scan failures (unreadable root, unknown category)
// are the only fatal errors; everything downstream degrades into report rows.
// A global timeout cancels the phases cooperatively and marks the report
// incomplete rather than aborting.
func (r *Runner) Run(ctx context.Context) (*report.AuditReport, error) {
	started := time.Now()

	if r.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Config.Timeout)
		defer cancel()
	}

	files, err := inventory.Scan(r.Config.Root, inventory.Options{
		Category: r.Config.Category,
		Excludes: r.Config.Excludes,
	})
	if err != nil {
		return nil, err
	}
	r.files = files
	r.docs = parseAll(ctx, files)

	var (
		structIssues []issue.Issue
		consIssues   []issue.Issue
		missing      []issue.MissingPattern
		findings     []freshness.Finding
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, phase := range Plan(r.Config.Scope) {
		switch phase {
		case PhaseStructure:
			g.Go(func() error {
				structIssues = r.runStructure(gctx, files)
				return nil
			})
		case PhaseConsistency:
			g.Go(func() error {
				consIssues = consistency.Check(files, r.docs, r.Catalogs)
				return nil
			})
		case PhaseCompleteness:
			g.Go(func() error {
				missing = catalog.Compare(files, r.docs, r.Catalogs, r.Config.Category)
				return nil
			})
		case PhaseFreshness:
			g.Go(func() error {
				findings = r.assessor().Assess(gctx, files, r.docs)
				return nil
			})
		}
	}
	g.Wait() // join barrier; phases never fail, they degrade

	issues := make([]issue.Issue, 0, len(structIssues)+len(consIssues))
	issues = append(issues, structIssues...)
	issues = append(issues, consIssues...)

	rep := report.Aggregate(issues, missing, freshness.Outdated(findings), len(files))
	rep.RunID = uuid.NewString()
	rep.Root = r.Config.Root
	rep.Started = started
	rep.Finished = time.Now()
	rep.Incomplete = ctx.Err() != nil
	return rep, nil
}

// runStructure validates files in parallel, keeping issue output in
// file-scan order regardless of which worker finished first.
func (r *Runner) runStructure(ctx context.Context, files []inventory.File) []issue.Issue {
	perFile := make([][]issue.Issue, len(files))

	g := &errgroup.Group{}
	g.SetLimit(parseWorkers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // cancelled: report whatever was collected
			}
			perFile[i] = structure.Validate(f, r.docs[f.Rel])
			return nil
		})
	}
	g.Wait()

	var issues []issue.Issue
	for _, batch := range perFile {
		issues = append(issues, batch...)
	}
	return issues
}

func (r *Runner) assessor() *freshness.Assessor {
	a := &freshness.Assessor{
		Oracle:            r.Oracle,
		PerPatternTimeout: r.Config.OracleTimeout,
		WallCap:           r.Config.FreshnessWall,
	}
	if a.Oracle == nil && r.Config.OracleCommand != "" {
		a.Oracle = &freshness.CommandOracle{Command: r.Config.OracleCommand, WorkDir: r.Config.Root}
	}
	if len(r.Config.Evolution) > 0 {
		a.Evolution = mergeEvolution(r.Config.Evolution)
	}
	return a
}

// mergeEvolution overlays config overrides on the default class map.
func mergeEvolution(overrides map[string]string) map[string]freshness.Class {
	m := freshness.DefaultEvolution()
	for cat, class := range overrides {
		switch class {
		case "stable":
			m[cat] = freshness.ClassStable
		case "medium":
			m[cat] = freshness.ClassMediumEvolution
		case "high":
			m[cat] = freshness.ClassHighEvolution
		}
	}
	return m
}

// parseAll reads and probes every document with a bounded worker pool. A file
// that cannot be read is treated as empty; its missing sections surface as
// ordinary issues instead of failing the run.
func parseAll(ctx context.Context, files []inventory.File) map[string]*mdscan.Doc {
	docs := make([]*mdscan.Doc, len(files))

	g := &errgroup.Group{}
	g.SetLimit(parseWorkers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if ctx.Err() != nil {
				docs[i] = mdscan.Parse("")
				return nil
			}
			data, err := os.ReadFile(f.Path)
			if err != nil {
				docs[i] = mdscan.Parse("")
				return nil
			}
			docs[i] = mdscan.Parse(string(data))
			return nil
		})
	}
	g.Wait()

	out := make(map[string]*mdscan.Doc, len(files))
	for i, f := range files {
		out[f.Rel] = docs[i]
	}
	return out
}
