// Package freshness asks an external oracle whether each pattern's guidance
// still reflects current practice. Results are best-effort advisory: any
// oracle failure degrades that pattern's verdict to Unknown and never fails
// the run.
package freshness

import (
	"context"
	"time"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/mdscan"
	"golang.org/x/sync/errgroup"
)

// Verdict is the oracle's answer for one pattern.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictCurrent
	VerdictOutdated
)

func (v Verdict) String() string {
	switch v {
	case VerdictCurrent:
		return "current"
	case VerdictOutdated:
		return "outdated"
	}
	return "unknown"
}

// Oracle answers freshness queries. Backed by web search or an LLM in the
// real environment; tests substitute a mock.
type Oracle interface {
	Query(ctx context.Context, pattern, category string) (Verdict, error)
}

// Class is a category's evolution speed. Stable categories are skipped by
// policy to bound oracle cost.
type Class int

const (
	ClassStable Class = iota
	ClassMediumEvolution
	ClassHighEvolution
)

// DefaultEvolution maps the standard categories to their evolution class.
func DefaultEvolution() map[string]Class {
	return map[string]Class{
		"cloud":         ClassHighEvolution,
		"security":      ClassHighEvolution,
		"devops":        ClassHighEvolution,
		"architectural": ClassMediumEvolution,
		"testing":       ClassMediumEvolution,
		"principles":    ClassStable,
		"creational":    ClassStable,
		"structural":    ClassStable,
		"behavioral":    ClassStable,
	}
}

// Finding is one assessed pattern.
type Finding struct {
	File     string
	Name     string
	Category string
	Verdict  Verdict
}

const (
	defaultPerPatternTimeout = 5 * time.Second
	defaultWallCap           = 2 * time.Minute
	defaultWorkers           = 4
)

// Assessor runs the freshness phase.
type Assessor struct {
	Oracle            Oracle
	PerPatternTimeout time.Duration // per oracle call, no retries
	WallCap           time.Duration // hard cap on the whole phase
	Evolution         map[string]Class
	Workers           int
}

// Assess queries the oracle for every pattern file in a non-stable category.
// On per-call timeout or error the verdict is Unknown; on wall-cap exhaustion
// the remaining patterns come back Unknown and the phase still returns.
// Findings are returned in file-scan order.
func (a *Assessor) Assess(ctx context.Context, files []inventory.File, docs map[string]*mdscan.Doc) []Finding {
	perCall := a.PerPatternTimeout
	if perCall <= 0 {
		perCall = defaultPerPatternTimeout
	}
	wall := a.WallCap
	if wall <= 0 {
		wall = defaultWallCap
	}
	workers := a.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	evolution := a.Evolution
	if evolution == nil {
		evolution = DefaultEvolution()
	}

	var targets []Finding
	for _, f := range files {
		if f.Kind != inventory.KindPattern {
			continue
		}
		if evolution[f.Category] == ClassStable {
			continue
		}
		name := ""
		if doc := docs[f.Rel]; doc != nil {
			name = doc.Title
		}
		if name == "" {
			name = f.Rel
		}
		targets = append(targets, Finding{File: f.Rel, Name: name, Category: f.Category, Verdict: VerdictUnknown})
	}
	if len(targets) == 0 || a.Oracle == nil {
		return targets
	}

	phaseCtx, cancel := context.WithTimeout(ctx, wall)
	defer cancel()

	g, gctx := errgroup.WithContext(phaseCtx)
	g.SetLimit(workers)
	for i := range targets {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // wall cap or cancellation: leave Unknown
			}
			callCtx, done := context.WithTimeout(gctx, perCall)
			defer done()
			verdict, err := a.Oracle.Query(callCtx, targets[i].Name, targets[i].Category)
			if err == nil {
				targets[i].Verdict = verdict
			}
			return nil
		})
	}
	g.Wait() // workers never return errors; failures degrade to Unknown

	return targets
}

// Outdated filters findings down to those the oracle flagged as stale.
func Outdated(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Verdict == VerdictOutdated {
			out = append(out, f)
		}
	}
	return out
}
