package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode selects what happens after the checks converge.
type Mode int

const (
	ModeCheck Mode = iota
	ModeFix
	ModeReport
)

func (m Mode) String() string {
	switch m {
	case ModeFix:
		return "fix"
	case ModeReport:
		return "report"
	}
	return "check"
}

// Scope selects which check phases run.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeStructureOnly
	ScopeFreshnessOnly
	ScopeMissingOnly
)

func (s Scope) String() string {
	switch s {
	case ScopeStructureOnly:
		return "structure"
	case ScopeFreshnessOnly:
		return "freshness"
	case ScopeMissingOnly:
		return "missing"
	}
	return "all"
}

// RunConfig is the fully resolved configuration for one run. Parsed once at
// start, immutable afterwards.
type RunConfig struct {
	Mode     Mode
	Scope    Scope
	Category string // optional category filter
	Root     string
	Timeout  time.Duration // global run timeout, 0 = none
	NoColor  bool

	ReportFile    string
	OracleCommand string
	OracleTimeout time.Duration
	FreshnessWall time.Duration
	Evolution     map[string]string // category -> stable|medium|high
	Excludes      []string
}

// FileConfig is the optional improve.yaml at the tree root.
type FileConfig struct {
	OracleCommand string            `yaml:"oracle-command"`
	OracleTimeout int               `yaml:"oracle-timeout"` // seconds per pattern
	FreshnessWall int               `yaml:"freshness-wall"` // seconds for the whole phase
	Evolution     map[string]string `yaml:"evolution"`
	Excludes      []string          `yaml:"exclude"`
	ReportFile    string            `yaml:"report-file"`
}

const configName = "improve.yaml"

// Load reads improve.yaml from root if present and returns a validated
// FileConfig. A missing file yields the defaults.
func Load(root string) (*FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(filepath.Join(root, configName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", configName, err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configName, err)
	}
	if err := Validate(&fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

var validClasses = map[string]bool{
	"stable": true,
	"medium": true,
	"high":   true,
}

// Validate checks the file config for errors and sets defaults.
func Validate(fc *FileConfig) error {
	if fc.OracleTimeout < 0 {
		return fmt.Errorf("config: oracle-timeout must be >= 0")
	}
	if fc.FreshnessWall < 0 {
		return fmt.Errorf("config: freshness-wall must be >= 0")
	}
	for cat, class := range fc.Evolution {
		if !validClasses[class] {
			return fmt.Errorf("config: evolution: category %q: unknown class %q (must be stable, medium, or high)", cat, class)
		}
	}
	if fc.ReportFile == "" {
		fc.ReportFile = "AUDIT-REPORT.md"
	}
	return nil
}

// Flags mirrors the CLI surface.
type Flags struct {
	Check     bool
	Fix       bool
	Report    bool
	Structure bool
	Freshness bool
	Missing   bool
	Category  string
	Root      string
	Timeout   time.Duration
	NoColor   bool
}

// FromFlags merges the CLI flags with the file config into a RunConfig.
// Mode flags are mutually exclusive, as are scope flags.
func FromFlags(f Flags, fc *FileConfig) (*RunConfig, error) {
	rc := &RunConfig{
		Root:          f.Root,
		Category:      f.Category,
		Timeout:       f.Timeout,
		NoColor:       f.NoColor,
		ReportFile:    fc.ReportFile,
		OracleCommand: fc.OracleCommand,
		OracleTimeout: time.Duration(fc.OracleTimeout) * time.Second,
		FreshnessWall: time.Duration(fc.FreshnessWall) * time.Second,
		Evolution:     fc.Evolution,
		Excludes:      fc.Excludes,
	}
	if rc.Root == "" {
		rc.Root = "."
	}

	modes := 0
	if f.Check {
		modes++
	}
	if f.Fix {
		rc.Mode = ModeFix
		modes++
	}
	if f.Report {
		rc.Mode = ModeReport
		modes++
	}
	if modes > 1 {
		return nil, fmt.Errorf("--check, --fix, and --report are mutually exclusive")
	}

	scopes := 0
	if f.Structure {
		rc.Scope = ScopeStructureOnly
		scopes++
	}
	if f.Freshness {
		rc.Scope = ScopeFreshnessOnly
		scopes++
	}
	if f.Missing {
		rc.Scope = ScopeMissingOnly
		scopes++
	}
	if scopes > 1 {
		return nil, fmt.Errorf("--structure, --freshness, and --missing are mutually exclusive")
	}

	return rc, nil
}
