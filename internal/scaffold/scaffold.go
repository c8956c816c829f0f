// Package scaffold seeds a new documentation tree: the shape templates
// consumed by the structure checks, plus an example improve.yaml.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

var patternTemplate = `# Pattern Name

> _Description courte : le probleme que ce pattern resout._

## Contexte

Quand et pourquoi ce pattern apparait.

## Solution

` + "```go" + `
// Exemple minimal
` + "```" + `

## Quand l'utiliser

- Cas d'usage typique

## Patterns lies

| Pattern | Relation |
|---------|----------|

## Sources

- Reference principale
`

var readmeTemplate = `# Categorie

> _Description de la categorie._

## Patterns

| Pattern | Description |
|---------|-------------|

## Decision

| Besoin | Pattern |
|--------|---------|

## Sources

- Reference principale
`

var configTemplate = `# improve.yaml — optional audit configuration
# oracle-command: scripts/freshness-oracle.sh
# oracle-timeout: 5       # seconds per pattern
# freshness-wall: 120     # seconds for the whole freshness phase
# report-file: AUDIT-REPORT.md
# evolution:
#   testing: high
# exclude:
#   - "drafts/**"
`

// seeded lists the files written by Init, in output order.
var seeded = []struct {
	name    string
	content string
}{
	{"TEMPLATE-PATTERN.md", patternTemplate},
	{"TEMPLATE-README.md", readmeTemplate},
	{"improve.yaml", configTemplate},
}

// Init writes the templates and example config into targetDir. Existing files
// are never overwritten.
func Init(targetDir string) error {
	created := 0
	for _, s := range seeded {
		name, content := s.name, s.content
		path := filepath.Join(targetDir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  %s already exists, skipped\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Printf("  created %s\n", name)
		created++
	}
	if created == 0 {
		return fmt.Errorf("nothing to do: %s is already initialized", targetDir)
	}
	return nil
}
