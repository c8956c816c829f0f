package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/jorge-barreto/improve/internal/mdscan"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs.yaml
var catalogsYAML []byte

// Entry is one reference-catalog fact: a pattern name, the catalog it comes
// from, and the documentation category it belongs to. Read-only.
type Entry struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	SourceCatalog string `yaml:"-"`
}

type rawCatalog struct {
	Name     string  `yaml:"name"`
	Patterns []Entry `yaml:"patterns"`
}

type rawFile struct {
	Catalogs []rawCatalog `yaml:"catalogs"`
}

// Set is the loaded reference dataset. Built once at startup, never re-derived.
type Set struct {
	Entries []Entry
	order   []string
	counts  map[string]int
	byNorm  map[string][]Entry
}

// Load parses the embedded catalog dataset.
func Load() (*Set, error) {
	var raw rawFile
	if err := yaml.Unmarshal(catalogsYAML, &raw); err != nil {
		return nil, fmt.Errorf("parsing embedded catalogs: %w", err)
	}
	s := &Set{
		counts: make(map[string]int),
		byNorm: make(map[string][]Entry),
	}
	for _, c := range raw.Catalogs {
		s.order = append(s.order, c.Name)
		for _, e := range c.Patterns {
			e.SourceCatalog = c.Name
			s.Entries = append(s.Entries, e)
			s.counts[c.Name]++
			key := Normalize(e.Name)
			s.byNorm[key] = append(s.byNorm[key], e)
		}
	}
	return s, nil
}

// Lookup resolves a pattern name against the dataset, tolerant of casing,
// accents, punctuation, and a trailing "pattern" suffix.
func (s *Set) Lookup(name string) (Entry, bool) {
	entries := s.byNorm[Normalize(name)]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Len returns the total number of entries across all catalogs.
func (s *Set) Len() int { return len(s.Entries) }

// Names returns the catalog names in dataset order.
func (s *Set) Names() []string { return s.order }

// Count returns the number of entries in the named catalog.
func (s *Set) Count(catalog string) int { return s.counts[catalog] }

// Normalize reduces a pattern name to a comparison key: lowercased, accents
// folded, punctuation dropped, a trailing "pattern" suffix removed. "Strangler
// Fig", "strangler-fig" and "Strangler Fig Pattern" all collapse to one key.
func Normalize(name string) string {
	n := mdscan.Normalize(name)
	n = strings.TrimSuffix(n, " pattern")
	var b strings.Builder
	for _, r := range n {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
