package catalog

import (
	"testing"

	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/issue"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

func load(t *testing.T) *Set {
	t.Helper()
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return set
}

func TestLoad_CatalogSizes(t *testing.T) {
	set := load(t)
	tests := []struct {
		catalog string
		count   int
	}{
		{"GoF", 23},
		{"PoEAA", 41},
		{"EIP", 65},
		{"Cloud", 41},
		{"DDD", 16},
		{"SOLID/GRASP", 14},
	}
	for _, tt := range tests {
		if got := set.Count(tt.catalog); got != tt.count {
			t.Errorf("Count(%s) = %d, want %d", tt.catalog, got, tt.count)
		}
	}
}

func TestLookup_Normalization(t *testing.T) {
	set := load(t)
	for _, name := range []string{"Singleton", "singleton", "Singleton Pattern", "Strangler-Fig", "chain of responsibility", "Format Indicator", "Remote Procedure Invocation"} {
		if _, ok := set.Lookup(name); !ok {
			t.Errorf("Lookup(%q) should resolve", name)
		}
	}
	if _, ok := set.Lookup("Outbox Pattern"); ok {
		t.Error("Outbox should not be a catalog entry")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Strangler Fig Pattern", "stranglerfig"},
		{"Publish-Subscribe Channel", "publishsubscribechannel"},
		{"CQRS", "cqrs"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func docFiles(contents map[string]string) ([]inventory.File, map[string]*mdscan.Doc) {
	var files []inventory.File
	docs := make(map[string]*mdscan.Doc)
	for rel, content := range contents {
		kind := inventory.KindPattern
		if rel[len(rel)-9:] == "README.md" {
			kind = inventory.KindCategoryIndex
		}
		cat := rel[:indexByte(rel, '/')]
		files = append(files, inventory.File{Rel: rel, Category: cat, Kind: kind})
		docs[rel] = mdscan.Parse(content)
	}
	return files, docs
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return len(s)
}

func TestCompare_DocumentedByTitle(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"creational/singleton.md": "# Singleton\n",
	})
	for _, m := range Compare(files, docs, load(t), "") {
		if m.Name == "Singleton" {
			t.Fatal("Singleton is documented, must not be reported missing")
		}
	}
}

func TestCompare_DocumentedByFilename(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"behavioral/template-method.md": "no title here",
	})
	for _, m := range Compare(files, docs, load(t), "") {
		if m.Name == "Template Method" {
			t.Fatal("template-method.md should document Template Method")
		}
	}
}

func TestCompare_CategoryRestriction(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"creational/singleton.md": "# Singleton\n",
	})
	missing := Compare(files, docs, load(t), "creational")
	// the four other creational GoF patterns remain
	if len(missing) != 4 {
		t.Fatalf("expected 4 creational gaps, got %d: %v", len(missing), missing)
	}
	for _, m := range missing {
		if m.Category != "creational" {
			t.Fatalf("gap %q outside creational: %s", m.Name, m.Category)
		}
	}
}

// A gap referenced from a related-patterns table is a demand signal and
// becomes high priority; unreferenced gaps stay medium.
func TestCompare_PriorityFromRelatedReference(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"creational/singleton.md": "# Singleton\n\n## Patterns lies\n\n" +
			"| Pattern | Relation |\n|---------|----------|\n| Builder | variante |\n",
	})
	missing := Compare(files, docs, load(t), "creational")

	prio := make(map[string]issue.Priority)
	for _, m := range missing {
		prio[m.Name] = m.Priority
	}
	if prio["Builder"] != issue.PriorityHigh {
		t.Errorf("Builder priority = %v, want high", prio["Builder"])
	}
	if prio["Prototype"] != issue.PriorityMedium {
		t.Errorf("Prototype priority = %v, want medium", prio["Prototype"])
	}
}

// A decision-table row naming a pattern without a link target is the second
// demand signal.
func TestCompare_PriorityFromDecisionTable(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"creational/README.md": "# Creational\n\n## Decision\n\n" +
			"| Besoin | Pattern |\n|--------|---------|\n| Construction | Abstract Factory |\n",
	})
	missing := Compare(files, docs, load(t), "creational")
	for _, m := range missing {
		if m.Name == "Abstract Factory" && m.Priority != issue.PriorityHigh {
			t.Fatalf("Abstract Factory priority = %v, want high", m.Priority)
		}
	}
}

func TestCompare_LinkedDecisionRowIsNotDemand(t *testing.T) {
	files, docs := docFiles(map[string]string{
		"creational/README.md": "# Creational\n\n## Decision\n\n" +
			"| Besoin | Pattern |\n|--------|---------|\n| Construction | [Abstract Factory](./abstract-factory.md) |\n",
	})
	missing := Compare(files, docs, load(t), "creational")
	for _, m := range missing {
		if m.Name == "Abstract Factory" && m.Priority != issue.PriorityMedium {
			t.Fatalf("linked decision row should not raise priority, got %v", m.Priority)
		}
	}
}
