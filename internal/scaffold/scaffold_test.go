package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/improve/internal/config"
	"github.com/jorge-barreto/improve/internal/inventory"
	"github.com/jorge-barreto/improve/internal/mdscan"
)

func TestInit_SeedsFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, name := range []string{"TEMPLATE-PATTERN.md", "TEMPLATE-README.md", "improve.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not created: %v", name, err)
		}
	}
}

func TestInit_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	custom := "# My own template\n"
	if err := os.WriteFile(filepath.Join(dir, "TEMPLATE-PATTERN.md"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "TEMPLATE-PATTERN.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatal("Init overwrote an existing template")
	}
}

func TestInit_FullyInitializedErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := Init(dir); err == nil {
		t.Fatal("second Init reported success with nothing to do")
	}
}

// The seeded templates must satisfy the machinery they feed: the pattern
// template passes the shape probes, the yaml parses, and the templates are
// classified as templates by the scanner.
func TestInit_SeedsAreWellFormed(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "TEMPLATE-PATTERN.md"))
	if err != nil {
		t.Fatal(err)
	}
	doc := mdscan.Parse(string(data))
	if doc.Title == "" || !doc.HasBlockquote || !doc.HasRecognizedCode() ||
		!doc.HasWhenToUse() || !doc.HasRelatedSection() || !doc.HasSources() {
		t.Fatalf("pattern template fails its own shape probes: %+v", doc)
	}

	if _, err := config.Load(dir); err != nil {
		t.Fatalf("seeded improve.yaml does not load: %v", err)
	}

	files, err := inventory.Scan(dir, inventory.Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for _, f := range files {
		if f.Kind != inventory.KindTemplate {
			t.Fatalf("seed %s classified as %v, want template", f.Rel, f.Kind)
		}
	}
}
