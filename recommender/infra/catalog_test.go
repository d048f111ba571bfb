package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog_EmbeddedDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatalf("expected embedded catalog to have entries")
	}
	for i, c := range catalog {
		if c.EIN == "" || c.Name == "" || c.Location == "" || c.IssueFamily == "" {
			t.Fatalf("entry %d missing required fields: %+v", i, c)
		}
	}
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `charities:
  - ein: "00-0000000"
    name: "Teste"
    location: "Lisboa"
    issue_family: "health"
    impact_modes: ["direct_service"]
    geographies: ["global"]
    topics: ["public_health"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 1 || catalog[0].Name != "Teste" || catalog[0].IssueFamily != "health" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	if len(catalog[0].ImpactModes) != 1 || catalog[0].ImpactModes[0] != "direct_service" {
		t.Fatalf("expected impact modes parsed, got %+v", catalog[0].ImpactModes)
	}
}

func TestLoadCatalog_MissingFileFails(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadCatalog_EmptyCatalogFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("charities: []\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}
