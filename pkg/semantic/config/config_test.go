package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTablesOverrides(t *testing.T) {
	path := writeFile(t, "tables.yaml", `
stopwords: [foo, bar]
technologies: [cobol]
eeat:
  expertise:
    grandmaster: 20
query_templates: ["%s explained"]
`)

	got, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if len(got.Stopwords) != 2 || got.Stopwords[0] != "foo" {
		t.Errorf("Stopwords = %v, want override", got.Stopwords)
	}
	if len(got.TechnologyVocabulary) != 1 || got.TechnologyVocabulary[0] != "cobol" {
		t.Errorf("Technologies = %v, want override", got.TechnologyVocabulary)
	}
	if got.ExpertiseIndicators["grandmaster"] != 20 {
		t.Errorf("Expertise = %v, want override", got.ExpertiseIndicators)
	}
	if len(got.QueryTemplates) != 1 {
		t.Errorf("QueryTemplates = %v, want override", got.QueryTemplates)
	}

	// Sections absent from the file keep their defaults.
	if len(got.OrganizationAnchors) == 0 {
		t.Error("Organization anchors should keep defaults")
	}
	if len(got.ExperienceIndicators) == 0 {
		t.Error("Experience indicators should keep defaults")
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadTablesMalformedYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "stopwords: [unclosed")
	if _, err := LoadTables(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoadTablesRejectsBadWeights(t *testing.T) {
	path := writeFile(t, "tables.yaml", `
eeat:
  expertise:
    broken: -5
`)

	_, err := LoadTables(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadTablesRejectsTemplateWithoutPlaceholder(t *testing.T) {
	path := writeFile(t, "tables.yaml", `query_templates: ["no placeholder here"]`)

	_, err := LoadTables(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoaderDefaults(t *testing.T) {
	engine, err := (&Loader{}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if engine == nil {
		t.Fatal("Expected engine")
	}
}

func TestLoaderWithFiles(t *testing.T) {
	tablesPath := writeFile(t, "tables.yaml", "stopwords: [the, a]\n")
	lexPath := writeFile(t, "lexicon.yaml", `synonyms:
  - canonical: car
    variants: [automobile]
`)

	engine, err := (&Loader{TablesPath: tablesPath, LexiconPath: lexPath}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if engine == nil {
		t.Fatal("Expected engine")
	}
}

func TestLoaderBadTablesPath(t *testing.T) {
	_, err := (&Loader{TablesPath: "/nonexistent/tables.yaml"}).Load()
	if err == nil {
		t.Error("Expected error for bad tables path")
	}
}
