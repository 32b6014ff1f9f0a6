// Package config loads heuristic-table overrides and the synonym lexicon
// from YAML files and assembles a ready engine. Tables left out of the file
// keep their canonical defaults, so a deployment can swap one vocabulary
// without restating the rest.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/internalerr"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/lexicon"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
)

// File is the YAML override schema. Every section is optional.
type File struct {
	Stopwords []string `yaml:"stopwords"`

	Anchors struct {
		Organizations []string `yaml:"organizations"`
		Locations     []string `yaml:"locations"`
		Products      []string `yaml:"products"`
	} `yaml:"anchors"`
	Technologies []string `yaml:"technologies"`

	EEAT struct {
		Expertise         map[string]int `yaml:"expertise"`
		Experience        map[string]int `yaml:"experience"`
		Authoritativeness map[string]int `yaml:"authoritativeness"`
		Trustworthiness   map[string]int `yaml:"trustworthiness"`
	} `yaml:"eeat"`

	GenericBlocklist []string `yaml:"generic_blocklist"`
	ConnectorWords   []string `yaml:"connector_words"`
	ContentGaps      []string `yaml:"content_gaps"`
	QueryTemplates   []string `yaml:"query_templates"`
}

// validate rejects overrides the pipeline cannot score with: non-positive
// indicator weights and query templates without a topic placeholder.
func (f *File) validate() error {
	for _, indicators := range []map[string]int{
		f.EEAT.Expertise, f.EEAT.Experience,
		f.EEAT.Authoritativeness, f.EEAT.Trustworthiness,
	} {
		for phrase, weight := range indicators {
			if weight <= 0 {
				return fmt.Errorf("%w: indicator %q has weight %d", internalerr.ErrInvalidConfig, phrase, weight)
			}
		}
	}
	for _, tmpl := range f.QueryTemplates {
		if !strings.Contains(tmpl, "%s") {
			return fmt.Errorf("%w: query template %q has no %%s placeholder", internalerr.ErrInvalidConfig, tmpl)
		}
	}
	return nil
}

// LoadTables reads a YAML override file and applies it over the canonical
// tables.
func LoadTables(path string) (tables.Tables, error) {
	t := tables.Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("load tables: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return t, fmt.Errorf("parse tables: %w", err)
	}
	if err := f.validate(); err != nil {
		return t, err
	}

	if len(f.Stopwords) > 0 {
		t.Stopwords = f.Stopwords
	}
	if len(f.Anchors.Organizations) > 0 {
		t.OrganizationAnchors = f.Anchors.Organizations
	}
	if len(f.Anchors.Locations) > 0 {
		t.LocationAnchors = f.Anchors.Locations
	}
	if len(f.Anchors.Products) > 0 {
		t.ProductAnchors = f.Anchors.Products
	}
	if len(f.Technologies) > 0 {
		t.TechnologyVocabulary = f.Technologies
	}
	if len(f.EEAT.Expertise) > 0 {
		t.ExpertiseIndicators = f.EEAT.Expertise
	}
	if len(f.EEAT.Experience) > 0 {
		t.ExperienceIndicators = f.EEAT.Experience
	}
	if len(f.EEAT.Authoritativeness) > 0 {
		t.AuthoritativenessIndicators = f.EEAT.Authoritativeness
	}
	if len(f.EEAT.Trustworthiness) > 0 {
		t.TrustworthinessIndicators = f.EEAT.Trustworthiness
	}
	if len(f.GenericBlocklist) > 0 {
		t.GenericBlocklist = f.GenericBlocklist
	}
	if len(f.ConnectorWords) > 0 {
		t.ConnectorWords = f.ConnectorWords
	}
	if len(f.ContentGaps) > 0 {
		t.ContentGapTopics = f.ContentGaps
	}
	if len(f.QueryTemplates) > 0 {
		t.QueryTemplates = f.QueryTemplates
	}

	return t, nil
}

// Loader assembles an engine from optional configuration file paths.
type Loader struct {
	TablesPath  string
	LexiconPath string
}

// Load builds the engine. Empty paths keep the canonical defaults.
func (l *Loader) Load() (*semantic.Engine, error) {
	opts := semantic.Options{}

	if l.TablesPath != "" {
		t, err := LoadTables(l.TablesPath)
		if err != nil {
			return nil, err
		}
		opts.Tables = &t
	}

	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		opts.Lexicon = lex
	}

	return semantic.New(opts), nil
}
