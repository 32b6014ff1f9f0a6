package tables

import (
	"strings"
	"testing"
)

func TestDefaultTablesPopulated(t *testing.T) {
	tb := Default()

	if len(tb.Stopwords) == 0 {
		t.Error("Expected non-empty stopword list")
	}
	if len(tb.OrganizationAnchors) == 0 || len(tb.LocationAnchors) == 0 || len(tb.ProductAnchors) == 0 {
		t.Error("Expected non-empty anchor lists")
	}
	if len(tb.TechnologyVocabulary) == 0 {
		t.Error("Expected non-empty technology vocabulary")
	}
	if len(tb.GenericBlocklist) == 0 || len(tb.ConnectorWords) == 0 {
		t.Error("Expected non-empty filter lists")
	}
	if len(tb.SynonymPairs) == 0 {
		t.Error("Expected non-empty synonym seed")
	}
}

func TestStopwordsAreLowercase(t *testing.T) {
	for _, w := range Default().Stopwords {
		if w != strings.ToLower(w) {
			t.Errorf("Stopword %q is not lowercase", w)
		}
	}
}

func TestIndicatorWeightsInRange(t *testing.T) {
	tb := Default()
	axes := map[string]map[string]int{
		"expertise":         tb.ExpertiseIndicators,
		"experience":        tb.ExperienceIndicators,
		"authoritativeness": tb.AuthoritativenessIndicators,
		"trustworthiness":   tb.TrustworthinessIndicators,
	}
	for axis, indicators := range axes {
		if len(indicators) == 0 {
			t.Errorf("Axis %s has no indicators", axis)
		}
		for phrase, weight := range indicators {
			if weight < 1 || weight > 15 {
				t.Errorf("Indicator %q on axis %s has weight %d outside [1,15]", phrase, axis, weight)
			}
			if phrase != strings.ToLower(phrase) {
				t.Errorf("Indicator %q on axis %s is not lowercase", phrase, axis)
			}
		}
	}
}

func TestQueryTemplatesHavePlaceholder(t *testing.T) {
	for _, tmpl := range Default().QueryTemplates {
		if !strings.Contains(tmpl, "%s") {
			t.Errorf("Template %q has no topic placeholder", tmpl)
		}
	}
}

func TestVersionsNonEmpty(t *testing.T) {
	for name, v := range map[string]string{
		"stopwords": StopwordsVersion,
		"anchors":   AnchorsVersion,
		"eeat":      EEATVersion,
		"filter":    FilterVersion,
		"templates": TemplatesVersion,
	} {
		if v == "" {
			t.Errorf("Version %s is empty", name)
		}
	}
}
