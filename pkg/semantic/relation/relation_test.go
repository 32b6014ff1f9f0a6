package relation

import (
	"testing"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/lexicon"
)

func testLexicon() *lexicon.Lexicon {
	return lexicon.New(map[string]string{"automobile": "car"})
}

func TestMapTypesFollowSourcePriority(t *testing.T) {
	in := Input{
		Content:         "A car is an automobile built for daily driving.",
		URLKeywords:     []string{"car"},
		MetaKeywords:    []string{"driving"},
		HeadingKeywords: []string{"automobile"},
	}

	rels := Map(in, testLexicon())

	byTerm := make(map[string]Relationship)
	for _, r := range rels {
		byTerm[r.Term] = r
	}

	if got := byTerm["car"].RelationshipType; got != TypeRelatedTopic {
		t.Errorf("url term type = %q, want %q", got, TypeRelatedTopic)
	}
	if got := byTerm["driving"].RelationshipType; got != TypeAttribute {
		t.Errorf("meta term type = %q, want %q", got, TypeAttribute)
	}
	if got := byTerm["automobile"].RelationshipType; got != TypeSynonym {
		t.Errorf("lexicon term type = %q, want %q", got, TypeSynonym)
	}
}

func TestMapCoOccurrenceFraction(t *testing.T) {
	in := Input{
		Content: "Cars are great. A car is an automobile for daily use. Automobile shopping takes time.",
		URLKeywords:     []string{"car"},
		HeadingKeywords: []string{"automobile"},
	}

	rels := Map(in, testLexicon())

	for _, r := range rels {
		// Both terms share exactly one of the three sentences.
		want := 1.0 / 3.0
		if r.CoOccurrenceScore != want {
			t.Errorf("%s score = %v, want %v", r.Term, r.CoOccurrenceScore, want)
		}
	}
}

func TestMapSortedDescendingWithAlphabeticalTies(t *testing.T) {
	in := Input{
		Content: "Cars and automobiles share roads. Bicycles use lanes.",
		URLKeywords:     []string{"car", "bicycle"},
		HeadingKeywords: []string{"automobile"},
	}

	rels := Map(in, testLexicon())

	for i := 1; i < len(rels); i++ {
		prev, cur := rels[i-1], rels[i]
		if cur.CoOccurrenceScore > prev.CoOccurrenceScore {
			t.Fatalf("Not sorted descending at %d", i)
		}
		if cur.CoOccurrenceScore == prev.CoOccurrenceScore && cur.Term < prev.Term {
			t.Fatalf("Tie not alphabetical: %q before %q", prev.Term, cur.Term)
		}
	}
}

func TestMapContextSentences(t *testing.T) {
	in := Input{
		Content: "Espresso needs pressure. Espresso machines heat water quickly. Espresso beans matter. Espresso grind size matters. Yes.",
		URLKeywords:     []string{"espresso"},
		HeadingKeywords: []string{"machines"},
	}

	rels := Map(in, testLexicon())

	var espresso Relationship
	for _, r := range rels {
		if r.Term == "espresso" {
			espresso = r
		}
	}
	if len(espresso.ContextSentences) == 0 {
		t.Fatal("Expected context sentences")
	}
	if len(espresso.ContextSentences) > 3 {
		t.Errorf("Context capped at 3, got %d", len(espresso.ContextSentences))
	}
	for _, s := range espresso.ContextSentences {
		if len(s) < 11 {
			t.Errorf("Short sentence kept as context: %q", s)
		}
	}
}

func TestMapEmptyContent(t *testing.T) {
	in := Input{
		URLKeywords: []string{"car"},
	}

	rels := Map(in, testLexicon())

	if len(rels) != 1 {
		t.Fatalf("Expected 1 relationship, got %d", len(rels))
	}
	if rels[0].CoOccurrenceScore != 0 {
		t.Errorf("Score = %v, want 0", rels[0].CoOccurrenceScore)
	}
	if len(rels[0].ContextSentences) != 0 {
		t.Errorf("Expected no context, got %v", rels[0].ContextSentences)
	}
}

func TestMapNoCandidates(t *testing.T) {
	if rels := Map(Input{Content: "Some body text here."}, testLexicon()); rels != nil {
		t.Errorf("Expected nil, got %v", rels)
	}
}

func TestMapDeduplicatesAcrossSources(t *testing.T) {
	in := Input{
		Content:         "Coffee brewing takes practice.",
		URLKeywords:     []string{"coffee"},
		HeadingKeywords: []string{"Coffee"},
	}

	rels := Map(in, testLexicon())

	if len(rels) != 1 {
		t.Errorf("Expected deduplicated single term, got %d", len(rels))
	}
	// First source wins, so the url priority applies.
	if rels[0].RelationshipType != TypeRelatedTopic {
		t.Errorf("Type = %q, want %q", rels[0].RelationshipType, TypeRelatedTopic)
	}
}
