package frequency

import (
	"strings"
	"testing"
)

func TestTopTermsSortedDescending(t *testing.T) {
	content := "solar panels convert sunlight. Solar installation requires planning. Panels degrade slowly over decades of operation."

	terms := TopTerms(content, nil)
	if len(terms) == 0 {
		t.Fatal("Expected terms")
	}
	for i := 1; i < len(terms); i++ {
		if terms[i].TFIDFScore > terms[i-1].TFIDFScore {
			t.Fatalf("Terms not sorted at index %d: %v > %v", i, terms[i], terms[i-1])
		}
	}
}

func TestTopTermsAlphabeticalTieBreak(t *testing.T) {
	// Four words, each appearing once, all with length > 5 so no bonus
	// separates them.
	terms := TopTerms("zebras wander quietly northward", nil)

	if len(terms) != 4 {
		t.Fatalf("Expected 4 terms, got %d", len(terms))
	}
	for i := 1; i < len(terms); i++ {
		if terms[i].TFIDFScore == terms[i-1].TFIDFScore && terms[i].Keyword < terms[i-1].Keyword {
			t.Errorf("Tie not broken alphabetically: %q before %q", terms[i-1].Keyword, terms[i].Keyword)
		}
	}
}

func TestTopTermsHeadingBonus(t *testing.T) {
	// "sunlight" and "planning" both appear once; only "sunlight" is in a
	// heading, so it must outscore "planning".
	content := "sunlight matters greatly whereas planning matters equally"

	terms := TopTerms(content, []string{"Harvesting Sunlight"})

	var sunlight, planning float64
	for _, term := range terms {
		switch term.Keyword {
		case "sunlight":
			sunlight = term.TFIDFScore
		case "planning":
			planning = term.TFIDFScore
		}
	}
	if sunlight <= planning {
		t.Errorf("Heading term should outscore body term: %v <= %v", sunlight, planning)
	}
}

func TestTopTermsShortTermBonus(t *testing.T) {
	// Same count, neither in headings; "clock" (5 chars) gets the short-term
	// bonus over "clockwork" (9 chars).
	terms := TopTerms("clock against clockwork against", nil)

	var short, long float64
	for _, term := range terms {
		switch term.Keyword {
		case "clock":
			short = term.TFIDFScore
		case "clockwork":
			long = term.TFIDFScore
		}
	}
	if short <= long {
		t.Errorf("Short term should outscore long term: %v <= %v", short, long)
	}
}

func TestTopTermsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		sb.WriteString("term")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString(strings.Repeat("x", i/26))
		sb.WriteByte(' ')
	}
	terms := TopTerms(sb.String(), nil)
	if len(terms) > MaxTerms {
		t.Errorf("Expected at most %d terms, got %d", MaxTerms, len(terms))
	}
}

func TestTopTermsEmptyContent(t *testing.T) {
	if terms := TopTerms("", nil); terms != nil {
		t.Errorf("Expected nil for empty content, got %v", terms)
	}
}

func TestCounts(t *testing.T) {
	words, sentences := Counts("One two three. Four five!")
	if words != 5 {
		t.Errorf("words = %d, want 5", words)
	}
	if sentences != 2 {
		t.Errorf("sentences = %d, want 2", sentences)
	}
}

func TestReadabilityBounds(t *testing.T) {
	if got := Readability(""); got != 0 {
		t.Errorf("Empty content readability = %v, want 0", got)
	}

	simple := Readability("The cat sat. The dog ran. It was fun.")
	if simple < 0 || simple > 100 {
		t.Errorf("Readability %v outside [0,100]", simple)
	}

	dense := Readability("Incomprehensibly multisyllabic terminological obfuscation characteristically permeates bureaucratically administered organizational documentation historically.")
	if dense < 0 || dense > 100 {
		t.Errorf("Readability %v outside [0,100]", dense)
	}
	if dense >= simple {
		t.Errorf("Dense prose should read harder: %v >= %v", dense, simple)
	}
}

func TestSyllableCount(t *testing.T) {
	cases := map[string]int{
		"cat":      1,
		"hello":    2,
		"syllable": 2,
		"b":        1,
	}
	for word, want := range cases {
		if got := syllableCount(word); got != want {
			t.Errorf("syllableCount(%q) = %d, want %d", word, got, want)
		}
	}
}
