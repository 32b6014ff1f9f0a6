// Package frequency scores single-token salience. The IDF formulation here
// treats the document itself as the corpus (term frequency within the page,
// not cross-document frequency), so the resulting score is a prominence
// measure, not a true corpus-relative TF-IDF. That single-document semantics
// is part of the output contract and must be preserved.
package frequency

import (
	"math"
	"sort"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
)

// MaxTerms caps the returned list.
const MaxTerms = 50

// Bonus multipliers applied to the raw tf*idf product.
const (
	shortTermBonus   = 1.1 // term length <= 5
	headingTermBonus = 1.2 // term appears in any heading text
)

// Term is one scored term.
type Term struct {
	Keyword             string  `json:"keyword"`
	Count               int     `json:"count"`
	NormalizedFrequency float64 `json:"normalized_frequency"`
	TFIDFScore          float64 `json:"tf_idf_score"`
}

// TopTerms returns up to MaxTerms terms sorted descending by TF-IDF score.
// Ties break alphabetically so identical input always yields identical
// output. Empty content returns nil.
func TopTerms(content string, headingTexts []string) []Term {
	words := ngram.Words(content)
	total := len(words)
	if total == 0 {
		return nil
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	headingWords := make(map[string]struct{})
	for _, h := range headingTexts {
		for _, w := range ngram.Words(h) {
			headingWords[w] = struct{}{}
		}
	}

	terms := make([]Term, 0, len(counts))
	for word, count := range counts {
		tf := float64(count) / float64(total)
		idf := math.Log(float64(total) / float64(count))

		lengthBonus := 1.0
		if len(word) <= 5 {
			lengthBonus = shortTermBonus
		}
		positionBonus := 1.0
		if _, ok := headingWords[word]; ok {
			positionBonus = headingTermBonus
		}

		terms = append(terms, Term{
			Keyword:             word,
			Count:               count,
			NormalizedFrequency: tf,
			TFIDFScore:          tf * idf * lengthBonus * positionBonus,
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].TFIDFScore == terms[j].TFIDFScore {
			return terms[i].Keyword < terms[j].Keyword
		}
		return terms[i].TFIDFScore > terms[j].TFIDFScore
	})
	if len(terms) > MaxTerms {
		terms = terms[:MaxTerms]
	}
	return terms
}

// Counts returns the whitespace word count and sentence count of content.
func Counts(content string) (words, sentences int) {
	return len(strings.Fields(content)), len(ngram.Sentences(content))
}

// Readability computes a Flesch-style reading ease score clamped to
// [0,100]. Content with zero words or sentences scores 0 rather than
// dividing by zero.
func Readability(content string) float64 {
	words, sentences := Counts(content)
	if words == 0 || sentences == 0 {
		return 0
	}

	syllables := 0
	for _, w := range strings.Fields(content) {
		syllables += syllableCount(w)
	}

	score := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// syllableCount approximates syllables as vowel groups, with a floor of one
// and a silent trailing 'e' discounted.
func syllableCount(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
