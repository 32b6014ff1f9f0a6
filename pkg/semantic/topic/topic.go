// Package topic fuses URL, meta, heading, entity, and frequency signals
// into a single weighted main-topic decision with a confidence score and a
// reasoning trace. The trace is a required output, not cosmetic: downstream
// reporting and tests attribute why a topic was chosen from it.
package topic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/entity"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
)

// Signal weights. Accumulated per candidate; confidence normalizes the
// winning score by confidenceNorm and clamps to [0,1].
const (
	urlWeight      = 10.0
	metaWeight     = 8.0
	headingWeight  = 6.0
	entityWeight   = 4.0
	freqStep       = 0.5
	freqCap        = 3.0
	confidenceNorm = 15.0

	maxCoOccurring     = 10
	minHeadingTokenLen = 4 // heading tokens longer than 3 chars contribute
)

// Topic is the single best topic label for a page.
type Topic struct {
	Topic            string             `json:"topic"`
	ConfidenceScore  float64            `json:"confidence_score"`
	Reasoning        string             `json:"reasoning"`
	CoOccurringTerms []string           `json:"co_occurring_terms"`
	Signals          map[string]float64 `json:"signals"`
}

// Input carries the fused signals for one page.
type Input struct {
	Content      string
	URLKeywords  []string
	MetaKeywords []string
	FirstHeading string
	Entities     entity.Bundle
}

// board accumulates candidate scores while preserving first-seen order for
// deterministic tie-breaking.
type board struct {
	order   []string
	scores  map[string]float64
	signals map[string]map[string]float64
}

func newBoard() *board {
	return &board{
		scores:  make(map[string]float64),
		signals: make(map[string]map[string]float64),
	}
}

func (b *board) add(candidate, signal string, weight float64) {
	if candidate == "" || weight == 0 {
		return
	}
	if _, ok := b.scores[candidate]; !ok {
		b.order = append(b.order, candidate)
		b.signals[candidate] = make(map[string]float64)
	}
	b.scores[candidate] += weight
	b.signals[candidate][signal] += weight
}

// best returns the highest-scoring candidate; ties break by first-seen.
func (b *board) best() (string, float64) {
	var winner string
	var top float64
	for _, cand := range b.order {
		if score := b.scores[cand]; score > top {
			winner, top = cand, score
		}
	}
	return winner, top
}

// Identify picks the main topic of a page from the weighted signal board.
// With no usable signals at all it returns a zero Topic with an explanatory
// reasoning string rather than an error.
func Identify(in Input, nb *ngram.Builder) Topic {
	b := newBoard()

	urlSet := lowerSet(in.URLKeywords)
	metaSet := lowerSet(in.MetaKeywords)

	for _, kw := range in.URLKeywords {
		b.add(strings.ToLower(kw), "url", urlWeight)
	}
	for _, kw := range in.MetaKeywords {
		b.add(strings.ToLower(kw), "meta", metaWeight)
	}

	headingTokens := ngram.Tokens(in.FirstHeading)
	for _, tok := range headingTokens {
		if len(tok) >= minHeadingTokenLen {
			b.add(tok, "heading", headingWeight)
		}
	}

	for _, ent := range in.Entities.All() {
		b.add(strings.ToLower(ent), "entity", entityWeight)
	}

	freq := make(map[string]int)
	for _, w := range ngram.Words(in.Content) {
		freq[w]++
	}
	// Deterministic iteration over frequency candidates.
	freqWords := make([]string, 0, len(freq))
	for w := range freq {
		freqWords = append(freqWords, w)
	}
	sort.Strings(freqWords)
	for _, w := range freqWords {
		if count := freq[w]; count > 2 {
			bonus := freqStep * float64(count)
			if bonus > freqCap {
				bonus = freqCap
			}
			b.add(w, "frequency", bonus)
		}
	}

	// Multi-word candidates from the first heading: each window accumulates
	// the signal weight of every component token, so a phrase whose tokens
	// are independently corroborated by the URL slug or meta keywords
	// outranks any single token.
	for i := range headingTokens {
		for n := 2; n <= 3 && i+n <= len(headingTokens); n++ {
			window := headingTokens[i : i+n]
			if nb.IsStopword(window[0]) || nb.IsStopword(window[n-1]) {
				continue
			}
			phrase := strings.Join(window, " ")
			for _, tok := range window {
				if _, ok := urlSet[tok]; ok {
					b.add(phrase, "url", urlWeight)
				}
				if _, ok := metaSet[tok]; ok {
					b.add(phrase, "meta", metaWeight)
				}
				if len(tok) >= minHeadingTokenLen {
					b.add(phrase, "heading", headingWeight)
				}
				if count := freq[tok]; count > 2 {
					bonus := freqStep * float64(count)
					if bonus > freqCap {
						bonus = freqCap
					}
					b.add(phrase, "frequency", bonus)
				}
			}
		}
	}

	winner, score := b.best()
	if winner == "" {
		return Topic{Reasoning: "No topic signals found: page has no URL, meta, heading, or frequency evidence."}
	}

	confidence := score / confidenceNorm
	if confidence > 1 {
		confidence = 1
	}

	return Topic{
		Topic:            winner,
		ConfidenceScore:  confidence,
		Reasoning:        reasoning(winner, b.signals[winner], in.Entities),
		CoOccurringTerms: coOccurring(in.Content, winner, nb),
		Signals:          b.signals[winner],
	}
}

// reasoning concatenates one human-readable clause per contributing signal
// bucket.
func reasoning(topic string, signals map[string]float64, ents entity.Bundle) string {
	var clauses []string
	if signals["url"] > 0 {
		clauses = append(clauses, "it appears in the URL slug")
	}
	if signals["meta"] > 0 {
		clauses = append(clauses, "it matches the meta keywords")
	}
	if signals["heading"] > 0 {
		clauses = append(clauses, "it appears in the page headings")
	}
	if signals["entity"] > 0 {
		clauses = append(clauses, "it was recognized as a "+entityCategory(topic, ents)+" entity")
	}
	if signals["frequency"] > 0 {
		clauses = append(clauses, "it occurs frequently in the body content")
	}
	if len(clauses) == 0 {
		clauses = append(clauses, "it had the strongest combined signal score")
	}
	return fmt.Sprintf("Selected %q as the main topic because %s.", topic, strings.Join(clauses, ", and "))
}

func entityCategory(topic string, ents entity.Bundle) string {
	categories := []struct {
		name  string
		items []string
	}{
		{"person", ents.People},
		{"organization", ents.Organizations},
		{"location", ents.Locations},
		{"product", ents.Products},
		{"technology", ents.Technologies},
	}
	for _, cat := range categories {
		for _, item := range cat.items {
			if strings.EqualFold(item, topic) {
				return cat.name
			}
		}
	}
	return "named"
}

// coOccurring collects up to maxCoOccurring content words that share a
// sentence with any token of the topic, ranked by shared-sentence count
// with alphabetical tie-breaking.
func coOccurring(content, topic string, nb *ngram.Builder) []string {
	topicTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(topic) {
		topicTokens[tok] = struct{}{}
	}

	counts := make(map[string]int)
	for _, sentence := range ngram.Sentences(content) {
		words := ngram.Words(sentence)
		hit := false
		for _, w := range words {
			if _, ok := topicTokens[w]; ok {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		seen := make(map[string]struct{})
		for _, w := range words {
			if _, self := topicTokens[w]; self {
				continue
			}
			if nb.IsStopword(w) {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			counts[w]++
		}
	}

	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] == counts[terms[j]] {
			return terms[i] < terms[j]
		}
		return counts[terms[i]] > counts[terms[j]]
	})
	if len(terms) > maxCoOccurring {
		terms = terms[:maxCoOccurring]
	}
	return terms
}

func lowerSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
