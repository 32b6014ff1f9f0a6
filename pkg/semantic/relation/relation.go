// Package relation maps each candidate keyword to the rest of the page by
// sentence-level co-occurrence with the other candidates.
package relation

import (
	"sort"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/lexicon"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
)

// Type classifies how a term relates to the page topic.
type Type string

const (
	TypeSynonym      Type = "synonym"
	TypeRelatedTopic Type = "related_topic"
	TypeAttribute    Type = "attribute"
	TypeCompetitor   Type = "competitor"
	TypeBrand        Type = "brand"
)

// Limits on context evidence.
const (
	maxContextSentences = 3
	minContextLen       = 11 // sentences longer than 10 chars qualify
)

// Relationship links one candidate term to the rest of the page.
type Relationship struct {
	Term              string   `json:"term"`
	CoOccurrenceScore float64  `json:"co_occurrence_score"`
	RelationshipType  Type     `json:"relationship_type"`
	ContextSentences  []string `json:"context_sentences"`
}

// Input carries the candidate keyword sources for one page.
type Input struct {
	Content         string
	URLKeywords     []string
	MetaKeywords    []string
	HeadingKeywords []string
}

// Map scores every keyword in the union of URL, meta, and heading keywords
// against the page sentences. The co-occurrence score of a keyword is the
// fraction of sentences containing both the keyword and at least one other
// candidate. Results are sorted descending by score with alphabetical
// tie-breaking. Empty content yields relationships with zero scores and no
// context.
func Map(in Input, lex *lexicon.Lexicon) []Relationship {
	type candidate struct {
		term   string
		source string
	}

	seen := make(map[string]struct{})
	var candidates []candidate
	addAll := func(keywords []string, source string) {
		for _, kw := range keywords {
			term := strings.ToLower(strings.TrimSpace(kw))
			if term == "" {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			candidates = append(candidates, candidate{term: term, source: source})
		}
	}
	addAll(in.URLKeywords, "url")
	addAll(in.MetaKeywords, "meta")
	addAll(in.HeadingKeywords, "heading")

	if len(candidates) == 0 {
		return nil
	}

	sentences := ngram.Sentences(in.Content)
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s)
	}

	out := make([]Relationship, 0, len(candidates))
	for _, cand := range candidates {
		rel := Relationship{
			Term:             cand.term,
			RelationshipType: relType(cand.term, cand.source, lex),
		}

		if len(sentences) > 0 {
			cooccur := 0
			for i, low := range lowered {
				if !strings.Contains(low, cand.term) {
					continue
				}
				if len(sentences[i]) >= minContextLen && len(rel.ContextSentences) < maxContextSentences {
					rel.ContextSentences = append(rel.ContextSentences, sentences[i])
				}
				for _, other := range candidates {
					if other.term == cand.term {
						continue
					}
					if strings.Contains(low, other.term) {
						cooccur++
						break
					}
				}
			}
			rel.CoOccurrenceScore = float64(cooccur) / float64(len(sentences))
		}

		out = append(out, rel)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CoOccurrenceScore == out[j].CoOccurrenceScore {
			return out[i].Term < out[j].Term
		}
		return out[i].CoOccurrenceScore > out[j].CoOccurrenceScore
	})
	return out
}

// relType follows the source-priority rules: URL-sourced terms are related
// topics, meta-sourced terms are attributes, terms the synonym lexicon
// knows are synonyms, and everything else defaults to a related topic.
func relType(term, source string, lex *lexicon.Lexicon) Type {
	switch source {
	case "url":
		return TypeRelatedTopic
	case "meta":
		return TypeAttribute
	}
	if lex != nil {
		if _, ok := lex.Canonical(term); ok {
			return TypeSynonym
		}
	}
	return TypeRelatedTopic
}
