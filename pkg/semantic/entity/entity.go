// Package entity extracts named things from page content with per-category
// heuristics. This is a recall-over-precision design: false positives are
// expected and acceptable because downstream scoring treats entities as weak
// signals, never as ground truth. No cross-category conflict resolution is
// performed, so the same string may appear in more than one category.
package entity

import (
	"regexp"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
)

// minCandidateLen is the minimum joined length for an anchor-window
// candidate to be kept.
const minCandidateLen = 6

// Bundle holds the extracted entities, de-duplicated per category.
type Bundle struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Products      []string `json:"products"`
	Technologies  []string `json:"technologies"`
}

// All returns every entity across categories, duplicates included.
func (b Bundle) All() []string {
	var out []string
	out = append(out, b.People...)
	out = append(out, b.Organizations...)
	out = append(out, b.Locations...)
	out = append(out, b.Products...)
	out = append(out, b.Technologies...)
	return out
}

// Count returns the total number of extracted entities.
func (b Bundle) Count() int {
	return len(b.People) + len(b.Organizations) + len(b.Locations) +
		len(b.Products) + len(b.Technologies)
}

// Extractor applies the category heuristics over sentence-split content.
type Extractor struct {
	orgAnchors     map[string]struct{}
	locAnchors     map[string]struct{}
	productAnchors map[string]struct{}
	techVocab      []string
	peopleRes      []*regexp.Regexp
}

// NewExtractor builds an extractor from the anchor and vocabulary tables.
func NewExtractor(t tables.Tables) *Extractor {
	honorific := strings.Join(t.HonorificPrefixes, "|")
	return &Extractor{
		orgAnchors:     anchorSet(t.OrganizationAnchors),
		locAnchors:     anchorSet(t.LocationAnchors),
		productAnchors: anchorSet(t.ProductAnchors),
		techVocab:      t.TechnologyVocabulary,
		peopleRes: []*regexp.Regexp{
			// First M. Last before First Last so the longer shape wins.
			regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+\b`),
			regexp.MustCompile(`\b(?:` + honorific + `)\.? [A-Z][a-z]+(?: [A-Z][a-z]+)?\b`),
			regexp.MustCompile(`\b[A-Z]\. [A-Z][a-z]+\b`),
			regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
		},
	}
}

func anchorSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Extract runs all five category heuristics over the content.
func (e *Extractor) Extract(content string) Bundle {
	sentences := ngram.Sentences(content)
	return Bundle{
		People:        e.extractPeople(content),
		Organizations: e.extractByAnchor(sentences, e.orgAnchors),
		Locations:     e.extractByAnchor(sentences, e.locAnchors),
		Products:      e.extractByAnchor(sentences, e.productAnchors),
		Technologies:  e.extractTechnologies(content),
	}
}

// extractPeople matches against the raw content rather than split sentences
// so that name shapes containing periods ("John A. Doe", "Dr. Smith")
// survive intact.
func (e *Extractor) extractPeople(content string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, re := range e.peopleRes {
		for _, match := range re.FindAllString(content, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}
	return out
}

// extractByAnchor slides over each sentence's tokens; when a token matches
// an anchor keyword the 2-3 preceding tokens are joined with the anchor and
// kept as a candidate if the joined string exceeds minCandidateLen.
func (e *Extractor) extractByAnchor(sentences []string, anchors map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		for i, w := range words {
			key := strings.ToLower(strings.Trim(w, ".,;:()\"'"))
			if _, ok := anchors[key]; !ok {
				continue
			}
			for _, back := range []int{3, 2} {
				start := i - back
				if start < 0 {
					continue
				}
				candidate := strings.Trim(strings.Join(words[start:i+1], " "), ".,;:()\"'")
				if len(candidate) <= minCandidateLen {
					continue
				}
				if _, dup := seen[candidate]; dup {
					break
				}
				seen[candidate] = struct{}{}
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}

// extractTechnologies is a fixed-vocabulary containment check against the
// lowercase content.
func (e *Extractor) extractTechnologies(content string) []string {
	lower := strings.ToLower(content)
	seen := make(map[string]struct{})
	var out []string
	for _, tech := range e.techVocab {
		if !strings.Contains(lower, strings.ToLower(tech)) {
			continue
		}
		if _, dup := seen[tech]; dup {
			continue
		}
		seen[tech] = struct{}{}
		out = append(out, tech)
	}
	return out
}
