// Package keyword is the top-level consumer of the analysis pipeline: it
// generates and scores primary and secondary keyword candidates from the
// page's topical, structural, and entity signals, and synthesizes a
// human-readable justification for each class.
//
// Primary candidate generation is an explicit ordered list of generator
// functions. Single-token fallback generation triggers only when the
// multi-word pool holds fewer than fallbackThreshold candidates, so the
// trigger condition is independently testable.
package keyword

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/entity"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/lexicon"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/topic"
)

// Selection and generation limits.
const (
	fallbackThreshold = 5 // fewer multi-word candidates than this triggers the single-token pool
	maxPrimary        = 3
	maxSecondary      = 10
	maxContext        = 3
	minContextLen     = 11

	// Aggregate-confidence diversity thresholds.
	primaryDiversityMin   = 3
	secondaryDiversityMin = 5
	diversityBonus        = 0.1
)

// Primary weight table. Weights are summed per candidate and clamped to 1.
const (
	weightMultiWord   = 0.6
	weightCoreTopic   = 0.5
	weightURLSlug     = 0.2
	weightTitle       = 0.15
	weightFirstHead   = 0.15
	weightSemanticCtx = 0.2
	weightLength      = 0.1
	weightMultiSource = 0.05
)

// Secondary weight table.
const (
	weightSubHeading  = 0.3
	weightMetaDesc    = 0.2
	weightAltText     = 0.2
	weightMetaKeyword = 0.1
	weightFrequency   = 0.2
	weightFuzzy       = 0.1

	fuzzyThreshold = 0.7
	freqThreshold  = 2
)

// Length bonus bounds in characters.
const (
	minBonusLen = 5
	maxBonusLen = 30
)

// Candidate is one scored keyword or phrase.
type Candidate struct {
	Term             string   `json:"term"`
	ExtractedFrom    []string `json:"extracted_from"`
	ConfidenceScore  float64  `json:"confidence_score"`
	ContextSentences []string `json:"context_sentences"`
}

// ClassResult is the scored candidate list for one keyword class.
type ClassResult struct {
	Keywords            []Candidate `json:"keywords"`
	AggregateConfidence float64     `json:"aggregate_confidence"`
	Reasoning           string      `json:"reasoning"`
}

// Input carries every signal the scorer consumes.
type Input struct {
	Content         string
	Title           string
	MetaDescription string
	MetaKeywords    []string
	URLKeywords     []string
	FirstHeading    string
	SubHeadings     []string
	AltTexts        []string
	CoreTopic       topic.Topic
	Entities        entity.Bundle
}

// Scorer generates and scores keyword candidates.
type Scorer struct {
	tables  tables.Tables
	lex     *lexicon.Lexicon
	generic map[string]struct{}
	connect map[string]struct{}
}

// NewScorer builds a scorer over the given tables and synonym lexicon.
func NewScorer(t tables.Tables, lex *lexicon.Lexicon) *Scorer {
	return &Scorer{
		tables:  t,
		lex:     lex,
		generic: wordSet(t.GenericBlocklist),
		connect: wordSet(t.ConnectorWords),
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

const contentFirstParagraph = "These keywords follow a content-first, semantic-SEO reading of the page: " +
	"multi-word topical phrases that the page actually develops rank above isolated tokens, " +
	"because search intent is carried by phrases, and topical authority is built by covering " +
	"a subject in depth rather than by repeating a single term."

// raw is a candidate before validation and scoring.
type raw struct {
	term   string
	source string
}

// generator is one named candidate source.
type generator struct {
	name string
	fn   func(in Input) []string
}

// primaryGenerators is the ordered candidate-generation list for the
// primary class. Order matters: it fixes first-seen source attribution and
// deterministic tie-breaking.
func (s *Scorer) primaryGenerators() []generator {
	return []generator{
		{"core_topic", s.genCoreTopic},
		{"entities", s.genEntities},
		{"semantic_topics", s.genSemanticTopics},
		{"contextual_phrases", s.genContextualPhrases},
		{"intent_phrases", s.genIntentPhrases},
		{"entity_patterns", s.genEntityPatterns},
	}
}

func (s *Scorer) genCoreTopic(in Input) []string {
	if in.CoreTopic.Topic == "" {
		return nil
	}
	return []string{in.CoreTopic.Topic}
}

func (s *Scorer) genEntities(in Input) []string {
	var out []string
	for _, ent := range in.Entities.All() {
		out = append(out, strings.ToLower(ent))
	}
	return out
}

var (
	semanticTopicRes = []*regexp.Regexp{
		regexp.MustCompile(`how to ([a-z][a-z-]*(?: [a-z][a-z-]*){0,2})`),
		regexp.MustCompile(`guide to ([a-z][a-z-]*(?: [a-z][a-z-]*){0,2})`),
		regexp.MustCompile(`what is ([a-z][a-z-]*(?: [a-z][a-z-]*){0,2})`),
	}
	contextualRes = []*regexp.Regexp{
		regexp.MustCompile(`([a-z][a-z-]*(?: [a-z][a-z-]*){1,2}) that help`),
		regexp.MustCompile(`([a-z][a-z-]*(?: [a-z][a-z-]*){1,2}) best practices`),
	}
	intentRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(best [a-z][a-z-]*(?: [a-z][a-z-]*)?)`),
		regexp.MustCompile(`\b(buy [a-z][a-z-]*(?: [a-z][a-z-]*)?)`),
	}
	capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+){1,2}\b`)
)

func matchAll(res []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// genSemanticTopics extracts the phrases following "how to", "guide to",
// and "what is" markers.
func (s *Scorer) genSemanticTopics(in Input) []string {
	return matchAll(semanticTopicRes, ngram.Normalize(in.Content))
}

// genContextualPhrases extracts short phrases preceding outcome markers.
func (s *Scorer) genContextualPhrases(in Input) []string {
	return matchAll(contextualRes, ngram.Normalize(in.Content))
}

// genIntentPhrases extracts intent-templated phrases including the marker.
func (s *Scorer) genIntentPhrases(in Input) []string {
	return matchAll(intentRes, ngram.Normalize(in.Content))
}

// genEntityPatterns extracts multi-word capitalized sequences from the raw
// content, lowercased.
func (s *Scorer) genEntityPatterns(in Input) []string {
	var out []string
	for _, m := range capitalizedRe.FindAllString(in.Content, -1) {
		out = append(out, strings.ToLower(m))
	}
	return out
}

// genFallbackTokens is the single-token pool from URL, title, and first
// heading. It runs only when the multi-word pool is short.
func (s *Scorer) genFallbackTokens(in Input) []string {
	var out []string
	for _, kw := range in.URLKeywords {
		out = append(out, strings.ToLower(kw))
	}
	out = append(out, ngram.Words(in.Title)...)
	out = append(out, ngram.Words(in.FirstHeading)...)
	return out
}

// Primary generates, validates, scores, and selects the primary keyword
// candidates.
func (s *Scorer) Primary(in Input) ClassResult {
	merged := make(map[string]*Candidate)
	var order []string

	add := func(term, source string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		if cand, ok := merged[term]; ok {
			for _, src := range cand.ExtractedFrom {
				if src == source {
					return
				}
			}
			cand.ExtractedFrom = append(cand.ExtractedFrom, source)
			return
		}
		merged[term] = &Candidate{Term: term, ExtractedFrom: []string{source}}
		order = append(order, term)
	}

	for _, gen := range s.primaryGenerators() {
		for _, term := range gen.fn(in) {
			if s.validPrimary(term) {
				add(term, gen.name)
			}
		}
	}

	multiWord := 0
	for _, term := range order {
		if len(strings.Fields(term)) >= 2 {
			multiWord++
		}
	}
	if multiWord < fallbackThreshold {
		for _, term := range s.genFallbackTokens(in) {
			if term != "" && !s.isGeneric(term) {
				add(term, "fallback_tokens")
			}
		}
	}

	sentences := ngram.Sentences(in.Content)
	for _, term := range order {
		cand := merged[term]
		cand.ConfidenceScore = s.scorePrimary(*cand, in)
		cand.ContextSentences = contextFor(term, sentences)
	}

	selected := selectPrimary(order, merged)
	return ClassResult{
		Keywords:            selected,
		AggregateConfidence: aggregate(selected, primaryDiversityMin),
		Reasoning:           s.primaryReasoning(selected),
	}
}

// validPrimary applies the multi-word validity filter: at least two
// non-connector tokens, and any generic token must be balanced by a
// non-generic token of four or more characters.
func (s *Scorer) validPrimary(term string) bool {
	fields := strings.Fields(term)
	if len(fields) < 2 {
		return false
	}

	nonConnector := 0
	hasGeneric := false
	hasStrong := false
	for _, f := range fields {
		if _, conn := s.connect[f]; conn {
			continue
		}
		nonConnector++
		if s.isGeneric(f) {
			hasGeneric = true
			continue
		}
		if len(f) >= 4 {
			hasStrong = true
		}
	}
	if nonConnector < 2 {
		return false
	}
	if hasGeneric && !hasStrong {
		return false
	}
	return true
}

func (s *Scorer) isGeneric(word string) bool {
	_, ok := s.generic[strings.ToLower(word)]
	return ok
}

// scorePrimary sums the primary weight table for one candidate and clamps
// the result to 1.
func (s *Scorer) scorePrimary(cand Candidate, in Input) float64 {
	fields := strings.Fields(cand.Term)
	multi := len(fields) >= 2

	score := 0.0
	if multi {
		score += weightMultiWord
		if cand.Term == in.CoreTopic.Topic {
			score += weightCoreTopic
		}
	}

	if inURLSlug(fields, in.URLKeywords) {
		score += weightURLSlug
	}
	if containsFold(in.Title, cand.Term) {
		score += weightTitle
	}
	if containsFold(in.FirstHeading, cand.Term) {
		score += weightFirstHead
	}
	if hasSemanticContext(in.Content, cand.Term) {
		score += weightSemanticCtx
	}
	if len(cand.Term) >= minBonusLen && len(cand.Term) <= maxBonusLen {
		score += weightLength
	}
	if len(cand.ExtractedFrom) > 1 {
		score += weightMultiSource
	}

	if score > 1 {
		score = 1
	}
	return score
}

// inURLSlug reports whether every token of the term appears among the URL
// keywords.
func inURLSlug(fields []string, urlKeywords []string) bool {
	if len(urlKeywords) == 0 {
		return false
	}
	slug := wordSet(urlKeywords)
	for _, f := range fields {
		if _, ok := slug[f]; !ok {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// hasSemanticContext reports whether the content uses the keyword inside a
// guiding construction: followed by tips/guide/strategies or preceded by
// how to/guide to/best.
func hasSemanticContext(content, term string) bool {
	lower := ngram.Normalize(content)
	for _, suffix := range []string{" tips", " guide", " strategies"} {
		if strings.Contains(lower, term+suffix) {
			return true
		}
	}
	for _, prefix := range []string{"how to ", "guide to ", "best "} {
		if strings.Contains(lower, prefix+term) {
			return true
		}
	}
	return false
}

// selectPrimary sorts by confidence descending with first-seen stability,
// keeping multi-word candidates ahead of single-token fallbacks so single
// tokens surface only when the multi-word pool runs out.
func selectPrimary(order []string, merged map[string]*Candidate) []Candidate {
	candidates := make([]Candidate, 0, len(order))
	for _, term := range order {
		candidates = append(candidates, *merged[term])
	}

	multi := func(c Candidate) bool { return len(strings.Fields(c.Term)) >= 2 }
	sort.SliceStable(candidates, func(i, j int) bool {
		if multi(candidates[i]) != multi(candidates[j]) {
			return multi(candidates[i])
		}
		return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
	})

	if len(candidates) > maxPrimary {
		candidates = candidates[:maxPrimary]
	}
	return candidates
}

// Secondary generates and scores the secondary keyword pool from
// sub-headings, the meta description, image alt texts, and the meta
// keywords tag.
func (s *Scorer) Secondary(in Input, primary ClassResult) ClassResult {
	merged := make(map[string]*Candidate)
	var order []string

	add := func(term, source string) {
		if term == "" || s.isGeneric(term) || len(term) < ngram.MinPhraseLen {
			return
		}
		if cand, ok := merged[term]; ok {
			for _, src := range cand.ExtractedFrom {
				if src == source {
					return
				}
			}
			cand.ExtractedFrom = append(cand.ExtractedFrom, source)
			return
		}
		merged[term] = &Candidate{Term: term, ExtractedFrom: []string{source}}
		order = append(order, term)
	}

	for _, h := range in.SubHeadings {
		for _, w := range ngram.Words(h) {
			add(w, "sub_headings")
		}
	}
	for _, w := range ngram.Words(in.MetaDescription) {
		add(w, "meta_description")
	}
	for _, alt := range in.AltTexts {
		for _, w := range ngram.Words(alt) {
			add(w, "alt_text")
		}
	}

	// Meta keyword tokens absent from the primary signal locations.
	primaryLocs := ngram.Normalize(in.Title + " " + in.FirstHeading + " " + strings.Join(in.URLKeywords, " "))
	for _, kw := range in.MetaKeywords {
		for _, w := range ngram.Words(kw) {
			if !strings.Contains(primaryLocs, w) {
				add(w, "meta_keywords")
			}
		}
	}

	freq := make(map[string]int)
	for _, w := range ngram.Words(in.Content) {
		freq[w]++
	}

	sentences := ngram.Sentences(in.Content)
	candidates := make([]Candidate, 0, len(order))
	for _, term := range order {
		cand := merged[term]
		cand.ConfidenceScore = s.scoreSecondary(*cand, freq, primary)
		cand.ContextSentences = contextFor(term, sentences)
		candidates = append(candidates, *cand)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
	})
	if len(candidates) > maxSecondary {
		candidates = candidates[:maxSecondary]
	}

	return ClassResult{
		Keywords:            candidates,
		AggregateConfidence: aggregate(candidates, secondaryDiversityMin),
		Reasoning:           s.secondaryReasoning(candidates),
	}
}

func (s *Scorer) scoreSecondary(cand Candidate, freq map[string]int, primary ClassResult) float64 {
	score := 0.0
	for _, src := range cand.ExtractedFrom {
		switch src {
		case "sub_headings":
			score += weightSubHeading
		case "meta_description":
			score += weightMetaDesc
		case "alt_text":
			score += weightAltText
		case "meta_keywords":
			score += weightMetaKeyword
		}
	}
	if freq[cand.Term] > freqThreshold {
		score += weightFrequency
	}
	for _, p := range primary.Keywords {
		if similarity(cand.Term, p.Term) > fuzzyThreshold || (s.lex != nil && s.lex.AreSynonyms(cand.Term, p.Term)) {
			score += weightFuzzy
			break
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}

// similarity is the edit-distance ratio 1 - lev(a,b)/max(len(a),len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func contextFor(term string, sentences []string) []string {
	var out []string
	for _, sentence := range sentences {
		if len(out) >= maxContext {
			break
		}
		if len(sentence) < minContextLen {
			continue
		}
		if containsFold(sentence, term) {
			out = append(out, sentence)
		}
	}
	return out
}

// aggregate is the mean candidate confidence plus a diversity bonus when
// the class holds at least diversityMin candidates, clamped to 1.
func aggregate(candidates []Candidate, diversityMin int) float64 {
	if len(candidates) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range candidates {
		sum += c.ConfidenceScore
	}
	agg := sum / float64(len(candidates))
	if len(candidates) >= diversityMin {
		agg += diversityBonus
	}
	if agg > 1 {
		agg = 1
	}
	return agg
}

func (s *Scorer) primaryReasoning(selected []Candidate) string {
	if len(selected) == 0 {
		return "No primary keywords identified: the page offers no multi-word topical phrases in its content or structure."
	}
	top := selected[0]
	reason := fmt.Sprintf("Top primary keyword %q (confidence %.2f) was extracted from %s.",
		top.Term, top.ConfidenceScore, strings.Join(top.ExtractedFrom, ", "))
	if len(strings.Fields(top.Term)) >= 2 {
		reason += " " + contentFirstParagraph
	}
	return reason
}

func (s *Scorer) secondaryReasoning(selected []Candidate) string {
	if len(selected) == 0 {
		return "No secondary keywords identified: sub-headings, meta description, and image alt text carry no additional terms."
	}
	top := selected[0]
	return fmt.Sprintf("Top secondary keyword %q (confidence %.2f) was extracted from %s.",
		top.Term, top.ConfidenceScore, strings.Join(top.ExtractedFrom, ", "))
}
