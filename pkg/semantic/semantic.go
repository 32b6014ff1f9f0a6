// Package semantic is the facade of the page analysis engine: it turns one
// page's text and structural signals into scored entities, topics, keyword
// candidates, and content-quality signals.
//
// The entire pipeline is deterministic, rule-based, and explainable: every
// score traces back to named signals, and identical input always produces
// identical output. Analyze is a pure function of its input; the engine
// holds only immutable heuristic tables, so a single engine is safe for
// concurrent use, and nothing is memoized across calls.
package semantic

import (
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/eeat"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/entity"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/fanout"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/frequency"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/keyword"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/lexicon"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/relation"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/topic"
)

// Heading is one heading element as delivered by the HTML-parsing
// collaborator.
type Heading struct {
	Tag      string   `json:"tag"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Input is the collaborator contract: extracted main-body text plus the
// structural signals, already tokenized where noted. Missing fields are
// treated as empty, never as errors.
type Input struct {
	Content         string    `json:"content"`
	Headings        []Heading `json:"headings"`
	URLKeywords     []string  `json:"url_keywords"`
	MetaKeywords    []string  `json:"meta_keywords"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	AltTexts        []string  `json:"alt_texts"`
}

// Analysis is the full record produced for one page. It serializes
// losslessly to named-field JSON so downstream consumers (report builders,
// the external reasoning service) can embed it verbatim.
type Analysis struct {
	Entities              entity.Bundle           `json:"entities"`
	TopFrequentTerms      []frequency.Term        `json:"top_frequent_terms"`
	CoreTopic             topic.Topic             `json:"core_topic"`
	SemanticRelationships []relation.Relationship `json:"semantic_relationships"`
	EEAT                  eeat.Score              `json:"eeat"`
	QueryFanOut           fanout.Result           `json:"query_fan_out"`
	PrimaryKeywords       keyword.ClassResult     `json:"primary_keywords"`
	SecondaryKeywords     keyword.ClassResult     `json:"secondary_keywords"`
	WordCount             int                     `json:"word_count"`
	SentenceCount         int                     `json:"sentence_count"`
	ReadabilityScore      float64                 `json:"readability_score"`
}

// Options configures an Engine. Zero fields fall back to the canonical
// tables and the seed synonym lexicon.
type Options struct {
	Tables  *tables.Tables
	Lexicon *lexicon.Lexicon
}

// Engine runs the analysis pipeline. It holds only immutable configuration.
type Engine struct {
	tables    tables.Tables
	lex       *lexicon.Lexicon
	builder   *ngram.Builder
	extractor *entity.Extractor
	scorer    *keyword.Scorer
}

// New creates an Engine with the given options.
func New(opts Options) *Engine {
	t := tables.Default()
	if opts.Tables != nil {
		t = *opts.Tables
	}
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.New(t.SynonymPairs)
	}
	return &Engine{
		tables:    t,
		lex:       lex,
		builder:   ngram.NewBuilder(t.Stopwords),
		extractor: entity.NewExtractor(t),
		scorer:    keyword.NewScorer(t, lex),
	}
}

// NewDefault creates an Engine with the canonical tables.
func NewDefault() *Engine {
	return New(Options{})
}

// Phrases exposes the tokenizer's candidate phrase set for one text span.
func (e *Engine) Phrases(text string) ngram.TokenSet {
	return e.builder.Phrases(text)
}

// Analyze runs the full pipeline over one page. Degenerate input (empty
// content, missing headings or token lists) yields zero values and
// explanatory reasoning strings rather than errors.
func (e *Engine) Analyze(in Input) Analysis {
	headingTexts := make([]string, 0, len(in.Headings))
	for _, h := range in.Headings {
		headingTexts = append(headingTexts, h.Text)
	}
	firstHeading, subHeadings := splitHeadings(in.Headings)

	ents := e.extractor.Extract(in.Content)
	terms := frequency.TopTerms(in.Content, headingTexts)

	core := topic.Identify(topic.Input{
		Content:      in.Content,
		URLKeywords:  in.URLKeywords,
		MetaKeywords: in.MetaKeywords,
		FirstHeading: firstHeading,
		Entities:     ents,
	}, e.builder)

	rels := relation.Map(relation.Input{
		Content:         in.Content,
		URLKeywords:     in.URLKeywords,
		MetaKeywords:    in.MetaKeywords,
		HeadingKeywords: headingKeywords(in.Headings),
	}, e.lex)

	quality := eeat.Rate(in.Content, e.tables)

	fo := fanout.Analyze(fanout.Input{
		Content:      in.Content,
		CoreTopic:    core,
		Entities:     ents,
		HeadingTexts: headingTexts,
	}, e.tables)

	kwIn := keyword.Input{
		Content:         in.Content,
		Title:           in.Title,
		MetaDescription: in.MetaDescription,
		MetaKeywords:    in.MetaKeywords,
		URLKeywords:     in.URLKeywords,
		FirstHeading:    firstHeading,
		SubHeadings:     subHeadings,
		AltTexts:        in.AltTexts,
		CoreTopic:       core,
		Entities:        ents,
	}
	primary := e.scorer.Primary(kwIn)
	secondary := e.scorer.Secondary(kwIn, primary)

	words, sentences := frequency.Counts(in.Content)

	return Analysis{
		Entities:              ents,
		TopFrequentTerms:      terms,
		CoreTopic:             core,
		SemanticRelationships: rels,
		EEAT:                  quality,
		QueryFanOut:           fo,
		PrimaryKeywords:       primary,
		SecondaryKeywords:     secondary,
		WordCount:             words,
		SentenceCount:         sentences,
		ReadabilityScore:      frequency.Readability(in.Content),
	}
}

// splitHeadings returns the title-equivalent first heading (the first h1,
// or failing that the first heading of any tag) and the remaining heading
// texts as sub-headings.
func splitHeadings(headings []Heading) (first string, subs []string) {
	firstIdx := -1
	for i, h := range headings {
		if h.Tag == "h1" {
			firstIdx = i
			break
		}
	}
	if firstIdx < 0 && len(headings) > 0 {
		firstIdx = 0
	}
	for i, h := range headings {
		if i == firstIdx {
			first = h.Text
			continue
		}
		subs = append(subs, h.Text)
	}
	return first, subs
}

// headingKeywords is the union of per-heading keyword lists, falling back
// to the heading's own words when the collaborator supplied none.
func headingKeywords(headings []Heading) []string {
	var out []string
	for _, h := range headings {
		if len(h.Keywords) > 0 {
			out = append(out, h.Keywords...)
			continue
		}
		out = append(out, ngram.Words(h.Text)...)
	}
	return out
}
