// Package ngram is the shared leaf utility of the analysis pipeline: text
// normalization, sentence splitting, and candidate phrase generation over
// 1-, 2-, and 3-token windows.
package ngram

import (
	"strings"
	"unicode"
)

// Phrase length bounds in characters.
const (
	MinPhraseLen = 3
	MaxPhraseLen = 50
)

const maxWindow = 3

// Builder generates candidate phrases from raw text.
type Builder struct {
	stop map[string]struct{}
}

// NewBuilder creates a builder with the given stopword list.
func NewBuilder(stopwords []string) *Builder {
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Builder{stop: stop}
}

// IsStopword reports whether the word is on the builder's stoplist.
func (b *Builder) IsStopword(word string) bool {
	_, ok := b.stop[strings.ToLower(word)]
	return ok
}

// TokenSet is an unordered set of candidate phrases.
type TokenSet map[string]struct{}

// Contains reports membership of a phrase.
func (s TokenSet) Contains(phrase string) bool {
	_, ok := s[phrase]
	return ok
}

// Slice returns the phrases in unspecified order.
func (s TokenSet) Slice() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// Phrases normalizes text and returns the set of all 1- to 3-token windows
// over the token sequence. A phrase is retained only when it is between
// MinPhraseLen and MaxPhraseLen characters and neither its first nor last
// token is a stopword. Stopwords may appear medially ("guide to marketing").
func (b *Builder) Phrases(text string) TokenSet {
	tokens := Tokens(text)
	set := make(TokenSet)

	for i := range tokens {
		for n := 1; n <= maxWindow && i+n <= len(tokens); n++ {
			window := tokens[i : i+n]
			if b.IsStopword(window[0]) || b.IsStopword(window[n-1]) {
				continue
			}
			phrase := strings.Join(window, " ")
			if len(phrase) < MinPhraseLen || len(phrase) > MaxPhraseLen {
				continue
			}
			set[phrase] = struct{}{}
		}
	}
	return set
}

// Normalize lowercases text, strips every rune that is not a letter, digit,
// hyphen, or space, and collapses runs of whitespace to single spaces.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Tokens returns the normalized token sequence of text, stopwords included.
func Tokens(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, " ")
}

// Words returns normalized tokens longer than two characters. This is the
// whitespace tokenization used by the frequency analyzer.
func Words(text string) []string {
	var out []string
	for _, tok := range Tokens(text) {
		if len(tok) > 2 {
			out = append(out, tok)
		}
	}
	return out
}

// Sentences splits text on terminal punctuation and returns the trimmed,
// non-empty sentences. An empty input yields no sentences.
func Sentences(text string) []string {
	var out []string
	var current strings.Builder
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}
