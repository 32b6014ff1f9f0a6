// Package lexicon stores the small closed synonym vocabulary behind the
// "synonym" relationship type (car ↔ automobile). The map is bidirectional:
// variants normalize to a canonical form and a canonical form expands back
// to all of its variants, so either side of a pair matches the other.
package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is a bidirectional variant↔canonical map.
type Lexicon struct {
	reverse map[string]string   // variant -> canonical
	forward map[string][]string // canonical -> variants (canonical included)
}

// New builds a lexicon from a variant→canonical seed map.
func New(pairs map[string]string) *Lexicon {
	l := &Lexicon{
		reverse: make(map[string]string, len(pairs)*2),
		forward: make(map[string][]string, len(pairs)),
	}
	for variant, canonical := range pairs {
		l.add(canonical, variant)
	}
	return l
}

func (l *Lexicon) add(canonical, variant string) {
	canonical = strings.ToLower(canonical)
	variant = strings.ToLower(variant)
	if canonical == "" || variant == "" {
		return
	}
	if _, ok := l.reverse[canonical]; !ok {
		l.reverse[canonical] = canonical
		l.forward[canonical] = append(l.forward[canonical], canonical)
	}
	if _, ok := l.reverse[variant]; ok {
		return
	}
	l.reverse[variant] = canonical
	l.forward[canonical] = append(l.forward[canonical], variant)
}

// Canonical returns the canonical form of term and whether the term is in
// the lexicon at all.
func (l *Lexicon) Canonical(term string) (string, bool) {
	canonical, ok := l.reverse[strings.ToLower(term)]
	return canonical, ok
}

// Synonyms returns every variant sharing term's canonical form, the term
// itself excluded. Unknown terms return nil.
func (l *Lexicon) Synonyms(term string) []string {
	canonical, ok := l.Canonical(term)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range l.forward[canonical] {
		if v != strings.ToLower(term) {
			out = append(out, v)
		}
	}
	return out
}

// AreSynonyms reports whether a and b normalize to the same canonical form.
func (l *Lexicon) AreSynonyms(a, b string) bool {
	ca, oka := l.Canonical(a)
	cb, okb := l.Canonical(b)
	return oka && okb && ca == cb
}

// LoadFromYAML loads synonym mappings from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: car
//	    variants: [automobile, vehicle]
//
// All entries are lowercased.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	l := New(nil)
	for _, entry := range config.Synonyms {
		for _, v := range entry.Variants {
			l.add(entry.Canonical, v)
		}
	}
	return l, nil
}
