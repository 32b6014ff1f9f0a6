// Package fanout derives content-expansion analysis from the core topic and
// extracted entities: related queries, content gaps, expansion
// opportunities, and semantic clusters.
//
// Cluster strength is a deterministic function of observed co-occurrence
// and frequency counts in the content, so identical input always produces
// identical output.
package fanout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/entity"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/ngram"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/topic"
)

// Output caps.
const (
	maxPrimaryTopics = 5 // core topic plus up to 4 co-occurring topics
	maxQueries       = 20
	maxExpansions    = 15
	maxClusters      = 5
)

// Cluster is one semantic cluster for topical-authority presentation.
type Cluster struct {
	Topic           string   `json:"topic"`
	RelatedKeywords []string `json:"related_keywords"`
	Strength        float64  `json:"strength"`
}

// Result is the full fan-out analysis.
type Result struct {
	PrimaryTopics          []string  `json:"primary_topics"`
	RelatedQueries         []string  `json:"related_queries"`
	ContentGaps            []string  `json:"content_gaps"`
	ExpansionOpportunities []string  `json:"expansion_opportunities"`
	SemanticClusters       []Cluster `json:"semantic_clusters"`
}

// Input carries the upstream signals the fan-out derives from.
type Input struct {
	Content      string
	CoreTopic    topic.Topic
	Entities     entity.Bundle
	HeadingTexts []string
}

// Analyze runs the full fan-out derivation.
func Analyze(in Input, t tables.Tables) Result {
	primaries := primaryTopics(in.CoreTopic)
	return Result{
		PrimaryTopics:          primaries,
		RelatedQueries:         relatedQueries(primaries, t),
		ContentGaps:            contentGaps(in.HeadingTexts, t),
		ExpansionOpportunities: expansionOpportunities(in.Entities),
		SemanticClusters:       clusters(in, primaries),
	}
}

// primaryTopics is the core topic plus up to four topics co-occurring with
// it in the content.
func primaryTopics(core topic.Topic) []string {
	var out []string
	if core.Topic != "" {
		out = append(out, core.Topic)
	}
	for _, term := range core.CoOccurringTerms {
		if len(out) >= maxPrimaryTopics {
			break
		}
		out = append(out, term)
	}
	return out
}

// relatedQueries expands every primary topic through the query templates,
// deduplicated and capped at maxQueries.
func relatedQueries(primaries []string, t tables.Tables) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, topicStr := range primaries {
		for _, tmpl := range t.QueryTemplates {
			q := fmt.Sprintf(tmpl, topicStr)
			if _, dup := seen[q]; dup {
				continue
			}
			seen[q] = struct{}{}
			out = append(out, q)
			if len(out) >= maxQueries {
				return out
			}
		}
	}
	return out
}

// contentGaps is the fixed checklist minus whatever the headings already
// cover.
func contentGaps(headingTexts []string, t tables.Tables) []string {
	joined := strings.ToLower(strings.Join(headingTexts, " "))
	var out []string
	for _, gap := range t.ContentGapTopics {
		if strings.Contains(joined, gap) {
			continue
		}
		out = append(out, gap)
	}
	return out
}

// expansionOpportunities templates suggestions off the extracted entities,
// deduplicated and capped at maxExpansions.
func expansionOpportunities(ents entity.Bundle) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(items []string, tmpl string) {
		for _, item := range items {
			if len(out) >= maxExpansions {
				return
			}
			suggestion := fmt.Sprintf(tmpl, strings.ToLower(item))
			if _, dup := seen[suggestion]; dup {
				continue
			}
			seen[suggestion] = struct{}{}
			out = append(out, suggestion)
		}
	}
	add(ents.People, "%s biography")
	add(ents.Organizations, "%s reviews")
	add(ents.Locations, "%s guide")
	add(ents.Products, "%s review")
	add(ents.Technologies, "%s tutorial")
	return out
}

// clusters builds at most maxClusters semantic clusters, one per related
// topic, sorted descending by strength with alphabetical tie-breaking.
//
// Strength is derived only from observed counts: the fraction of sentences
// where the cluster topic co-occurs with the core topic, plus a small,
// capped frequency bonus, clamped to (0,1].
func clusters(in Input, primaries []string) []Cluster {
	if len(primaries) == 0 {
		return nil
	}
	core := primaries[0]

	sentences := ngram.Sentences(in.Content)
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s)
	}

	freq := make(map[string]int)
	for _, w := range ngram.Words(in.Content) {
		freq[w]++
	}

	// Keyword pool: co-occurring terms plus the topic's own signals.
	pool := make([]string, 0, len(in.CoreTopic.CoOccurringTerms)+len(primaries))
	pool = append(pool, in.CoreTopic.CoOccurringTerms...)
	pool = append(pool, primaries...)

	var out []Cluster
	for _, topicStr := range primaries {
		related := relatedKeywords(topicStr, pool)
		out = append(out, Cluster{
			Topic:           topicStr,
			RelatedKeywords: related,
			Strength:        strength(topicStr, core, lowered, freq),
		})
		if len(out) >= maxClusters {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength == out[j].Strength {
			return out[i].Topic < out[j].Topic
		}
		return out[i].Strength > out[j].Strength
	})
	return out
}

// relatedKeywords collects pool keywords whose string overlaps the cluster
// topic in either direction or that share a whole token with it.
func relatedKeywords(topicStr string, pool []string) []string {
	topicTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(topicStr) {
		topicTokens[tok] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, kw := range pool {
		if kw == topicStr {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		overlap := strings.Contains(kw, topicStr) || strings.Contains(topicStr, kw)
		if !overlap {
			for _, tok := range strings.Fields(kw) {
				if _, ok := topicTokens[tok]; ok {
					overlap = true
					break
				}
			}
		}
		if overlap {
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	sort.Strings(out)
	return out
}

func strength(topicStr, core string, lowered []string, freq map[string]int) float64 {
	cooccur := 0
	for _, low := range lowered {
		if strings.Contains(low, topicStr) && strings.Contains(low, core) {
			cooccur++
		}
	}

	s := 0.0
	if len(lowered) > 0 {
		s = float64(cooccur) / float64(len(lowered))
	}

	count := freq[topicStr]
	if count > 5 {
		count = 5
	}
	s += 0.1 * float64(count)

	if s > 1 {
		s = 1
	}
	return s
}
