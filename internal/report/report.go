// Package report assembles the final analysis record for one page and
// serializes it to CSV and Markdown for export.
package report

import (
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/keyword"
)

// Report is one completed page analysis with its identity and optional
// reasoning-service commentary.
type Report struct {
	ID         string            `json:"id"`
	URL        string            `json:"url"`
	CreatedAt  time.Time         `json:"created_at"`
	Analysis   semantic.Analysis `json:"analysis"`
	Commentary string            `json:"commentary,omitempty"`
}

// Builder assigns monotonic ULID identities to reports. The entropy source
// is locked because Build is called from concurrent request handlers.
type Builder struct {
	entropy *ulid.LockedMonotonicReader
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.Reader, 0),
		},
	}
}

// Build wraps an analysis into an identified report.
func (b *Builder) Build(pageURL string, analysis semantic.Analysis, commentary string) Report {
	return Report{
		ID:         ulid.MustNew(ulid.Now(), b.entropy).String(),
		URL:        pageURL,
		CreatedAt:  time.Now().UTC(),
		Analysis:   analysis,
		Commentary: commentary,
	}
}

// WriteCSV writes the report's keyword candidates as CSV rows: class, term,
// confidence, sources, context count.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"class", "term", "confidence", "sources", "context_sentences"}); err != nil {
		return err
	}
	writeClass := func(class string, result keyword.ClassResult) error {
		for _, cand := range result.Keywords {
			row := []string{
				class,
				cand.Term,
				strconv.FormatFloat(cand.ConfidenceScore, 'f', 2, 64),
				strings.Join(cand.ExtractedFrom, "|"),
				strconv.Itoa(len(cand.ContextSentences)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeClass("primary", r.Analysis.PrimaryKeywords); err != nil {
		return err
	}
	if err := writeClass("secondary", r.Analysis.SecondaryKeywords); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown renders the report as a human-readable dashboard document.
func WriteMarkdown(w io.Writer, r Report) error {
	var sb strings.Builder
	a := r.Analysis

	fmt.Fprintf(&sb, "# Keyword Analysis %s\n\n", r.ID)
	fmt.Fprintf(&sb, "URL: %s\n\nAnalyzed: %s\n\n", r.URL, r.CreatedAt.Format(time.RFC3339))

	fmt.Fprintf(&sb, "## Core Topic\n\n**%s** (confidence %.2f)\n\n%s\n\n", a.CoreTopic.Topic, a.CoreTopic.ConfidenceScore, a.CoreTopic.Reasoning)

	fmt.Fprintf(&sb, "## Primary Keywords\n\n")
	writeKeywordTable(&sb, a.PrimaryKeywords)
	fmt.Fprintf(&sb, "\n%s\n\n", a.PrimaryKeywords.Reasoning)

	fmt.Fprintf(&sb, "## Secondary Keywords\n\n")
	writeKeywordTable(&sb, a.SecondaryKeywords)
	fmt.Fprintf(&sb, "\n%s\n\n", a.SecondaryKeywords.Reasoning)

	fmt.Fprintf(&sb, "## Content Quality (E-E-A-T)\n\n")
	fmt.Fprintf(&sb, "| Axis | Score |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Expertise | %d |\n", a.EEAT.Expertise)
	fmt.Fprintf(&sb, "| Experience | %d |\n", a.EEAT.Experience)
	fmt.Fprintf(&sb, "| Authoritativeness | %d |\n", a.EEAT.Authoritativeness)
	fmt.Fprintf(&sb, "| Trustworthiness | %d |\n", a.EEAT.Trustworthiness)
	fmt.Fprintf(&sb, "| Overall | %d |\n\n", a.EEAT.Overall)

	if len(a.QueryFanOut.RelatedQueries) > 0 {
		fmt.Fprintf(&sb, "## Related Queries\n\n")
		for _, q := range a.QueryFanOut.RelatedQueries {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
		sb.WriteString("\n")
	}
	if len(a.QueryFanOut.ContentGaps) > 0 {
		fmt.Fprintf(&sb, "## Content Gaps\n\n")
		for _, g := range a.QueryFanOut.ContentGaps {
			fmt.Fprintf(&sb, "- %s\n", g)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Page Stats\n\nWords: %d, sentences: %d, readability: %.1f\n", a.WordCount, a.SentenceCount, a.ReadabilityScore)

	if r.Commentary != "" {
		fmt.Fprintf(&sb, "\n## Commentary\n\n%s\n", r.Commentary)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeKeywordTable(sb *strings.Builder, result keyword.ClassResult) {
	if len(result.Keywords) == 0 {
		sb.WriteString("_none_\n")
		return
	}
	fmt.Fprintf(sb, "| Term | Confidence | Sources |\n|---|---|---|\n")
	for _, cand := range result.Keywords {
		fmt.Fprintf(sb, "| %s | %.2f | %s |\n", cand.Term, cand.ConfidenceScore, strings.Join(cand.ExtractedFrom, ", "))
	}
	fmt.Fprintf(sb, "\nAggregate confidence: %.2f\n", result.AggregateConfidence)
}
