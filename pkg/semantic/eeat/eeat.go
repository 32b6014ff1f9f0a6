// Package eeat rates content quality along the four E-E-A-T axes:
// expertise, experience, authoritativeness, and trustworthiness.
//
// This is explicitly a presence-of-signal heuristic: each axis scans the
// lowercase content for its closed indicator phrases and sums fixed point
// values, capped at 100. It detects trust language, it does not judge
// whether the content semantically earns that trust. Any user-facing claim
// built on these scores must carry that limitation.
package eeat

import (
	"math"
	"strings"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/tables"
)

const maxAxisScore = 100

// Score is the four-axis quality rating. Overall is always the rounded
// arithmetic mean of the four sub-scores, recomputed on construction and
// never stored independently.
type Score struct {
	Expertise         int `json:"expertise"`
	Experience        int `json:"experience"`
	Authoritativeness int `json:"authoritativeness"`
	Trustworthiness   int `json:"trustworthiness"`
	Overall           int `json:"overall"`
}

// Rate scores content along all four axes using the indicator tables.
func Rate(content string, t tables.Tables) Score {
	lower := strings.ToLower(content)
	s := Score{
		Expertise:         axisScore(lower, t.ExpertiseIndicators),
		Experience:        axisScore(lower, t.ExperienceIndicators),
		Authoritativeness: axisScore(lower, t.AuthoritativenessIndicators),
		Trustworthiness:   axisScore(lower, t.TrustworthinessIndicators),
	}
	s.Overall = overall(s)
	return s
}

func axisScore(lowerContent string, indicators map[string]int) int {
	score := 0
	for phrase, points := range indicators {
		if strings.Contains(lowerContent, phrase) {
			score += points
		}
	}
	if score > maxAxisScore {
		score = maxAxisScore
	}
	return score
}

func overall(s Score) int {
	sum := s.Expertise + s.Experience + s.Authoritativeness + s.Trustworthiness
	return int(math.Round(float64(sum) / 4.0))
}
