// Package scoring computes the local compatibility score between a company
// profile and a tender. It is a keyword-overlap heuristic, fully
// deterministic and offline: no stemming, no term-frequency weighting, no
// model calls.
package scoring

import (
	"strings"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
)

const (
	baseScore       = 50
	matchBonus      = 10
	negativePenalty = 40

	// Specialization tokens this short are treated as stopwords.
	minTokenLength = 5

	MinScore = 5
	MaxScore = 99
)

// Score rates how well a tender fits a profile, in [MinScore, MaxScore].
//
// Starting from 50, each distinct specialization token of at least 5 runes
// found case-insensitively in the tender's title+description adds 10; each
// non-empty negative keyword found in the same text subtracts 40. The scale
// saturates: one negative hit outweighs several positive ones.
func Score(profile *models.Profile, tender models.Tender) int {
	text := strings.ToLower(tender.SearchableText())
	score := baseScore

	seen := map[string]struct{}{}
	for _, token := range strings.Fields(strings.ToLower(profile.Specialization)) {
		if len([]rune(token)) < minTokenLength {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if strings.Contains(text, token) {
			score += matchBonus
		}
	}

	for _, keyword := range profile.NegativeKeywordsAsArray() {
		if strings.Contains(text, strings.ToLower(keyword)) {
			score -= negativePenalty
		}
	}

	return clamp(score)
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
