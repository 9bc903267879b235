// Package score holds the confidence models for grant-name candidates.
// Every strategy returns a score in [0,1]; the weights are tunable constants
// kept in this file so the arithmetic stays in one place.
package score

import (
	"fmt"
	"strings"

	"github.com/grantsieve/grantsieve/internal/catalog"
)

// Weighted-model factor weights. The five factors are each normalized to
// [0,1] before weighting and the final sum is capped at 1.0.
const (
	weightLength     = 0.2
	weightKeyword    = 0.3
	weightProperNoun = 0.2
	weightCapital    = 0.15
	weightContext    = 0.15

	// lengthSaturation is the word count at which the length factor saturates
	lengthSaturation = 10

	// contextDivisor normalizes context vocabulary hits
	contextDivisor = 5
)

// Keyword-model hit weights
const (
	keywordHitWeight = 0.2
	orgHitWeight     = 0.3
)

// Strategy scores a candidate name within its enclosing sentence.
// Implementations are interchangeable: same contract, same downstream
// deduplication and ranking.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Score returns a confidence in [0,1] for the candidate name found in
	// the given sentence
	Score(name, sentence string) float64
}

// ForName creates the strategy with the given name over the catalog's
// vocabularies
func ForName(name string, cat *catalog.Catalog) (Strategy, error) {
	switch strings.ToLower(name) {
	case "weighted", "":
		return NewWeighted(cat)
	case "keyword":
		return NewKeyword(cat), nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy: %s (supported: weighted, keyword)", name)
	}
}

// vocabularyHits counts how many vocabulary entries appear in text as
// case-insensitive substrings
func vocabularyHits(vocabulary []string, text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, term := range vocabulary {
		if strings.Contains(lower, strings.ToLower(term)) {
			hits++
		}
	}
	return hits
}
