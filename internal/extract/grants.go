package extract

import (
	"sort"
	"strings"

	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/model"
	"github.com/grantsieve/grantsieve/internal/score"
)

// GrantExtractor finds, scores, and ranks grant-name candidates
type GrantExtractor struct {
	cat       *catalog.Catalog
	strategy  score.Strategy
	threshold float64
	minTokens int
}

// NewGrantExtractor creates a grant candidate extractor. Candidates scoring
// at or below threshold are discarded; sentences with fewer than minTokens
// tokens are too short to carry a grant reference and are skipped.
func NewGrantExtractor(cat *catalog.Catalog, strategy score.Strategy, threshold float64, minTokens int) *GrantExtractor {
	return &GrantExtractor{
		cat:       cat,
		strategy:  strategy,
		threshold: threshold,
		minTokens: minTokens,
	}
}

// Strategy returns the active scoring strategy
func (e *GrantExtractor) Strategy() score.Strategy {
	return e.strategy
}

// Extract segments text into sentences, applies the grant cascade per
// sentence, scores each candidate, deduplicates case-insensitively keeping
// the highest score, and returns candidates sorted by descending confidence.
func (e *GrantExtractor) Extract(text string) []model.Candidate {
	var found []model.Candidate

	for _, sentence := range SplitSentences(text) {
		if len(strings.Fields(sentence)) < e.minTokens {
			continue
		}

		name, rule, ok := e.matchCascade(sentence)
		if !ok {
			continue
		}

		confidence := e.strategy.Score(name, sentence)
		if confidence <= e.threshold {
			continue
		}

		found = append(found, model.Candidate{
			Name:       name,
			Confidence: confidence,
			Context:    sentence,
			Rule:       rule,
		})
	}

	deduped := dedupeCandidates(found)

	// Stable sort keeps discovery order among equal confidences
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Confidence > deduped[j].Confidence
	})

	return deduped
}

// matchCascade tries the grant rules in priority order; the first satisfied
// rule wins for the sentence. The rule's capture, or the whole match span
// when the rule has no capture, becomes the raw candidate name.
func (e *GrantExtractor) matchCascade(sentence string) (name, rule string, ok bool) {
	for _, r := range e.cat.GrantRules {
		m := r.Pattern.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}

		raw := m[0]
		if len(m) > 1 {
			raw = m[1]
		}
		if name := strings.TrimSpace(raw); name != "" {
			return name, r.Name, true
		}
	}
	return "", "", false
}

// dedupeCandidates keeps at most one candidate per case-normalized name,
// preserving first-seen positions and the highest-scoring instance.
func dedupeCandidates(candidates []model.Candidate) []model.Candidate {
	index := make(map[string]int)
	var unique []model.Candidate

	for _, c := range candidates {
		key := strings.ToLower(c.Name)
		if at, seen := index[key]; seen {
			if c.Confidence > unique[at].Confidence {
				unique[at] = c
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, c)
	}

	return unique
}
