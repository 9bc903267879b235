package score

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/grantsieve/grantsieve/internal/catalog"
	prose "github.com/jdkato/prose/v2"
)

// Weighted is the default confidence model: a weighted sum of five
// independent factors over the candidate name and its enclosing sentence.
type Weighted struct {
	cat *catalog.Catalog
}

// NewWeighted creates the weighted strategy. It probes the part-of-speech
// tagger once so that missing linguistic resources surface at construction,
// letting callers fall back to the keyword strategy.
func NewWeighted(cat *catalog.Catalog) (*Weighted, error) {
	if _, err := prose.NewDocument("probe",
		prose.WithExtraction(false), prose.WithSegmentation(false)); err != nil {
		return nil, fmt.Errorf("initialize tagger: %w", err)
	}
	return &Weighted{cat: cat}, nil
}

// Name returns the strategy name
func (w *Weighted) Name() string { return "weighted" }

// Score computes the weighted sum of the five factors, capped at 1.0
func (w *Weighted) Score(name, sentence string) float64 {
	score := weightLength*lengthFactor(name) +
		weightKeyword*w.keywordFactor(name) +
		weightProperNoun*properNounFactor(name) +
		weightCapital*capitalizationFactor(name) +
		weightContext*w.contextFactor(sentence)

	if score > 1 {
		score = 1
	}
	return score
}

// lengthFactor rewards longer names, saturating at lengthSaturation words
func lengthFactor(name string) float64 {
	f := float64(len(strings.Fields(name))) / lengthSaturation
	if f > 1 {
		f = 1
	}
	return f
}

// keywordFactor is the fraction of the grant-keyword vocabulary present in
// the candidate name
func (w *Weighted) keywordFactor(name string) float64 {
	if len(w.cat.Keywords) == 0 {
		return 0
	}
	return float64(vocabularyHits(w.cat.Keywords, name)) / float64(len(w.cat.Keywords))
}

// properNounFactor is the fraction of tokens tagged as proper nouns
func properNounFactor(name string) float64 {
	doc, err := prose.NewDocument(name,
		prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return 0
	}

	tokens := doc.Tokens()
	if len(tokens) == 0 {
		return 0
	}

	proper := 0
	for _, tok := range tokens {
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			proper++
		}
	}
	return float64(proper) / float64(len(tokens))
}

// capitalizationFactor is the fraction of tokens starting with an uppercase
// letter
func capitalizationFactor(name string) float64 {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return 0
	}

	upper := 0
	for _, tok := range tokens {
		for _, r := range tok {
			if unicode.IsUpper(r) {
				upper++
			}
			break
		}
	}
	return float64(upper) / float64(len(tokens))
}

// contextFactor counts application-process vocabulary hits in the enclosing
// sentence, normalized by contextDivisor and capped at 1
func (w *Weighted) contextFactor(sentence string) float64 {
	f := float64(vocabularyHits(w.cat.ContextTerms, sentence)) / contextDivisor
	if f > 1 {
		f = 1
	}
	return f
}
