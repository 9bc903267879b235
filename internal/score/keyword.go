package score

import (
	"github.com/grantsieve/grantsieve/internal/catalog"
)

// Keyword is the fallback confidence model used when linguistic tagging is
// unavailable: keyword and organization-name hit counts over the enclosing
// sentence.
type Keyword struct {
	cat *catalog.Catalog
}

// NewKeyword creates the keyword strategy
func NewKeyword(cat *catalog.Catalog) *Keyword {
	return &Keyword{cat: cat}
}

// Name returns the strategy name
func (k *Keyword) Name() string { return "keyword" }

// Score computes min(keywordHits*0.2 + orgHits*0.3, 1.0) over the sentence
func (k *Keyword) Score(name, sentence string) float64 {
	keywordHits := vocabularyHits(k.cat.Keywords, sentence)
	orgHits := k.organizationHits(sentence)

	score := float64(keywordHits)*keywordHitWeight + float64(orgHits)*orgHitWeight
	if score > 1 {
		score = 1
	}
	return score
}

// organizationHits counts distinct organization names present in the sentence
func (k *Keyword) organizationHits(sentence string) int {
	if k.cat.OrgPattern == nil {
		return 0
	}

	seen := make(map[string]bool)
	for _, m := range k.cat.OrgPattern.FindAllString(sentence, -1) {
		seen[m] = true
	}
	return len(seen)
}
