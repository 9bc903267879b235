package extract

import (
	"strconv"
	"strings"

	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/model"
)

// contextWindow is the number of characters kept on each side of a
// financial match.
const contextWindow = 50

// FinancialExtractor finds monetary mentions per budget category
type FinancialExtractor struct {
	cat *catalog.Catalog
}

// NewFinancialExtractor creates a financial field extractor
func NewFinancialExtractor(cat *catalog.Catalog) *FinancialExtractor {
	return &FinancialExtractor{cat: cat}
}

// Extract runs every rule of every category across the whole text and keeps
// the highest-value match per category. Malformed numeric captures are
// skipped. Categories with no match are omitted.
func (e *FinancialExtractor) Extract(text string) map[model.FinancialCategory]model.FinancialField {
	fields := make(map[model.FinancialCategory]model.FinancialField)

	for _, category := range model.Categories() {
		best, found := e.scanCategory(category, text)
		if found {
			fields[category] = best
		}
	}

	return fields
}

func (e *FinancialExtractor) scanCategory(category model.FinancialCategory, text string) (model.FinancialField, bool) {
	var best model.FinancialField
	found := false

	for _, rule := range e.cat.Financial[category] {
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			value, err := parseAmount(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			if !found || value > best.Value {
				best = model.FinancialField{
					Category: category,
					Value:    value,
					Context:  window(text, loc[0], loc[1]),
				}
				found = true
			}
		}
	}

	return best, found
}

// parseAmount normalizes a captured numeric token by removing thousands
// separators and parsing it as a decimal magnitude.
func parseAmount(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
}

// window returns the text surrounding [start, end), clipped to document
// boundaries.
func window(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
