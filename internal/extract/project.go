package extract

import (
	"strings"

	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/model"
)

// ProjectExtractor finds single-shot title and description fields
type ProjectExtractor struct {
	cat *catalog.Catalog
}

// NewProjectExtractor creates a project info extractor
func NewProjectExtractor(cat *catalog.Catalog) *ProjectExtractor {
	return &ProjectExtractor{cat: cat}
}

// Extract fills title and description independently, first match wins for
// each field. Documents state their title once near the top, so unlike date
// cues there is no last-match overwrite.
func (e *ProjectExtractor) Extract(text string) model.ProjectInfo {
	return model.ProjectInfo{
		Title:       firstMatch(e.cat.ProjectTitle, text),
		Description: firstMatch(e.cat.ProjectDescription, text),
	}
}

func firstMatch(rules []catalog.Rule, text string) string {
	for _, rule := range rules {
		if m := rule.Pattern.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value
			}
		}
	}
	return ""
}
