package model

// ProjectInfo holds single-shot project metadata fields, first match wins
type ProjectInfo struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExtractionResult is the aggregate output of one extraction call.
// Pure value object, owned by the caller.
type ExtractionResult struct {
	Grants    []Candidate                          `json:"grants"`    // Descending confidence
	Dates     DateInfo                             `json:"dates"`
	Financial map[FinancialCategory]FinancialField `json:"financial"`
	Project   ProjectInfo                          `json:"project"`
}

// EmptyResult returns the documented result for empty or non-textual input
func EmptyResult() ExtractionResult {
	return ExtractionResult{
		Grants:    []Candidate{},
		Financial: map[FinancialCategory]FinancialField{},
	}
}
