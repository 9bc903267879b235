package model

// Candidate represents a scored grant-name hypothesis extracted from the source
type Candidate struct {
	Name       string  `json:"name"`           // The candidate grant name, trimmed
	Confidence float64 `json:"confidence"`     // Score in [0,1] estimating likelihood of a genuine grant reference
	Context    string  `json:"context"`        // The sentence the candidate was found in
	Rule       string  `json:"rule,omitempty"` // Which catalog rule matched (e.g., "name-after-keyword")
}
