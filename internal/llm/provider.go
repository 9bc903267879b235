// Package llm generates an optional reviewer brief from a finished
// extraction result. The brief is produced AFTER extraction from the
// extracted facts only — raw document text is never sent, and the brief
// never affects extraction output.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/grantsieve/grantsieve/internal/model"
)

// Provider defines the interface for brief generators
type Provider interface {
	// Name returns the provider name
	Name() string

	// Brief generates a reviewer brief from the extracted facts
	Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// BriefRequest contains the input for brief generation
type BriefRequest struct {
	// Subject identifies the document (typically its file name)
	Subject string

	// Result is the finished extraction result — the ONLY source of facts
	// the model may use
	Result model.ExtractionResult

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// BriefResponse contains the generated brief
type BriefResponse struct {
	Brief      string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled). OpenAI-compatible local
	// endpoints are reached by setting BaseURL.
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

// NewProvider creates a provider from configuration. An empty provider name
// means briefs are disabled and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the default brief prompt. The extracted facts are
// enumerated inline and the model is forbidden from introducing any others.
func BuildPrompt(subject string, result model.ExtractionResult) string {
	prompt := fmt.Sprintf(`You are writing a short brief for a human reviewing machine-extracted grant facts. The facts below are heuristic candidates with confidence scores, NOT verified truths.

CRITICAL RULES:
1. Mention ONLY grant names, dates, and amounts listed below.
2. DO NOT infer, speculate, or add facts that are not listed.
3. Describe confidence honestly ("a high-confidence candidate", "a weak candidate").
4. If a section is empty, say the document yielded nothing for it.

Document: %s

Grant name candidates (descending confidence):
%s
Award period: %s
Financial line items:
%s`, subject, formatCandidates(result.Grants), formatPeriod(result.Dates), formatFinancial(result.Financial))

	if result.Project.Title != "" {
		prompt += fmt.Sprintf("\nProject title: %s\n", result.Project.Title)
	}

	prompt += "\nWrite a 3-4 sentence brief for the reviewer."
	return prompt
}

func formatCandidates(grants []model.Candidate) string {
	if len(grants) == 0 {
		return "(none)\n"
	}
	out := ""
	for i, g := range grants {
		if i >= 10 { // Limit to the top 10 to avoid token bloat
			out += fmt.Sprintf("... and %d more candidates\n", len(grants)-10)
			break
		}
		out += fmt.Sprintf("- %q (confidence %.2f)\n", g.Name, g.Confidence)
	}
	return out
}

func formatPeriod(dates model.DateInfo) string {
	if dates.Start == nil && dates.End == nil {
		return "(not found)"
	}
	start, end := "?", "?"
	if dates.Start != nil {
		start = dates.Start.String()
	}
	if dates.End != nil {
		end = dates.End.String()
	}
	s := fmt.Sprintf("%s to %s", start, end)
	if n := len(dates.YearlySegments); n > 0 {
		s += fmt.Sprintf(" (%d yearly budget segments)", n)
	}
	return s
}

func formatFinancial(fields map[model.FinancialCategory]model.FinancialField) string {
	if len(fields) == 0 {
		return "(none)\n"
	}

	categories := make([]string, 0, len(fields))
	for cat := range fields {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)

	out := ""
	for _, cat := range categories {
		out += fmt.Sprintf("- %s: %.2f\n", cat, fields[model.FinancialCategory(cat)].Value)
	}
	return out
}
