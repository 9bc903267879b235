package llm

import (
	"context"
	"fmt"

	"github.com/grantsieve/grantsieve/internal/model"
)

// Briefer wraps a provider and the configuration used for brief generation
type Briefer struct {
	provider Provider
	config   Config
}

// NewBriefer creates a briefer from configuration. Returns nil, nil when no
// provider is configured (briefs disabled).
func NewBriefer(config Config) (*Briefer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Briefer{provider: provider, config: config}, nil
}

// IsEnabled reports whether brief generation is active
func (b *Briefer) IsEnabled() bool {
	return b != nil && b.provider != nil
}

// Generate produces a reviewer brief for the given result
func (b *Briefer) Generate(ctx context.Context, subject string, result model.ExtractionResult) (string, error) {
	if !b.IsEnabled() {
		return "", nil
	}

	resp, err := b.provider.Brief(ctx, BriefRequest{
		Subject:   subject,
		Result:    result,
		Model:     b.config.Model,
		MaxTokens: b.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate brief: %w", err)
	}
	return resp.Brief, nil
}
