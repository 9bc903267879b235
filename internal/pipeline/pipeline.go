// Package pipeline composes the extractors into the engine's sole public
// entry point: raw text in, ranked grant facts out.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/grantsieve/grantsieve/internal/cache"
	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/extract"
	"github.com/grantsieve/grantsieve/internal/llm"
	"github.com/grantsieve/grantsieve/internal/model"
	"github.com/grantsieve/grantsieve/internal/score"
)

// Pipeline wires the catalog, the four extractors, the result cache, and the
// optional briefer together. Construct once and share; extraction itself is
// stateless and safe for concurrent use.
type Pipeline struct {
	catalog   *catalog.Catalog
	dates     *extract.DateEngine
	financial *extract.FinancialExtractor
	project   *extract.ProjectExtractor
	grants    *extract.GrantExtractor
	cache     cache.Cache
	renderer  *Renderer
	briefer   *llm.Briefer
	config    *model.Config
}

// New creates a pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	strategy, err := score.ForName(cfg.Extraction.Strategy, cat)
	if err != nil {
		switch strings.ToLower(cfg.Extraction.Strategy) {
		case "weighted", "":
			// Tagging resources unavailable: degrade to the keyword model
			fmt.Fprintf(os.Stderr, "Warning: falling back to keyword scoring: %v\n", err)
			strategy = score.NewKeyword(cat)
		default:
			return nil, err
		}
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			resultCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			resultCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	briefer, err := llm.NewBriefer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
	}

	return &Pipeline{
		catalog:   cat,
		dates:     extract.NewDateEngine(cat),
		financial: extract.NewFinancialExtractor(cat),
		project:   extract.NewProjectExtractor(cat),
		grants:    extract.NewGrantExtractor(cat, strategy, cfg.Extraction.Threshold, cfg.Extraction.MinSentenceTokens),
		cache:     resultCache,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		briefer:   briefer,
		config:    cfg,
	}, nil
}

// StrategyName returns the active scoring strategy name
func (p *Pipeline) StrategyName() string {
	return p.grants.Strategy().Name()
}

// Extract runs the full extraction over one document text. Empty or
// non-textual input returns the documented empty result — that is behavior,
// not an error. The four extractors share no mutable state and run
// concurrently.
func (p *Pipeline) Extract(text string) model.ExtractionResult {
	if strings.TrimSpace(text) == "" || !utf8.ValidString(text) {
		return model.EmptyResult()
	}

	if p.cache != nil {
		if data, found := p.cache.Get(cache.Key(text)); found {
			var cached model.ExtractionResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	var result model.ExtractionResult
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		result.Grants = p.grants.Extract(text)
	}()
	go func() {
		defer wg.Done()
		result.Dates = p.dates.Extract(text)
	}()
	go func() {
		defer wg.Done()
		result.Financial = p.financial.Extract(text)
	}()
	go func() {
		defer wg.Done()
		result.Project = p.project.Extract(text)
	}()
	wg.Wait()

	if result.Grants == nil {
		result.Grants = []model.Candidate{}
	}

	if p.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(cache.Key(text), data, 0)
		}
	}

	return result
}

// ScanResult pairs an extraction result with its source document
type ScanResult struct {
	Path    string
	Subject string
	Result  model.ExtractionResult
	Brief   string
}

// ScanFile reads a document file and extracts it. HTML input is reduced to
// visible text first. When a briefer is configured the reviewer brief is
// generated after extraction; a brief failure never fails the scan.
func (p *Pipeline) ScanFile(ctx context.Context, path string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = extract.TextFromHTML(text)
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
	}

	scan := &ScanResult{
		Path:    path,
		Subject: filepath.Base(path),
		Result:  p.Extract(text),
	}

	if p.briefer.IsEnabled() {
		brief, err := p.briefer.Generate(ctx, scan.Subject, scan.Result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: brief generation failed: %v\n", err)
		} else {
			scan.Brief = brief
		}
	}

	return scan, nil
}

// RenderOutputs writes the requested report files and prints the summary
func (p *Pipeline) RenderOutputs(scan *ScanResult, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(scan.Result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(scan, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if scan.Brief != "" && mdPath != "" {
		briefPath := strings.TrimSuffix(mdPath, ".md") + ".brief.md"
		if err := p.renderer.RenderBrief(scan.Brief, briefPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write brief: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote brief: %s\n", briefPath)
		}
	}

	p.renderer.RenderSummary(scan)
	return nil
}
