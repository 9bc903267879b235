package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	Extraction   ExtractionConfig   `yaml:"extraction"`
	Cache        CacheConfig        `yaml:"cache"`
	Store        StoreConfig        `yaml:"store"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm"`
	Output       OutputConfig       `yaml:"output"`
}

// ExtractionConfig tunes the candidate extractor
type ExtractionConfig struct {
	Strategy          string  `yaml:"strategy"`            // "weighted" or "keyword"
	Threshold         float64 `yaml:"threshold"`           // Candidates scoring at or below are discarded
	MinSentenceTokens int     `yaml:"min_sentence_tokens"` // Shorter sentences are skipped
}

// CacheConfig controls the extraction result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// StoreConfig locates the confirmed-grant memory store
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ConcurrencyConfig sets worker counts for batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles batch document processing
type RateLimitingConfig struct {
	DocsPerSecond float64 `yaml:"docs_per_second"` // 0 disables throttling
	BurstSize     int     `yaml:"burst_size"`
}

// LLMConfig configures the optional review-brief generation.
// The brief is built from the finished result only and never affects extraction.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"` // For OpenAI-compatible local endpoints
	Timeout   int    `yaml:"timeout"`  // Seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Strategy:          "weighted",
			Threshold:         0.3,
			MinSentenceTokens: 3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "grant_database.json",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			DocsPerSecond: 0,
			BurstSize:     5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
