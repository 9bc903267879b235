package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/grantsieve/grantsieve/internal/model"
	"github.com/grantsieve/grantsieve/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON    string
	outMD      string
	strategy   string
	threshold  float64
	timeout    time.Duration
	noCache    bool
	noFooter   bool
	llmEnabled bool
	llmModel   string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract grant facts from a single document",
	Long: `Extract analyzes one OCR'd document (plain text or HTML) to:
- Surface grant name candidates with confidence scores
- Find the award period and decompose it into yearly segments
- Pull financial fields (salary, indirect, travel, supplies, fringe, equipment)
- Capture project title and description

Example:
  grantsieve extract award-letter.txt
  grantsieve extract award-letter.txt --json report.json --md report.md
  grantsieve extract notice.html --strategy keyword --threshold 0.4
  grantsieve extract award-letter.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	extractCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Extraction flags
	extractCmd.Flags().StringVar(&strategy, "strategy", "weighted", "scoring strategy (weighted, keyword)")
	extractCmd.Flags().Float64Var(&threshold, "threshold", 0.3, "minimum candidate confidence")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall extraction timeout")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh extraction)")
	extractCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	extractCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM reviewer brief generation")
	extractCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", path)
		fmt.Fprintf(os.Stderr, "Strategy: %s\n", strategy)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Extraction.Strategy = strategy
	cfg.Extraction.Threshold = threshold
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	scan, err := p.ScanFile(ctx, path)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored with %s strategy\n", p.StrategyName())
		fmt.Fprintf(os.Stderr, "✓ Found %d grant candidates\n", len(scan.Result.Grants))
		fmt.Fprintf(os.Stderr, "✓ Found %d financial fields\n", len(scan.Result.Financial))
		if len(scan.Result.Dates.YearlySegments) > 0 {
			fmt.Fprintf(os.Stderr, "✓ Award period spans %d yearly segments\n", len(scan.Result.Dates.YearlySegments))
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderOutputs(scan, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
