package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/grantsieve/grantsieve/internal/pipeline"
)

// Scanner runs extraction over a single document file
type Scanner interface {
	ScanFile(ctx context.Context, path string) (*pipeline.ScanResult, error)
}

// ExtractJob extracts one document through the shared scanner
type ExtractJob struct {
	Path    string
	Scanner Scanner
	Limiter *Limiter
}

// Execute waits for rate-limit clearance and runs the extraction
func (j *ExtractJob) Execute(ctx context.Context) Result {
	if err := j.Limiter.Wait(ctx); err != nil {
		return &ExtractResult{Path: j.Path, Error: err}
	}

	result, err := j.Scanner.ScanFile(ctx, j.Path)
	if err != nil {
		return &ExtractResult{Path: j.Path, Error: err}
	}
	return &ExtractResult{Path: j.Path, Scan: result}
}

// ExtractResult is the outcome of one document extraction
type ExtractResult struct {
	Path  string
	Scan  *pipeline.ScanResult
	Error error
}

// GetError returns the job error, if any
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many documents concurrently
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor with the given concurrency and
// global rate limit
func NewBatchProcessor(scanner Scanner, concurrency int, docsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
		limiter:     NewLimiter(docsPerSecond, burst),
	}
}

// ProcessPaths extracts every document path through the worker pool
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		for _, path := range paths {
			pool.Submit(&ExtractJob{Path: path, Scanner: b.scanner, Limiter: b.limiter})
		}
		pool.Finish()
	}()

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}
	return extractResults
}

// ProcessManifest reads document paths from a manifest file and extracts them
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*ExtractResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadManifest reads document paths from a file, one per line, skipping blank
// lines, comments, and duplicates.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return paths, nil
}
