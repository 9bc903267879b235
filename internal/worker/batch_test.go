package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/grantsieve/grantsieve/internal/pipeline"
)

// fakeScanner implements Scanner without running real extraction
type fakeScanner struct {
	calls   int32
	failFor string
}

func (s *fakeScanner) ScanFile(ctx context.Context, path string) (*pipeline.ScanResult, error) {
	atomic.AddInt32(&s.calls, 1)
	if path == s.failFor {
		return nil, errors.New("scan failed")
	}
	return &pipeline.ScanResult{Path: path, Subject: filepath.Base(path)}, nil
}

func TestReadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	content := "doc1.txt\n\n# comment line\ndoc2.txt\ndoc1.txt\n  doc3.txt  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 unique paths, got %v", paths)
	}
	if paths[0] != "doc1.txt" || paths[1] != "doc2.txt" || paths[2] != "doc3.txt" {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestReadManifest_MissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	scanner := &fakeScanner{failFor: "bad.txt"}
	processor := NewBatchProcessor(scanner, 4, 0, 0)

	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, fmt.Sprintf("doc%d.txt", i))
	}
	paths = append(paths, "bad.txt")

	results := processor.ProcessPaths(context.Background(), paths)
	if len(results) != 21 {
		t.Fatalf("expected 21 results, got %d", len(results))
	}
	if atomic.LoadInt32(&scanner.calls) != 21 {
		t.Errorf("expected 21 scans, got %d", scanner.calls)
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.Path != "bad.txt" {
				t.Errorf("unexpected failing path: %s", r.Path)
			}
		} else if r.Scan == nil {
			t.Errorf("successful result without scan: %s", r.Path)
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_EmptyPathList(t *testing.T) {
	processor := NewBatchProcessor(&fakeScanner{}, 2, 0, 0)
	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "manifest.txt")
	if err := os.WriteFile(manifest, []byte("a.txt\nb.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&fakeScanner{}, 2, 0, 0)
	results, err := processor.ProcessManifest(context.Background(), manifest)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
