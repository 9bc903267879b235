package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grantsieve/grantsieve/internal/model"
)

func sampleScan() *ScanResult {
	start := model.NewDate(2023, time.January, 1)
	end := model.NewDate(2024, time.December, 31)
	return &ScanResult{
		Path:    "notice.txt",
		Subject: "notice.txt",
		Result: model.ExtractionResult{
			Grants: []model.Candidate{
				{Name: "Clean Water Initiative", Confidence: 0.9, Context: "The EPA Grant Award...", Rule: "name-after-keyword"},
			},
			Dates: model.DateInfo{
				Start: &start,
				End:   &end,
				YearlySegments: []model.YearlySegment{
					{Start: start, End: model.NewDate(2023, time.December, 31)},
					{Start: model.NewDate(2024, time.January, 1), End: end},
				},
			},
			Financial: map[model.FinancialCategory]model.FinancialField{
				model.CategorySalary: {Category: model.CategorySalary, Value: 45000, Context: "Salary: $45,000"},
			},
			Project: model.ProjectInfo{Title: "Coastal Wetland Restoration"},
		},
	}
}

func TestRenderer_JSON(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := r.RenderJSON(sampleScan().Result, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed model.ExtractionResult
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if len(parsed.Grants) != 1 || parsed.Grants[0].Name != "Clean Water Initiative" {
		t.Errorf("Unexpected round-tripped grants: %v", parsed.Grants)
	}
	if parsed.Dates.Start.String() != "2023-01-01" {
		t.Errorf("Expected ISO start date, got %s", parsed.Dates.Start)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := r.RenderMarkdown(sampleScan(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	report := string(data)

	for _, want := range []string{
		"# Grant Extraction Report: notice.txt",
		"Clean Water Initiative",
		"0.90",
		"2023-01-01",
		"Yearly Segments",
		"$45000.00",
		"Coastal Wetland Restoration",
		"Generated by grantsieve",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestRenderer_MarkdownWithoutFooter(t *testing.T) {
	r := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := r.RenderMarkdown(sampleScan(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by grantsieve") {
		t.Error("Expected no footer")
	}
}
