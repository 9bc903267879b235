package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/grantsieve/grantsieve/internal/model"
)

// Renderer writes extraction results as JSON and Markdown reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the result as indented JSON
func (r *Renderer) RenderJSON(result model.ExtractionResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(scan *ScanResult, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Grant Extraction Report: %s\n\n", scan.Subject)

	res := scan.Result
	fmt.Fprintf(&b, "## Grant Candidates (%d)\n\n", len(res.Grants))
	if len(res.Grants) == 0 {
		b.WriteString("No grant candidates found.\n\n")
	} else {
		b.WriteString("| # | Candidate | Confidence | Rule |\n")
		b.WriteString("|---|-----------|------------|------|\n")
		for i, c := range res.Grants {
			fmt.Fprintf(&b, "| %d | %s | %.2f | %s |\n", i+1, c.Name, c.Confidence, c.Rule)
		}
		b.WriteString("\n")
	}

	if res.Dates.Start != nil || res.Dates.End != nil {
		b.WriteString("## Award Period\n\n")
		if res.Dates.Start != nil {
			fmt.Fprintf(&b, "- Start: %s\n", res.Dates.Start)
		}
		if res.Dates.End != nil {
			fmt.Fprintf(&b, "- End: %s\n", res.Dates.End)
		}
		b.WriteString("\n")
		if len(res.Dates.YearlySegments) > 0 {
			b.WriteString("### Yearly Segments\n\n")
			for i, seg := range res.Dates.YearlySegments {
				fmt.Fprintf(&b, "%d. %s — %s\n", i+1, seg.Start, seg.End)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Financial) > 0 {
		b.WriteString("## Financial Fields\n\n")
		b.WriteString("| Category | Amount | Context |\n")
		b.WriteString("|----------|--------|----------|\n")
		for _, cat := range model.Categories() {
			field, ok := res.Financial[cat]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | $%.2f | %s |\n", cat, field.Value, mdEscape(field.Context))
		}
		b.WriteString("\n")
	}

	if res.Project.Title != "" || res.Project.Description != "" {
		b.WriteString("## Project\n\n")
		if res.Project.Title != "" {
			fmt.Fprintf(&b, "- Title: %s\n", res.Project.Title)
		}
		if res.Project.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", res.Project.Description)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Generated by grantsieve. Confidence scores are heuristic; review candidates before relying on them.*\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderBrief writes the reviewer brief to its own file
func (r *Renderer) RenderBrief(brief, path string) error {
	return os.WriteFile(path, []byte(brief+"\n"), 0o644)
}

// RenderSummary prints a short result summary to stdout
func (r *Renderer) RenderSummary(scan *ScanResult) {
	res := scan.Result
	fmt.Printf("\n=== %s ===\n", scan.Subject)
	fmt.Printf("Grant candidates: %d\n", len(res.Grants))
	for i, c := range res.Grants {
		if i >= 3 {
			fmt.Printf("  ... and %d more\n", len(res.Grants)-3)
			break
		}
		fmt.Printf("  %.2f  %s\n", c.Confidence, c.Name)
	}
	if res.Dates.Start != nil && res.Dates.End != nil {
		fmt.Printf("Award period: %s — %s (%d yearly segments)\n",
			res.Dates.Start, res.Dates.End, len(res.Dates.YearlySegments))
	}
	if len(res.Financial) > 0 {
		parts := make([]string, 0, len(res.Financial))
		for _, cat := range model.Categories() {
			if field, ok := res.Financial[cat]; ok {
				parts = append(parts, fmt.Sprintf("%s $%.2f", cat, field.Value))
			}
		}
		fmt.Printf("Financial: %s\n", strings.Join(parts, ", "))
	}
	if res.Project.Title != "" {
		fmt.Printf("Project title: %s\n", res.Project.Title)
	}
}

// mdEscape keeps OCR context from breaking the report table
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
