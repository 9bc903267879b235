package extract

import (
	"testing"
	"time"

	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/model"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Expected catalog to load, got %v", err)
	}
	return cat
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []struct {
		token string
		want  model.Date
	}{
		{"5/1/2024", model.NewDate(2024, time.May, 1)},
		{"01/01/2023", model.NewDate(2023, time.January, 1)},
		{"12-31-2024", model.NewDate(2024, time.December, 31)},
		{"12/31/24", model.NewDate(2024, time.December, 31)},
		{"1-2-06", model.NewDate(2006, time.January, 2)},
		{"2024/5/1", model.NewDate(2024, time.May, 1)},
		{"2024-05-01", model.NewDate(2024, time.May, 1)},
	}

	for _, tc := range cases {
		got, err := ParseDate(tc.token)
		if err != nil {
			t.Errorf("ParseDate(%q): expected no error, got %v", tc.token, err)
			continue
		}
		if !got.Equal(tc.want.Time) {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestParseDate_MonthFirstPrecedence(t *testing.T) {
	// Ambiguous tokens resolve month-first, never day-first
	got, err := ParseDate("3/4/2024")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Month() != time.March || got.Day() != 4 {
		t.Errorf("Expected March 4, got %s", got)
	}
}

func TestParseDate_RejectsMalformed(t *testing.T) {
	for _, token := range []string{"13/45/2024", "not a date", "5/1", "2024", ""} {
		if _, err := ParseDate(token); err == nil {
			t.Errorf("ParseDate(%q): expected error", token)
		}
	}
}

func TestDateEngine_RangeCue(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	info := engine.Extract("Budget period 01/01/2023 - 12/31/2024.")
	if info.Start == nil || info.End == nil {
		t.Fatal("Expected both range ends to be set")
	}
	if info.Start.String() != "2023-01-01" {
		t.Errorf("Expected start 2023-01-01, got %s", info.Start)
	}
	if info.End.String() != "2024-12-31" {
		t.Errorf("Expected end 2024-12-31, got %s", info.End)
	}
	if len(info.YearlySegments) != 2 {
		t.Fatalf("Expected 2 yearly segments, got %d", len(info.YearlySegments))
	}
	if info.YearlySegments[0].End.String() != "2023-12-31" {
		t.Errorf("Expected first segment to end 2023-12-31, got %s", info.YearlySegments[0].End)
	}
	if info.YearlySegments[1].Start.String() != "2024-01-01" {
		t.Errorf("Expected second segment to start 2024-01-01, got %s", info.YearlySegments[1].Start)
	}
}

func TestDateEngine_RangeTakesPrecedenceOverSingles(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	text := "Start date: 6/1/2025. Budget period 01/01/2023 to 12/31/2024."
	info := engine.Extract(text)
	if info.Start == nil || info.Start.String() != "2023-01-01" {
		t.Errorf("Expected range start to win, got %v", info.Start)
	}
}

func TestDateEngine_MalformedRangeSkipped(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	// The first range has an impossible month; the second is adopted
	text := "Budget period 13/45/2024 to 12/31/2024. Budget period 1/1/2024 to 12/31/2024."
	info := engine.Extract(text)
	if info.Start == nil || info.Start.String() != "2024-01-01" {
		t.Errorf("Expected valid range to be adopted, got %v", info.Start)
	}
}

func TestDateEngine_SingleCuesLastMatchWins(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	text := "Start date: 1/1/2023. Revised details follow. Start date: 2/1/2023. End date: 12/31/2023."
	info := engine.Extract(text)
	if info.Start == nil || info.Start.String() != "2023-02-01" {
		t.Errorf("Expected last start cue to win, got %v", info.Start)
	}
	if info.End == nil || info.End.String() != "2023-12-31" {
		t.Errorf("Expected end 2023-12-31, got %v", info.End)
	}
	if info.YearlySegments != nil {
		t.Error("Expected no yearly segments from single cues")
	}
}

func TestDateEngine_ProjectDateFillsBothEnds(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	// "Project date" is deliberately ambiguous and cues both ends
	info := engine.Extract("Project date: 7/1/2023 was listed on the notice.")
	if info.Start == nil || info.Start.String() != "2023-07-01" {
		t.Errorf("Expected start 2023-07-01, got %v", info.Start)
	}
	if info.End == nil || info.End.String() != "2023-07-01" {
		t.Errorf("Expected end 2023-07-01, got %v", info.End)
	}
}

func TestDateEngine_NoCues(t *testing.T) {
	engine := NewDateEngine(mustCatalog(t))

	info := engine.Extract("No dates mentioned anywhere in this document.")
	if info.Start != nil || info.End != nil || info.YearlySegments != nil {
		t.Errorf("Expected empty date info, got %+v", info)
	}
}

func TestDecomposeYearly_Partition(t *testing.T) {
	start := model.NewDate(2023, time.March, 15)
	end := model.NewDate(2026, time.June, 30)

	segments := DecomposeYearly(start, end)
	if len(segments) != 4 {
		t.Fatalf("Expected 4 segments, got %d", len(segments))
	}

	// Coverage: first starts at start, last ends at end
	if !segments[0].Start.Equal(start.Time) {
		t.Errorf("Expected first segment to start at %s, got %s", start, segments[0].Start)
	}
	if !segments[len(segments)-1].End.Equal(end.Time) {
		t.Errorf("Expected last segment to end at %s, got %s", end, segments[len(segments)-1].End)
	}

	for i, seg := range segments {
		if seg.End.Before(seg.Start.Time) {
			t.Errorf("Segment %d ends before it starts: %s - %s", i, seg.Start, seg.End)
		}
		// Contiguity: each segment starts the day after the previous one ends
		if i > 0 {
			expected := segments[i-1].End.AddDate(0, 0, 1)
			if !seg.Start.Equal(expected) {
				t.Errorf("Segment %d starts %s, expected %s", i, seg.Start, expected.Format("2006-01-02"))
			}
		}
		// Every non-final segment ends December 31
		if i < len(segments)-1 {
			if seg.End.Month() != time.December || seg.End.Day() != 31 {
				t.Errorf("Segment %d should end Dec 31, got %s", i, seg.End)
			}
		}
	}
}

func TestDecomposeYearly_SingleYear(t *testing.T) {
	segments := DecomposeYearly(model.NewDate(2024, time.February, 1), model.NewDate(2024, time.November, 30))
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}
	if segments[0].Start.String() != "2024-02-01" || segments[0].End.String() != "2024-11-30" {
		t.Errorf("Unexpected segment: %s - %s", segments[0].Start, segments[0].End)
	}
}

func TestDecomposeYearly_DegenerateRanges(t *testing.T) {
	d := model.NewDate(2024, time.May, 1)
	if got := DecomposeYearly(d, d); got != nil {
		t.Errorf("Expected nil for equal dates, got %v", got)
	}
	if got := DecomposeYearly(model.NewDate(2025, time.January, 1), d); got != nil {
		t.Errorf("Expected nil for reversed range, got %v", got)
	}
}
