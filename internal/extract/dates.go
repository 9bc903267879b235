package extract

import (
	"fmt"
	"time"

	"github.com/grantsieve/grantsieve/internal/catalog"
	"github.com/grantsieve/grantsieve/internal/model"
)

// dateLayouts is the fixed ordered list of layouts tried by ParseDate:
// month-first with 2- and 4-digit years, then year-first, with "/" or "-"
// separators.
var dateLayouts = []string{
	"1/2/2006", "1-2-2006",
	"1/2/06", "1-2-06",
	"2006/1/2", "2006-1-2",
}

// ParseDate parses a free-text date token using the first fully matching
// layout. Callers treat failure as "skip this candidate", never fatal.
func ParseDate(token string) (model.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return model.DateOf(t), nil
		}
	}
	return model.Date{}, fmt.Errorf("unrecognized date token %q", token)
}

// DateEngine extracts award periods and decomposes them into calendar-year
// budget segments.
type DateEngine struct {
	cat *catalog.Catalog
}

// NewDateEngine creates a date engine over the given catalog
func NewDateEngine(cat *catalog.Catalog) *DateEngine {
	return &DateEngine{cat: cat}
}

// Extract scans text for award period dates. Range cues take precedence: the
// first range whose both captures parse is adopted immediately and single-cue
// scanning is skipped. Otherwise single cues fill start and end independently,
// last match wins. Yearly segments are only produced by an adopted range.
func (e *DateEngine) Extract(text string) model.DateInfo {
	var info model.DateInfo

	for _, rule := range e.cat.DateRanges {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			start, err := ParseDate(m[1])
			if err != nil {
				continue
			}
			end, err := ParseDate(m[2])
			if err != nil {
				continue
			}
			info.Start = &start
			info.End = &end
			info.YearlySegments = DecomposeYearly(start, end)
			return info
		}
	}

	for _, rule := range e.cat.DateSingles {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			parsed, err := ParseDate(m[1])
			if err != nil {
				continue
			}
			d := parsed
			switch rule.Field {
			case catalog.FieldStart:
				info.Start = &d
			case catalog.FieldEnd:
				info.End = &d
			}
		}
	}

	return info
}

// DecomposeYearly splits [start, end] into consecutive calendar-year segments:
// contiguous, non-overlapping, jointly covering the range, every non-final
// segment ending December 31. Returns nil when start >= end.
func DecomposeYearly(start, end model.Date) []model.YearlySegment {
	if !start.Before(end.Time) {
		return nil
	}

	var segments []model.YearlySegment
	cursor := start
	for cursor.Before(end.Time) {
		boundary := model.NewDate(cursor.Year()+1, time.January, 1)
		if boundary.After(end.Time) {
			segments = append(segments, model.YearlySegment{Start: cursor, End: end})
			break
		}
		segments = append(segments, model.YearlySegment{
			Start: cursor,
			End:   model.NewDate(boundary.Year()-1, time.December, 31),
		})
		cursor = boundary
	}

	return segments
}
