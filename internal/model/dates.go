package model

import (
	"fmt"
	"time"
)

// Date is a calendar date without time-of-day, rendered as ISO-8601 YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MarshalJSON renders the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format("2006-01-02"))), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// YearlySegment is a sub-interval of an award period aligned to calendar-year
// boundaries. Every non-final segment ends on December 31.
type YearlySegment struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// DateInfo aggregates the extracted award period and its yearly decomposition
type DateInfo struct {
	Start          *Date           `json:"start,omitempty"`
	End            *Date           `json:"end,omitempty"`
	YearlySegments []YearlySegment `json:"yearly_segments,omitempty"`
}
