package calendar

import (
	"testing"
	"time"
)

func TestCalculateAdvent_KnownDates(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2021, time.November, 28},
		{2022, time.November, 27},
		{2023, time.December, 3},
		{2024, time.December, 1},
		{2025, time.November, 30},
		{2026, time.November, 29},
	}

	for _, tt := range tests {
		got := CalculateAdvent(tt.year)
		want := NewDate(tt.year, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("CalculateAdvent(%d) = %s, want %s", tt.year, FormatDate(got), FormatDate(want))
		}
	}
}

func TestCalculateAdvent_Window(t *testing.T) {
	// Advent Sunday always lands in the seven-day window around November 30.
	for year := 1950; year <= 2050; year++ {
		advent := CalculateAdvent(year)

		if advent.Weekday() != time.Sunday {
			t.Errorf("CalculateAdvent(%d) = %s falls on %s, want Sunday",
				year, FormatDate(advent), advent.Weekday())
		}

		earliest := NewDate(year, time.November, 27)
		latest := NewDate(year, time.December, 3)
		if advent.Before(earliest) || advent.After(latest) {
			t.Errorf("CalculateAdvent(%d) = %s, outside Nov 27 - Dec 3", year, FormatDate(advent))
		}
	}
}

func TestCalculateBaptismOfTheLord(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2023, time.January, 8},
		{2024, time.January, 7},
		{2025, time.January, 12},
		{2026, time.January, 11},
		{2027, time.January, 10},
	}

	for _, tt := range tests {
		got := CalculateBaptismOfTheLord(tt.year)
		want := NewDate(tt.year, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("CalculateBaptismOfTheLord(%d) = %s, want %s", tt.year, FormatDate(got), FormatDate(want))
		}
		if got.Weekday() != time.Sunday {
			t.Errorf("CalculateBaptismOfTheLord(%d) falls on %s, want Sunday", tt.year, got.Weekday())
		}
	}
}

func TestCalculateChristTheKing(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.November, 24},
		{2025, time.November, 23},
		{2026, time.November, 22},
	}

	for _, tt := range tests {
		got := CalculateChristTheKing(tt.year)
		want := NewDate(tt.year, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("CalculateChristTheKing(%d) = %s, want %s", tt.year, FormatDate(got), FormatDate(want))
		}
	}

	// Always exactly one week before Advent.
	for year := 2000; year <= 2040; year++ {
		ctk := CalculateChristTheKing(year)
		advent := CalculateAdvent(year)
		if DaysBetween(ctk, advent) != 7 {
			t.Errorf("year %d: Christ the King %s is not 7 days before Advent %s",
				year, FormatDate(ctk), FormatDate(advent))
		}
	}
}
