package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateEaster_KnownDates(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{1583, time.April, 10},
		{1900, time.April, 15},
		{2000, time.April, 23},
		{2008, time.March, 23},
		{2011, time.April, 24},
		{2020, time.April, 12},
		{2021, time.April, 4},
		{2022, time.April, 17},
		{2023, time.April, 9},
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
		{2038, time.April, 25},
		{2100, time.March, 28},
	}

	for _, tt := range tests {
		got := CalculateEaster(tt.year)
		want := NewDate(tt.year, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("CalculateEaster(%d) = %s, want %s", tt.year, FormatDate(got), FormatDate(want))
		}
	}
}

func TestCalculateEaster_AlwaysSundayInSpring(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		easter := CalculateEaster(year)

		if easter.Weekday() != time.Sunday {
			t.Errorf("CalculateEaster(%d) = %s, falls on %s, want Sunday",
				year, FormatDate(easter), easter.Weekday())
		}
		if easter.Month() != time.March && easter.Month() != time.April {
			t.Errorf("CalculateEaster(%d) = %s, want a date in March or April",
				year, FormatDate(easter))
		}

		// March 22 and April 25 are the extremes of the computus.
		if easter.Before(NewDate(year, time.March, 22)) || easter.After(NewDate(year, time.April, 25)) {
			t.Errorf("CalculateEaster(%d) = %s, outside March 22 - April 25", year, FormatDate(easter))
		}
	}
}

func TestEasterDatesIn_Offsets(t *testing.T) {
	dates := EasterDatesIn(2025)

	tests := []struct {
		name string
		got  time.Time
		want time.Time
	}{
		{"Easter", dates.Easter, NewDate(2025, time.April, 20)},
		{"AshWednesday", dates.AshWednesday, NewDate(2025, time.March, 5)},
		{"PalmSunday", dates.PalmSunday, NewDate(2025, time.April, 13)},
		{"MaundyThursday", dates.MaundyThursday, NewDate(2025, time.April, 17)},
		{"GoodFriday", dates.GoodFriday, NewDate(2025, time.April, 18)},
		{"EasterVigil", dates.EasterVigil, NewDate(2025, time.April, 19)},
		{"Ascension", dates.Ascension, NewDate(2025, time.May, 29)},
		{"Pentecost", dates.Pentecost, NewDate(2025, time.June, 8)},
		{"TrinitySunday", dates.TrinitySunday, NewDate(2025, time.June, 15)},
		{"CorpusChristi", dates.CorpusChristi, NewDate(2025, time.June, 19)},
		{"ChristTheKing", dates.ChristTheKing, NewDate(2025, time.November, 23)},
	}

	for _, tt := range tests {
		if !tt.got.Equal(tt.want) {
			t.Errorf("%s = %s, want %s", tt.name, FormatDate(tt.got), FormatDate(tt.want))
		}
	}
}

func TestEasterDatesIn_WeekdayInvariants(t *testing.T) {
	for year := 1990; year <= 2050; year++ {
		dates := EasterDatesIn(year)

		sundays := map[string]time.Time{
			"Easter":        dates.Easter,
			"PalmSunday":    dates.PalmSunday,
			"Pentecost":     dates.Pentecost,
			"TrinitySunday": dates.TrinitySunday,
			"ChristTheKing": dates.ChristTheKing,
		}
		for name, d := range sundays {
			if d.Weekday() != time.Sunday {
				t.Errorf("year %d: %s = %s falls on %s, want Sunday", year, name, FormatDate(d), d.Weekday())
			}
		}

		if dates.AshWednesday.Weekday() != time.Wednesday {
			t.Errorf("year %d: AshWednesday falls on %s", year, dates.AshWednesday.Weekday())
		}
		if dates.MaundyThursday.Weekday() != time.Thursday {
			t.Errorf("year %d: MaundyThursday falls on %s", year, dates.MaundyThursday.Weekday())
		}
		if dates.GoodFriday.Weekday() != time.Friday {
			t.Errorf("year %d: GoodFriday falls on %s", year, dates.GoodFriday.Weekday())
		}
		if dates.EasterVigil.Weekday() != time.Saturday {
			t.Errorf("year %d: EasterVigil falls on %s", year, dates.EasterVigil.Weekday())
		}
		if dates.Ascension.Weekday() != time.Thursday {
			t.Errorf("year %d: Ascension falls on %s", year, dates.Ascension.Weekday())
		}
		if dates.CorpusChristi.Weekday() != time.Thursday {
			t.Errorf("year %d: CorpusChristi falls on %s", year, dates.CorpusChristi.Weekday())
		}
	}
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{1582, true},
		{1583, false},
		{2025, false},
		{9999, false},
		{10000, true},
		{0, true},
		{-44, true},
	}

	for _, tt := range tests {
		err := ValidateYear(tt.year)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateYear(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("ValidateYear(%d) error = %v, want ErrYearOutOfRange", tt.year, err)
		}
	}
}
