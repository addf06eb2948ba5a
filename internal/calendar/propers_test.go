package calendar

import (
	"testing"
	"time"
)

func TestProperAnchor(t *testing.T) {
	tests := []struct {
		n     int
		month time.Month
		day   int
	}{
		{1, time.May, 11},
		{4, time.June, 1},
		{12, time.July, 27},
		{28, time.November, 16},
	}

	for _, tt := range tests {
		got := ProperAnchor(2025, tt.n)
		want := NewDate(2025, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("ProperAnchor(2025, %d) = %s, want %s", tt.n, FormatDate(got), FormatDate(want))
		}
	}
}

func TestProperSunday_ClosestSundayRule(t *testing.T) {
	// The Proper 10 anchor is July 13. In 2025 that is a Sunday; in 2026 a
	// Monday (rounds back), in 2027 a Tuesday (rounds back), in 2028 a
	// Thursday (rounds forward).
	tests := []struct {
		year int
		want time.Time
	}{
		{2025, NewDate(2025, time.July, 13)},
		{2026, NewDate(2026, time.July, 12)},
		{2027, NewDate(2027, time.July, 11)},
		{2028, NewDate(2028, time.July, 16)},
	}

	for _, tt := range tests {
		got := ProperSunday(tt.year, 10)
		if !got.Equal(tt.want) {
			t.Errorf("ProperSunday(%d, 10) = %s, want %s", tt.year, FormatDate(got), FormatDate(tt.want))
		}
	}
}

func TestProperSchedule_LateEaster(t *testing.T) {
	// Advent year 2024: Easter 2025 falls late (April 20), Pentecost on
	// June 8, so the schedule opens with Proper 6 on Trinity Sunday.
	schedule := ProperSchedule(2024)
	if len(schedule) == 0 {
		t.Fatal("empty schedule")
	}

	first := schedule[0]
	if first.Number != 6 || !first.Sunday.Equal(NewDate(2025, time.June, 15)) {
		t.Errorf("first = Proper %d on %s, want Proper 6 on 2025-06-15", first.Number, FormatDate(first.Sunday))
	}

	last := schedule[len(schedule)-1]
	if last.Number != 29 || !last.Sunday.Equal(NewDate(2025, time.November, 23)) {
		t.Errorf("last = Proper %d on %s, want Proper 29 on 2025-11-23", last.Number, FormatDate(last.Sunday))
	}

	penultimate := schedule[len(schedule)-2]
	if penultimate.Number != 28 || !penultimate.Sunday.Equal(NewDate(2025, time.November, 16)) {
		t.Errorf("penultimate = Proper %d on %s, want Proper 28 on 2025-11-16", penultimate.Number, FormatDate(penultimate.Sunday))
	}

	// Propers 6 through 28 plus Christ the King.
	if len(schedule) != 24 {
		t.Errorf("schedule has %d entries, want 24", len(schedule))
	}
}

func TestProperSchedule_EarlyEaster(t *testing.T) {
	// Advent year 2007: Easter 2008 fell on March 23, nearly the earliest
	// possible, so Ordinary Time opens in mid May with Proper 2.
	schedule := ProperSchedule(2007)

	first := schedule[0]
	if first.Number != 2 || !first.Sunday.Equal(NewDate(2008, time.May, 18)) {
		t.Errorf("first = Proper %d on %s, want Proper 2 on 2008-05-18", first.Number, FormatDate(first.Sunday))
	}

	last := schedule[len(schedule)-1]
	if last.Number != 29 || !last.Sunday.Equal(NewDate(2008, time.November, 23)) {
		t.Errorf("last = Proper %d on %s, want Proper 29 on 2008-11-23", last.Number, FormatDate(last.Sunday))
	}
}

func TestProperSchedule_Invariants(t *testing.T) {
	for year := 1990; year <= 2050; year++ {
		schedule := ProperSchedule(year)
		pentecost := CalculatePentecost(year + 1)
		nextAdvent := CalculateAdvent(year + 1)

		for i, p := range schedule {
			if p.Sunday.Weekday() != time.Sunday {
				t.Errorf("year %d: Proper %d observed on a %s", year, p.Number, p.Sunday.Weekday())
			}
			if !p.Sunday.After(pentecost) {
				t.Errorf("year %d: Proper %d on %s does not follow Pentecost", year, p.Number, FormatDate(p.Sunday))
			}
			if !p.Sunday.Before(nextAdvent) {
				t.Errorf("year %d: Proper %d on %s overruns Advent", year, p.Number, FormatDate(p.Sunday))
			}
			if i > 0 {
				prev := schedule[i-1]
				if DaysBetween(prev.Sunday, p.Sunday) != 7 {
					t.Errorf("year %d: Propers %d and %d are not consecutive Sundays", year, prev.Number, p.Number)
				}
				if p.Number != prev.Number+1 {
					t.Errorf("year %d: Proper %d follows Proper %d", year, p.Number, prev.Number)
				}
			}
		}

		if last := schedule[len(schedule)-1]; last.Number != 29 {
			t.Errorf("year %d: schedule ends with Proper %d, want 29", year, last.Number)
		}
	}
}
