package calendar

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestBuild_FullYear2024(t *testing.T) {
	info, err := Build(2024)
	if err != nil {
		t.Fatalf("Build(2024) failed: %v", err)
	}

	if info.AdventYear != 2024 {
		t.Errorf("AdventYear = %d, want 2024", info.AdventYear)
	}
	if info.Cycle != CycleC {
		t.Errorf("Cycle = %s, want C", info.Cycle)
	}
	if !info.Start.Equal(NewDate(2024, time.December, 1)) {
		t.Errorf("Start = %s, want 2024-12-01", FormatDate(info.Start))
	}
	if !info.End.Equal(NewDate(2025, time.November, 29)) {
		t.Errorf("End = %s, want 2025-11-29", FormatDate(info.End))
	}
	if !info.Easter.Easter.Equal(NewDate(2025, time.April, 20)) {
		t.Errorf("Easter = %s, want 2025-04-20", FormatDate(info.Easter.Easter))
	}
	if len(info.Seasons) != 6 {
		t.Errorf("len(Seasons) = %d, want 6", len(info.Seasons))
	}
	if len(info.SpecialDays) == 0 {
		t.Fatal("no special days")
	}

	for i := 1; i < len(info.SpecialDays); i++ {
		if info.SpecialDays[i].Date.Before(info.SpecialDays[i-1].Date) {
			t.Errorf("special days out of order at %d: %s after %s",
				i, info.SpecialDays[i-1].Name, info.SpecialDays[i].Name)
		}
	}

	for _, d := range info.SpecialDays {
		if !info.Contains(d.Date) {
			t.Errorf("special day %q on %s outside the liturgical year", d.Name, FormatDate(d.Date))
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first, err := Build(2024)
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	second, err := Build(2024)
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	if first == second {
		t.Fatal("Build returned the same pointer twice")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds of the same year differ")
	}
}

func TestBuild_YearRange(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{1582, true},
		{1583, false},
		{2024, false},
		{9998, false},
		{9999, true}, // its Easter would fall in year 10000
		{10000, true},
	}

	for _, tt := range tests {
		_, err := Build(tt.year)
		if (err != nil) != tt.wantErr {
			t.Errorf("Build(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("Build(%d) error = %v, want ErrYearOutOfRange", tt.year, err)
		}
	}
}

func TestBuild_TraditionSupplement(t *testing.T) {
	builder, err := NewTraditionBuilder(TraditionCatholic)
	if err != nil {
		t.Fatalf("NewTraditionBuilder failed: %v", err)
	}
	info, err := builder.Build(2024)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var found bool
	for _, d := range info.SpecialDays {
		if d.Name == "Immaculate Conception" {
			found = true
			if !d.Date.Equal(NewDate(2024, time.December, 8)) {
				t.Errorf("Immaculate Conception on %s, want 2024-12-08", FormatDate(d.Date))
			}
		}
	}
	if !found {
		t.Error("catholic year missing Immaculate Conception")
	}

	if _, err := NewTraditionBuilder("no-such-tradition"); !errors.Is(err, ErrUnknownTradition) {
		t.Errorf("NewTraditionBuilder(bogus) error = %v, want ErrUnknownTradition", err)
	}
}

func TestSeasonContaining_EveryDayResolves(t *testing.T) {
	info, err := Build(2024)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for d := info.Start; !d.After(info.End); d = d.AddDate(0, 0, 1) {
		if _, ok := info.SeasonContaining(d); !ok {
			t.Errorf("no season for %s", FormatDate(d))
		}
	}

	if _, ok := info.SeasonContaining(info.Start.AddDate(0, 0, -1)); ok {
		t.Error("day before the liturgical year resolved to a season")
	}
	if _, ok := info.SeasonContaining(info.End.AddDate(0, 0, 1)); ok {
		t.Error("day after the liturgical year resolved to a season")
	}
}

func TestProperNumberFor(t *testing.T) {
	info, err := Build(2024)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		name   string
		date   time.Time
		want   int
		wantOK bool
	}{
		{"Trinity Sunday opens Proper 6", NewDate(2025, time.June, 15), 6, true},
		{"weekday inherits its Sunday's Proper", NewDate(2025, time.June, 18), 6, true},
		{"Saturday closes the week", NewDate(2025, time.June, 21), 6, true},
		{"next Sunday advances", NewDate(2025, time.June, 22), 7, true},
		{"Christ the King is Proper 29", NewDate(2025, time.November, 23), 29, true},
		{"eve of Advent still Proper 29", NewDate(2025, time.November, 29), 29, true},
		{"Monday after Pentecost has none", NewDate(2025, time.June, 9), 0, false},
		{"Lent has none", NewDate(2025, time.March, 10), 0, false},
		{"Advent has none", NewDate(2024, time.December, 10), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := info.ProperNumberFor(tt.date)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ProperNumberFor(%s) = (%d, %v), want (%d, %v)",
					FormatDate(tt.date), got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		adventYear int
		cycle      Cycle
		season     SeasonName
		week       int
		proper     int
	}{
		{"first Sunday of Advent", NewDate(2024, time.December, 1), 2024, CycleC, SeasonAdvent, 1, 0},
		{"third week of Advent", NewDate(2024, time.December, 17), 2024, CycleC, SeasonAdvent, 3, 0},
		{"Christmas Day", NewDate(2024, time.December, 25), 2024, CycleC, SeasonChristmas, 1, 0},
		{"Ash Wednesday", NewDate(2025, time.March, 5), 2024, CycleC, SeasonLent, 1, 0},
		{"Easter Sunday", NewDate(2025, time.April, 20), 2024, CycleC, SeasonEaster, 1, 0},
		{"deep Ordinary Time", NewDate(2025, time.August, 20), 2024, CycleC, SeasonOrdinaryTime, 11, 15},
		{"eve of next Advent", NewDate(2025, time.November, 29), 2024, CycleC, SeasonOrdinaryTime, 25, 29},
		{"next Advent Sunday", NewDate(2025, time.November, 30), 2025, CycleA, SeasonAdvent, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ResolveDate(tt.date)
			if err != nil {
				t.Fatalf("ResolveDate(%s) failed: %v", FormatDate(tt.date), err)
			}
			if day.AdventYear != tt.adventYear {
				t.Errorf("AdventYear = %d, want %d", day.AdventYear, tt.adventYear)
			}
			if day.Cycle != tt.cycle {
				t.Errorf("Cycle = %s, want %s", day.Cycle, tt.cycle)
			}
			if day.Season.Name != tt.season {
				t.Errorf("Season = %s, want %s", day.Season.Name, tt.season)
			}
			if day.Week != tt.week {
				t.Errorf("Week = %d, want %d", day.Week, tt.week)
			}
			if day.Proper != tt.proper {
				t.Errorf("Proper = %d, want %d", day.Proper, tt.proper)
			}
		})
	}
}

func TestResolveDate_SpecialDays(t *testing.T) {
	day, err := ResolveDate(NewDate(2025, time.April, 20))
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}

	var names []string
	for _, d := range day.SpecialDays {
		names = append(names, d.Name)
	}
	if len(names) != 1 || names[0] != "Easter Sunday" {
		t.Errorf("special days on Easter = %v, want [Easter Sunday]", names)
	}

	quiet, err := ResolveDate(NewDate(2025, time.July, 8))
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}
	if len(quiet.SpecialDays) != 0 {
		t.Errorf("special days on 2025-07-08 = %v, want none", quiet.SpecialDays)
	}
}

func TestSpecialDaysInRange(t *testing.T) {
	// A window spanning the 2023/2024 liturgical year boundary.
	days, err := SpecialDaysInRange(NewDate(2024, time.November, 1), NewDate(2025, time.January, 7))
	if err != nil {
		t.Fatalf("SpecialDaysInRange failed: %v", err)
	}

	byName := make(map[string]time.Time)
	for _, d := range days {
		byName[d.Name] = d.Date
	}

	tests := []struct {
		name string
		want time.Time
	}{
		{"All Saints' Day", NewDate(2024, time.November, 1)},
		{"Christ the King", NewDate(2024, time.November, 24)},
		{"Saint Andrew the Apostle", NewDate(2024, time.November, 30)},
		{"Christmas Day", NewDate(2024, time.December, 25)},
		{"Holy Name of Jesus", NewDate(2025, time.January, 1)},
		{"Epiphany", NewDate(2025, time.January, 6)},
	}
	for _, tt := range tests {
		got, ok := byName[tt.name]
		if !ok {
			t.Errorf("%q missing from range", tt.name)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q on %s, want %s", tt.name, FormatDate(got), FormatDate(tt.want))
		}
	}

	for i := 1; i < len(days); i++ {
		if days[i].Date.Before(days[i-1].Date) {
			t.Error("range results out of date order")
		}
	}

	// Inverted range yields nothing.
	empty, err := SpecialDaysInRange(NewDate(2025, time.June, 1), NewDate(2025, time.January, 1))
	if err != nil {
		t.Fatalf("inverted range failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("inverted range returned %d days, want 0", len(empty))
	}
}
