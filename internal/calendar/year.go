package calendar

import (
	"fmt"
	"sort"
	"time"
)

// LiturgicalYearInfo is the complete computed picture of one liturgical
// year, from its first Sunday of Advent through the eve of the next.
type LiturgicalYearInfo struct {
	AdventYear  int
	Cycle       Cycle
	Start       time.Time
	End         time.Time
	Easter      EasterDates
	Seasons     []Season
	SpecialDays []SpecialDay
}

// Builder assembles liturgical years from a feast catalog. Construct one
// with NewBuilder or NewTraditionBuilder; the zero value has no catalog.
type Builder struct {
	feasts []FixedFeast
}

// NewBuilder returns a Builder over the base catalog plus any
// supplemental fixed feasts.
func NewBuilder(supplements ...FixedFeast) *Builder {
	feasts := make([]FixedFeast, 0, len(DefaultFeasts)+len(supplements))
	feasts = append(feasts, DefaultFeasts...)
	feasts = append(feasts, supplements...)
	return &Builder{feasts: feasts}
}

// NewTraditionBuilder returns a Builder observing the named tradition's
// calendar.
func NewTraditionBuilder(slug string) (*Builder, error) {
	t, err := TraditionBySlug(slug)
	if err != nil {
		return nil, err
	}
	return NewBuilder(t.Feasts...), nil
}

// Build computes the liturgical year beginning on the first Sunday of
// Advent of adventYear. The result is freshly allocated on every call;
// building the same year twice yields equal values.
func (b *Builder) Build(adventYear int) (*LiturgicalYearInfo, error) {
	if err := ValidateYear(adventYear); err != nil {
		return nil, fmt.Errorf("build liturgical year: %w", err)
	}
	// The year's Easter falls in the following civil year.
	if adventYear == MaxYear {
		return nil, fmt.Errorf("liturgical year %d extends past %d: %w", adventYear, MaxYear, ErrYearOutOfRange)
	}

	start := CalculateAdvent(adventYear)
	end := CalculateAdvent(adventYear + 1).AddDate(0, 0, -1)
	dates := EasterDatesIn(adventYear + 1)

	days := MoveableSpecialDays(dates)
	days = append(days, FixedFeastsBetween(b.feasts, start, end)...)
	sortSpecialDays(days)

	return &LiturgicalYearInfo{
		AdventYear:  adventYear,
		Cycle:       CycleForYear(adventYear),
		Start:       start,
		End:         end,
		Easter:      dates,
		Seasons:     ComputeSeasons(adventYear),
		SpecialDays: days,
	}, nil
}

// Contains reports whether a date falls within the liturgical year.
func (info *LiturgicalYearInfo) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(info.Start) && !d.After(info.End)
}

// SeasonContaining returns the season a date falls in. The second return
// is false when the date lies outside the liturgical year.
func (info *LiturgicalYearInfo) SeasonContaining(date time.Time) (Season, bool) {
	for _, s := range info.Seasons {
		if s.Contains(date) {
			return s, true
		}
	}
	return Season{}, false
}

// SpecialDaysOn returns every observance falling on the given date.
func (info *LiturgicalYearInfo) SpecialDaysOn(date time.Time) []SpecialDay {
	var days []SpecialDay
	for _, d := range info.SpecialDays {
		if SameDay(d.Date, date) {
			days = append(days, d)
		}
	}
	return days
}

// ProperNumberFor returns the Proper number governing the week containing
// the given date. A Proper covers its Sunday and the following six days.
// The second return is false for weeks outside the Proper schedule, such
// as the days immediately after Pentecost.
func (info *LiturgicalYearInfo) ProperNumberFor(date time.Time) (int, bool) {
	sunday := SundayOnOrBefore(Midnight(date))
	for _, p := range ProperSchedule(info.AdventYear) {
		if p.Sunday.Equal(sunday) {
			return p.Number, true
		}
	}
	return 0, false
}

// DayInfo describes the liturgical position of a single date.
type DayInfo struct {
	Date        time.Time
	AdventYear  int
	Cycle       Cycle
	Season      Season
	Week        int
	Proper      int
	SpecialDays []SpecialDay
}

// ResolveDate computes the liturgical position of a date: its year and
// cycle, the season containing it, the week within that season, the
// governing Proper number (zero when the week has none), and any
// observances on the day.
func (b *Builder) ResolveDate(date time.Time) (*DayInfo, error) {
	d := Midnight(date)
	info, err := b.Build(GetLiturgicalYear(d))
	if err != nil {
		return nil, err
	}

	season, ok := info.SeasonContaining(d)
	if !ok {
		return nil, fmt.Errorf("date %s outside computed liturgical year %d", FormatDate(d), info.AdventYear)
	}

	proper, _ := info.ProperNumberFor(d)
	return &DayInfo{
		Date:        d,
		AdventYear:  info.AdventYear,
		Cycle:       info.Cycle,
		Season:      season,
		Week:        GetLiturgicalWeekNumber(d, season.Start),
		Proper:      proper,
		SpecialDays: info.SpecialDaysOn(d),
	}, nil
}

// SpecialDaysInRange returns every observance between start and end
// inclusive, in date order. The range may span liturgical years. A range
// whose start is after its end yields an empty result.
func (b *Builder) SpecialDaysInRange(start, end time.Time) ([]SpecialDay, error) {
	s, e := Midnight(start), Midnight(end)
	if e.Before(s) {
		return nil, nil
	}

	var days []SpecialDay
	for y := GetLiturgicalYear(s); y <= GetLiturgicalYear(e); y++ {
		info, err := b.Build(y)
		if err != nil {
			return nil, err
		}
		for _, d := range info.SpecialDays {
			if d.Date.Before(s) || d.Date.After(e) {
				continue
			}
			days = append(days, d)
		}
	}
	return days, nil
}

// defaultBuilder serves the package-level convenience functions.
var defaultBuilder = NewBuilder()

// Build computes the liturgical year beginning Advent of adventYear using
// the base feast catalog.
func Build(adventYear int) (*LiturgicalYearInfo, error) {
	return defaultBuilder.Build(adventYear)
}

// ResolveDate resolves a date against the base feast catalog.
func ResolveDate(date time.Time) (*DayInfo, error) {
	return defaultBuilder.ResolveDate(date)
}

// SeasonContaining returns the season containing the given date, using
// the base feast catalog.
func SeasonContaining(date time.Time) (Season, error) {
	day, err := defaultBuilder.ResolveDate(date)
	if err != nil {
		return Season{}, err
	}
	return day.Season, nil
}

// SpecialDaysInRange lists observances between start and end inclusive
// using the base feast catalog.
func SpecialDaysInRange(start, end time.Time) ([]SpecialDay, error) {
	return defaultBuilder.SpecialDaysInRange(start, end)
}

func sortSpecialDays(days []SpecialDay) {
	sort.SliceStable(days, func(i, j int) bool {
		if !days[i].Date.Equal(days[j].Date) {
			return days[i].Date.Before(days[j].Date)
		}
		if days[i].Rank != days[j].Rank {
			return days[i].Rank > days[j].Rank
		}
		return days[i].Name < days[j].Name
	})
}
