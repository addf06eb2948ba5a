package api

import (
	"github.com/asachs01/lectio-api/internal/calendar"
	"github.com/asachs01/lectio-api/internal/database"
)

// View types shape the JSON responses. Dates are ISO 8601 strings
// (YYYY-MM-DD) rather than time.Time so the wire format never carries a
// time zone.

// SeasonView is one season of a liturgical year.
type SeasonView struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Color         string `json:"color"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	ProperNumbers []int  `json:"proper_numbers,omitempty"`
}

// SpecialDayView is a feast, fast or commemoration on a concrete date.
type SpecialDayView struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Rank     int    `json:"rank"`
	Color    string `json:"color"`
	Moveable bool   `json:"moveable"`
}

// EasterDatesView bundles Easter and every date derived from it.
type EasterDatesView struct {
	Easter         string `json:"easter"`
	AshWednesday   string `json:"ash_wednesday"`
	PalmSunday     string `json:"palm_sunday"`
	MaundyThursday string `json:"maundy_thursday"`
	GoodFriday     string `json:"good_friday"`
	EasterVigil    string `json:"easter_vigil"`
	Ascension      string `json:"ascension"`
	Pentecost      string `json:"pentecost"`
	TrinitySunday  string `json:"trinity_sunday"`
	CorpusChristi  string `json:"corpus_christi"`
	ChristTheKing  string `json:"christ_the_king"`
}

// EasterView answers the Easter lookup endpoint for one civil year.
type EasterView struct {
	Year int `json:"year"`
	EasterDatesView
}

// YearView is a complete computed liturgical year.
type YearView struct {
	AdventYear  int              `json:"advent_year"`
	Cycle       string           `json:"cycle"`
	Tradition   string           `json:"tradition,omitempty"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Easter      EasterDatesView  `json:"easter"`
	Seasons     []SeasonView     `json:"seasons"`
	SpecialDays []SpecialDayView `json:"special_days"`
}

// DayView is the liturgical position of a single date.
type DayView struct {
	Date        string           `json:"date"`
	Weekday     string           `json:"weekday"`
	AdventYear  int              `json:"advent_year"`
	Cycle       string           `json:"cycle"`
	Season      SeasonView       `json:"season"`
	Week        int              `json:"week"`
	Proper      int              `json:"proper,omitempty"`
	SpecialDays []SpecialDayView `json:"special_days"`
}

// TraditionView describes a registered worship tradition.
type TraditionView struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ExtraFeasts int    `json:"extra_feasts"`
}

// StoredYearView is a seeded liturgical year read back from the database.
type StoredYearView struct {
	Tradition   string           `json:"tradition"`
	AdventYear  int              `json:"advent_year"`
	Seasons     []SeasonView     `json:"seasons"`
	SpecialDays []SpecialDayView `json:"special_days"`
}

// FeastRangeView is the stored observances within a date range.
type FeastRangeView struct {
	Tradition string           `json:"tradition"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Feasts    []SpecialDayView `json:"feasts"`
}

func newSeasonView(s calendar.Season) SeasonView {
	return SeasonView{
		Name:          string(s.Name),
		Kind:          string(s.Kind),
		Color:         string(s.Color),
		StartDate:     calendar.FormatDate(s.Start),
		EndDate:       calendar.FormatDate(s.End),
		ProperNumbers: s.ProperNumbers,
	}
}

func newSpecialDayView(d calendar.SpecialDay) SpecialDayView {
	return SpecialDayView{
		Date:     calendar.FormatDate(d.Date),
		Name:     d.Name,
		Type:     string(d.Type),
		Rank:     d.Rank,
		Color:    string(d.Color),
		Moveable: d.Moveable,
	}
}

func newSpecialDayViews(days []calendar.SpecialDay) []SpecialDayView {
	views := make([]SpecialDayView, len(days))
	for i, d := range days {
		views[i] = newSpecialDayView(d)
	}
	return views
}

func newEasterDatesView(d calendar.EasterDates) EasterDatesView {
	return EasterDatesView{
		Easter:         calendar.FormatDate(d.Easter),
		AshWednesday:   calendar.FormatDate(d.AshWednesday),
		PalmSunday:     calendar.FormatDate(d.PalmSunday),
		MaundyThursday: calendar.FormatDate(d.MaundyThursday),
		GoodFriday:     calendar.FormatDate(d.GoodFriday),
		EasterVigil:    calendar.FormatDate(d.EasterVigil),
		Ascension:      calendar.FormatDate(d.Ascension),
		Pentecost:      calendar.FormatDate(d.Pentecost),
		TrinitySunday:  calendar.FormatDate(d.TrinitySunday),
		CorpusChristi:  calendar.FormatDate(d.CorpusChristi),
		ChristTheKing:  calendar.FormatDate(d.ChristTheKing),
	}
}

func newYearView(info *calendar.LiturgicalYearInfo, tradition string) YearView {
	seasons := make([]SeasonView, len(info.Seasons))
	for i, s := range info.Seasons {
		seasons[i] = newSeasonView(s)
	}

	return YearView{
		AdventYear:  info.AdventYear,
		Cycle:       string(info.Cycle),
		Tradition:   tradition,
		StartDate:   calendar.FormatDate(info.Start),
		EndDate:     calendar.FormatDate(info.End),
		Easter:      newEasterDatesView(info.Easter),
		Seasons:     seasons,
		SpecialDays: newSpecialDayViews(info.SpecialDays),
	}
}

func newDayView(day *calendar.DayInfo) DayView {
	return DayView{
		Date:        calendar.FormatDate(day.Date),
		Weekday:     calendar.DayName(day.Date),
		AdventYear:  day.AdventYear,
		Cycle:       string(day.Cycle),
		Season:      newSeasonView(day.Season),
		Week:        day.Week,
		Proper:      day.Proper,
		SpecialDays: newSpecialDayViews(day.SpecialDays),
	}
}

func newTraditionView(t calendar.Tradition) TraditionView {
	return TraditionView{
		Slug:        t.Slug,
		Name:        t.Name,
		Description: t.Description,
		ExtraFeasts: len(t.Feasts),
	}
}

func newStoredSeasonView(rec database.SeasonRecord) SeasonView {
	return SeasonView{
		Name:          rec.Name,
		Kind:          rec.Kind,
		Color:         rec.Color,
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		ProperNumbers: rec.ProperNumbers,
	}
}

func newStoredSpecialDayView(rec database.SpecialDayRecord) SpecialDayView {
	return SpecialDayView{
		Date:     rec.Date,
		Name:     rec.Name,
		Type:     rec.DayType,
		Rank:     rec.Rank,
		Color:    rec.Color,
		Moveable: rec.Moveable,
	}
}

func newStoredYearView(tradition string, adventYear int, seasons []database.SeasonRecord, days []database.SpecialDayRecord) StoredYearView {
	seasonViews := make([]SeasonView, len(seasons))
	for i, rec := range seasons {
		seasonViews[i] = newStoredSeasonView(rec)
	}

	dayViews := make([]SpecialDayView, len(days))
	for i, rec := range days {
		dayViews[i] = newStoredSpecialDayView(rec)
	}

	return StoredYearView{
		Tradition:   tradition,
		AdventYear:  adventYear,
		Seasons:     seasonViews,
		SpecialDays: dayViews,
	}
}

func newFeastRangeView(tradition, start, end string, days []database.SpecialDayRecord) FeastRangeView {
	feasts := make([]SpecialDayView, len(days))
	for i, rec := range days {
		feasts[i] = newStoredSpecialDayView(rec)
	}

	return FeastRangeView{
		Tradition: tradition,
		StartDate: start,
		EndDate:   end,
		Feasts:    feasts,
	}
}
