package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DayType classifies an observance.
type DayType string

// Observance types.
const (
	TypeSolemnity     DayType = "solemnity"
	TypeFeast         DayType = "feast"
	TypeFast          DayType = "fast"
	TypeMemorial      DayType = "memorial"
	TypeCommemoration DayType = "commemoration"
)

// Ranks order coinciding observances; a higher rank outranks a lower one.
// The calendar records every observance and leaves precedence decisions
// to the caller.
const (
	RankCommemoration = 1
	RankMemorial      = 2
	RankFeast         = 3
	RankSolemnity     = 4
)

// FixedFeast is a catalog row for an observance tied to a month and day
// of the civil calendar.
type FixedFeast struct {
	Name  string
	Month time.Month
	Day   int
	Type  DayType
	Rank  int
	Color Color
}

// On places the feast in a concrete civil year.
func (f FixedFeast) On(year int) SpecialDay {
	return SpecialDay{
		Name:  f.Name,
		Date:  NewDate(year, f.Month, f.Day),
		Type:  f.Type,
		Rank:  f.Rank,
		Color: f.Color,
	}
}

// SpecialDay is a dated observance within a liturgical year.
type SpecialDay struct {
	Name     string
	Date     time.Time
	Type     DayType
	Rank     int
	Color    Color
	Moveable bool
}

// DefaultFeasts is the base catalog of fixed-date observances shared by
// the western traditions this package models.
var DefaultFeasts = []FixedFeast{
	{Name: "Holy Name of Jesus", Month: time.January, Day: 1, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Epiphany", Month: time.January, Day: 6, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "Presentation of the Lord", Month: time.February, Day: 2, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Saint Joseph", Month: time.March, Day: 19, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "Annunciation of the Lord", Month: time.March, Day: 25, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "Visitation of Mary", Month: time.May, Day: 31, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Nativity of Saint John the Baptist", Month: time.June, Day: 24, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "Saints Peter and Paul", Month: time.June, Day: 29, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
	{Name: "Saint Mary Magdalene", Month: time.July, Day: 22, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Transfiguration of the Lord", Month: time.August, Day: 6, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Saint Mary the Virgin", Month: time.August, Day: 15, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Holy Cross Day", Month: time.September, Day: 14, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
	{Name: "Saint Michael and All Angels", Month: time.September, Day: 29, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Saint Luke the Evangelist", Month: time.October, Day: 18, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
	{Name: "All Saints' Day", Month: time.November, Day: 1, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "All Souls' Day", Month: time.November, Day: 2, Type: TypeCommemoration, Rank: RankCommemoration, Color: ColorPurple},
	{Name: "Saint Andrew the Apostle", Month: time.November, Day: 30, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
	{Name: "Christmas Day", Month: time.December, Day: 25, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
	{Name: "Saint Stephen", Month: time.December, Day: 26, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
	{Name: "Saint John the Evangelist", Month: time.December, Day: 27, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
	{Name: "Holy Innocents", Month: time.December, Day: 28, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
}

// Tradition is a worship tradition with its own supplement to the base
// feast catalog.
type Tradition struct {
	Slug        string
	Name        string
	Description string
	Feasts      []FixedFeast
}

// Known tradition slugs.
const (
	TraditionEcumenical = "ecumenical"
	TraditionCatholic   = "catholic"
	TraditionEpiscopal  = "episcopal"
	TraditionLutheran   = "lutheran"
)

// ErrUnknownTradition is returned when a tradition slug is not in the
// registry.
var ErrUnknownTradition = errors.New("unknown tradition")

// Traditions is the registry of built-in traditions.
var Traditions = []Tradition{
	{
		Slug:        TraditionEcumenical,
		Name:        "Ecumenical",
		Description: "Base western calendar with the shared feast catalog",
	},
	{
		Slug:        TraditionCatholic,
		Name:        "Roman Catholic",
		Description: "Base calendar plus Roman Catholic observances",
		Feasts: []FixedFeast{
			{Name: "Immaculate Conception", Month: time.December, Day: 8, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite},
			{Name: "Our Lady of Guadalupe", Month: time.December, Day: 12, Type: TypeFeast, Rank: RankFeast, Color: ColorWhite},
		},
	},
	{
		Slug:        TraditionEpiscopal,
		Name:        "Episcopal",
		Description: "Base calendar plus Episcopal Church observances",
		Feasts: []FixedFeast{
			{Name: "Independence Day", Month: time.July, Day: 4, Type: TypeCommemoration, Rank: RankCommemoration, Color: ColorWhite},
		},
	},
	{
		Slug:        TraditionLutheran,
		Name:        "Lutheran",
		Description: "Base calendar plus Lutheran observances",
		Feasts: []FixedFeast{
			{Name: "Reformation Day", Month: time.October, Day: 31, Type: TypeFeast, Rank: RankFeast, Color: ColorRed},
		},
	},
}

// TraditionBySlug looks up a built-in tradition.
func TraditionBySlug(slug string) (Tradition, error) {
	for _, t := range Traditions {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Tradition{}, fmt.Errorf("tradition %q: %w", slug, ErrUnknownTradition)
}

// FixedFeastsBetween maps catalog rows onto every concrete date they take
// within [start, end], ordered by date.
func FixedFeastsBetween(catalog []FixedFeast, start, end time.Time) []SpecialDay {
	var days []SpecialDay
	for year := start.Year(); year <= end.Year(); year++ {
		for _, f := range catalog {
			day := f.On(year)
			if day.Date.Before(start) || day.Date.After(end) {
				continue
			}
			days = append(days, day)
		}
	}
	sortSpecialDays(days)
	return days
}

// MoveableSpecialDays expands a liturgical year's moveable dates into
// special day records.
func MoveableSpecialDays(dates EasterDates) []SpecialDay {
	return []SpecialDay{
		{Name: "Ash Wednesday", Date: dates.AshWednesday, Type: TypeFast, Rank: RankSolemnity, Color: ColorPurple, Moveable: true},
		{Name: "Palm Sunday", Date: dates.PalmSunday, Type: TypeFeast, Rank: RankSolemnity, Color: ColorRed, Moveable: true},
		{Name: "Maundy Thursday", Date: dates.MaundyThursday, Type: TypeFeast, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Good Friday", Date: dates.GoodFriday, Type: TypeFast, Rank: RankSolemnity, Color: ColorRed, Moveable: true},
		{Name: "Easter Vigil", Date: dates.EasterVigil, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Easter Sunday", Date: dates.Easter, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Ascension of the Lord", Date: dates.Ascension, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Pentecost", Date: dates.Pentecost, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorRed, Moveable: true},
		{Name: "Trinity Sunday", Date: dates.TrinitySunday, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Corpus Christi", Date: dates.CorpusChristi, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
		{Name: "Christ the King", Date: dates.ChristTheKing, Type: TypeSolemnity, Rank: RankSolemnity, Color: ColorWhite, Moveable: true},
	}
}
