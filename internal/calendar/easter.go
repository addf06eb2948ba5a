// Package calendar provides liturgical calendar calculations.
//
// Everything in this package is pure date arithmetic: functions take years
// or dates and return dates, with no clocks, storage, or I/O involved.
// Dates are midnight-UTC time.Time values (see NewDate).
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Supported year range. The Gregorian reform took effect in October 1582,
// so 1583 is the first year the computus is defined for end to end.
const (
	MinYear = 1583
	MaxYear = 9999
)

// ErrYearOutOfRange is returned when a year falls outside the supported
// Gregorian range. Use errors.Is to detect it.
var ErrYearOutOfRange = errors.New("year outside supported Gregorian range")

// ValidateYear checks that a civil year is within [MinYear, MaxYear].
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d not in %d-%d: %w", year, MinYear, MaxYear, ErrYearOutOfRange)
	}
	return nil
}

// Day offsets of the moveable feasts relative to Easter Sunday.
const (
	ashWednesdayOffset   = -46
	palmSundayOffset     = -7
	maundyThursdayOffset = -3
	goodFridayOffset     = -2
	easterVigilOffset    = -1
	ascensionOffset      = 39
	pentecostOffset      = 49
	trinitySundayOffset  = 56
	corpusChristiOffset  = 60
)

// CalculateEaster calculates the date of Easter Sunday for a given year
// using the computus algorithm for the Gregorian calendar.
//
// The algorithm is the anonymous Gregorian computus, valid for all years
// in the Gregorian calendar. The result is always a Sunday between
// March 22 and April 25.
func CalculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return NewDate(year, time.Month(month), day)
}

// CalculateAshWednesday calculates Ash Wednesday for a given year.
// Ash Wednesday is 46 days before Easter (40 days of Lent plus the six
// Sundays, which are not fast days).
func CalculateAshWednesday(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, ashWednesdayOffset)
}

// CalculateAscension calculates Ascension Day for a given year.
// Ascension is 39 days after Easter (always on a Thursday).
func CalculateAscension(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, ascensionOffset)
}

// CalculatePentecost calculates Pentecost Sunday for a given year.
// Pentecost is 49 days after Easter (7 weeks).
func CalculatePentecost(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, pentecostOffset)
}

// CalculateChristTheKing calculates Christ the King Sunday for a given
// civil year: the Sunday one week before the first Sunday of Advent of
// that year. It closes the liturgical year that began the previous Advent
// and is anchored to Advent rather than to Easter.
func CalculateChristTheKing(year int) time.Time {
	return CalculateAdvent(year).AddDate(0, 0, -7)
}

// EasterDates bundles Easter Sunday and every date derived from it for one
// liturgical year, plus Christ the King, which is derived from the
// following Advent.
type EasterDates struct {
	Easter         time.Time
	AshWednesday   time.Time
	PalmSunday     time.Time
	MaundyThursday time.Time
	GoodFriday     time.Time
	EasterVigil    time.Time
	Ascension      time.Time
	Pentecost      time.Time
	TrinitySunday  time.Time
	CorpusChristi  time.Time
	ChristTheKing  time.Time
}

// EasterDatesIn returns the moveable dates clustered around the Easter
// that falls in the given civil year. The liturgical year these dates
// belong to began the previous Advent.
func EasterDatesIn(civilYear int) EasterDates {
	easter := CalculateEaster(civilYear)
	return EasterDates{
		Easter:         easter,
		AshWednesday:   easter.AddDate(0, 0, ashWednesdayOffset),
		PalmSunday:     easter.AddDate(0, 0, palmSundayOffset),
		MaundyThursday: easter.AddDate(0, 0, maundyThursdayOffset),
		GoodFriday:     easter.AddDate(0, 0, goodFridayOffset),
		EasterVigil:    easter.AddDate(0, 0, easterVigilOffset),
		Ascension:      easter.AddDate(0, 0, ascensionOffset),
		Pentecost:      easter.AddDate(0, 0, pentecostOffset),
		TrinitySunday:  easter.AddDate(0, 0, trinitySundayOffset),
		CorpusChristi:  easter.AddDate(0, 0, corpusChristiOffset),
		ChristTheKing:  CalculateChristTheKing(civilYear),
	}
}
