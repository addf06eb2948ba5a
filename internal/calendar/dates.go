package calendar

import (
	"fmt"
	"time"
)

// NewDate returns the given calendar date at midnight UTC.
//
// All dates produced by this package are midnight-UTC values, so two dates
// compare equal exactly when they name the same calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates an instant to midnight UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDateString parses a date string in YYYY-MM-DD format.
func ParseDateString(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the number of whole days from a to b. Negative when
// b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// DayName returns the day of week name (Sunday, Monday, etc.)
func DayName(date time.Time) string {
	return date.Weekday().String()
}

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 4th, etc.)
func Ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// GetLiturgicalWeekNumber calculates which week of a liturgical season a
// date falls in. The season's first day begins week 1.
func GetLiturgicalWeekNumber(date time.Time, seasonStart time.Time) int {
	return DaysBetween(seasonStart, date)/7 + 1
}

// SundayOnOrAfter returns the first Sunday on or after the given date.
func SundayOnOrAfter(date time.Time) time.Time {
	offset := (7 - int(date.Weekday())) % 7
	return date.AddDate(0, 0, offset)
}

// SundayOnOrBefore returns the last Sunday on or before the given date.
func SundayOnOrBefore(date time.Time) time.Time {
	return date.AddDate(0, 0, -int(date.Weekday()))
}

// SundayNearest returns the Sunday closest to the given date. Sunday
// through Wednesday round back, Thursday through Saturday round forward.
func SundayNearest(date time.Time) time.Time {
	w := int(date.Weekday())
	if w <= 3 {
		return date.AddDate(0, 0, -w)
	}
	return date.AddDate(0, 0, 7-w)
}
