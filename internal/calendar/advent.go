package calendar

import "time"

// CalculateAdvent calculates the date of the first Sunday of Advent
// (the 4th Sunday before Christmas) for a given year.
//
// Advent Sunday is the Sunday closest to November 30, which means
// it falls between November 27 and December 3.
func CalculateAdvent(year int) time.Time {
	return SundayNearest(NewDate(year, time.November, 30))
}

// CalculateBaptismOfTheLord calculates Baptism of the Lord Sunday for a
// given civil year: the first Sunday on or after January 7, i.e. the first
// Sunday after Epiphany. When January 6 falls on a Sunday, Epiphany keeps
// that Sunday and Baptism is observed the following Sunday, January 13.
func CalculateBaptismOfTheLord(year int) time.Time {
	return SundayOnOrAfter(NewDate(year, time.January, 7))
}
