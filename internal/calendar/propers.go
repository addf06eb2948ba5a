package calendar

import "time"

// Proper pairs an Ordinary Time proper number with the Sunday on which it
// is observed.
type Proper struct {
	Number int
	Sunday time.Time
}

// Proper N is anchored to May 11 plus 7(N-1) days. Published tables run
// from Proper 4 (June 1) through Proper 28 (November 16); the earlier
// anchors extend the same formula backward to cover years with an early
// Easter. Christ the King closes every schedule as Proper 29.
const (
	firstProperNumber   = 1
	lastProperNumber    = 28
	christTheKingProper = 29
)

// ProperAnchor returns the fixed anchor date of Proper n in a civil year.
func ProperAnchor(year, n int) time.Time {
	return NewDate(year, time.May, 11).AddDate(0, 0, 7*(n-1))
}

// ProperSunday returns the Sunday on which Proper n is observed in a
// civil year: the Sunday closest to its anchor.
func ProperSunday(year, n int) time.Time {
	return SundayNearest(ProperAnchor(year, n))
}

// ProperSchedule returns every Proper observed during Ordinary Time after
// Pentecost for the liturgical year beginning Advent of adventYear,
// ordered by date. Numbers whose Sunday would fall on or before Pentecost
// are skipped, so the schedule starts later in years with a late Easter.
// The final entry is always Proper 29 on Christ the King Sunday.
func ProperSchedule(adventYear int) []Proper {
	civil := adventYear + 1
	pentecost := CalculatePentecost(civil)
	christTheKing := CalculateChristTheKing(civil)

	schedule := make([]Proper, 0, lastProperNumber+1)
	for n := firstProperNumber; n <= lastProperNumber; n++ {
		sunday := ProperSunday(civil, n)
		if !sunday.After(pentecost) || !sunday.Before(christTheKing) {
			continue
		}
		schedule = append(schedule, Proper{Number: n, Sunday: sunday})
	}
	return append(schedule, Proper{Number: christTheKingProper, Sunday: christTheKing})
}

// ordinarySundayOrdinals numbers the Sundays of the Ordinary Time stretch
// between Baptism of the Lord and Lent. Baptism, the final day of the
// Christmas season, counts as the 1st Sunday, so numbering here starts
// at 2.
func ordinarySundayOrdinals(start, end time.Time) []int {
	var ordinals []int
	n := 2
	for d := SundayOnOrAfter(start); !d.After(end); d = d.AddDate(0, 0, 7) {
		ordinals = append(ordinals, n)
		n++
	}
	return ordinals
}
