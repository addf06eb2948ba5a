package calendar

import "time"

// SeasonName names one of the liturgical seasons. The two Ordinary Time
// stretches share a name and are distinguished by position.
type SeasonName string

// Season names.
const (
	SeasonAdvent       SeasonName = "Advent"
	SeasonChristmas    SeasonName = "Christmas"
	SeasonOrdinaryTime SeasonName = "Ordinary Time"
	SeasonLent         SeasonName = "Lent"
	SeasonEaster       SeasonName = "Easter"
)

// SeasonKind classifies the character of a season.
type SeasonKind string

// Season kinds.
const (
	KindPenitential SeasonKind = "penitential"
	KindFestive     SeasonKind = "festive"
	KindOrdinary    SeasonKind = "ordinary"
)

// Color is a liturgical color.
type Color string

// Liturgical colors.
const (
	ColorPurple Color = "purple"
	ColorWhite  Color = "white"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
)

// Season is one contiguous stretch of the liturgical year. Start and End
// are both inclusive. ProperNumbers carries the Sunday numbering of the
// two Ordinary Time stretches (ordinal Sunday numbers after Epiphany,
// Proper numbers after Pentecost) and is nil for the other seasons.
type Season struct {
	Name          SeasonName
	Kind          SeasonKind
	Color         Color
	Start         time.Time
	End           time.Time
	ProperNumbers []int
}

// Contains reports whether a date falls within the season.
func (s Season) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(s.Start) && !d.After(s.End)
}

// Days returns the length of the season in days.
func (s Season) Days() int {
	return DaysBetween(s.Start, s.End) + 1
}

// ComputeSeasons returns the six seasons of the liturgical year beginning
// Advent of adventYear, in order: Advent, Christmas, Ordinary Time, Lent,
// Easter, Ordinary Time. The seasons are contiguous; every day from the
// first Sunday of Advent through the eve of the next Advent belongs to
// exactly one of them.
//
// Boundary conventions: Christmas runs through Baptism of the Lord, Lent
// runs from Ash Wednesday through Holy Saturday, and the Easter season
// runs from Easter Sunday through Pentecost.
func ComputeSeasons(adventYear int) []Season {
	civil := adventYear + 1
	advent := CalculateAdvent(adventYear)
	christmas := NewDate(adventYear, time.December, 25)
	baptism := CalculateBaptismOfTheLord(civil)
	ashWednesday := CalculateAshWednesday(civil)
	easter := CalculateEaster(civil)
	pentecost := CalculatePentecost(civil)
	nextAdvent := CalculateAdvent(civil)

	afterEpiphany := Season{
		Name:  SeasonOrdinaryTime,
		Kind:  KindOrdinary,
		Color: ColorGreen,
		Start: baptism.AddDate(0, 0, 1),
		End:   ashWednesday.AddDate(0, 0, -1),
	}
	afterEpiphany.ProperNumbers = ordinarySundayOrdinals(afterEpiphany.Start, afterEpiphany.End)

	afterPentecost := Season{
		Name:  SeasonOrdinaryTime,
		Kind:  KindOrdinary,
		Color: ColorGreen,
		Start: pentecost.AddDate(0, 0, 1),
		End:   nextAdvent.AddDate(0, 0, -1),
	}
	for _, p := range ProperSchedule(adventYear) {
		afterPentecost.ProperNumbers = append(afterPentecost.ProperNumbers, p.Number)
	}

	return []Season{
		{
			Name:  SeasonAdvent,
			Kind:  KindPenitential,
			Color: ColorPurple,
			Start: advent,
			End:   christmas.AddDate(0, 0, -1),
		},
		{
			Name:  SeasonChristmas,
			Kind:  KindFestive,
			Color: ColorWhite,
			Start: christmas,
			End:   baptism,
		},
		afterEpiphany,
		{
			Name:  SeasonLent,
			Kind:  KindPenitential,
			Color: ColorPurple,
			Start: ashWednesday,
			End:   easter.AddDate(0, 0, -1),
		},
		{
			Name:  SeasonEaster,
			Kind:  KindFestive,
			Color: ColorWhite,
			Start: easter,
			End:   pentecost,
		},
		afterPentecost,
	}
}
