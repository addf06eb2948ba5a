package calendar

import "time"

// Cycle identifies a year of the three-year lectionary rotation.
type Cycle string

// Lectionary cycle years.
const (
	CycleA Cycle = "A"
	CycleB Cycle = "B"
	CycleC Cycle = "C"
)

const (
	// ReferenceYear is the liturgical year used as a baseline for cycle
	// calculation. The liturgical year starting with Advent 2024 is Year C.
	ReferenceYear = 2024

	// ReferenceCycle is the cycle for the reference year.
	ReferenceCycle = CycleC
)

// cycleOrder lists the rotation starting from the reference cycle.
var cycleOrder = [3]Cycle{CycleC, CycleA, CycleB}

// CycleForYear determines which lectionary cycle (A, B, or C) applies to
// the liturgical year beginning on the first Sunday of Advent of the
// given year.
//
// The lectionary operates on a three-year cycle. The liturgical year
// begins on the first Sunday of Advent (late November/early December),
// not January 1.
//
// Cycle determination:
//   - The liturgical year starting Advent 2024 is Year C
//   - The liturgical year starting Advent 2025 is Year A
//   - The liturgical year starting Advent 2026 is Year B
//   - The pattern repeats every three liturgical years
func CycleForYear(adventYear int) Cycle {
	offset := (adventYear - ReferenceYear) % 3
	if offset < 0 {
		offset += 3
	}
	return cycleOrder[offset]
}

// GetYearCycle determines which lectionary cycle applies to a given date.
//
// A date before Advent of its calendar year still belongs to the
// liturgical year that started the previous Advent.
//
// Examples:
//   - December 1, 2024 (after Advent 2024): Year C
//   - November 15, 2024 (before Advent 2024): Year B (previous liturgical year)
//   - March 15, 2025 (between Advent 2024 and Advent 2025): Year C
//   - December 15, 2025 (after Advent 2025): Year A
func GetYearCycle(date time.Time) Cycle {
	return CycleForYear(GetLiturgicalYear(date))
}

// GetLiturgicalYear returns the starting year of the liturgical year
// that contains the given date.
//
// The liturgical year is identified by the year in which its Advent
// begins. For example, the liturgical year "2024" runs from Advent 2024
// through the Saturday before Advent 2025.
func GetLiturgicalYear(date time.Time) int {
	year := date.Year()
	if date.Before(CalculateAdvent(year)) {
		return year - 1
	}
	return year
}
