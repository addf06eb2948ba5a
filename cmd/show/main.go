// Command show prints a computed liturgical year as a plain text report.
//
// Usage:
//
//	go run ./cmd/show -year 2025 -tradition lutheran
//
// The year is the Advent year: 2025 covers Advent 2025 through the eve
// of Advent 2026. With no flags it shows the current liturgical year
// for the base calendar.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
)

func main() {
	year := flag.Int("year", 0, "Advent year to show (default: current liturgical year)")
	tradition := flag.String("tradition", "", "Tradition slug (default: base calendar)")
	flag.Parse()

	adventYear := *year
	if adventYear == 0 {
		adventYear = calendar.GetLiturgicalYear(time.Now())
	}

	builder := calendar.NewBuilder()
	label := "base calendar"
	if *tradition != "" {
		var err error
		builder, err = calendar.NewTraditionBuilder(*tradition)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Printf("Known traditions:")
			for _, t := range calendar.Traditions {
				fmt.Printf(" %s", t.Slug)
			}
			fmt.Println()
			os.Exit(1)
		}
		label = *tradition
	}

	info, err := builder.Build(adventYear)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printYear(info, label)
}

func printYear(info *calendar.LiturgicalYearInfo, label string) {
	fmt.Printf("=== Liturgical Year %d, Cycle %s (%s) ===\n\n",
		info.AdventYear, info.Cycle, label)
	fmt.Printf("%s through %s\n\n",
		calendar.FormatDate(info.Start), calendar.FormatDate(info.End))

	fmt.Println("Key Dates:")
	keyDates := []struct {
		name string
		date time.Time
	}{
		{"First Sunday of Advent", info.Start},
		{"Ash Wednesday", info.Easter.AshWednesday},
		{"Palm Sunday", info.Easter.PalmSunday},
		{"Maundy Thursday", info.Easter.MaundyThursday},
		{"Good Friday", info.Easter.GoodFriday},
		{"Easter Vigil", info.Easter.EasterVigil},
		{"Easter", info.Easter.Easter},
		{"Ascension", info.Easter.Ascension},
		{"Pentecost", info.Easter.Pentecost},
		{"Trinity Sunday", info.Easter.TrinitySunday},
		{"Corpus Christi", info.Easter.CorpusChristi},
		{"Christ the King", info.Easter.ChristTheKing},
	}
	for _, kd := range keyDates {
		fmt.Printf("  %-24s %s\n", kd.name+":", calendar.FormatDate(kd.date))
	}
	fmt.Println()

	fmt.Println("Seasons:")
	for _, s := range info.Seasons {
		proper := ""
		if n := len(s.ProperNumbers); n > 0 {
			proper = fmt.Sprintf("  (Propers %d-%d)", s.ProperNumbers[0], s.ProperNumbers[n-1])
		}
		fmt.Printf("  %-15s %s to %s  %3d days  [%s]%s\n",
			s.Name, calendar.FormatDate(s.Start), calendar.FormatDate(s.End),
			s.Days(), s.Color, proper)
	}
	fmt.Println()

	fmt.Printf("Observances (%d):\n", len(info.SpecialDays))
	for _, d := range info.SpecialDays {
		marker := " "
		if d.Moveable {
			marker = "*"
		}
		fmt.Printf("  %s %s %-36s %-10s [%s]\n",
			calendar.FormatDate(d.Date), marker, d.Name, d.Type, d.Color)
	}
	fmt.Println()
	fmt.Println("  * moveable (computed from Easter)")
	fmt.Println()

	byType := make(map[string]int)
	for _, d := range info.SpecialDays {
		byType[string(d.Type)]++
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Println("By type:")
	for _, t := range types {
		fmt.Printf("  %-12s %d\n", t+":", byType[t])
	}
}
