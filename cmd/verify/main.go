// Command verify recomputes every seeded liturgical year and compares
// it against the stored rows.
//
// Usage:
//
//	go run ./cmd/verify -db data/lectio.db
//
// Drift means a stored snapshot no longer matches what the engine
// computes today: the engine changed since seeding, rows were edited by
// hand, or a seed was interrupted. The fix is always to reseed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
	"github.com/asachs01/lectio-api/internal/database"
)

// YearResult holds the verification outcome for one tradition-year.
type YearResult struct {
	Tradition   string   `json:"tradition"`
	AdventYear  int      `json:"advent_year"`
	Seasons     int      `json:"seasons"`
	SpecialDays int      `json:"special_days"`
	Mismatches  []string `json:"mismatches,omitempty"`
}

// OK reports whether the stored year matched the computed one.
func (r YearResult) OK() bool {
	return len(r.Mismatches) == 0
}

// TraditionStats aggregates results per tradition.
type TraditionStats struct {
	Slug         string `json:"slug"`
	YearsChecked int    `json:"years_checked"`
	CleanYears   int    `json:"clean_years"`
	DriftYears   int    `json:"drift_years"`
}

func main() {
	dbPath := flag.String("db", "data/lectio.db", "Path to the SQLite database")
	verbose := flag.Bool("v", false, "Verbose output (show clean years too)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	// The report goes to stdout; keep the connection logger quiet.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	fmt.Println("================================================================")
	fmt.Println("Stored Calendar Verification")
	fmt.Println("================================================================")
	fmt.Printf("Database: %s\n", *dbPath)
	fmt.Println()

	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Printf("Error: cannot open %s: %v\n", *dbPath, err)
		fmt.Println("Run cmd/seed first to create and populate the database.")
		os.Exit(1)
	}

	db, err := database.Open(database.DefaultConfig(*dbPath), logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	results, err := verifyAll(ctx, db, *verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
	printDrift(results)

	if *outputFile != "" {
		saveResults(*outputFile, results)
	}

	for _, r := range results {
		if !r.OK() {
			os.Exit(1)
		}
	}
}

// verifyAll walks every tradition and seeded year found in the database.
func verifyAll(ctx context.Context, db *database.DB, verbose bool) ([]YearResult, error) {
	traditions, err := db.ListTraditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list traditions: %w", err)
	}
	if len(traditions) == 0 {
		return nil, fmt.Errorf("no traditions seeded; run cmd/seed first")
	}

	var results []YearResult

	for _, trad := range traditions {
		years, err := db.ListSeededYears(ctx, trad.ID)
		if err != nil {
			return nil, fmt.Errorf("seeded years for %s: %w", trad.Slug, err)
		}
		if len(years) == 0 {
			results = append(results, YearResult{
				Tradition:  trad.Slug,
				Mismatches: []string{"tradition row exists but no years are seeded"},
			})
			continue
		}

		builder, err := calendar.NewTraditionBuilder(trad.Slug)
		if err != nil {
			results = append(results, YearResult{
				Tradition:  trad.Slug,
				Mismatches: []string{fmt.Sprintf("stored tradition is unknown to the engine: %v", err)},
			})
			continue
		}

		fmt.Printf("Checking %s (%d years)...\n", trad.Slug, len(years))

		for _, year := range years {
			result := verifyYear(ctx, db, builder, &trad, year)
			results = append(results, result)

			if verbose || !result.OK() {
				status := "✓"
				if !result.OK() {
					status = "✗"
				}
				fmt.Printf("  %s %d: %d seasons, %d observances, %d mismatches\n",
					status, year, result.Seasons, result.SpecialDays, len(result.Mismatches))
			}
		}
	}

	fmt.Println()
	return results, nil
}

// verifyYear rebuilds one liturgical year and diffs it against the rows
// the seeder stored for it.
func verifyYear(ctx context.Context, db *database.DB, builder *calendar.Builder, trad *database.Tradition, year int) YearResult {
	result := YearResult{Tradition: trad.Slug, AdventYear: year}

	info, err := builder.Build(year)
	if err != nil {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("engine rejected year: %v", err))
		return result
	}

	storedSeasons, err := db.GetSeasonsForYear(ctx, trad.ID, year)
	if err != nil {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("load seasons: %v", err))
		return result
	}

	storedDays, err := db.GetSpecialDaysForYear(ctx, trad.ID, year)
	if err != nil {
		result.Mismatches = append(result.Mismatches,
			fmt.Sprintf("load special days: %v", err))
		return result
	}

	result.Seasons = len(storedSeasons)
	result.SpecialDays = len(storedDays)
	result.Mismatches = append(result.Mismatches, diffSeasons(trad.ID, info, storedSeasons)...)
	result.Mismatches = append(result.Mismatches, diffSpecialDays(trad.ID, info, storedDays)...)

	return result
}

// diffSeasons compares stored season rows against the engine's output.
// Both sides flatten through SeasonRecords, so the comparison sees the
// exact representation the seeder wrote.
func diffSeasons(traditionID int64, info *calendar.LiturgicalYearInfo, got []database.SeasonRecord) []string {
	want := database.SeasonRecords(traditionID, info)

	var diffs []string

	if len(got) != len(want) {
		diffs = append(diffs, fmt.Sprintf("season count: stored %d, computed %d", len(got), len(want)))
		return diffs
	}

	for i := range want {
		w, g := want[i], got[i]

		checks := []struct {
			field  string
			stored string
			want   string
		}{
			{"name", g.Name, w.Name},
			{"kind", g.Kind, w.Kind},
			{"color", g.Color, w.Color},
			{"start", g.StartDate, w.StartDate},
			{"end", g.EndDate, w.EndDate},
		}
		for _, c := range checks {
			if c.stored != c.want {
				diffs = append(diffs, fmt.Sprintf("season %d %s: stored %q, computed %q",
					i, c.field, c.stored, c.want))
			}
		}

		if !equalInts(g.ProperNumbers, w.ProperNumbers) {
			diffs = append(diffs, fmt.Sprintf("season %d proper numbers: stored %v, computed %v",
				i, g.ProperNumbers, w.ProperNumbers))
		}
	}

	return diffs
}

// diffSpecialDays compares stored observance rows against the engine's
// output. Both sides are ordered by date, then rank descending, then
// name, so rows are matched by position.
func diffSpecialDays(traditionID int64, info *calendar.LiturgicalYearInfo, got []database.SpecialDayRecord) []string {
	want := database.SpecialDayRecords(traditionID, info)

	var diffs []string

	if len(got) != len(want) {
		diffs = append(diffs, fmt.Sprintf("observance count: stored %d, computed %d", len(got), len(want)))
		return diffs
	}

	for i := range want {
		w, g := want[i], got[i]
		label := fmt.Sprintf("observance %s %q", w.Date, w.Name)

		checks := []struct {
			field  string
			stored string
			want   string
		}{
			{"date", g.Date, w.Date},
			{"name", g.Name, w.Name},
			{"type", g.DayType, w.DayType},
			{"color", g.Color, w.Color},
		}
		for _, c := range checks {
			if c.stored != c.want {
				diffs = append(diffs, fmt.Sprintf("%s %s: stored %q, computed %q",
					label, c.field, c.stored, c.want))
			}
		}

		if g.Rank != w.Rank {
			diffs = append(diffs, fmt.Sprintf("%s rank: stored %d, computed %d",
				label, g.Rank, w.Rank))
		}
		if g.Moveable != w.Moveable {
			diffs = append(diffs, fmt.Sprintf("%s moveable: stored %t, computed %t",
				label, g.Moveable, w.Moveable))
		}
	}

	return diffs
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func printSummary(results []YearResult) {
	total := 0
	clean := 0

	var order []string
	byTradition := make(map[string]*TraditionStats)

	for _, r := range results {
		total++
		if _, ok := byTradition[r.Tradition]; !ok {
			byTradition[r.Tradition] = &TraditionStats{Slug: r.Tradition}
			order = append(order, r.Tradition)
		}
		stats := byTradition[r.Tradition]
		stats.YearsChecked++
		if r.OK() {
			clean++
			stats.CleanYears++
		} else {
			stats.DriftYears++
		}
	}

	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Years checked: %d\n", total)
	fmt.Printf("Clean:         %d\n", clean)
	fmt.Printf("Drifted:       %d\n", total-clean)
	fmt.Println()

	fmt.Println("By Tradition:")
	for _, slug := range order {
		stats := byTradition[slug]
		status := "✓"
		if stats.DriftYears > 0 {
			status = "✗"
		}
		fmt.Printf("  %s %s: %d/%d years clean\n",
			status, slug, stats.CleanYears, stats.YearsChecked)
	}
	fmt.Println()
}

func printDrift(results []YearResult) {
	drifted := 0
	for _, r := range results {
		if !r.OK() {
			drifted++
		}
	}

	if drifted == 0 {
		fmt.Println("Stored calendars match the engine. ✓")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("DRIFT DETAIL")
	fmt.Println("================================================================")

	for _, r := range results {
		if r.OK() {
			continue
		}

		fmt.Printf("\n%s %d: %d mismatches\n", r.Tradition, r.AdventYear, len(r.Mismatches))

		// Show up to 10 mismatches per year
		shown := 0
		for _, m := range r.Mismatches {
			if shown >= 10 {
				fmt.Printf("  ... and %d more\n", len(r.Mismatches)-10)
				break
			}
			fmt.Printf("  - %s\n", m)
			shown++
		}
	}

	fmt.Println()
	fmt.Println("Reseed the affected years with cmd/seed to clear the drift.")
}

func saveResults(filename string, results []YearResult) {
	total := 0
	drifted := 0
	for _, r := range results {
		total++
		if !r.OK() {
			drifted++
		}
	}

	output := struct {
		GeneratedAt string                 `json:"generated_at"`
		Summary     map[string]interface{} `json:"summary"`
		Results     []YearResult           `json:"results"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]interface{}{
			"years_checked": total,
			"clean":         total - drifted,
			"drifted":       drifted,
		},
		Results: results,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
