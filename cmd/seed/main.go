// Command seed computes liturgical calendars and stores them in SQLite.
//
// Usage:
//
//	go run ./cmd/seed -db data/lectio.db -start 2024 -end 2030
//
// This tool:
// 1. Opens the SQLite database and runs migrations
// 2. Computes each requested liturgical year for every tradition
// 3. Replaces the stored rows, one transaction per tradition-year
// 4. Optionally writes an .ics feed per tradition-year (-ics DIR)
//
// Seeding is idempotent. Rerunning replaces the stored rows, so a feast
// catalog change only needs a rerun over the affected years.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
	"github.com/asachs01/lectio-api/internal/database"
	"github.com/asachs01/lectio-api/internal/ics"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "data/lectio.db", "Path to SQLite database")
	startYear := flag.Int("start", calendar.GetLiturgicalYear(time.Now()), "First Advent year to seed")
	endYear := flag.Int("end", 0, "Last Advent year to seed (default start+4)")
	traditions := flag.String("traditions", "", "Comma-separated tradition slugs (default all)")
	icsDir := flag.String("ics", "", "Directory to also write .ics feeds into")
	dryRun := flag.Bool("dry-run", false, "Compute without writing to the database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if *endYear == 0 {
		*endYear = *startYear + 4
	}

	if err := run(*dbPath, *startYear, *endYear, *traditions, *icsDir, *dryRun, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete")
}

func run(dbPath string, startYear, endYear int, traditionList, icsDir string, dryRun bool, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Resolve the year range and tradition set
	// =========================================================================
	if err := calendar.ValidateYear(startYear); err != nil {
		return err
	}
	if err := calendar.ValidateYear(endYear); err != nil {
		return err
	}
	if endYear < startYear {
		return fmt.Errorf("end year %d before start year %d", endYear, startYear)
	}

	selected, err := selectTraditions(traditionList)
	if err != nil {
		return err
	}

	if icsDir != "" {
		if err := os.MkdirAll(icsDir, 0755); err != nil {
			return fmt.Errorf("create ics directory: %w", err)
		}
	}

	logger.Info("seeding calendars",
		slog.Int("start_year", startYear),
		slog.Int("end_year", endYear),
		slog.Int("traditions", len(selected)),
		slog.Bool("dry_run", dryRun),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	var db *database.DB
	if !dryRun {
		logger.Info("opening database", slog.String("path", dbPath))

		db, err = database.Open(database.DefaultConfig(dbPath), logger)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		migrated, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations complete", slog.Int("applied", migrated))
	}

	// =========================================================================
	// Step 3: Compute and store each tradition-year
	// =========================================================================
	var stats SeedStats
	for _, t := range selected {
		b, err := calendar.NewTraditionBuilder(t.Slug)
		if err != nil {
			return fmt.Errorf("tradition %q: %w", t.Slug, err)
		}

		trad := &database.Tradition{Slug: t.Slug, Name: t.Name, Description: t.Description}
		for year := startYear; year <= endYear; year++ {
			info, err := b.Build(year)
			if err != nil {
				return fmt.Errorf("build %s year %d: %w", t.Slug, year, err)
			}

			stats.Years++
			stats.Seasons += len(info.Seasons)
			stats.SpecialDays += len(info.SpecialDays)

			// A dry run skips the database, not the feeds
			if icsDir != "" {
				if err := writeFeed(icsDir, t.Slug, info); err != nil {
					return err
				}
				stats.Feeds++
			}

			if dryRun {
				continue
			}

			if err := db.ReplaceYear(ctx, trad, info); err != nil {
				return fmt.Errorf("seed %s year %d: %w", t.Slug, year, err)
			}

			logger.Debug("year seeded",
				slog.String("tradition", t.Slug),
				slog.Int("year", year),
				slog.Int("special_days", len(info.SpecialDays)),
			)
		}
		stats.Traditions++
	}

	// =========================================================================
	// Step 4: Verify against the stored rows
	// =========================================================================
	elapsed := time.Since(startTime)

	if !dryRun {
		seasonCount, err := db.CountSeasons(ctx)
		if err != nil {
			return fmt.Errorf("count seasons: %w", err)
		}

		dayCount, err := db.CountSpecialDays(ctx)
		if err != nil {
			return fmt.Errorf("count special days: %w", err)
		}

		logger.Info("seed verified",
			slog.Int("stored_seasons", seasonCount),
			slog.Int("stored_special_days", dayCount),
			slog.Duration("elapsed", elapsed),
		)
	}

	// Print summary
	fmt.Println()
	fmt.Println("=== Seed Summary ===")
	fmt.Printf("Traditions seeded:   %d\n", stats.Traditions)
	fmt.Printf("Years per tradition: %d\n", endYear-startYear+1)
	fmt.Printf("Seasons computed:    %d\n", stats.Seasons)
	fmt.Printf("Observances:         %d\n", stats.SpecialDays)
	if stats.Feeds > 0 {
		fmt.Printf("ICS feeds written:   %d\n", stats.Feeds)
	}
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))
	if dryRun {
		fmt.Println("Dry run: database untouched")
	}

	return nil
}

// SeedStats tracks seeding statistics.
type SeedStats struct {
	Traditions  int
	Years       int
	Seasons     int
	SpecialDays int
	Feeds       int
}

// writeFeed writes one tradition-year as an .ics file named
// <slug>-<year>.ics.
func writeFeed(dir, slug string, info *calendar.LiturgicalYearInfo) error {
	path := filepath.Join(dir, fmt.Sprintf("%s-%d.ics", slug, info.AdventYear))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	opts := ics.Options{
		CalendarName: fmt.Sprintf("Liturgical Calendar %d (%s)", info.AdventYear, slug),
	}
	if err := ics.WriteYear(f, info, opts); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// selectTraditions resolves a comma-separated slug list against the
// registry, or returns every registered tradition for an empty list.
func selectTraditions(list string) ([]calendar.Tradition, error) {
	if strings.TrimSpace(list) == "" {
		return calendar.Traditions, nil
	}

	var selected []calendar.Tradition
	for _, slug := range strings.Split(list, ",") {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		t, err := calendar.TraditionBySlug(slug)
		if err != nil {
			return nil, err
		}
		selected = append(selected, t)
	}
	return selected, nil
}
