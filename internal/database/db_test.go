package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedYear computes the 2024 liturgical year and stores it for a fresh
// ecumenical tradition.
func seedYear(t *testing.T, db *DB) (*Tradition, *calendar.LiturgicalYearInfo) {
	t.Helper()
	ctx := context.Background()

	trad := &Tradition{
		Slug:        "ecumenical",
		Name:        "Ecumenical",
		Description: "Base western calendar",
	}

	info, err := calendar.Build(2024)
	if err != nil {
		t.Fatalf("build liturgical year: %v", err)
	}

	if err := db.ReplaceYear(ctx, trad, info); err != nil {
		t.Fatalf("replace year: %v", err)
	}

	return trad, info
}

// testSeason returns a minimal valid season row for insert tests.
func testSeason(traditionID int64, year, position int) *SeasonRecord {
	return &SeasonRecord{
		TraditionID: traditionID,
		AdventYear:  year,
		Position:    position,
		Name:        "Advent",
		Kind:        "penitential",
		Color:       "purple",
		StartDate:   "2024-12-01",
		EndDate:     "2024-12-24",
	}
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	// Verify connection works
	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Migrations should have run (in testDB)
	// Running again should be a no-op
	count, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

// -----------------------------------------------------------------
// Tradition tests
// -----------------------------------------------------------------

func TestEnsureTradition(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{
		Slug:        "lutheran",
		Name:        "Lutheran",
		Description: "Base calendar plus Lutheran observances",
	}

	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("EnsureTradition() error = %v", err)
	}
	if trad.ID == 0 {
		t.Error("EnsureTradition() did not set ID")
	}
	if trad.CreatedAt.IsZero() {
		t.Error("EnsureTradition() did not set CreatedAt")
	}

	// Ensuring again with a new name updates in place
	again := &Tradition{
		Slug: "lutheran",
		Name: "Lutheran (ELW)",
	}
	if err := db.EnsureTradition(ctx, again); err != nil {
		t.Fatalf("second EnsureTradition() error = %v", err)
	}
	if again.ID != trad.ID {
		t.Errorf("EnsureTradition() reused slug got ID %d, want %d", again.ID, trad.ID)
	}

	stored, err := db.GetTraditionBySlug(ctx, "lutheran")
	if err != nil {
		t.Fatalf("GetTraditionBySlug() error = %v", err)
	}
	if stored.Name != "Lutheran (ELW)" {
		t.Errorf("stored name = %q, want %q", stored.Name, "Lutheran (ELW)")
	}
}

func TestGetTraditionBySlug_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetTraditionBySlug(ctx, "orthodox")
	if err != ErrNotFound {
		t.Errorf("GetTraditionBySlug() error = %v, want ErrNotFound", err)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestListTraditions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Empty database lists nothing
	traditions, err := db.ListTraditions(ctx)
	if err != nil {
		t.Fatalf("ListTraditions() error = %v", err)
	}
	if len(traditions) != 0 {
		t.Errorf("ListTraditions() on empty db returned %d rows", len(traditions))
	}

	// Insert out of order, expect slug order back
	for _, slug := range []string{"lutheran", "catholic", "ecumenical"} {
		trad := &Tradition{Slug: slug, Name: slug}
		if err := db.EnsureTradition(ctx, trad); err != nil {
			t.Fatalf("ensure %s: %v", slug, err)
		}
	}

	traditions, err = db.ListTraditions(ctx)
	if err != nil {
		t.Fatalf("ListTraditions() error = %v", err)
	}

	wantOrder := []string{"catholic", "ecumenical", "lutheran"}
	if len(traditions) != len(wantOrder) {
		t.Fatalf("ListTraditions() returned %d rows, want %d", len(traditions), len(wantOrder))
	}
	for i, want := range wantOrder {
		if traditions[i].Slug != want {
			t.Errorf("traditions[%d].Slug = %q, want %q", i, traditions[i].Slug, want)
		}
	}
}

// -----------------------------------------------------------------
// Season tests
// -----------------------------------------------------------------

func TestCreateSeason_Duplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{Slug: "ecumenical", Name: "Ecumenical"}
	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("ensure tradition: %v", err)
	}

	if err := db.CreateSeason(ctx, testSeason(trad.ID, 2024, 0)); err != nil {
		t.Fatalf("first CreateSeason() error = %v", err)
	}

	// Same (tradition, year, position) must be rejected
	err := db.CreateSeason(ctx, testSeason(trad.ID, 2024, 0))
	if err != ErrDuplicate {
		t.Errorf("CreateSeason() duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestGetSeasonsForYear_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{Slug: "ecumenical", Name: "Ecumenical"}
	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("ensure tradition: %v", err)
	}

	_, err := db.GetSeasonsForYear(ctx, trad.ID, 2024)
	if err != ErrNotFound {
		t.Errorf("GetSeasonsForYear() unseeded error = %v, want ErrNotFound", err)
	}
}

// -----------------------------------------------------------------
// Special day tests
// -----------------------------------------------------------------

func TestCreateSpecialDay_Duplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{Slug: "ecumenical", Name: "Ecumenical"}
	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("ensure tradition: %v", err)
	}

	day := &SpecialDayRecord{
		TraditionID: trad.ID,
		AdventYear:  2024,
		Date:        "2024-12-25",
		Name:        "Christmas Day",
		DayType:     "solemnity",
		Rank:        4,
		Color:       "white",
	}
	if err := db.CreateSpecialDay(ctx, day); err != nil {
		t.Fatalf("first CreateSpecialDay() error = %v", err)
	}
	if day.ID == 0 {
		t.Error("CreateSpecialDay() did not set ID")
	}

	// Same (date, name) within the year must be rejected
	dup := &SpecialDayRecord{
		TraditionID: trad.ID,
		AdventYear:  2024,
		Date:        "2024-12-25",
		Name:        "Christmas Day",
		DayType:     "solemnity",
		Rank:        4,
		Color:       "white",
	}
	err := db.CreateSpecialDay(ctx, dup)
	if err != ErrDuplicate {
		t.Errorf("CreateSpecialDay() duplicate error = %v, want ErrDuplicate", err)
	}
}

// -----------------------------------------------------------------
// Year replacement tests
// -----------------------------------------------------------------

func TestReplaceYear(t *testing.T) {
	db := testDB(t)
	trad, info := seedYear(t, db)
	ctx := context.Background()

	seasons, err := db.GetSeasonsForYear(ctx, trad.ID, 2024)
	if err != nil {
		t.Fatalf("GetSeasonsForYear() error = %v", err)
	}

	if len(seasons) != 6 {
		t.Fatalf("GetSeasonsForYear() returned %d seasons, want 6", len(seasons))
	}
	for i, s := range seasons {
		if s.Position != i {
			t.Errorf("seasons[%d].Position = %d, want %d", i, s.Position, i)
		}
	}

	if seasons[0].Name != "Advent" || seasons[0].StartDate != "2024-12-01" {
		t.Errorf("first season = %s starting %s, want Advent starting 2024-12-01",
			seasons[0].Name, seasons[0].StartDate)
	}

	last := seasons[5]
	if last.EndDate != "2025-11-29" {
		t.Errorf("last season end = %s, want 2025-11-29", last.EndDate)
	}
	// Proper numbers survive the JSON round trip
	if len(last.ProperNumbers) == 0 {
		t.Fatal("last season has no proper numbers")
	}
	if last.ProperNumbers[0] != 6 {
		t.Errorf("first proper number = %d, want 6", last.ProperNumbers[0])
	}
	if got := last.ProperNumbers[len(last.ProperNumbers)-1]; got != 29 {
		t.Errorf("last proper number = %d, want 29", got)
	}

	days, err := db.GetSpecialDaysForYear(ctx, trad.ID, 2024)
	if err != nil {
		t.Fatalf("GetSpecialDaysForYear() error = %v", err)
	}
	if len(days) != len(info.SpecialDays) {
		t.Errorf("stored %d special days, want %d", len(days), len(info.SpecialDays))
	}

	byName := make(map[string]SpecialDayRecord)
	for _, d := range days {
		byName[d.Name] = d
	}

	easter, ok := byName["Easter Sunday"]
	if !ok {
		t.Fatal("stored year is missing Easter Sunday")
	}
	if easter.Date != "2025-04-20" {
		t.Errorf("Easter Sunday date = %s, want 2025-04-20", easter.Date)
	}
	if !easter.Moveable {
		t.Error("Easter Sunday stored as not moveable")
	}

	christmas, ok := byName["Christmas Day"]
	if !ok {
		t.Fatal("stored year is missing Christmas Day")
	}
	if christmas.Date != "2024-12-25" {
		t.Errorf("Christmas Day date = %s, want 2024-12-25", christmas.Date)
	}
	if christmas.Moveable {
		t.Error("Christmas Day stored as moveable")
	}
}

func TestReplaceYear_Reseed(t *testing.T) {
	db := testDB(t)
	trad, info := seedYear(t, db)
	ctx := context.Background()

	// Reseeding must not duplicate rows or change the tradition ID
	again := &Tradition{Slug: trad.Slug, Name: trad.Name, Description: trad.Description}
	if err := db.ReplaceYear(ctx, again, info); err != nil {
		t.Fatalf("second ReplaceYear() error = %v", err)
	}
	if again.ID != trad.ID {
		t.Errorf("reseed tradition ID = %d, want %d", again.ID, trad.ID)
	}

	seasons, err := db.GetSeasonsForYear(ctx, trad.ID, 2024)
	if err != nil {
		t.Fatalf("GetSeasonsForYear() error = %v", err)
	}
	if len(seasons) != 6 {
		t.Errorf("after reseed got %d seasons, want 6", len(seasons))
	}

	days, err := db.GetSpecialDaysForYear(ctx, trad.ID, 2024)
	if err != nil {
		t.Fatalf("GetSpecialDaysForYear() error = %v", err)
	}
	if len(days) != len(info.SpecialDays) {
		t.Errorf("after reseed got %d special days, want %d", len(days), len(info.SpecialDays))
	}
}

func TestGetSpecialDaysInRange(t *testing.T) {
	db := testDB(t)
	trad, _ := seedYear(t, db)
	ctx := context.Background()

	// April 2025 holds Holy Week and Easter, nothing fixed
	days, err := db.GetSpecialDaysInRange(ctx, trad.ID, "2025-04-01", "2025-04-30")
	if err != nil {
		t.Fatalf("GetSpecialDaysInRange() error = %v", err)
	}

	wantNames := []string{
		"Palm Sunday",
		"Maundy Thursday",
		"Good Friday",
		"Easter Vigil",
		"Easter Sunday",
	}
	if len(days) != len(wantNames) {
		t.Fatalf("GetSpecialDaysInRange() returned %d days, want %d", len(days), len(wantNames))
	}
	for i, want := range wantNames {
		if days[i].Name != want {
			t.Errorf("days[%d].Name = %q, want %q", i, days[i].Name, want)
		}
	}

	// Verify date order
	for i := 1; i < len(days); i++ {
		if days[i].Date < days[i-1].Date {
			t.Errorf("days out of order: %s before %s", days[i-1].Date, days[i].Date)
		}
	}

	// Bounds are inclusive
	days, err = db.GetSpecialDaysInRange(ctx, trad.ID, "2025-04-20", "2025-04-20")
	if err != nil {
		t.Fatalf("GetSpecialDaysInRange() single day error = %v", err)
	}
	if len(days) != 1 || days[0].Name != "Easter Sunday" {
		t.Errorf("single day range = %v, want just Easter Sunday", days)
	}
}

// -----------------------------------------------------------------
// Transaction tests
// -----------------------------------------------------------------

func TestWithTx(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{Slug: "ecumenical", Name: "Ecumenical"}
	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("ensure tradition: %v", err)
	}

	// Successful transaction
	err := db.WithTx(ctx, func(tx *Tx) error {
		return tx.CreateSeason(ctx, testSeason(trad.ID, 2024, 0))
	})
	if err != nil {
		t.Fatalf("WithTx() success case error = %v", err)
	}

	// Verify season was created
	seasons, err := db.GetSeasonsForYear(ctx, trad.ID, 2024)
	if err != nil {
		t.Errorf("season not created: %v", err)
	}
	if len(seasons) != 1 {
		t.Errorf("got %d seasons, want 1", len(seasons))
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trad := &Tradition{Slug: "ecumenical", Name: "Ecumenical"}
	if err := db.EnsureTradition(ctx, trad); err != nil {
		t.Fatalf("ensure tradition: %v", err)
	}

	// Failed transaction should rollback
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.CreateSeason(ctx, testSeason(trad.ID, 2024, 0)); err != nil {
			return err
		}
		// Force error to trigger rollback
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Fatalf("WithTx() rollback case error = %v, want ErrNotFound", err)
	}

	// Verify season was NOT created
	_, err = db.GetSeasonsForYear(ctx, trad.ID, 2024)
	if err != ErrNotFound {
		t.Errorf("seasons should not exist after rollback, got error: %v", err)
	}
}

func TestCounts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	n, err := db.CountSeasons(ctx)
	if err != nil {
		t.Fatalf("CountSeasons() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountSeasons() = %d, want 0 before seeding", n)
	}

	_, info := seedYear(t, db)

	n, err = db.CountSeasons(ctx)
	if err != nil {
		t.Fatalf("CountSeasons() error = %v", err)
	}
	if n != len(info.Seasons) {
		t.Errorf("CountSeasons() = %d, want %d", n, len(info.Seasons))
	}

	n, err = db.CountSpecialDays(ctx)
	if err != nil {
		t.Fatalf("CountSpecialDays() error = %v", err)
	}
	if n != len(info.SpecialDays) {
		t.Errorf("CountSpecialDays() = %d, want %d", n, len(info.SpecialDays))
	}
}
