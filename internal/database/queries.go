package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
)

// dbtx is the query surface shared by DB and Tx, so the same helpers can
// run standalone or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	// Try RFC3339 format first (with timezone)
	t, err := time.Parse(time.RFC3339, ns.String)
	if err == nil {
		return &t
	}

	// Try SQLite datetime format (no timezone)
	t, err = time.Parse("2006-01-02 15:04:05", ns.String)
	if err == nil {
		return &t
	}

	return nil
}

// =============================================================================
// Tradition Queries
// =============================================================================

// ensureTradition inserts the tradition or refreshes its name and
// description if the slug already exists, then fills in ID and
// timestamps from the stored row.
func ensureTradition(ctx context.Context, q dbtx, t *Tradition) error {
	query := `
		INSERT INTO traditions (slug, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = datetime('now')
	`

	if _, err := q.ExecContext(ctx, query, t.Slug, t.Name, t.Description); err != nil {
		return fmt.Errorf("upsert tradition: %w", err)
	}

	// LastInsertId is meaningless on the update path, so read the row back
	var createdAtStr, updatedAtStr sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT id, created_at, updated_at FROM traditions WHERE slug = ?",
		t.Slug,
	).Scan(&t.ID, &createdAtStr, &updatedAtStr)
	if err != nil {
		return fmt.Errorf("read back tradition: %w", err)
	}

	if ts := parseTimestamp(createdAtStr); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseTimestamp(updatedAtStr); ts != nil {
		t.UpdatedAt = *ts
	}

	return nil
}

// EnsureTradition inserts or updates a tradition by slug.
// IDEMPOTENT - safe to run on every seed.
func (db *DB) EnsureTradition(ctx context.Context, t *Tradition) error {
	return ensureTradition(ctx, db.DB, t)
}

// EnsureTradition inserts or updates a tradition by slug within the
// transaction.
func (tx *Tx) EnsureTradition(ctx context.Context, t *Tradition) error {
	return ensureTradition(ctx, tx.Tx, t)
}

// GetTraditionBySlug retrieves a tradition by its slug.
// Returns ErrNotFound if the slug has never been seeded.
func (db *DB) GetTraditionBySlug(ctx context.Context, slug string) (*Tradition, error) {
	query := `
		SELECT id, slug, name, description, created_at, updated_at
		FROM traditions
		WHERE slug = ?
	`

	var t Tradition
	var createdAtStr, updatedAtStr sql.NullString

	err := db.QueryRowContext(ctx, query, slug).Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Description,
		&createdAtStr,
		&updatedAtStr,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query tradition by slug: %w", err)
	}

	if ts := parseTimestamp(createdAtStr); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseTimestamp(updatedAtStr); ts != nil {
		t.UpdatedAt = *ts
	}

	return &t, nil
}

// ListTraditions retrieves all seeded traditions ordered by slug.
// Returns an empty slice when nothing has been seeded.
func (db *DB) ListTraditions(ctx context.Context) ([]Tradition, error) {
	query := `
		SELECT id, slug, name, description, created_at, updated_at
		FROM traditions
		ORDER BY slug ASC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query traditions: %w", err)
	}
	defer rows.Close()

	var traditions []Tradition

	for rows.Next() {
		var t Tradition
		var createdAtStr, updatedAtStr sql.NullString

		err := rows.Scan(
			&t.ID,
			&t.Slug,
			&t.Name,
			&t.Description,
			&createdAtStr,
			&updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tradition row: %w", err)
		}

		if ts := parseTimestamp(createdAtStr); ts != nil {
			t.CreatedAt = *ts
		}
		if ts := parseTimestamp(updatedAtStr); ts != nil {
			t.UpdatedAt = *ts
		}

		traditions = append(traditions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tradition rows: %w", err)
	}

	return traditions, nil
}

// =============================================================================
// Season Queries
// =============================================================================

func insertSeason(ctx context.Context, q dbtx, rec *SeasonRecord) error {
	properJSON, err := marshalInts(rec.ProperNumbers)
	if err != nil {
		return fmt.Errorf("marshal proper numbers: %w", err)
	}

	query := `
		INSERT INTO seasons (
			tradition_id, advent_year, position,
			name, kind, color,
			start_date, end_date, proper_numbers
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := q.ExecContext(ctx, query,
		rec.TraditionID,
		rec.AdventYear,
		rec.Position,
		rec.Name,
		rec.Kind,
		rec.Color,
		rec.StartDate,
		rec.EndDate,
		properJSON,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert season: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("season insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// CreateSeason inserts a season row.
// Returns ErrDuplicate if the year already has a season at that position.
func (db *DB) CreateSeason(ctx context.Context, rec *SeasonRecord) error {
	return insertSeason(ctx, db.DB, rec)
}

// CreateSeason inserts a season row within the transaction.
func (tx *Tx) CreateSeason(ctx context.Context, rec *SeasonRecord) error {
	return insertSeason(ctx, tx.Tx, rec)
}

// GetSeasonsForYear retrieves the seasons of one seeded liturgical year
// in calendar order. Returns ErrNotFound if the year has not been seeded
// for this tradition.
//
// Used for /api/v1/traditions/{slug}/calendar/{year}
func (db *DB) GetSeasonsForYear(ctx context.Context, traditionID int64, adventYear int) ([]SeasonRecord, error) {
	query := `
		SELECT
			id, tradition_id, advent_year, position,
			name, kind, color,
			start_date, end_date, proper_numbers
		FROM seasons
		WHERE tradition_id = ? AND advent_year = ?
		ORDER BY position ASC
	`

	rows, err := db.QueryContext(ctx, query, traditionID, adventYear)
	if err != nil {
		return nil, fmt.Errorf("query seasons for year: %w", err)
	}
	defer rows.Close()

	var seasons []SeasonRecord

	for rows.Next() {
		var rec SeasonRecord
		var properJSON string

		err := rows.Scan(
			&rec.ID,
			&rec.TraditionID,
			&rec.AdventYear,
			&rec.Position,
			&rec.Name,
			&rec.Kind,
			&rec.Color,
			&rec.StartDate,
			&rec.EndDate,
			&properJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan season row: %w", err)
		}

		rec.ProperNumbers, err = unmarshalInts(properJSON)
		if err != nil {
			return nil, fmt.Errorf("unmarshal proper numbers: %w", err)
		}

		seasons = append(seasons, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate season rows: %w", err)
	}

	// A seeded year always has its full set of seasons
	if len(seasons) == 0 {
		return nil, ErrNotFound
	}

	return seasons, nil
}

// ListSeededYears returns the advent years that have season rows for a
// tradition, in ascending order. Returns an empty slice when the
// tradition has no seeded years.
func (db *DB) ListSeededYears(ctx context.Context, traditionID int64) ([]int, error) {
	query := `
		SELECT DISTINCT advent_year
		FROM seasons
		WHERE tradition_id = ?
		ORDER BY advent_year ASC
	`

	rows, err := db.QueryContext(ctx, query, traditionID)
	if err != nil {
		return nil, fmt.Errorf("query seeded years: %w", err)
	}
	defer rows.Close()

	var years []int

	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("scan seeded year: %w", err)
		}
		years = append(years, year)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seeded years: %w", err)
	}

	return years, nil
}

// =============================================================================
// Special Day Queries
// =============================================================================

func insertSpecialDay(ctx context.Context, q dbtx, rec *SpecialDayRecord) error {
	query := `
		INSERT INTO special_days (
			tradition_id, advent_year, date,
			name, day_type, rank, color, moveable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := q.ExecContext(ctx, query,
		rec.TraditionID,
		rec.AdventYear,
		rec.Date,
		rec.Name,
		rec.DayType,
		rec.Rank,
		rec.Color,
		rec.Moveable,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert special day: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("special day insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// CreateSpecialDay inserts a special day row.
// Returns ErrDuplicate if the year already has that (date, name) pair.
func (db *DB) CreateSpecialDay(ctx context.Context, rec *SpecialDayRecord) error {
	return insertSpecialDay(ctx, db.DB, rec)
}

// CreateSpecialDay inserts a special day row within the transaction.
func (tx *Tx) CreateSpecialDay(ctx context.Context, rec *SpecialDayRecord) error {
	return insertSpecialDay(ctx, tx.Tx, rec)
}

// scanSpecialDays drains a special day result set.
func scanSpecialDays(rows *sql.Rows) ([]SpecialDayRecord, error) {
	var days []SpecialDayRecord

	for rows.Next() {
		var rec SpecialDayRecord

		err := rows.Scan(
			&rec.ID,
			&rec.TraditionID,
			&rec.AdventYear,
			&rec.Date,
			&rec.Name,
			&rec.DayType,
			&rec.Rank,
			&rec.Color,
			&rec.Moveable,
		)
		if err != nil {
			return nil, fmt.Errorf("scan special day row: %w", err)
		}

		days = append(days, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate special day rows: %w", err)
	}

	return days, nil
}

// GetSpecialDaysForYear retrieves every observance of one seeded
// liturgical year, ordered by date with higher ranks first on shared
// dates.
func (db *DB) GetSpecialDaysForYear(ctx context.Context, traditionID int64, adventYear int) ([]SpecialDayRecord, error) {
	query := `
		SELECT
			id, tradition_id, advent_year, date,
			name, day_type, rank, color, moveable
		FROM special_days
		WHERE tradition_id = ? AND advent_year = ?
		ORDER BY date ASC, rank DESC, name ASC
	`

	rows, err := db.QueryContext(ctx, query, traditionID, adventYear)
	if err != nil {
		return nil, fmt.Errorf("query special days for year: %w", err)
	}
	defer rows.Close()

	return scanSpecialDays(rows)
}

// GetSpecialDaysInRange retrieves observances between two ISO dates
// (inclusive). The range may span liturgical years. Returns an empty
// slice if nothing falls in the range.
//
// Used for /api/v1/traditions/{slug}/feasts?start=X&end=Y
func (db *DB) GetSpecialDaysInRange(ctx context.Context, traditionID int64, start, end string) ([]SpecialDayRecord, error) {
	query := `
		SELECT
			id, tradition_id, advent_year, date,
			name, day_type, rank, color, moveable
		FROM special_days
		WHERE tradition_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, rank DESC, name ASC
	`

	rows, err := db.QueryContext(ctx, query, traditionID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query special days by range: %w", err)
	}
	defer rows.Close()

	return scanSpecialDays(rows)
}

// =============================================================================
// Year Replacement
// =============================================================================

func deleteYear(ctx context.Context, q dbtx, traditionID int64, adventYear int) error {
	if _, err := q.ExecContext(ctx,
		"DELETE FROM seasons WHERE tradition_id = ? AND advent_year = ?",
		traditionID, adventYear,
	); err != nil {
		return fmt.Errorf("delete seasons: %w", err)
	}

	if _, err := q.ExecContext(ctx,
		"DELETE FROM special_days WHERE tradition_id = ? AND advent_year = ?",
		traditionID, adventYear,
	); err != nil {
		return fmt.Errorf("delete special days: %w", err)
	}

	return nil
}

// ReplaceYear stores a computed liturgical year for a tradition,
// replacing any previously seeded rows for that year.
//
// This is IDEMPOTENT - reseeding the same year yields the same rows.
// The tradition upsert, the deletes and the inserts run in a single
// transaction, so readers never observe a partially seeded year.
func (db *DB) ReplaceYear(ctx context.Context, trad *Tradition, info *calendar.LiturgicalYearInfo) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.EnsureTradition(ctx, trad); err != nil {
			return err
		}

		if err := deleteYear(ctx, tx.Tx, trad.ID, info.AdventYear); err != nil {
			return err
		}

		for _, rec := range SeasonRecords(trad.ID, info) {
			if err := tx.CreateSeason(ctx, &rec); err != nil {
				return fmt.Errorf("season %d of year %d: %w", rec.Position, rec.AdventYear, err)
			}
		}

		for _, rec := range SpecialDayRecords(trad.ID, info) {
			if err := tx.CreateSpecialDay(ctx, &rec); err != nil {
				return fmt.Errorf("special day %s %q: %w", rec.Date, rec.Name, err)
			}
		}

		return nil
	})
}

// =============================================================================
// Counts
// =============================================================================

// CountSeasons returns the total number of stored season rows.
func (db *DB) CountSeasons(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seasons").Scan(&n); err != nil {
		return 0, fmt.Errorf("count seasons: %w", err)
	}
	return n, nil
}

// CountSpecialDays returns the total number of stored observance rows.
func (db *DB) CountSpecialDays(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM special_days").Scan(&n); err != nil {
		return 0, fmt.Errorf("count special days: %w", err)
	}
	return n, nil
}
