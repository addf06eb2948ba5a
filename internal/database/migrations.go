package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1CalendarSchema,
}

// migrationV1CalendarSchema creates the calendar storage schema.
//
// Key design decisions:
//
// 1. YEARS ARE REPLACEABLE UNITS
//   - Every seasons/special_days row carries (tradition_id, advent_year)
//   - Reseeding a year deletes and reinserts all of its rows in one
//     transaction, so a calendar is never half old, half new
//
// 2. DATES AS TEXT
//   - All dates stored as ISO strings (YYYY-MM-DD), matching the API's
//     wire format and keeping range queries a plain string comparison
//   - Columns are declared TEXT so the driver never tries to parse them
//
// 3. PROPER NUMBERS AS JSON
//   - The Sunday numbering of an Ordinary Time season is a small int
//     array stored as JSON TEXT, e.g. '[6,7,8]'
//   - Empty for the seasons that have no numbering
const migrationV1CalendarSchema = `
-- Migration 001: Calendar storage schema

-- ============================================================================
-- Table: traditions
-- ============================================================================
-- A worship tradition whose calendars have been seeded.
-- ============================================================================
CREATE TABLE IF NOT EXISTS traditions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Stable identifier used in URLs: "ecumenical", "catholic", ...
    slug TEXT NOT NULL,

    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (slug)
);


-- ============================================================================
-- Table: seasons
-- ============================================================================
-- The six seasons of one liturgical year for one tradition.
-- position is the season's index within the year (0 = Advent).
-- ============================================================================
CREATE TABLE IF NOT EXISTS seasons (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    tradition_id INTEGER NOT NULL,

    -- The liturgical year is named for the civil year its Advent falls in
    advent_year INTEGER NOT NULL,
    position INTEGER NOT NULL,

    name TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN (
        'penitential',
        'festive',
        'ordinary'
    )),
    color TEXT NOT NULL,

    -- Inclusive bounds, ISO format
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,

    -- JSON array of Sunday numbers, '[]' when the season has none
    proper_numbers TEXT NOT NULL DEFAULT '[]',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    FOREIGN KEY (tradition_id) REFERENCES traditions(id) ON DELETE CASCADE,

    UNIQUE (tradition_id, advent_year, position)
);

-- Primary lookup: all seasons of a seeded year
CREATE INDEX IF NOT EXISTS idx_seasons_year
    ON seasons(tradition_id, advent_year);


-- ============================================================================
-- Table: special_days
-- ============================================================================
-- Feasts, fasts and commemorations of one liturgical year for one
-- tradition. A date may carry several observances; (date, name) is
-- unique within a year.
-- ============================================================================
CREATE TABLE IF NOT EXISTS special_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    tradition_id INTEGER NOT NULL,
    advent_year INTEGER NOT NULL,

    -- ISO format, within the year's Advent-to-Advent bounds
    date TEXT NOT NULL,

    name TEXT NOT NULL,
    day_type TEXT NOT NULL CHECK (day_type IN (
        'solemnity',
        'feast',
        'fast',
        'memorial',
        'commemoration'
    )),

    -- Precedence when observances coincide; higher outranks lower
    rank INTEGER NOT NULL,

    color TEXT NOT NULL,

    -- 1 for Easter-anchored observances, 0 for fixed calendar dates
    moveable INTEGER NOT NULL DEFAULT 0,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    FOREIGN KEY (tradition_id) REFERENCES traditions(id) ON DELETE CASCADE,

    UNIQUE (tradition_id, advent_year, date, name)
);

-- For reseeding and whole-year reads
CREATE INDEX IF NOT EXISTS idx_special_days_year
    ON special_days(tradition_id, advent_year);

-- For date range queries across years
CREATE INDEX IF NOT EXISTS idx_special_days_date
    ON special_days(tradition_id, date);
`
