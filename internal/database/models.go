package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
)

// Tradition is a stored worship tradition. Rows are created by the
// seeder; the engine's built-in registry is the source of slugs.
type Tradition struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeasonRecord is one stored season of a seeded liturgical year.
// Position is the season's index within the year, 0 through 5.
type SeasonRecord struct {
	ID            int64  `json:"id"`
	TraditionID   int64  `json:"tradition_id"`
	AdventYear    int    `json:"advent_year"`
	Position      int    `json:"position"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Color         string `json:"color"`
	StartDate     string `json:"start_date"` // ISO 8601 format: YYYY-MM-DD
	EndDate       string `json:"end_date"`   // ISO 8601 format: YYYY-MM-DD
	ProperNumbers []int  `json:"proper_numbers"`
}

// SpecialDayRecord is one stored observance of a seeded liturgical year.
type SpecialDayRecord struct {
	ID          int64  `json:"id"`
	TraditionID int64  `json:"tradition_id"`
	AdventYear  int    `json:"advent_year"`
	Date        string `json:"date"` // ISO 8601 format: YYYY-MM-DD
	Name        string `json:"name"`
	DayType     string `json:"day_type"`
	Rank        int    `json:"rank"`
	Color       string `json:"color"`
	Moveable    bool   `json:"moveable"`
}

// SeasonRecords flattens a computed liturgical year into season rows
// owned by the given tradition.
func SeasonRecords(traditionID int64, info *calendar.LiturgicalYearInfo) []SeasonRecord {
	records := make([]SeasonRecord, 0, len(info.Seasons))
	for i, s := range info.Seasons {
		records = append(records, SeasonRecord{
			TraditionID:   traditionID,
			AdventYear:    info.AdventYear,
			Position:      i,
			Name:          string(s.Name),
			Kind:          string(s.Kind),
			Color:         string(s.Color),
			StartDate:     calendar.FormatDate(s.Start),
			EndDate:       calendar.FormatDate(s.End),
			ProperNumbers: s.ProperNumbers,
		})
	}
	return records
}

// SpecialDayRecords flattens a computed liturgical year into special day
// rows owned by the given tradition.
func SpecialDayRecords(traditionID int64, info *calendar.LiturgicalYearInfo) []SpecialDayRecord {
	records := make([]SpecialDayRecord, 0, len(info.SpecialDays))
	for _, d := range info.SpecialDays {
		records = append(records, SpecialDayRecord{
			TraditionID: traditionID,
			AdventYear:  info.AdventYear,
			Date:        calendar.FormatDate(d.Date),
			Name:        d.Name,
			DayType:     string(d.Type),
			Rank:        d.Rank,
			Color:       string(d.Color),
			Moveable:    d.Moveable,
		})
	}
	return records
}

// marshalInts encodes an int slice as a JSON array for TEXT storage.
// A nil slice encodes as '[]' so the column is never NULL.
func marshalInts(ns []int) (string, error) {
	if len(ns) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(ns)
	if err != nil {
		return "", fmt.Errorf("marshal int array: %w", err)
	}
	return string(b), nil
}

// unmarshalInts decodes a JSON int array from TEXT storage.
// Empty arrays decode to nil.
func unmarshalInts(s string) ([]int, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var ns []int
	if err := json.Unmarshal([]byte(s), &ns); err != nil {
		return nil, fmt.Errorf("unmarshal int array: %w", err)
	}
	return ns, nil
}
