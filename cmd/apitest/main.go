// Command apitest exercises a running API server end to end.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080
//
// It walks the public endpoints, checks computed dates against known
// liturgical landmarks, and exits nonzero on any failure. The server
// needs no seeded database for the computed endpoints.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// EasterResponse is the response for /easter/{year}
type EasterResponse struct {
	Easter        string `json:"easter"`
	AshWednesday  string `json:"ash_wednesday"`
	GoodFriday    string `json:"good_friday"`
	Pentecost     string `json:"pentecost"`
	ChristTheKing string `json:"christ_the_king"`
}

// SeasonInfo is one season within a calendar or day response
type SeasonInfo struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Color     string `json:"color"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SpecialDayInfo is one observance within a response
type SpecialDayInfo struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// YearResponse is the response for /calendar/{year}
type YearResponse struct {
	AdventYear  int              `json:"advent_year"`
	Cycle       string           `json:"cycle"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Seasons     []SeasonInfo     `json:"seasons"`
	SpecialDays []SpecialDayInfo `json:"special_days"`
}

// DayResponse is the response for /calendar/date/{date} and /calendar/today
type DayResponse struct {
	Date        string           `json:"date"`
	Weekday     string           `json:"weekday"`
	AdventYear  int              `json:"advent_year"`
	Cycle       string           `json:"cycle"`
	Season      SeasonInfo       `json:"season"`
	Week        int              `json:"week"`
	Proper      int              `json:"proper"`
	SpecialDays []SpecialDayInfo `json:"special_days"`
}

// TraditionResponse is one tradition from /traditions
type TraditionResponse struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Liturgical Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testEasterDates()
	tr.testCalendarYear()
	tr.testSpecificDates()
	tr.testTraditions()
	tr.testICSFeed()
	tr.testEdgeCases()
	tr.testDecemberBoundary()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testEasterDates() {
	tr.printSection("Easter Computus")

	testCases := []struct {
		year   int
		easter string
	}{
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
		{2030, "2030-04-21"},
		{2038, "2038-04-25"}, // latest Easter this century
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/easter/%d", tc.year))
		if err != nil {
			tr.recordError(fmt.Sprintf("Easter %d", tc.year), err.Error())
			continue
		}

		var dates EasterResponse
		if err := tr.parseDataAs(resp, &dates); err != nil {
			tr.recordError(fmt.Sprintf("Easter %d", tc.year), err.Error())
			continue
		}

		if dates.Easter == tc.easter {
			tr.recordSuccess(fmt.Sprintf("Easter %d = %s", tc.year, dates.Easter))
		} else {
			tr.recordError(fmt.Sprintf("Easter %d", tc.year),
				fmt.Sprintf("got %s, want %s", dates.Easter, tc.easter))
		}
	}
}

func (tr *TestRunner) testCalendarYear() {
	tr.printSection("Liturgical Year 2024")

	resp, err := tr.get("/api/v1/calendar/2024")
	if err != nil {
		tr.recordError("Calendar 2024", err.Error())
		return
	}

	var year YearResponse
	if err := tr.parseDataAs(resp, &year); err != nil {
		tr.recordError("Calendar 2024", err.Error())
		return
	}

	if year.Cycle == "C" {
		tr.recordSuccess("Advent 2024 begins Year C")
	} else {
		tr.recordError("Calendar 2024", fmt.Sprintf("cycle = %s, want C", year.Cycle))
	}

	if len(year.Seasons) == 6 {
		tr.recordSuccess("Year has 6 seasons")
	} else {
		tr.recordError("Calendar 2024", fmt.Sprintf("%d seasons, want 6", len(year.Seasons)))
	}

	if year.StartDate == "2024-12-01" && year.EndDate == "2025-11-29" {
		tr.recordSuccess(fmt.Sprintf("Year spans %s to %s", year.StartDate, year.EndDate))
	} else {
		tr.recordError("Calendar 2024",
			fmt.Sprintf("span %s..%s, want 2024-12-01..2025-11-29", year.StartDate, year.EndDate))
	}

	// Seasons must tile the year with no gaps
	contiguous := true
	for i := 1; i < len(year.Seasons); i++ {
		prevEnd, err1 := time.Parse("2006-01-02", year.Seasons[i-1].EndDate)
		curStart, err2 := time.Parse("2006-01-02", year.Seasons[i].StartDate)
		if err1 != nil || err2 != nil || !curStart.Equal(prevEnd.AddDate(0, 0, 1)) {
			contiguous = false
			tr.recordError("Season gap",
				fmt.Sprintf("%s ends %s but %s starts %s",
					year.Seasons[i-1].Name, year.Seasons[i-1].EndDate,
					year.Seasons[i].Name, year.Seasons[i].StartDate))
		}
	}
	if contiguous {
		tr.recordSuccess("Seasons are contiguous")
	}
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		date         string
		expectSeason string
		expectFeast  string
		description  string
	}{
		// Advent and Christmas 2024
		{"2024-12-01", "Advent", "", "First Sunday of Advent 2024"},
		{"2024-12-24", "Advent", "", "Christmas Eve"},
		{"2024-12-25", "Christmas", "Christmas Day", "Christmas Day"},
		{"2025-01-06", "Christmas", "Epiphany", "Epiphany"},
		{"2025-01-12", "Christmas", "", "Baptism of the Lord closes Christmas"},
		{"2025-01-13", "Ordinary Time", "", "First day of Ordinary Time"},

		// Lent and Easter 2025
		{"2025-03-05", "Lent", "Ash Wednesday", "Ash Wednesday opens Lent"},
		{"2025-04-18", "Lent", "Good Friday", "Good Friday"},
		{"2025-04-19", "Lent", "Easter Vigil", "Holy Saturday closes Lent"},
		{"2025-04-20", "Easter", "Easter Sunday", "Easter Sunday"},
		{"2025-06-08", "Easter", "Pentecost", "Pentecost closes the Easter season"},
		{"2025-06-09", "Ordinary Time", "", "Ordinary Time resumes"},

		// End of the year
		{"2025-11-23", "Ordinary Time", "Christ the King", "Christ the King"},
		{"2025-11-29", "Ordinary Time", "", "Eve of the next Advent"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/calendar/date/%s", tc.date))
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var day DayResponse
		if err := tr.parseDataAs(resp, &day); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if day.Season.Name != tc.expectSeason {
			tr.recordError(tc.date,
				fmt.Sprintf("season = %s, want %s (%s)", day.Season.Name, tc.expectSeason, tc.description))
			continue
		}

		if tc.expectFeast != "" && !hasSpecialDay(day.SpecialDays, tc.expectFeast) {
			tr.recordError(tc.date,
				fmt.Sprintf("missing %s (%s)", tc.expectFeast, tc.description))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%s: %s [%s] (%s)",
			tc.date, day.Season.Name, day.Season.Color, tc.description))
	}
}

func (tr *TestRunner) testTraditions() {
	tr.printSection("Traditions")

	resp, err := tr.get("/api/v1/traditions")
	if err != nil {
		tr.recordError("Traditions", err.Error())
		return
	}

	var traditions []TraditionResponse
	if err := tr.parseDataAs(resp, &traditions); err != nil {
		tr.recordError("Traditions", err.Error())
		return
	}

	if len(traditions) >= 4 {
		tr.recordSuccess(fmt.Sprintf("%d traditions registered", len(traditions)))
	} else {
		tr.recordError("Traditions", fmt.Sprintf("%d traditions, want at least 4", len(traditions)))
	}

	// A tradition catalog changes the computed calendar
	resp, err = tr.get("/api/v1/calendar/date/2025-10-31?tradition=lutheran")
	if err != nil {
		tr.recordError("Lutheran Reformation Day", err.Error())
		return
	}

	var day DayResponse
	if err := tr.parseDataAs(resp, &day); err != nil {
		tr.recordError("Lutheran Reformation Day", err.Error())
		return
	}

	if hasSpecialDay(day.SpecialDays, "Reformation Day") {
		tr.recordSuccess("Lutheran calendar observes Reformation Day")
	} else {
		tr.recordError("Lutheran Reformation Day", "feast missing on 2025-10-31")
	}
}

func (tr *TestRunner) testICSFeed() {
	tr.printSection("iCalendar Feed")

	resp, err := tr.getRaw("/api/v1/calendar/2024/ics")
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tr.recordError("ICS", fmt.Sprintf("HTTP %d", resp.StatusCode))
		return
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		tr.recordError("ICS", fmt.Sprintf("Content-Type = %s", ct))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}

	feed := string(body)
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		tr.recordError("ICS", "missing BEGIN:VCALENDAR")
		return
	}
	if !strings.Contains(feed, "SUMMARY:Easter Sunday") {
		tr.recordError("ICS", "missing Easter Sunday event")
		return
	}

	events := strings.Count(feed, "BEGIN:VEVENT")
	tr.recordSuccess(fmt.Sprintf("ICS feed valid with %d events", events))
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path        string
		wantStatus  int
		description string
	}{
		{"/api/v1/easter/abc", http.StatusBadRequest, "non-numeric year"},
		{"/api/v1/easter/1000", http.StatusBadRequest, "pre-Gregorian year"},
		{"/api/v1/calendar/2024?tradition=orthodox", http.StatusNotFound, "unknown tradition"},
		{"/api/v1/calendar/date/2025-02-30", http.StatusBadRequest, "impossible date"},
		{"/api/v1/calendar/date/not-a-date", http.StatusBadRequest, "malformed date"},
		{"/api/v1/traditions/nonexistent", http.StatusNotFound, "unknown tradition slug"},
	}

	for _, tc := range testCases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.description, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == tc.wantStatus {
			tr.recordSuccess(fmt.Sprintf("%s → HTTP %d", tc.description, resp.StatusCode))
		} else {
			tr.recordError(tc.description,
				fmt.Sprintf("HTTP %d, want %d", resp.StatusCode, tc.wantStatus))
		}
	}
}

func (tr *TestRunner) testDecemberBoundary() {
	tr.printSection("Full December 2025 (year rollover)")

	for day := 1; day <= 31; day++ {
		date := fmt.Sprintf("2025-12-%02d", day)
		resp, err := tr.get(fmt.Sprintf("/api/v1/calendar/date/%s", date))
		if err != nil {
			tr.recordError(date, err.Error())
			continue
		}

		var info DayResponse
		if err := tr.parseDataAs(resp, &info); err != nil {
			tr.recordError(date, err.Error())
			continue
		}

		// Advent 2025 began November 30, so all of December belongs to
		// liturgical year 2025.
		if info.AdventYear != 2025 {
			tr.recordError(date, fmt.Sprintf("advent_year = %d, want 2025", info.AdventYear))
			continue
		}

		wantSeason := "Advent"
		if day >= 25 {
			wantSeason = "Christmas"
		}
		if info.Season.Name != wantSeason {
			tr.recordError(date, fmt.Sprintf("season = %s, want %s", info.Season.Name, wantSeason))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%s: %s week %d [%s]",
			date, info.Season.Name, info.Week, info.Cycle))

		if tr.verbose {
			for _, d := range info.SpecialDays {
				fmt.Printf("    Observance: %s (%s)\n", d.Name, d.Type)
			}
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func hasSpecialDay(days []SpecialDayInfo, name string) bool {
	for _, d := range days {
		if d.Name == name {
			return true
		}
	}
	return false
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show observance details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	_, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
