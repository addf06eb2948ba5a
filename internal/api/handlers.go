package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asachs01/lectio-api/internal/calendar"
	"github.com/asachs01/lectio-api/internal/database"
	"github.com/asachs01/lectio-api/internal/ics"
	"github.com/asachs01/lectio-api/internal/logger"
)

const (
	// maxFeastRangeDays caps the stored-feast range query. Feasts are
	// sparse (around thirty per year), so ten years stays cheap.
	maxFeastRangeDays = 3660

	// maxRebuildYears caps a single admin rebuild request.
	maxRebuildYears = 200
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db    *database.DB
	cache *YearCache
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB) *Handlers {
	return &Handlers{
		db:    db,
		cache: NewYearCache(buildYear),
	}
}

// buildYear computes a liturgical year for a tradition expression: empty
// for the shared base calendar, a single slug for one tradition, or a
// comma-separated list blended left to right.
func buildYear(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error) {
	slugs := splitTraditions(tradition)
	if len(slugs) == 0 {
		return calendar.Build(adventYear)
	}

	var merged *calendar.LiturgicalYearInfo
	for _, slug := range slugs {
		b, err := calendar.NewTraditionBuilder(slug)
		if err != nil {
			return nil, err
		}
		info, err := b.Build(adventYear)
		if err != nil {
			return nil, err
		}

		if merged == nil {
			merged = info
			continue
		}
		merged, err = calendar.Blend(merged, info)
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// splitTraditions breaks a tradition expression into trimmed slugs.
func splitTraditions(tradition string) []string {
	var slugs []string
	for _, s := range strings.Split(tradition, ",") {
		if s = strings.TrimSpace(s); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// traditionParam returns the canonical tradition expression from the
// query string, empty for the base calendar. Canonicalizing keeps cache
// keys stable across spacing variations.
func traditionParam(r *http.Request) string {
	return strings.Join(splitTraditions(r.URL.Query().Get("tradition")), ",")
}

// yearParam parses the {year} path value, writing a 400 on failure.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %q", raw))
		return 0, false
	}
	return year, true
}

// writeCalendarError maps calendar engine errors onto HTTP responses.
func writeCalendarError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, calendar.ErrYearOutOfRange):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, calendar.ErrUnknownTradition):
		WriteNotFound(w, err.Error())
	default:
		logger.Error(r.Context(), "calendar computation failed", err)
		WriteInternalError(w, "Internal server error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		logger.Warn(r.Context(), "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status": "healthy",
		"cache":  h.cache.DumpStats(),
	})
}

// GetEaster handles GET /api/v1/easter/{year}
// The year is the civil year the Easter falls in.
func (h *Handlers) GetEaster(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	if err := calendar.ValidateYear(year); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, EasterView{
		Year:            year,
		EasterDatesView: newEasterDatesView(calendar.EasterDatesIn(year)),
	})
}

// GetCalendarYear handles GET /api/v1/calendar/{year}
// The year is the Advent year the liturgical year begins in. The
// tradition query parameter selects a feast catalog; a comma-separated
// list blends several.
func (h *Handlers) GetCalendarYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	tradition := traditionParam(r)

	info, err := h.cache.Get(year, tradition)
	if err != nil {
		writeCalendarError(w, r, err)
		return
	}

	WriteSuccess(w, newYearView(info, tradition))
}

// GetCalendarICS handles GET /api/v1/calendar/{year}/ics
// The feed downloads as an attachment; with subscribe=true it instead
// carries publish headers for calendar subscriptions.
func (h *Handlers) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	tradition := traditionParam(r)

	info, err := h.cache.Get(year, tradition)
	if err != nil {
		writeCalendarError(w, r, err)
		return
	}

	opts := ics.Options{Subscription: r.URL.Query().Get("subscribe") == "true"}
	if tradition != "" {
		opts.CalendarName = fmt.Sprintf("Liturgical Calendar %d (%s)", year, tradition)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if !opts.Subscription {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"liturgical-%d.ics\"", year))
	}

	if err := ics.WriteYear(w, info, opts); err != nil {
		// The status line is already gone; all we can do is log.
		logger.Error(r.Context(), "ics write failed", err, slog.Int("year", year))
	}
}

// GetCalendarDate handles GET /api/v1/calendar/date/{date}
func (h *Handlers) GetCalendarDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	date, err := calendar.ParseDateString(raw)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", raw))
		return
	}

	h.resolveDate(w, r, date)
}

// GetToday handles GET /api/v1/calendar/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.resolveDate(w, r, time.Now())
}

// resolveDate answers both date endpoints. Date resolution accepts a
// single tradition slug; blends only apply to whole-year views.
func (h *Handlers) resolveDate(w http.ResponseWriter, r *http.Request, date time.Time) {
	tradition := traditionParam(r)
	if strings.Contains(tradition, ",") {
		WriteBadRequest(w, "Date resolution accepts a single tradition")
		return
	}

	b := calendar.NewBuilder()
	if tradition != "" {
		var err error
		b, err = calendar.NewTraditionBuilder(tradition)
		if err != nil {
			writeCalendarError(w, r, err)
			return
		}
	}

	day, err := b.ResolveDate(date)
	if err != nil {
		writeCalendarError(w, r, err)
		return
	}

	WriteSuccess(w, newDayView(day))
}

// ListTraditions handles GET /api/v1/traditions
func (h *Handlers) ListTraditions(w http.ResponseWriter, r *http.Request) {
	views := make([]TraditionView, len(calendar.Traditions))
	for i, t := range calendar.Traditions {
		views[i] = newTraditionView(t)
	}

	WriteSuccess(w, views)
}

// GetTradition handles GET /api/v1/traditions/{slug}
func (h *Handlers) GetTradition(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	t, err := calendar.TraditionBySlug(slug)
	if err != nil {
		WriteNotFound(w, err.Error())
		return
	}

	WriteSuccess(w, newTraditionView(t))
}

// GetStoredCalendar handles GET /api/v1/traditions/{slug}/calendar/{year}
// It reads only seeded rows; a year that was never seeded is a 404 even
// when the engine could compute it.
func (h *Handlers) GetStoredCalendar(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	trad, err := h.db.GetTraditionBySlug(r.Context(), slug)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Tradition %q has not been seeded", slug))
			return
		}
		logger.Error(r.Context(), "tradition lookup failed", err, slog.String("slug", slug))
		WriteInternalError(w, "Internal server error")
		return
	}

	seasons, err := h.db.GetSeasonsForYear(r.Context(), trad.ID, year)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Year %d has not been seeded for tradition %q", year, slug))
			return
		}
		logger.Error(r.Context(), "stored seasons lookup failed", err, slog.Int("year", year))
		WriteInternalError(w, "Internal server error")
		return
	}

	days, err := h.db.GetSpecialDaysForYear(r.Context(), trad.ID, year)
	if err != nil {
		logger.Error(r.Context(), "stored days lookup failed", err, slog.Int("year", year))
		WriteInternalError(w, "Internal server error")
		return
	}

	WriteSuccess(w, newStoredYearView(slug, year, seasons, days))
}

// GetStoredFeasts handles GET /api/v1/traditions/{slug}/feasts
// The start and end query parameters bound the range, inclusive.
func (h *Handlers) GetStoredFeasts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end query parameters are required")
		return
	}

	start, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", startStr))
		return
	}
	end, err := calendar.ParseDateString(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if end.Before(start) {
		WriteBadRequest(w, "End date must be on or after start date")
		return
	}
	if calendar.DaysBetween(start, end) > maxFeastRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", maxFeastRangeDays))
		return
	}

	trad, err := h.db.GetTraditionBySlug(r.Context(), slug)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Tradition %q has not been seeded", slug))
			return
		}
		logger.Error(r.Context(), "tradition lookup failed", err, slog.String("slug", slug))
		WriteInternalError(w, "Internal server error")
		return
	}

	startDate := calendar.FormatDate(start)
	endDate := calendar.FormatDate(end)
	days, err := h.db.GetSpecialDaysInRange(r.Context(), trad.ID, startDate, endDate)
	if err != nil {
		logger.Error(r.Context(), "stored feast range lookup failed", err, slog.String("slug", slug))
		WriteInternalError(w, "Internal server error")
		return
	}

	WriteSuccess(w, newFeastRangeView(slug, startDate, endDate, days))
}

// rebuildRequest is the body of POST /api/v1/admin/rebuild. Advent
// years, inclusive; end_year defaults to start_year.
type rebuildRequest struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

// RebuildCalendars handles POST /api/v1/admin/rebuild
// It recomputes and stores every registered tradition for the given
// Advent years, replacing any rows already seeded.
func (h *Handlers) RebuildCalendars(w http.ResponseWriter, r *http.Request) {
	var req rebuildRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.EndYear == 0 {
		req.EndYear = req.StartYear
	}

	if err := calendar.ValidateYear(req.StartYear); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if err := calendar.ValidateYear(req.EndYear); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.EndYear < req.StartYear {
		WriteBadRequest(w, "end_year must not be before start_year")
		return
	}
	if req.EndYear-req.StartYear+1 > maxRebuildYears {
		WriteBadRequest(w, fmt.Sprintf("Cannot rebuild more than %d years at once", maxRebuildYears))
		return
	}

	seeded := 0
	for _, t := range calendar.Traditions {
		b, err := calendar.NewTraditionBuilder(t.Slug)
		if err != nil {
			logger.Error(r.Context(), "tradition builder failed", err, slog.String("slug", t.Slug))
			WriteInternalError(w, "Internal server error")
			return
		}

		trad := &database.Tradition{Slug: t.Slug, Name: t.Name, Description: t.Description}
		for year := req.StartYear; year <= req.EndYear; year++ {
			info, err := b.Build(year)
			if err != nil {
				if errors.Is(err, calendar.ErrYearOutOfRange) {
					WriteBadRequest(w, err.Error())
					return
				}
				logger.Error(r.Context(), "year build failed", err, slog.Int("year", year))
				WriteInternalError(w, "Internal server error")
				return
			}

			if err := h.db.ReplaceYear(r.Context(), trad, info); err != nil {
				logger.Error(r.Context(), "year seed failed", err,
					slog.String("slug", t.Slug), slog.Int("year", year))
				WriteInternalError(w, "Internal server error")
				return
			}
			seeded++
		}
	}

	logger.Info(r.Context(), "calendars rebuilt",
		slog.Int("start_year", req.StartYear),
		slog.Int("end_year", req.EndYear),
		slog.Int("years_seeded", seeded),
	)

	WriteSuccess(w, map[string]any{
		"traditions":   len(calendar.Traditions),
		"start_year":   req.StartYear,
		"end_year":     req.EndYear,
		"years_seeded": seeded,
	})
}
