package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asachs01/lectio-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                                     liveness plus cache stats
//	GET  /metrics                                    Prometheus metrics
//	GET  /api/v1/easter/{year}                       moveable dates for a civil year
//	GET  /api/v1/calendar/{year}                     computed liturgical year
//	GET  /api/v1/calendar/{year}/ics                 the same year as an iCalendar feed
//	GET  /api/v1/calendar/date/{date}                liturgical position of a date
//	GET  /api/v1/calendar/today                      liturgical position of today
//	GET  /api/v1/traditions                          registered traditions
//	GET  /api/v1/traditions/{slug}                   one tradition
//	GET  /api/v1/traditions/{slug}/calendar/{year}   seeded year from the database
//	GET  /api/v1/traditions/{slug}/feasts            seeded observances in a range
//	POST /api/v1/admin/rebuild                       recompute and reseed (admin key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())
	r.Use(MetricsMiddleware())

	// ==========================================================================
	// Operational routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Computed calendar routes
		// ======================================================================
		r.Get("/easter/{year}", handlers.GetEaster)
		r.Get("/calendar/{year}", handlers.GetCalendarYear)
		r.Get("/calendar/{year}/ics", handlers.GetCalendarICS)
		r.Get("/calendar/date/{date}", handlers.GetCalendarDate)
		r.Get("/calendar/today", handlers.GetToday)

		// ======================================================================
		// Tradition routes (computed registry plus seeded rows)
		// ======================================================================
		r.Get("/traditions", handlers.ListTraditions)
		r.Get("/traditions/{slug}", handlers.GetTradition)
		r.Get("/traditions/{slug}/calendar/{year}", handlers.GetStoredCalendar)
		r.Get("/traditions/{slug}/feasts", handlers.GetStoredFeasts)

		// ======================================================================
		// Admin routes (admin key only)
		// ======================================================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(cfg, logger))
			r.Post("/rebuild", handlers.RebuildCalendars)
		})
	})

	return r
}
