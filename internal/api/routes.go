package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/zmanim-api/internal/config"
	"github.com/zapponejosh/zmanim-api/internal/observability"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /metrics
//	GET    /api/v1/zmanim                        ?lat&lon&elevation&tz&date&calculator
//	GET    /api/v1/zmanim/range                  ?lat&lon&elevation&tz&start&end&calculator
//	GET    /api/v1/locations
//	POST   /api/v1/locations                     (API key)
//	DELETE /api/v1/locations/{name}              (API key)
//	GET    /api/v1/locations/{name}/zmanim       ?date&calculator
//	GET    /api/v1/distance                      ?from&to
//	GET    /api/v1/hebrew-date                   ?date
//	GET    /api/v1/hebrew-date/{year}/{month}/{day}
//	GET    /api/v1/years/{year}
//	GET    /api/v1/molad/{year}/{month}
func SetupRoutes(handlers *Handlers, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger, metrics),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	authWrap := AuthMiddleware(cfg, logger)

	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Solar times
		// ======================================================================
		r.Get("/zmanim", handlers.GetZmanim)
		r.Get("/zmanim/range", handlers.GetZmanimRange)

		// ======================================================================
		// Saved locations
		// ======================================================================
		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.ListLocations)
			r.With(authWrap).Post("/", handlers.CreateLocation)
			r.With(authWrap).Delete("/{name}", handlers.DeleteLocation)
			r.Get("/{name}/zmanim", handlers.GetLocationZmanim)
		})
		r.Get("/distance", handlers.GetDistance)

		// ======================================================================
		// Jewish calendar
		// ======================================================================
		r.Get("/hebrew-date", handlers.GetHebrewDate)
		r.Get("/hebrew-date/{year}/{month}/{day}", handlers.GetGregorianDate)
		r.Get("/years/{year}", handlers.GetJewishYear)
		r.Get("/molad/{year}/{month}", handlers.GetMolad)
	})

	return r
}
