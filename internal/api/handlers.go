package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/calendar"
	"github.com/zapponejosh/zmanim-api/internal/config"
	"github.com/zapponejosh/zmanim-api/internal/database"
	"github.com/zapponejosh/zmanim-api/internal/geo"
	"github.com/zapponejosh/zmanim-api/internal/logger"
	"github.com/zapponejosh/zmanim-api/internal/observability"
	"github.com/zapponejosh/zmanim-api/internal/zmanim"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	resolver *zmanim.Resolver
	metrics  *observability.Metrics
	clock    clockwork.Clock
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance. clock decides what "today"
// is for requests without a date.
func NewHandlers(db *database.DB, cfg *config.Config, metrics *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) *Handlers {
	resolver := zmanim.NewResolver(db, cfg.Calculator, cfg.UseElevation).WithClock(clock)
	return &Handlers{
		db:       db,
		resolver: resolver,
		metrics:  metrics,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		logger.FromContext(ctx, h.logger).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// =============================================================================
// Solar times
// =============================================================================

// GetZmanim handles GET /api/v1/zmanim?lat=&lon=&elevation=&tz=&date=&calculator=
func (h *Handlers) GetZmanim(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	coords, err := parseCoordinates(q)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	date, err := parseOptionalDate(q.Get("date"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	cal, err := h.resolver.Resolve(r.Context(), zmanim.Request{
		Coordinates: coords,
		Date:        date,
		Calculator:  q.Get("calculator"),
	})
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	WriteSuccess(w, h.summarize(cal))
}

// GetZmanimRange handles GET /api/v1/zmanim/range?lat=&lon=&start=&end=
func (h *Handlers) GetZmanimRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	coords, err := parseCoordinates(q)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := calendar.ParseDateString(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	cal, err := h.resolver.Resolve(r.Context(), zmanim.Request{
		Coordinates: coords,
		Date:        startDate,
		Calculator:  q.Get("calculator"),
	})
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	results := make([]*zmanim.Day, 0, days)
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		next := *cal
		y, m, d := current.Date()
		next.Date = time.Date(y, m, d, 0, 0, 0, 0, cal.Location.TimeZone())
		results = append(results, h.summarize(&next))
	}

	WriteSuccess(w, map[string]any{
		"start": startStr,
		"end":   endStr,
		"days":  results,
	})
}

// summarize evaluates cal and records it in the calculation metrics.
func (h *Handlers) summarize(cal *zmanim.Calendar) *zmanim.Day {
	day := zmanim.Summarize(cal)
	h.metrics.RecordCalculation(day.Calculator, day.Missing())
	return day
}

// =============================================================================
// Saved locations
// =============================================================================

// ListLocations handles GET /api/v1/locations
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.db.ListLocations(r.Context())
	if err != nil {
		logger.Error(r.Context(), h.logger, "failed to list locations", err)
		WriteInternalError(w, "Failed to retrieve locations")
		return
	}

	WriteSuccess(w, locations)
}

// CreateLocation handles POST /api/v1/locations
func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Elevation float64 `json:"elevation"`
		TimeZone  string  `json:"timezone"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	loc := &database.Location{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Elevation: req.Elevation,
		TimeZone:  req.TimeZone,
	}

	if err := h.db.CreateLocation(r.Context(), loc); err != nil {
		switch {
		case errors.Is(err, geo.ErrInvalidLocation):
			WriteBadRequest(w, err.Error())
		case errors.Is(err, database.ErrDuplicate):
			WriteConflict(w, fmt.Sprintf("Location %q already exists", loc.Name))
		default:
			logger.Error(r.Context(), h.logger, "failed to create location", err)
			WriteInternalError(w, "Failed to create location")
		}
		return
	}

	logger.FromContext(r.Context(), h.logger).Info("location created",
		slog.String("name", loc.Name),
		slog.Int64("id", loc.ID),
	)
	WriteCreated(w, loc)
}

// DeleteLocation handles DELETE /api/v1/locations/{name}
func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.db.DeleteLocation(r.Context(), name); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Location not found")
			return
		}
		logger.Error(r.Context(), h.logger, "failed to delete location", err, slog.String("name", name))
		WriteInternalError(w, "Failed to delete location")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Location deleted"})
}

// GetLocationZmanim handles GET /api/v1/locations/{name}/zmanim?date=&calculator=
func (h *Handlers) GetLocationZmanim(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := parseOptionalDate(q.Get("date"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	cal, err := h.resolver.Resolve(r.Context(), zmanim.Request{
		LocationName: chi.URLParam(r, "name"),
		Date:         date,
		Calculator:   q.Get("calculator"),
	})
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	WriteSuccess(w, h.summarize(cal))
}

// distance is the geodesic and rhumb line between two saved locations.
// Geodesic fields are null when Vincenty's formula does not converge.
type distance struct {
	From              string   `json:"from"`
	To                string   `json:"to"`
	GeodesicDistance  *float64 `json:"geodesic_distance_m"`
	InitialBearing    *float64 `json:"initial_bearing"`
	FinalBearing      *float64 `json:"final_bearing"`
	RhumbLineDistance float64  `json:"rhumb_line_distance_m"`
	RhumbLineBearing  float64  `json:"rhumb_line_bearing"`
}

// GetDistance handles GET /api/v1/distance?from=&to=
func (h *Handlers) GetDistance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromName, toName := q.Get("from"), q.Get("to")
	if fromName == "" || toName == "" {
		WriteBadRequest(w, "Both from and to location names are required")
		return
	}

	from, err := h.db.LookupLocation(r.Context(), fromName)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}
	to, err := h.db.LookupLocation(r.Context(), toName)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	resp := distance{
		From:              from.Name(),
		To:                to.Name(),
		RhumbLineDistance: from.RhumbLineDistance(to),
		RhumbLineBearing:  from.RhumbLineBearing(to),
	}
	if g, ok := from.GeodesicTo(to); ok {
		resp.GeodesicDistance = &g.Distance
		resp.InitialBearing = &g.InitialBearing
		resp.FinalBearing = &g.FinalBearing
	}

	WriteSuccess(w, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// writeResolveError maps lookup and validation failures to responses.
func (h *Handlers) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case database.IsNotFound(err):
		WriteNotFound(w, "Location not found")
	case errors.Is(err, geo.ErrInvalidLocation),
		errors.Is(err, astro.ErrUnknownCalculator),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, zmanim.ErrNoLocation):
		WriteBadRequest(w, err.Error())
	default:
		logger.Error(r.Context(), h.logger, "failed to resolve request", err)
		WriteInternalError(w, "Failed to compute times")
	}
}

// parseCoordinates reads lat, lon, elevation and tz. lat and lon are
// required; range checks are left to geo.New.
func parseCoordinates(q url.Values) (*geo.Options, error) {
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat: %s", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lon: %s", lonStr)
	}

	opts := &geo.Options{
		Name:      latStr + "," + lonStr,
		Latitude:  lat,
		Longitude: lon,
		TimeZone:  q.Get("tz"),
	}
	if s := q.Get("elevation"); s != "" {
		if opts.Elevation, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("invalid elevation: %s", s)
		}
	}
	return opts, nil
}

// parseOptionalDate parses a YYYY-MM-DD date. Empty means the zero time,
// which the resolver reads as today.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	date, err := calendar.ParseDateString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s. Use YYYY-MM-DD", s)
	}
	return date, nil
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// today returns the current civil date in tz.
func (h *Handlers) today(tz *time.Location) time.Time {
	return h.clock.Now().In(tz)
}
