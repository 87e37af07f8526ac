package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/panchang-api/internal/config"
	"github.com/zapponejosh/panchang-api/internal/database"
	"github.com/zapponejosh/panchang-api/internal/logger"
	"github.com/zapponejosh/panchang-api/internal/panchang"
)

const dateLayout = "2006-01-02"

// Calculator computes the almanac for a date and place.
type Calculator interface {
	Calculate(ctx context.Context, dateISO string, loc panchang.GeoLocation) (*panchang.Result, error)
}

// LocationStore reads and writes saved locations.
type LocationStore interface {
	Health(ctx context.Context) error
	GetLocationBySlug(ctx context.Context, slug string) (*database.Location, error)
	ListLocations(ctx context.Context) ([]database.Location, error)
	CreateLocation(ctx context.Context, loc *database.Location) error
	DeleteLocation(ctx context.Context, slug string) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	store  LocationStore
	calc   Calculator
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store LocationStore, calc Calculator, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		store:  store,
		calc:   calc,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// errLocationNotFound marks a slug with no saved location.
var errLocationNotFound = errors.New("location not found")

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetTodayPanchang handles GET /api/v1/panchang/today. "Today" is the current
// date in the location's time zone.
func (h *Handlers) GetTodayPanchang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loc, ok := h.resolveLocation(w, r)
	if !ok {
		return
	}
	tz, err := loc.Validate()
	if err != nil {
		h.writeCalcError(ctx, w, err)
		return
	}

	result, err := h.calc.Calculate(ctx, h.now().In(tz).Format(dateLayout), loc)
	if err != nil {
		h.writeCalcError(ctx, w, err)
		return
	}

	WriteSuccess(w, result)
}

// GetDatePanchang handles GET /api/v1/panchang/date/{date}. date is
// YYYY-MM-DD or an RFC 3339 timestamp.
func (h *Handlers) GetDatePanchang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dateStr := chi.URLParam(r, "date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}

	loc, ok := h.resolveLocation(w, r)
	if !ok {
		return
	}

	result, err := h.calc.Calculate(ctx, dateStr, loc)
	if err != nil {
		h.writeCalcError(ctx, w, err)
		return
	}

	WriteSuccess(w, result)
}

// RangeResponse is the payload of the range endpoint.
type RangeResponse struct {
	Location string             `json:"location"`
	Start    string             `json:"start"`
	End      string             `json:"end"`
	Days     []*panchang.Result `json:"days"`
	Skipped  []string           `json:"skipped"`
}

// GetRangePanchang handles GET /api/v1/panchang/range?start=YYYY-MM-DD&end=YYYY-MM-DD
// Days that fail to calculate are logged and listed under "skipped".
func (h *Handlers) GetRangePanchang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := time.Parse(dateLayout, startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := time.Parse(dateLayout, endStr)
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

	loc, ok := h.resolveLocation(w, r)
	if !ok {
		return
	}
	if _, err := loc.Validate(); err != nil {
		h.writeCalcError(ctx, w, err)
		return
	}

	resp := RangeResponse{
		Location: loc.Label(),
		Start:    startStr,
		End:      endStr,
		Days:     make([]*panchang.Result, 0, days),
		Skipped:  []string{},
	}
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return
		}
		date := current.Format(dateLayout)
		result, err := h.calc.Calculate(ctx, date, loc)
		if err != nil {
			logger.Warn(ctx, "failed to calculate date in range",
				slog.String("date", date),
				slog.Any("error", err))
			resp.Skipped = append(resp.Skipped, date)
			continue
		}
		resp.Days = append(resp.Days, result)
	}

	WriteSuccess(w, resp)
}

// ListLocations handles GET /api/v1/locations
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		logger.Error(r.Context(), "failed to list locations", err)
		WriteInternalError(w, "Failed to retrieve locations")
		return
	}

	WriteSuccess(w, locations)
}

// GetLocation handles GET /api/v1/locations/{slug}
func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	loc, err := h.store.GetLocationBySlug(r.Context(), slug)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Location %q not found", slug))
			return
		}
		logger.Error(r.Context(), "failed to get location", err, slog.String("slug", slug))
		WriteInternalError(w, "Failed to retrieve location")
		return
	}

	WriteSuccess(w, loc)
}

// CreateLocation handles POST /api/v1/locations
func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Slug      string   `json:"slug"`
		Name      string   `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Timezone  string   `json:"timezone"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		WriteBadRequest(w, "latitude and longitude are required")
		return
	}

	loc := &database.Location{
		Slug:      strings.TrimSpace(req.Slug),
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Timezone:  strings.TrimSpace(req.Timezone),
	}

	if err := h.store.CreateLocation(ctx, loc); err != nil {
		switch {
		case errors.Is(err, database.ErrInvalid):
			WriteBadRequest(w, err.Error())
		case errors.Is(err, database.ErrDuplicate):
			WriteError(w, http.StatusConflict, fmt.Sprintf("Location %q already exists", loc.Slug), CodeDuplicate)
		default:
			logger.Error(ctx, "failed to create location", err)
			WriteInternalError(w, "Failed to create location")
		}
		return
	}

	logger.Info(ctx, "location created", slog.String("slug", loc.Slug))
	WriteCreated(w, loc)
}

// DeleteLocation handles DELETE /api/v1/locations/{slug}
func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.store.DeleteLocation(r.Context(), slug); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Location %q not found", slug))
			return
		}
		logger.Error(r.Context(), "failed to delete location", err, slog.String("slug", slug))
		WriteInternalError(w, "Failed to delete location")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Location deleted"})
}

// resolveLocation reads ?lat=&lon=&tz= when lat or lon is present, otherwise
// looks up ?location=slug, falling back to the configured default slug. On
// failure it writes the error response and returns false.
func (h *Handlers) resolveLocation(w http.ResponseWriter, r *http.Request) (panchang.GeoLocation, bool) {
	q := r.URL.Query()

	if q.Has("lat") || q.Has("lon") {
		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "lat must be a decimal number", CodeInvalidLocation)
			return panchang.GeoLocation{}, false
		}
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "lon must be a decimal number", CodeInvalidLocation)
			return panchang.GeoLocation{}, false
		}
		tz := q.Get("tz")
		if tz == "" {
			WriteError(w, http.StatusBadRequest, "tz is required with lat and lon", CodeInvalidLocation)
			return panchang.GeoLocation{}, false
		}
		return panchang.GeoLocation{
			Name:      q.Get("name"),
			Latitude:  lat,
			Longitude: lon,
			Timezone:  tz,
		}, true
	}

	slug := q.Get("location")
	if slug == "" {
		slug = h.cfg.DefaultLocation
	}

	loc, err := h.lookupLocation(r.Context(), slug)
	if err != nil {
		if errors.Is(err, errLocationNotFound) {
			WriteNotFound(w, fmt.Sprintf("Location %q not found", slug))
			return panchang.GeoLocation{}, false
		}
		logger.Error(r.Context(), "failed to resolve location", err, slog.String("slug", slug))
		WriteInternalError(w, "Failed to resolve location")
		return panchang.GeoLocation{}, false
	}

	return loc.GeoLocation(), true
}

func (h *Handlers) lookupLocation(ctx context.Context, slug string) (*database.Location, error) {
	loc, err := h.store.GetLocationBySlug(ctx, slug)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", errLocationNotFound, slug)
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// writeCalcError maps calculator input errors to 400 and anything else to 500.
func (h *Handlers) writeCalcError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, panchang.ErrInvalidDate):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidDate)
	case errors.Is(err, panchang.ErrInvalidLocation):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidLocation)
	case errors.Is(err, panchang.ErrNoSunrise):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeNoSunrise)
	default:
		logger.Error(ctx, "panchang calculation failed", err)
		WriteInternalError(w, "Failed to calculate panchang")
	}
}

// decodeJSON decodes a JSON request body of at most 64 KiB, rejecting
// unknown fields.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}
