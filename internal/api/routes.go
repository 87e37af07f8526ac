package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/panchang-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/panchang/today            ?location= | ?lat=&lon=&tz=
//	GET    /api/v1/panchang/date/{date}      ?location= | ?lat=&lon=&tz=
//	GET    /api/v1/panchang/range            ?start=&end= plus location
//	GET    /api/v1/locations
//	GET    /api/v1/locations/{slug}
//	POST   /api/v1/locations                 X-API-Key
//	DELETE /api/v1/locations/{slug}          X-API-Key
func SetupRoutes(handlers *Handlers, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		RecoveryMiddleware(log),
		RequestIDMiddleware(),
		LoggingMiddleware(log),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	auth := AuthMiddleware(cfg, log)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg, log))

		r.Route("/panchang", func(r chi.Router) {
			r.Get("/today", handlers.GetTodayPanchang)
			r.Get("/date/{date}", handlers.GetDatePanchang)
			r.Get("/range", handlers.GetRangePanchang)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.ListLocations)
			r.Get("/{slug}", handlers.GetLocation)
			r.With(auth).Post("/", handlers.CreateLocation)
			r.With(auth).Delete("/{slug}", handlers.DeleteLocation)
		})
	})

	return r
}
