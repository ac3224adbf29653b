package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	handlers "github.com/mannigfalter/rategrab/internal/http"
	mid "github.com/mannigfalter/rategrab/internal/middleware"
	"github.com/mannigfalter/rategrab/internal/obs"
)

func GetRoutes(h *handlers.Handler, metrics *obs.Metrics, logger *slog.Logger, maintenance bool) *chi.Mux {
	r := chi.NewRouter()
	// Useful built-in middlewares
	r.Use(middleware.RealIP)    // proper client IP extraction
	r.Use(middleware.RequestID) // sets request ID header
	r.Use(middleware.Recoverer) // built-in recoverer to avoid panics taking server down

	// maintenance gate first, then logging & metrics
	r.Use(mid.MaintenanceMiddleware(maintenance, metrics))
	r.Use(mid.MetricsMiddleware(metrics))
	r.Use(mid.LoggingMiddleware(logger))

	// endpoints
	r.Get("/scrape", h.Scrape)
	r.Get("/deleteAndScrapeAll", h.DeleteAndScrapeAll)
	r.Get("/forceScrape", h.ForceScrape)
	r.Get("/data", h.Data)
	r.Get("/getCampsites", h.Campsites)
	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
