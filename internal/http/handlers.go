package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mannigfalter/rategrab/internal/models"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/scrape"
)

// Engine is the scrape trigger surface the handlers schedule work on.
type Engine interface {
	Scrape(ctx context.Context, campsite models.Campsite)
	ScrapeStale(ctx context.Context)
	ScrapeAll(ctx context.Context)
}

// Queue accepts deferred jobs; the response to the caller never waits for
// the work.
type Queue interface {
	Enqueue(job scrape.Job) bool
}

// CampsiteDirectory reads the campsite registry.
type CampsiteDirectory interface {
	Load() []models.Campsite
	FindByCode(code string) (models.Campsite, bool)
}

// ResultReader reads the result store.
type ResultReader interface {
	Load() map[string]models.ResultRecord
}

type Handler struct {
	engine    Engine
	queue     Queue
	campsites CampsiteDirectory
	results   ResultReader
	metrics   *obs.Metrics
}

func NewHandler(engine Engine, queue Queue, campsites CampsiteDirectory,
	results ResultReader, m *obs.Metrics) *Handler {
	return &Handler{engine: engine, queue: queue, campsites: campsites, results: results, metrics: m}
}

func requestID(r *http.Request) string {
	// chi's middleware.RequestID stores the id in the request context; the
	// uuid fallback only matters when the middleware isn't mounted (tests).
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		return rid
	}
	return uuid.New().String()
}

// Scrape refreshes the first stale campsite, if any. The work runs after the
// response is written.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	h.queue.Enqueue(h.engine.ScrapeStale)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Scraping started"))
}

// DeleteAndScrapeAll wipes the result store and rescrapes every campsite.
func (h *Handler) DeleteAndScrapeAll(w http.ResponseWriter, r *http.Request) {
	h.queue.Enqueue(h.engine.ScrapeAll)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Deleting and scraping all data started"))
}

// ForceScrape scrapes one campsite by code, bypassing the staleness check.
// The not-found check happens synchronously, before anything is enqueued.
func (h *Handler) ForceScrape(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	code := strings.TrimSpace(r.URL.Query().Get("campsite"))
	if code == "" {
		BadRequest(w, "missing campsite parameter", map[string]string{"request_id": reqID})
		return
	}

	// Any non-empty code goes to the registry: unknown codes uniformly 404.
	campsite, ok := h.campsites.FindByCode(code)
	if !ok {
		NotFound(w, "campsite not found", map[string]string{"request_id": reqID, "campsite": code})
		return
	}

	h.queue.Enqueue(func(ctx context.Context) {
		h.engine.Scrape(ctx, campsite)
	})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Scraping started"))
}

// Data returns the result store as-is, or a placeholder when it is empty.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	records := h.results.Load()
	if len(records) == 0 {
		WriteJSON(w, http.StatusOK, map[string]string{
			"error": "No data found. Trigger a scrape first.",
		})
		return
	}
	WriteJSON(w, http.StatusOK, records)
}

// Campsites returns the campsite registry as-is, or a placeholder when no
// registry has been seeded.
func (h *Handler) Campsites(w http.ResponseWriter, r *http.Request) {
	list := h.campsites.Load()
	if len(list) == 0 {
		WriteJSON(w, http.StatusOK, map[string]string{
			"error": "No campsites found. Seed the campsite registry first.",
		})
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
