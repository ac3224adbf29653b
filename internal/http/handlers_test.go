package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ht "github.com/mannigfalter/rategrab/internal/http"
	"github.com/mannigfalter/rategrab/internal/models"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/scrape"
	"github.com/prometheus/client_golang/prometheus"
)

// ------------------------ MOCKS ------------------------

type mockEngine struct {
	staleCalls int
	allCalls   int
	scraped    []string
}

func (m *mockEngine) Scrape(ctx context.Context, campsite models.Campsite) {
	m.scraped = append(m.scraped, campsite.Code)
}
func (m *mockEngine) ScrapeStale(ctx context.Context) { m.staleCalls++ }
func (m *mockEngine) ScrapeAll(ctx context.Context)   { m.allCalls++ }

// syncQueue runs jobs inline so tests observe the effect immediately.
type syncQueue struct {
	enqueued int
}

func (q *syncQueue) Enqueue(job scrape.Job) bool {
	q.enqueued++
	job(context.Background())
	return true
}

type mockDirectory struct {
	campsites []models.Campsite
}

func (m *mockDirectory) Load() []models.Campsite { return m.campsites }
func (m *mockDirectory) FindByCode(code string) (models.Campsite, bool) {
	for _, cs := range m.campsites {
		if cs.Code == code {
			return cs, true
		}
	}
	return models.Campsite{}, false
}

type mockResults struct {
	records map[string]models.ResultRecord
}

func (m *mockResults) Load() map[string]models.ResultRecord { return m.records }

// -------------------------------------------------------

func newTestHandler(engine *mockEngine, queue *syncQueue, dir *mockDirectory, res *mockResults) *ht.Handler {
	return ht.NewHandler(engine, queue, dir, res, obs.NewMetrics(prometheus.NewRegistry()))
}

func TestHandler_Scrape(t *testing.T) {
	engine := &mockEngine{}
	queue := &syncQueue{}
	h := newTestHandler(engine, queue, &mockDirectory{}, &mockResults{})

	req := httptest.NewRequest("GET", "/scrape", nil)
	w := httptest.NewRecorder()
	h.Scrape(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "Scraping started" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
	if engine.staleCalls != 1 {
		t.Fatalf("expected stale trigger, got %d", engine.staleCalls)
	}
}

func TestHandler_DeleteAndScrapeAll(t *testing.T) {
	engine := &mockEngine{}
	queue := &syncQueue{}
	h := newTestHandler(engine, queue, &mockDirectory{}, &mockResults{})

	req := httptest.NewRequest("GET", "/deleteAndScrapeAll", nil)
	w := httptest.NewRecorder()
	h.DeleteAndScrapeAll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "Deleting and scraping all data started" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
	if engine.allCalls != 1 {
		t.Fatalf("expected wipe-all trigger, got %d", engine.allCalls)
	}
}

func TestHandler_ForceScrape(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{"MissingParam", "", http.StatusBadRequest},
		{"WhitespaceParam", "?campsite=%20%20", http.StatusBadRequest},
		{"UnknownCode", "?campsite=NOPE", http.StatusNotFound},
		{"ShortUnknownCode", "?campsite=X", http.StatusNotFound},
		{"KnownCode", "?campsite=ABC", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{}
			queue := &syncQueue{}
			dir := &mockDirectory{campsites: []models.Campsite{{Code: "ABC"}}}
			h := newTestHandler(engine, queue, dir, &mockResults{})

			req := httptest.NewRequest("GET", "/forceScrape"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ForceScrape(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusOK {
				if len(engine.scraped) != 1 || engine.scraped[0] != "ABC" {
					t.Fatalf("expected ABC scraped, got %v", engine.scraped)
				}
			} else if queue.enqueued != 0 {
				t.Fatalf("nothing should be enqueued on rejection, got %d", queue.enqueued)
			}
		})
	}
}

func TestHandler_DataPlaceholder(t *testing.T) {
	h := newTestHandler(&mockEngine{}, &syncQueue{}, &mockDirectory{}, &mockResults{})

	req := httptest.NewRequest("GET", "/data", nil)
	w := httptest.NewRecorder()
	h.Data(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Fatalf("expected placeholder error message, got %v", body)
	}
}

func TestHandler_DataReturnsStore(t *testing.T) {
	res := &mockResults{records: map[string]models.ResultRecord{
		"ABC_from_ALLCAMPS_at_2025-06-01_#42": {ID: 42, Campsite: "ABC"},
	}}
	h := newTestHandler(&mockEngine{}, &syncQueue{}, &mockDirectory{}, res)

	req := httptest.NewRequest("GET", "/data", nil)
	w := httptest.NewRecorder()
	h.Data(w, req)

	var body map[string]models.ResultRecord
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if rec, ok := body["ABC_from_ALLCAMPS_at_2025-06-01_#42"]; !ok || rec.ID != 42 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHandler_CampsitesPlaceholder(t *testing.T) {
	h := newTestHandler(&mockEngine{}, &syncQueue{}, &mockDirectory{}, &mockResults{})

	req := httptest.NewRequest("GET", "/getCampsites", nil)
	w := httptest.NewRecorder()
	h.Campsites(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Fatalf("expected placeholder error message, got %v", body)
	}
}

func TestHandler_CampsitesReturnsRegistry(t *testing.T) {
	dir := &mockDirectory{campsites: []models.Campsite{{Code: "ABC", Name: "Seaside"}}}
	h := newTestHandler(&mockEngine{}, &syncQueue{}, dir, &mockResults{})

	req := httptest.NewRequest("GET", "/getCampsites", nil)
	w := httptest.NewRecorder()
	h.Campsites(w, req)

	var body []models.Campsite
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 || body[0].Code != "ABC" {
		t.Fatalf("unexpected body: %v", body)
	}
}
