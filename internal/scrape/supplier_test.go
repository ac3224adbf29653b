package scrape_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mannigfalter/rategrab/internal/models"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/scrape"
	"github.com/mannigfalter/rategrab/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

type mockFetcher struct {
	calls     int
	fetchFunc func(ctx context.Context, itemID int64) (models.Supplier, error)
}

func (m *mockFetcher) FetchSupplier(ctx context.Context, itemID int64) (models.Supplier, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, itemID)
	}
	return nil, errors.New("no fetch func")
}

func newSupplierCache(t *testing.T, fetcher scrape.SupplierFetcher) (*scrape.SupplierCache, *store.SupplierStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewSupplierStore(filepath.Join(t.TempDir(), "suppliers.json"), logger)
	metrics := obs.NewMetrics(prometheus.NewRegistry())
	// zero delays so tests don't sleep
	return scrape.NewSupplierCache(fetcher, st, metrics, logger, 3, 0, 0), st
}

func TestSupplierCache_HitShortCircuits(t *testing.T) {
	fetcher := &mockFetcher{}
	cache, st := newSupplierCache(t, fetcher)
	if err := st.Put(42, models.Supplier{"name": "Acme"}); err != nil {
		t.Fatal(err)
	}

	sup := cache.Resolve(context.Background(), 42)
	if fetcher.calls != 0 {
		t.Fatalf("cache hit must not call the network, got %d calls", fetcher.calls)
	}
	if sup["name"] != "Acme" {
		t.Fatalf("unexpected supplier: %v", sup)
	}
}

func TestSupplierCache_CachedNullShortCircuits(t *testing.T) {
	fetcher := &mockFetcher{}
	cache, st := newSupplierCache(t, fetcher)
	if err := st.Put(42, nil); err != nil {
		t.Fatal(err)
	}

	sup := cache.Resolve(context.Background(), 42)
	if fetcher.calls != 0 {
		t.Fatalf("cached null must short-circuit, got %d calls", fetcher.calls)
	}
	if sup != nil {
		t.Fatalf("expected nil supplier, got %v", sup)
	}
}

func TestSupplierCache_SuccessPersists(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, itemID int64) (models.Supplier, error) {
			return models.Supplier{"name": "Acme"}, nil
		},
	}
	cache, st := newSupplierCache(t, fetcher)

	sup := cache.Resolve(context.Background(), 42)
	if sup["name"] != "Acme" {
		t.Fatalf("unexpected supplier: %v", sup)
	}
	if cached, ok := st.Get(42); !ok || cached["name"] != "Acme" {
		t.Fatalf("expected persisted entry, got %v %v", cached, ok)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.calls)
	}
}

func TestSupplierCache_RetryExhaustion(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, itemID int64) (models.Supplier, error) {
			return nil, errors.New("upstream down")
		},
	}
	cache, st := newSupplierCache(t, fetcher)

	sup := cache.Resolve(context.Background(), 42)
	if sup != nil {
		t.Fatalf("expected nil after exhaustion, got %v", sup)
	}
	if fetcher.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fetcher.calls)
	}
	if _, ok := st.Get(42); ok {
		t.Fatal("exhausted lookup must not be cached")
	}

	// the next resolve retries from scratch
	cache.Resolve(context.Background(), 42)
	if fetcher.calls != 6 {
		t.Fatalf("expected a fresh 3 attempts, got %d total", fetcher.calls)
	}
}

func TestSupplierCache_RecoversOnLaterAttempt(t *testing.T) {
	attempt := 0
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, itemID int64) (models.Supplier, error) {
			attempt++
			if attempt < 3 {
				return nil, errors.New("flaky")
			}
			return models.Supplier{"name": "Acme"}, nil
		},
	}
	cache, st := newSupplierCache(t, fetcher)

	sup := cache.Resolve(context.Background(), 42)
	if sup["name"] != "Acme" {
		t.Fatalf("expected recovery on third attempt, got %v", sup)
	}
	if _, ok := st.Get(42); !ok {
		t.Fatal("recovered lookup must be cached")
	}
}
