// Package scrape drives the campsite availability snapshot: candidate
// selection, the per-date fetch/transform pipeline, the supplier identity
// cache, and the remove-then-merge reconciliation against the result store.
package scrape

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/mannigfalter/rategrab/internal/models"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/store"
	"github.com/mannigfalter/rategrab/internal/validator"
)

// Searcher fetches the raw listings for one (campsite, date) pair.
type Searcher interface {
	Search(ctx context.Context, campsite models.Campsite, date string) ([]RawListing, error)
}

// Orchestrator owns one campsite scrape end to end and the trigger
// entrypoints built on it.
type Orchestrator struct {
	client    Searcher
	suppliers SupplierResolver
	campsites *store.CampsiteStore
	dates     *store.DateStore
	results   *store.ResultStore
	metrics   *obs.Metrics
	log       *slog.Logger

	interval time.Duration
	delayMin time.Duration
	delayMax time.Duration
	rng      *rand.Rand
	now      func() time.Time
}

func NewOrchestrator(client Searcher, suppliers SupplierResolver,
	campsites *store.CampsiteStore, dates *store.DateStore, results *store.ResultStore,
	m *obs.Metrics, log *slog.Logger,
	interval, delayMin, delayMax time.Duration) *Orchestrator {
	return &Orchestrator{
		client:    client,
		suppliers: suppliers,
		campsites: campsites,
		dates:     dates,
		results:   results,
		metrics:   m,
		log:       log,
		interval:  interval,
		delayMin:  delayMin,
		delayMax:  delayMax,
		rng:       newRNG(0),
		now:       time.Now,
	}
}

// SetNow overrides the clock, for tests.
func (o *Orchestrator) SetNow(now func() time.Time) { o.now = now }

// Scrape refreshes one campsite: fetch every registry date, transform the
// listings into a fresh record set, then replace the campsite's slice of the
// result store in a single write. The date registry is a JSON object, so
// "registry order" is realized as sorted-by-label order to stay
// deterministic. A failed date is skipped, not retried; if
// every date fails, the fresh set is empty and reconciliation still removes
// the campsite's old records (observed behavior, possibly a latent upstream
// bug — do not "fix" without a decision). LastUpdate is stamped only when at
// least one record was produced.
func (o *Orchestrator) Scrape(ctx context.Context, campsite models.Campsite) {
	start := o.now()
	o.metrics.IncScrape(campsite.Code)
	o.log.Info("scrape started", "campsite", campsite.Code)

	dates := o.dates.Load()
	labels := make([]string, 0, len(dates))
	for label := range dates {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fresh := map[string]models.ResultRecord{}
	for _, label := range labels {
		date := dates[label]
		if _, err := validator.ValidateDate(date); err != nil {
			o.log.Warn("skipping malformed date entry", "label", label, "date", date)
			continue
		}

		listings, err := o.client.Search(ctx, campsite, date)
		if err != nil {
			o.metrics.IncFetchFailure(campsite.Code)
			o.log.Warn("search failed, skipping date",
				"campsite", campsite.Code, "date", date, "err", err)
		} else {
			for _, raw := range listings {
				rec := Transform(ctx, raw, campsite, date, SourceAllcamps, o.suppliers, o.now())
				fresh[models.ResultKey(campsite.Code, SourceAllcamps, date, raw.ID)] = rec
			}
			o.metrics.AddListings(campsite.Code, len(listings))
		}

		// Throttle between dates regardless of outcome.
		sleep(ctx, jitterBetween(o.rng, o.delayMin, o.delayMax))
	}

	// A canceled context means the process is shutting down, not that
	// upstream failed: skip reconciliation so a SIGTERM mid-scrape cannot
	// wipe records that only "failed" because their fetches were aborted.
	if ctx.Err() != nil {
		o.log.Info("scrape aborted by shutdown, keeping existing records",
			"campsite", campsite.Code)
		return
	}

	if err := o.results.ReplaceCampsite(campsite.Code, fresh); err != nil {
		o.log.Error("result store write failed", "campsite", campsite.Code, "err", err)
		return
	}

	if len(fresh) > 0 {
		found, err := o.campsites.Touch(campsite.Code, o.now())
		if err != nil {
			o.log.Error("campsite registry write failed", "campsite", campsite.Code, "err", err)
		} else if !found {
			// Registry inconsistency; the result store is already updated.
			o.log.Warn("campsite missing from registry, lastUpdate not stamped",
				"campsite", campsite.Code)
		}
	}

	o.metrics.ObserveScrapeDuration(campsite.Code, o.now().Sub(start).Seconds())
	o.log.Info("scrape finished",
		"campsite", campsite.Code,
		"records", len(fresh),
		"duration_ms", o.now().Sub(start).Milliseconds(),
	)
}

// ScrapeStale refreshes the first campsite whose data is older than the
// refresh interval, if any.
func (o *Orchestrator) ScrapeStale(ctx context.Context) {
	campsite, ok := SelectCandidate(o.campsites.Load(), o.now(), o.interval)
	if !ok {
		o.log.Info("no stale campsite, nothing to do")
		return
	}
	o.Scrape(ctx, campsite)
}

// ScrapeAll wipes the result store and rescrapes every campsite in registry
// order.
func (o *Orchestrator) ScrapeAll(ctx context.Context) {
	if err := o.results.Clear(); err != nil {
		o.log.Error("result store clear failed", "err", err)
		return
	}
	for _, campsite := range o.campsites.Load() {
		o.Scrape(ctx, campsite)
	}
}
