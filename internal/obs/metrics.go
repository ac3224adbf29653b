package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ScrapesTotal         *prometheus.CounterVec
	ScrapeDuration       *prometheus.HistogramVec
	FetchFailuresTotal   *prometheus.CounterVec
	ListingsTotal        *prometheus.CounterVec
	SupplierCacheHits    prometheus.Counter
	SupplierCacheMisses  prometheus.Counter
	SupplierRetriesTotal prometheus.Counter
	SupplierFailures     prometheus.Counter
	MaintenanceRejects   prometheus.Counter

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// Create Prometheus collectors and register them
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		ScrapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrape_runs_total",
			Help: "Scrape runs per campsite",
		}, []string{"campsite"},
		),
		ScrapeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrape_duration_seconds",
				Help:    "Wall-clock duration of one campsite scrape",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"campsite"},
		),
		FetchFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fetch_failures_total",
			Help: "Search fetches that failed and skipped a (campsite, date) pair",
		}, []string{"campsite"},
		),
		ListingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listings_scraped_total",
			Help: "Listings transformed into result records",
		}, []string{"campsite"},
		),
		SupplierCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supplier_cache_hits_total",
			Help: "Supplier lookups answered from the cache",
		}),
		SupplierCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supplier_cache_misses_total",
			Help: "Supplier lookups that went to the network",
		}),
		SupplierRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supplier_lookup_retries_total",
			Help: "Failed supplier lookup attempts, including the final one",
		}),
		SupplierFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supplier_lookup_failures_total",
			Help: "Supplier lookups that exhausted all attempts",
		}),
		MaintenanceRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maintenance_rejects_total",
			Help: "Requests answered 503 by the maintenance gate",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	// Register metrics with Prometheus
	p.MustRegister(
		m.ScrapesTotal,
		m.ScrapeDuration,
		m.FetchFailuresTotal,
		m.ListingsTotal,
		m.SupplierCacheHits,
		m.SupplierCacheMisses,
		m.SupplierRetriesTotal,
		m.SupplierFailures,
		m.MaintenanceRejects,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) IncScrape(campsite string) { m.ScrapesTotal.WithLabelValues(campsite).Inc() }

func (m *Metrics) ObserveScrapeDuration(campsite string, seconds float64) {
	m.ScrapeDuration.WithLabelValues(campsite).Observe(seconds)
}

func (m *Metrics) IncFetchFailure(campsite string) {
	m.FetchFailuresTotal.WithLabelValues(campsite).Inc()
}

func (m *Metrics) AddListings(campsite string, n int) {
	m.ListingsTotal.WithLabelValues(campsite).Add(float64(n))
}

func (m *Metrics) IncSupplierCacheHit()  { m.SupplierCacheHits.Inc() }
func (m *Metrics) IncSupplierCacheMiss() { m.SupplierCacheMisses.Inc() }
func (m *Metrics) IncSupplierRetry()     { m.SupplierRetriesTotal.Inc() }
func (m *Metrics) IncSupplierFailure()   { m.SupplierFailures.Inc() }
func (m *Metrics) IncMaintenanceReject() { m.MaintenanceRejects.Inc() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
