package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	handlers "github.com/mannigfalter/rategrab/internal/http"
	"github.com/mannigfalter/rategrab/internal/config"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/routes"
	"github.com/mannigfalter/rategrab/internal/scrape"
	"github.com/mannigfalter/rategrab/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	Router       http.Handler
	Runner       *scrape.Runner
	Orchestrator *scrape.Orchestrator
	Metrics      *obs.Metrics
	Logger       *slog.Logger
}

func New(ctx context.Context, cfg config.Config) *App {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	customRegistry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(customRegistry)

	campsites := store.NewCampsiteStore(cfg.CampsiteFile(), logger)
	dates := store.NewDateStore(cfg.DateFile(), logger)
	results := store.NewResultStore(cfg.ResultFile(), logger)
	suppliers := store.NewSupplierStore(cfg.SupplierFile(), logger)

	client := scrape.NewClient(cfg.SearchURL, cfg.SupplierURL, logger)
	supplierCache := scrape.NewSupplierCache(client, suppliers, metrics, logger,
		cfg.SupplierAttempts, cfg.SupplierJitterMax, cfg.SupplierRetryWait)
	orch := scrape.NewOrchestrator(client, supplierCache, campsites, dates, results,
		metrics, logger, cfg.RefreshInterval, cfg.DateDelayMin, cfg.DateDelayMax)
	runner := scrape.NewRunner(ctx, cfg.JobQueueSize, logger)

	h := handlers.NewHandler(orch, runner, campsites, results, metrics)
	router := routes.GetRoutes(h, metrics, logger, cfg.Maintenance)

	return &App{
		Router:       router,
		Runner:       runner,
		Orchestrator: orch,
		Metrics:      metrics,
		Logger:       logger,
	}
}
