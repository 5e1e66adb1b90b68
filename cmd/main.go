// Command rostrum runs the club-night scheduling and rating service.
// It exposes Prometheus metrics and a health endpoint over HTTP and can
// optionally run a few simulated nights on startup.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opendebate/rostrum/internal/app"
	"github.com/opendebate/rostrum/internal/config"
	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/internal/simulation"
	"github.com/opendebate/rostrum/pkg/logger"
	"github.com/opendebate/rostrum/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mode, err := partition.ParseMode(cfg.Mode)
	if err != nil {
		// Load has validated the mode already; this guards config drift.
		log.Error(ctx, "invalid partition mode", logger.Error(err))
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithScenario(cfg.Scenario),
		app.WithMode(mode),
		app.WithQueueSize(cfg.OutcomeQueueSize),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxStandingsLimit(cfg.MaxStandingsLimit),
		app.WithSoloWindow(cfg.SoloWindow),
		app.WithRatingOptions(
			rating.WithBaseline(cfg.Baseline),
			rating.WithDivisor(cfg.Divisor),
			rating.WithInitialRating(cfg.DefaultMu, cfg.DefaultSigma),
		),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		svc.Stop(shutdownCtx)
	}()

	if cfg.SimNights > 0 {
		go runSimulation(ctx, cfg, mode, log)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown failed", logger.Error(err))
	}
}

// runSimulation plays the configured number of synthetic nights against
// a dedicated service instance, leaving the main one untouched.
func runSimulation(ctx context.Context, cfg *config.Config, mode partition.Mode, log logger.Logger) {
	simCfg := &simulation.Config{
		ClubSize: simulation.DefaultClubSize,
		Nights:   cfg.SimNights,
		Scenario: cfg.Scenario,
		Mode:     mode,
		TopN:     simulation.DefaultTopN,
	}
	if err := simulation.Run(ctx, simCfg); err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
	}
}
