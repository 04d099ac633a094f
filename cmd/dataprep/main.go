package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/config"
	"dataprep/internal/logger"
	"dataprep/internal/metrics"
	"dataprep/internal/pipeline"
	"dataprep/internal/providers"
	"dataprep/internal/selector"
	"dataprep/internal/selector/dialog"
	"dataprep/internal/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	metrics.Register(prometheus.DefaultRegisterer)

	if err := run(cfg, log); err != nil {
		log.Error("dataprep failed", "err", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so main can exit non-zero after they fire.
func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pm, err := providers.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("init providers: %w", err)
	}

	var store activities.RunStore
	if cfg.PostgresURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		db, s, err := storage.OpenStore(dbCtx, cfg.PostgresURL)
		cancel()
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer db.Close()
		store = s
	}

	var sel selector.Selector = dialog.New()
	if cfg.InputDir != "" {
		sel = selector.Static(cfg.InputDir)
	}

	acts := activities.New(cfg, pm, store, log)
	runner := pipeline.NewRunner(acts,
		pipeline.WithLogger(log),
		pipeline.WithListener(func(p pipeline.Progress) {
			fmt.Fprintln(os.Stdout, p.Message)
		}),
	)

	detector, analyzer := pm.Names()
	log.Info("dataprep starting", "detector", detector, "sentiment", analyzer, "output", cfg.OutputPath)
	res, err := runner.Run(ctx, pipeline.Request{Selector: sel})
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}
	log.Info("dataset ready", "path", res.OutputPath, "rows", res.Counts.Rows, "dropped", res.Counts.Dropped)
	return nil
}
