package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/config"
	"dataprep/internal/logger"
	"dataprep/internal/metrics"
	"dataprep/internal/providers"
	"dataprep/internal/storage"
	"dataprep/internal/workflows"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	metrics.Register(prometheus.DefaultRegisterer)

	if err := run(cfg, log); err != nil {
		log.Error("worker failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	if cfg.TemporalAddress == "" {
		return errors.New("DATAPREP_TEMPORAL_ADDRESS is required for the worker")
	}
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		return fmt.Errorf("dial temporal: %w", err)
	}
	defer c.Close()

	pm, err := providers.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("init providers: %w", err)
	}
	var store activities.RunStore
	if cfg.PostgresURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		db, s, err := storage.OpenStore(ctx, cfg.PostgresURL)
		cancel()
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer db.Close()
		store = s
	}

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(cfg, pm, store, log))

	detector, analyzer := pm.Names()
	log.Info("dataprep worker listening", "temporal", cfg.TemporalAddress, "queue", cfg.TemporalTaskQueue, "detector", detector, "sentiment", analyzer)
	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
