package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/api"
	"dataprep/internal/config"
	"dataprep/internal/logger"
	"dataprep/internal/metrics"
	"dataprep/internal/pipeline"
	"dataprep/internal/providers"
	"dataprep/internal/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	tclient "go.temporal.io/sdk/client"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	metrics.Register(prometheus.DefaultRegisterer)

	if err := run(cfg, log); err != nil {
		log.Error("api failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	var opts []api.Option
	opts = append(opts, api.WithLogger(log))
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
		opts = append(opts, api.WithHistory(s))
	}

	var runner api.Runner
	mode := "local"
	if cfg.TemporalAddress != "" {
		tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			return fmt.Errorf("dial temporal: %w", err)
		}
		defer tc.Close()
		runner = api.NewTemporalRunner(tc, cfg.TemporalTaskQueue)
		mode = "temporal"
	} else {
		pm, err := providers.NewManager(cfg)
		if err != nil {
			return fmt.Errorf("init providers: %w", err)
		}
		acts := activities.New(cfg, pm, store, log)
		runner = api.NewLocalRunner(pipeline.NewRunner(acts, pipeline.WithLogger(log)))
	}

	h := api.NewServer(cfg, runner, opts...)
	log.Info("dataprep api listening", "addr", cfg.APIAddr, "runner", mode)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}
