package activities

import (
	"context"
	"fmt"
	"time"

	"dataprep/internal/config"
	"dataprep/internal/dataset"
	"dataprep/internal/logger"
	"dataprep/internal/metrics"
	"dataprep/internal/models"
	"dataprep/internal/providers"
)

// RunStore persists run status and produced records. It is optional.
type RunStore interface {
	UpsertRun(ctx context.Context, run models.Run) error
	InsertRecords(ctx context.Context, runID string, records []models.Record) error
}

type Activities struct {
	cfg      config.Config
	detector providers.LanguageDetector
	analyzer providers.SentimentAnalyzer
	store    RunStore
	log      logger.Logger
}

func New(cfg config.Config, pm *providers.Manager, store RunStore, log logger.Logger) *Activities {
	if log == nil {
		log = logger.Nop()
	}
	return &Activities{
		cfg:      cfg,
		detector: pm.Detector(),
		analyzer: pm.Analyzer(),
		store:    store,
		log:      log,
	}
}

// NewWithProviders wires explicit providers, bypassing the config-driven manager.
func NewWithProviders(cfg config.Config, d providers.LanguageDetector, a providers.SentimentAnalyzer, store RunStore, log logger.Logger) *Activities {
	if log == nil {
		log = logger.Nop()
	}
	return &Activities{cfg: cfg, detector: d, analyzer: a, store: store, log: log}
}

func (a *Activities) Config() config.Config { return a.cfg }

func observe(stage string, start time.Time) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (a *Activities) LoadCorpusActivity(ctx context.Context, in LoadCorpusInput) (LoadCorpusOutput, error) {
	defer observe("loading", time.Now())
	exts := in.Extensions
	if len(exts) == 0 {
		exts = a.cfg.Extensions
	}
	docs, err := dataset.LoadCorpus(ctx, in.InputDir, dataset.LoaderOptions{Extensions: exts})
	if err != nil {
		return LoadCorpusOutput{}, batchError(err)
	}
	a.log.Debug("corpus loaded", "dir", in.InputDir, "files", len(docs))
	return LoadCorpusOutput{Documents: docs}, nil
}

func (a *Activities) ClassifyTaskActivity(ctx context.Context, in ClassifyTaskInput) (ClassifyTaskOutput, error) {
	_ = ctx
	defer observe("classifying", time.Now())
	return ClassifyTaskOutput{TaskType: dataset.DetectTask(in.Texts)}, nil
}

func (a *Activities) CleanTextActivity(ctx context.Context, in CleanTextInput) (CleanTextOutput, error) {
	_ = ctx
	defer observe("cleaning", time.Now())
	return CleanTextOutput{Texts: dataset.Clean(in.Texts)}, nil
}

func (a *Activities) FilterTextActivity(ctx context.Context, in FilterTextInput) (FilterTextOutput, error) {
	defer observe("filtering", time.Now())
	target := in.TargetLanguage
	if target == "" {
		target = a.cfg.TargetLanguage
	}
	res, err := dataset.Filter(ctx, in.Texts, dataset.FilterOptions{
		Detector:       a.detector,
		Analyzer:       a.analyzer,
		TargetLanguage: target,
		Workers:        a.cfg.FilterWorkers,
	})
	if err != nil {
		return FilterTextOutput{}, err
	}
	for _, d := range res.Dropped {
		metrics.ItemsDroppedTotal.WithLabelValues(string(d.Reason)).Inc()
		a.log.Debug("item dropped", "index", d.Index, "reason", d.Reason)
	}
	return FilterTextOutput{Kept: res.Kept, Dropped: res.Dropped}, nil
}

func (a *Activities) ChunkTextActivity(ctx context.Context, in ChunkTextInput) (ChunkTextOutput, error) {
	_ = ctx
	defer observe("chunking", time.Now())
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = a.cfg.MaxTokens
	}
	return ChunkTextOutput{Chunks: dataset.ChunkAll(in.Texts, maxTokens), MaxTokens: maxTokens}, nil
}

func (a *Activities) LabelChunksActivity(ctx context.Context, in LabelChunksInput) (LabelChunksOutput, error) {
	_ = ctx
	defer observe("labeling", time.Now())
	label := in.Label
	if label == "" {
		label = a.cfg.Label
	}
	return LabelChunksOutput{Records: dataset.Label(in.Chunks, label)}, nil
}

func (a *Activities) FormatTableActivity(ctx context.Context, in FormatTableInput) (FormatTableOutput, error) {
	_ = ctx
	defer observe("formatting", time.Now())
	return FormatTableOutput{Table: dataset.Format(in.Records)}, nil
}

func (a *Activities) SaveTableActivity(ctx context.Context, in SaveTableInput) (SaveTableOutput, error) {
	_ = ctx
	defer observe("saving", time.Now())
	path := in.OutputPath
	if path == "" {
		path = a.cfg.OutputPath
	}
	if err := dataset.WriteTable(path, in.Table); err != nil {
		return SaveTableOutput{}, batchError(err)
	}
	metrics.RowsWrittenTotal.Add(float64(len(in.Table.Rows)))

	m := in.Manifest
	m.OutputPath = path
	if m.FinishedAt.IsZero() {
		m.FinishedAt = time.Now().UTC()
	}
	manifestPath, err := dataset.WriteManifest(path, m)
	if err != nil {
		// The dataset itself is on disk; a missing manifest does not fail the run.
		a.log.Warn("write manifest failed", "path", path, "err", err)
		manifestPath = ""
	}
	return SaveTableOutput{OutputPath: path, ManifestPath: manifestPath}, nil
}

func (a *Activities) RecordRunActivity(ctx context.Context, in RecordRunInput) error {
	if in.Run.Status == "done" || in.Run.Status == "failed" {
		metrics.RunsTotal.WithLabelValues(in.Run.Status).Inc()
	}
	if a.store == nil {
		return nil
	}
	if err := a.store.UpsertRun(ctx, in.Run); err != nil {
		return fmt.Errorf("record run %s: %w", in.Run.RunID, err)
	}
	return nil
}

func (a *Activities) StoreRecordsActivity(ctx context.Context, in StoreRecordsInput) error {
	if a.store == nil || len(in.Records) == 0 {
		return nil
	}
	return a.store.InsertRecords(ctx, in.RunID, in.Records)
}
