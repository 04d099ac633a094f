package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/dataset"
	"dataprep/internal/logger"
	"dataprep/internal/models"
	"dataprep/internal/selector"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned when a run is requested while another one is active.
var ErrBusy = errors.New("pipeline busy")

type Request struct {
	// Selector provides the input directory during the selecting stage. When
	// nil, InputDir is used as is.
	Selector       selector.Selector
	InputDir       string
	OutputPath     string
	MaxTokens      int
	Label          string
	TargetLanguage string
	Extensions     []string
}

type Result struct {
	RunID        string             `json:"run_id"`
	OutputPath   string             `json:"output_path"`
	ManifestPath string             `json:"manifest_path,omitempty"`
	TaskType     string             `json:"task_type"`
	Counts       models.StageCounts `json:"counts"`
}

// Runner executes the dataset stages in-process. Each stage is submitted as a
// unit of work and awaited before the next one starts; one run at a time.
type Runner struct {
	acts     *activities.Activities
	log      logger.Logger
	listener Listener
	now      func() time.Time

	busy atomic.Bool
	mu   sync.Mutex
	runs map[string]Progress
}

type Option func(*Runner)

func WithListener(l Listener) Option {
	return func(r *Runner) { r.listener = l }
}

func WithLogger(l logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func NewRunner(acts *activities.Activities, opts ...Option) *Runner {
	r := &Runner{
		acts: acts,
		log:  logger.Nop(),
		now:  func() time.Time { return time.Now().UTC() },
		runs: map[string]Progress{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) Busy() bool { return r.busy.Load() }

// Run executes one pipeline run synchronously.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer r.busy.Store(false)
	return r.run(ctx, uuid.NewString(), req)
}

// Start launches a run in the background and returns its id. The run is not
// tied to ctx cancellation.
func (r *Runner) Start(ctx context.Context, req Request) (string, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	runID := uuid.NewString()
	r.store(NewTracker(runID, req.InputDir, req.OutputPath, r.now()).Snapshot())
	bg := context.WithoutCancel(ctx)
	go func() {
		defer r.busy.Store(false)
		if _, err := r.run(bg, runID, req); err != nil {
			r.log.Warn("background run failed", "run_id", runID, "err", err)
		}
	}()
	return runID, nil
}

// Progress returns the latest snapshot of a run started by this runner.
func (r *Runner) Progress(runID string) (Progress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.runs[runID]
	if !ok {
		return Progress{}, false
	}
	return p.Clone(), true
}

func (r *Runner) store(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[p.RunID] = p
}

func (r *Runner) run(ctx context.Context, runID string, req Request) (Result, error) {
	cfg := r.acts.Config()
	outPath := firstNonEmpty(req.OutputPath, cfg.OutputPath, dataset.DefaultOutputPath)
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = cfg.MaxTokens
	}
	tr := NewTracker(runID, req.InputDir, outPath, r.now())
	log := r.log.With("run_id", runID)
	started := r.now()

	publish := func() {
		p := tr.Snapshot()
		r.store(p)
		if err := r.acts.RecordRunActivity(ctx, activities.RecordRunInput{Run: tr.Run()}); err != nil {
			log.Warn("record run failed", "err", err)
		}
		if r.listener != nil {
			r.listener(p)
		}
		log.Info(p.Message, "stage", p.Stage, "status", p.Status)
	}

	step := func(stage Stage, work func(ctx context.Context) (string, error)) error {
		if err := tr.Begin(stage, r.now()); err != nil {
			return err
		}
		r.store(tr.Snapshot())
		msg, err := submit(ctx, work)
		if err != nil {
			tr.Fail(stage, err, r.now())
			publish()
			return err
		}
		tr.Complete(stage, msg, r.now())
		publish()
		return nil
	}

	var (
		docs     []dataset.Document
		texts    []string
		taskType dataset.TaskType
		filtered activities.FilterTextOutput
		chunks   []string
		records  []models.Record
		table    models.Table
		saved    activities.SaveTableOutput
	)

	steps := []struct {
		stage Stage
		work  func(ctx context.Context) (string, error)
	}{
		{StageSelecting, func(ctx context.Context) (string, error) {
			dir := req.InputDir
			if req.Selector != nil {
				var err error
				if dir, err = req.Selector.Select(ctx); err != nil {
					return "", err
				}
			}
			tr.SetInputDir(dir)
			return SelectedMessage(dir), nil
		}},
		{StageLoading, func(ctx context.Context) (string, error) {
			out, err := r.acts.LoadCorpusActivity(ctx, activities.LoadCorpusInput{InputDir: tr.Snapshot().InputDir, Extensions: req.Extensions})
			if err != nil {
				return "", err
			}
			docs = out.Documents
			texts = dataset.Texts(docs)
			tr.Counts().Files = len(docs)
			return LoadedMessage(len(docs)), nil
		}},
		{StageClassifying, func(ctx context.Context) (string, error) {
			out, err := r.acts.ClassifyTaskActivity(ctx, activities.ClassifyTaskInput{Texts: texts})
			if err != nil {
				return "", err
			}
			taskType = out.TaskType
			tr.SetTaskType(string(taskType))
			return TaskMessage(string(taskType)), nil
		}},
		{StageCleaning, func(ctx context.Context) (string, error) {
			out, err := r.acts.CleanTextActivity(ctx, activities.CleanTextInput{Texts: texts})
			if err != nil {
				return "", err
			}
			texts = out.Texts
			tr.Counts().Cleaned = len(texts)
			return CleanedMessage, nil
		}},
		{StageFiltering, func(ctx context.Context) (string, error) {
			out, err := r.acts.FilterTextActivity(ctx, activities.FilterTextInput{Texts: texts, TargetLanguage: req.TargetLanguage})
			if err != nil {
				return "", err
			}
			filtered = out
			tr.Counts().Filtered = len(out.Kept)
			tr.Counts().Dropped = len(out.Dropped)
			return FilteredMessage(len(out.Kept), len(texts)), nil
		}},
		{StageChunking, func(ctx context.Context) (string, error) {
			out, err := r.acts.ChunkTextActivity(ctx, activities.ChunkTextInput{Texts: filtered.Kept, MaxTokens: maxTokens})
			if err != nil {
				return "", err
			}
			chunks = out.Chunks
			tr.Counts().Chunks = len(chunks)
			return ChunkedMessage(len(chunks)), nil
		}},
		{StageLabeling, func(ctx context.Context) (string, error) {
			out, err := r.acts.LabelChunksActivity(ctx, activities.LabelChunksInput{Chunks: chunks, Label: req.Label})
			if err != nil {
				return "", err
			}
			records = out.Records
			return LabeledMessage, nil
		}},
		{StageFormatting, func(ctx context.Context) (string, error) {
			out, err := r.acts.FormatTableActivity(ctx, activities.FormatTableInput{Records: records})
			if err != nil {
				return "", err
			}
			table = out.Table
			tr.Counts().Rows = len(table.Rows)
			return FormattedMessage, nil
		}},
		{StageSaving, func(ctx context.Context) (string, error) {
			out, err := r.acts.SaveTableActivity(ctx, activities.SaveTableInput{
				OutputPath: outPath,
				Table:      table,
				Manifest: dataset.Manifest{
					RunID:     runID,
					InputDir:  tr.Snapshot().InputDir,
					TaskType:  taskType,
					MaxTokens: maxTokens,
					Counts:    *tr.Counts(),
					Drops:     dataset.FilterResult{Dropped: filtered.Dropped}.DropCounts(),
					Files:     documentNames(docs),
					StartedAt: started,
				},
			})
			if err != nil {
				return "", err
			}
			saved = out
			tr.SetOutputPath(out.OutputPath)
			return SavedMessage(out.OutputPath), nil
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			tr.Fail(tr.Stage().Next(), err, r.now())
			publish()
			return Result{}, err
		}
		if err := step(s.stage, s.work); err != nil {
			return Result{}, err
		}
	}

	if err := r.acts.StoreRecordsActivity(ctx, activities.StoreRecordsInput{RunID: runID, Records: records}); err != nil {
		log.Warn("store records failed", "err", err)
	}
	if err := tr.Finish(r.now()); err != nil {
		return Result{}, err
	}
	publish()

	return Result{
		RunID:        runID,
		OutputPath:   saved.OutputPath,
		ManifestPath: saved.ManifestPath,
		TaskType:     string(taskType),
		Counts:       *tr.Counts(),
	}, nil
}

// submit runs one unit of work on a worker goroutine and waits for it.
func submit(ctx context.Context, work func(ctx context.Context) (string, error)) (string, error) {
	var msg string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		msg, err = work(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return msg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func documentNames(docs []dataset.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}
