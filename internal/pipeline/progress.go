package pipeline

import (
	"fmt"
	"strings"
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/models"
)

const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"

	StepProcessing = "processing"
	StepDone       = "done"
	StepFailed     = "failed"
)

// Progress is the status snapshot published after every stage boundary.
type Progress struct {
	RunID       string             `json:"run_id"`
	InputDir    string             `json:"input_dir"`
	OutputPath  string             `json:"output_path"`
	Stage       Stage              `json:"stage"`
	FailedStage Stage              `json:"failed_stage,omitempty"`
	Status      string             `json:"status"`
	Message     string             `json:"message"`
	TaskType    string             `json:"task_type,omitempty"`
	Steps       map[Stage]string   `json:"steps"`
	Counts      models.StageCounts `json:"counts"`
	Error       string             `json:"error,omitempty"`
	StartedAt   time.Time          `json:"started_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (p Progress) Clone() Progress {
	steps := make(map[Stage]string, len(p.Steps))
	for k, v := range p.Steps {
		steps[k] = v
	}
	p.Steps = steps
	return p
}

// Listener receives progress snapshots. It is called from the driver only.
type Listener func(Progress)

// Tracker drives the stage state machine for one run. It holds no clock so
// the Temporal workflow can feed it workflow time.
type Tracker struct {
	p Progress
}

func NewTracker(runID, inputDir, outputPath string, now time.Time) *Tracker {
	return &Tracker{p: Progress{
		RunID:      runID,
		InputDir:   inputDir,
		OutputPath: outputPath,
		Stage:      StageIdle,
		Status:     StatusRunning,
		Message:    "press start to begin",
		Steps:      map[Stage]string{},
		StartedAt:  now,
		UpdatedAt:  now,
	}}
}

func (t *Tracker) Begin(stage Stage, now time.Time) error {
	if !CanTransition(t.p.Stage, stage) {
		return fmt.Errorf("invalid stage transition %s -> %s", t.p.Stage, stage)
	}
	t.p.Stage = stage
	t.p.Steps[stage] = StepProcessing
	t.p.UpdatedAt = now
	return nil
}

func (t *Tracker) Complete(stage Stage, message string, now time.Time) {
	t.p.Steps[stage] = StepDone
	t.p.Message = message
	t.p.UpdatedAt = now
}

// Finish moves a fully saved run to done.
func (t *Tracker) Finish(now time.Time) error {
	if !CanTransition(t.p.Stage, StageDone) {
		return fmt.Errorf("invalid stage transition %s -> %s", t.p.Stage, StageDone)
	}
	t.p.Stage = StageDone
	t.p.Status = StatusDone
	t.p.UpdatedAt = now
	return nil
}

func (t *Tracker) Fail(stage Stage, err error, now time.Time) {
	t.p.Steps[stage] = StepFailed
	t.p.FailedStage = stage
	t.p.Stage = StageFailed
	t.p.Status = StatusFailed
	t.p.Message = FailureMessage(stage, err)
	if err != nil {
		t.p.Error = err.Error()
	}
	t.p.UpdatedAt = now
}

func (t *Tracker) SetInputDir(dir string)      { t.p.InputDir = dir }
func (t *Tracker) SetOutputPath(path string)   { t.p.OutputPath = path }
func (t *Tracker) SetTaskType(task string)     { t.p.TaskType = task }
func (t *Tracker) Counts() *models.StageCounts { return &t.p.Counts }
func (t *Tracker) Snapshot() Progress          { return t.p.Clone() }
func (t *Tracker) Stage() Stage                { return t.p.Stage }

func (t *Tracker) Run() models.Run {
	return models.Run{
		RunID:      t.p.RunID,
		InputDir:   t.p.InputDir,
		OutputPath: t.p.OutputPath,
		Stage:      string(t.p.Stage),
		Status:     t.p.Status,
		Message:    t.p.Message,
		TaskType:   t.p.TaskType,
		Counts:     t.p.Counts,
		StartedAt:  t.p.StartedAt,
		UpdatedAt:  t.p.UpdatedAt,
	}
}

// FailureMessage renders the user-facing status text for a failed stage.
func FailureMessage(stage Stage, err error) string {
	if err == nil {
		return fmt.Sprintf("%s failed", stage)
	}
	msg := activities.ErrorMessage(err)
	switch {
	case activities.IsInputNotFound(err):
		return withPrefix("input not found", msg)
	case activities.IsOutputFailure(err):
		return withPrefix("could not save dataset", msg)
	default:
		return fmt.Sprintf("%s failed: %s", stage, msg)
	}
}

func withPrefix(prefix, msg string) string {
	if strings.HasPrefix(msg, prefix) {
		return msg
	}
	return prefix + ": " + msg
}
