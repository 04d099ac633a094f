package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"dataprep/internal/util"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
)

func TestTrackerHappyPath(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker("r1", "/in", "out.csv", t0)
	require.Equal(t, StageIdle, tr.Stage())

	for i, s := range WorkStages() {
		require.NoError(t, tr.Begin(s, t0.Add(time.Duration(i)*time.Second)))
		require.Equal(t, StepProcessing, tr.Snapshot().Steps[s])
		tr.Complete(s, string(s)+" ok", t0)
	}
	require.NoError(t, tr.Finish(t0))

	p := tr.Snapshot()
	require.Equal(t, StageDone, p.Stage)
	require.Equal(t, StatusDone, p.Status)
	require.Equal(t, "saving ok", p.Message)
	for _, s := range WorkStages() {
		require.Equal(t, StepDone, p.Steps[s])
	}
	require.Equal(t, "done", tr.Run().Status)
}

func TestTrackerRejectsSkippedStage(t *testing.T) {
	tr := NewTracker("r1", "", "", time.Now())
	require.Error(t, tr.Begin(StageLoading, time.Now()))
	require.Error(t, tr.Finish(time.Now()))
}

func TestTrackerFailIsTerminal(t *testing.T) {
	tr := NewTracker("r1", "", "", time.Now())
	require.NoError(t, tr.Begin(StageSelecting, time.Now()))
	tr.Complete(StageSelecting, "", time.Now())
	require.NoError(t, tr.Begin(StageLoading, time.Now()))
	tr.Fail(StageLoading, fmt.Errorf("%w: no .txt files in /in", util.ErrInputNotFound), time.Now())

	p := tr.Snapshot()
	require.Equal(t, StageFailed, p.Stage)
	require.Equal(t, StageLoading, p.FailedStage)
	require.Equal(t, StepFailed, p.Steps[StageLoading])
	require.Equal(t, "input not found: no .txt files in /in", p.Message)
	require.Error(t, tr.Begin(StageClassifying, time.Now()))
}

func TestSnapshotIsIndependent(t *testing.T) {
	tr := NewTracker("r1", "", "", time.Now())
	snap := tr.Snapshot()
	require.NoError(t, tr.Begin(StageSelecting, time.Now()))
	require.Empty(t, snap.Steps)
}

func TestFailureMessage(t *testing.T) {
	require.Equal(t, "filtering failed", FailureMessage(StageFiltering, nil))
	require.Equal(t, "filtering failed: boom", FailureMessage(StageFiltering, errors.New("boom")))

	appErr := temporal.NewNonRetryableApplicationError("output write failed: disk full", "OutputFailed", nil)
	require.Equal(t, "could not save dataset: output write failed: disk full", FailureMessage(StageSaving, appErr))

	inf := temporal.NewNonRetryableApplicationError("input not found: empty", "InputNotFound", nil)
	require.Equal(t, "input not found: empty", FailureMessage(StageLoading, inf))
}
