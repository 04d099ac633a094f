package api

import (
	"context"
	"errors"
	"fmt"

	"dataprep/internal/pipeline"
	"dataprep/internal/workflows"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	tclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
)

var ErrRunNotFound = errors.New("run not found")

// Runner starts dataset builds and reports their progress.
type Runner interface {
	Start(ctx context.Context, req pipeline.Request) (string, error)
	Progress(ctx context.Context, runID string) (pipeline.Progress, error)
}

type LocalRunner struct {
	r *pipeline.Runner
}

func NewLocalRunner(r *pipeline.Runner) *LocalRunner {
	return &LocalRunner{r: r}
}

func (l *LocalRunner) Start(ctx context.Context, req pipeline.Request) (string, error) {
	return l.r.Start(ctx, req)
}

func (l *LocalRunner) Progress(_ context.Context, runID string) (pipeline.Progress, error) {
	p, ok := l.r.Progress(runID)
	if !ok {
		return pipeline.Progress{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return p, nil
}

// workflowClient is the part of the Temporal client the adapter needs.
type workflowClient interface {
	ExecuteWorkflow(ctx context.Context, options tclient.StartWorkflowOptions, workflow interface{}, args ...interface{}) (tclient.WorkflowRun, error)
	QueryWorkflow(ctx context.Context, workflowID string, runID string, queryType string, args ...interface{}) (converter.EncodedValue, error)
}

type TemporalRunner struct {
	client    workflowClient
	taskQueue string
}

func NewTemporalRunner(c workflowClient, taskQueue string) *TemporalRunner {
	return &TemporalRunner{client: c, taskQueue: taskQueue}
}

func (t *TemporalRunner) Start(ctx context.Context, req pipeline.Request) (string, error) {
	we, err := t.client.ExecuteWorkflow(ctx, tclient.StartWorkflowOptions{
		ID:                                       workflows.WorkflowID,
		TaskQueue:                                t.taskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.DatasetBuildWorkflow, workflows.DatasetBuildInput{
		InputDir:       req.InputDir,
		OutputPath:     req.OutputPath,
		MaxTokens:      req.MaxTokens,
		Label:          req.Label,
		TargetLanguage: req.TargetLanguage,
		Extensions:     req.Extensions,
	})
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			return "", pipeline.ErrBusy
		}
		return "", fmt.Errorf("start dataset workflow: %w", err)
	}
	return we.GetRunID(), nil
}

func (t *TemporalRunner) Progress(ctx context.Context, runID string) (pipeline.Progress, error) {
	resp, err := t.client.QueryWorkflow(ctx, workflows.WorkflowID, runID, workflows.QueryGetProgress)
	if err != nil {
		var nf *serviceerror.NotFound
		if errors.As(err, &nf) {
			return pipeline.Progress{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return pipeline.Progress{}, fmt.Errorf("query progress: %w", err)
	}
	var p pipeline.Progress
	if err := resp.Get(&p); err != nil {
		return pipeline.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	return p, nil
}
