package workflows

import (
	"time"

	"dataprep/internal/activities"
	"dataprep/internal/dataset"
	"dataprep/internal/pipeline"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetProgress = "GetProgress"
	// WorkflowID is fixed so the server rejects a second concurrent build.
	WorkflowID = "dataset-build"
)

// DatasetBuildWorkflow runs the dataset stages as activities, one after the
// other, and exposes the current Progress through QueryGetProgress.
func DatasetBuildWorkflow(ctx workflow.Context, input DatasetBuildInput) (DatasetBuildResult, error) {
	runID := workflow.GetInfo(ctx).WorkflowExecution.RunID
	tr := pipeline.NewTracker(runID, input.InputDir, input.OutputPath, workflow.Now(ctx))
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (pipeline.Progress, error) {
		return tr.Snapshot(), nil
	}); err != nil {
		return DatasetBuildResult{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	started := workflow.Now(ctx)

	record := func() {
		_ = workflow.ExecuteActivity(ctx, "RecordRunActivity", activities.RecordRunInput{Run: tr.Run()}).Get(ctx, nil)
	}
	// run executes one stage activity. A false return means the workflow must stop.
	var stageErr error
	run := func(stage pipeline.Stage, activity string, in, out any, message func() string) bool {
		if err := tr.Begin(stage, workflow.Now(ctx)); err != nil {
			stageErr = err
			return false
		}
		if err := workflow.ExecuteActivity(ctx, activity, in).Get(ctx, out); err != nil {
			tr.Fail(stage, err, workflow.Now(ctx))
			record()
			stageErr = err
			return false
		}
		tr.Complete(stage, message(), workflow.Now(ctx))
		record()
		return true
	}
	finish := func() (DatasetBuildResult, error) {
		res := result(tr.Snapshot())
		if stageErr == nil {
			return res, nil
		}
		// Missing input and unwritable output are reported as a failed run, not a workflow error.
		if activities.IsInputNotFound(stageErr) || activities.IsOutputFailure(stageErr) {
			return res, nil
		}
		return res, stageErr
	}

	if err := tr.Begin(pipeline.StageSelecting, workflow.Now(ctx)); err != nil {
		return DatasetBuildResult{}, err
	}
	tr.Complete(pipeline.StageSelecting, pipeline.SelectedMessage(input.InputDir), workflow.Now(ctx))
	record()

	var loadOut activities.LoadCorpusOutput
	if !run(pipeline.StageLoading, "LoadCorpusActivity", activities.LoadCorpusInput{InputDir: input.InputDir, Extensions: input.Extensions}, &loadOut, func() string {
		tr.Counts().Files = len(loadOut.Documents)
		return pipeline.LoadedMessage(len(loadOut.Documents))
	}) {
		return finish()
	}
	texts := dataset.Texts(loadOut.Documents)

	var taskOut activities.ClassifyTaskOutput
	if !run(pipeline.StageClassifying, "ClassifyTaskActivity", activities.ClassifyTaskInput{Texts: texts}, &taskOut, func() string {
		tr.SetTaskType(string(taskOut.TaskType))
		return pipeline.TaskMessage(string(taskOut.TaskType))
	}) {
		return finish()
	}

	var cleanOut activities.CleanTextOutput
	if !run(pipeline.StageCleaning, "CleanTextActivity", activities.CleanTextInput{Texts: texts}, &cleanOut, func() string {
		tr.Counts().Cleaned = len(cleanOut.Texts)
		return pipeline.CleanedMessage
	}) {
		return finish()
	}

	var filterOut activities.FilterTextOutput
	if !run(pipeline.StageFiltering, "FilterTextActivity", activities.FilterTextInput{Texts: cleanOut.Texts, TargetLanguage: input.TargetLanguage}, &filterOut, func() string {
		tr.Counts().Filtered = len(filterOut.Kept)
		tr.Counts().Dropped = len(filterOut.Dropped)
		return pipeline.FilteredMessage(len(filterOut.Kept), len(cleanOut.Texts))
	}) {
		return finish()
	}

	var chunkOut activities.ChunkTextOutput
	if !run(pipeline.StageChunking, "ChunkTextActivity", activities.ChunkTextInput{Texts: filterOut.Kept, MaxTokens: input.MaxTokens}, &chunkOut, func() string {
		tr.Counts().Chunks = len(chunkOut.Chunks)
		return pipeline.ChunkedMessage(len(chunkOut.Chunks))
	}) {
		return finish()
	}

	var labelOut activities.LabelChunksOutput
	if !run(pipeline.StageLabeling, "LabelChunksActivity", activities.LabelChunksInput{Chunks: chunkOut.Chunks, Label: input.Label}, &labelOut, func() string {
		return pipeline.LabeledMessage
	}) {
		return finish()
	}

	var formatOut activities.FormatTableOutput
	if !run(pipeline.StageFormatting, "FormatTableActivity", activities.FormatTableInput{Records: labelOut.Records}, &formatOut, func() string {
		tr.Counts().Rows = len(formatOut.Table.Rows)
		return pipeline.FormattedMessage
	}) {
		return finish()
	}

	manifest := dataset.Manifest{
		RunID:      runID,
		InputDir:   input.InputDir,
		TaskType:   taskOut.TaskType,
		MaxTokens:  chunkOut.MaxTokens,
		Counts:     *tr.Counts(),
		Drops:      dataset.FilterResult{Dropped: filterOut.Dropped}.DropCounts(),
		Files:      documentNames(loadOut.Documents),
		StartedAt:  started,
		FinishedAt: workflow.Now(ctx),
	}
	var saveOut activities.SaveTableOutput
	if !run(pipeline.StageSaving, "SaveTableActivity", activities.SaveTableInput{OutputPath: input.OutputPath, Table: formatOut.Table, Manifest: manifest}, &saveOut, func() string {
		tr.SetOutputPath(saveOut.OutputPath)
		return pipeline.SavedMessage(saveOut.OutputPath)
	}) {
		return finish()
	}

	_ = workflow.ExecuteActivity(ctx, "StoreRecordsActivity", activities.StoreRecordsInput{RunID: runID, Records: labelOut.Records}).Get(ctx, nil)
	if err := tr.Finish(workflow.Now(ctx)); err != nil {
		return DatasetBuildResult{}, err
	}
	record()

	res := result(tr.Snapshot())
	res.ManifestPath = saveOut.ManifestPath
	return res, nil
}

func result(p pipeline.Progress) DatasetBuildResult {
	return DatasetBuildResult{
		RunID:       p.RunID,
		Status:      p.Status,
		Stage:       p.Stage,
		FailedStage: p.FailedStage,
		Message:     p.Message,
		OutputPath:  p.OutputPath,
		TaskType:    p.TaskType,
		Counts:      p.Counts,
	}
}

func documentNames(docs []dataset.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}
