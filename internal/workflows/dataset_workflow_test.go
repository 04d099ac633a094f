package workflows

import (
	"context"
	"errors"
	"testing"

	"dataprep/internal/activities"
	"dataprep/internal/dataset"
	"dataprep/internal/models"
	"dataprep/internal/pipeline"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DatasetBuildWorkflow)
	registerActivityName(env, "LoadCorpusActivity", func(context.Context, activities.LoadCorpusInput) (activities.LoadCorpusOutput, error) {
		return activities.LoadCorpusOutput{}, nil
	})
	registerActivityName(env, "ClassifyTaskActivity", func(context.Context, activities.ClassifyTaskInput) (activities.ClassifyTaskOutput, error) {
		return activities.ClassifyTaskOutput{}, nil
	})
	registerActivityName(env, "CleanTextActivity", func(context.Context, activities.CleanTextInput) (activities.CleanTextOutput, error) {
		return activities.CleanTextOutput{}, nil
	})
	registerActivityName(env, "FilterTextActivity", func(context.Context, activities.FilterTextInput) (activities.FilterTextOutput, error) {
		return activities.FilterTextOutput{}, nil
	})
	registerActivityName(env, "ChunkTextActivity", func(context.Context, activities.ChunkTextInput) (activities.ChunkTextOutput, error) {
		return activities.ChunkTextOutput{}, nil
	})
	registerActivityName(env, "LabelChunksActivity", func(context.Context, activities.LabelChunksInput) (activities.LabelChunksOutput, error) {
		return activities.LabelChunksOutput{}, nil
	})
	registerActivityName(env, "FormatTableActivity", func(context.Context, activities.FormatTableInput) (activities.FormatTableOutput, error) {
		return activities.FormatTableOutput{}, nil
	})
	registerActivityName(env, "SaveTableActivity", func(context.Context, activities.SaveTableInput) (activities.SaveTableOutput, error) {
		return activities.SaveTableOutput{}, nil
	})
	registerActivityName(env, "RecordRunActivity", func(context.Context, activities.RecordRunInput) error { return nil })
	registerActivityName(env, "StoreRecordsActivity", func(context.Context, activities.StoreRecordsInput) error { return nil })

	env.OnActivity("RecordRunActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("StoreRecordsActivity", mock.Anything, mock.Anything).Return(nil)
	return env
}

func TestDatasetBuildWorkflowSuccess(t *testing.T) {
	env := newEnv(t)
	docs := []dataset.Document{{Name: "a.txt", Text: "Bugün hava çok güzel"}, {Name: "b.txt", Text: "xyz123"}}
	records := []models.Record{{Text: "Bugün hava çok güzel", Label: "label"}}
	table := dataset.Format(records)

	env.OnActivity("LoadCorpusActivity", mock.Anything, activities.LoadCorpusInput{InputDir: "/in"}).Return(activities.LoadCorpusOutput{Documents: docs}, nil)
	env.OnActivity("ClassifyTaskActivity", mock.Anything, mock.Anything).Return(activities.ClassifyTaskOutput{TaskType: dataset.TaskTextClassification}, nil)
	env.OnActivity("CleanTextActivity", mock.Anything, mock.Anything).Return(activities.CleanTextOutput{Texts: dataset.Texts(docs)}, nil)
	env.OnActivity("FilterTextActivity", mock.Anything, mock.Anything).Return(activities.FilterTextOutput{
		Kept:    []string{"Bugün hava çok güzel"},
		Dropped: []dataset.Drop{{Index: 1, Reason: dataset.DropDetectFailed}},
	}, nil)
	env.OnActivity("ChunkTextActivity", mock.Anything, activities.ChunkTextInput{Texts: []string{"Bugün hava çok güzel"}}).Return(activities.ChunkTextOutput{Chunks: []string{"Bugün hava çok güzel"}, MaxTokens: 128}, nil)
	env.OnActivity("LabelChunksActivity", mock.Anything, mock.Anything).Return(activities.LabelChunksOutput{Records: records}, nil)
	env.OnActivity("FormatTableActivity", mock.Anything, mock.Anything).Return(activities.FormatTableOutput{Table: table}, nil)
	env.OnActivity("SaveTableActivity", mock.Anything, mock.MatchedBy(func(in activities.SaveTableInput) bool {
		return in.Manifest.MaxTokens == 128 && len(in.Table.Rows) == 1
	})).Return(activities.SaveTableOutput{OutputPath: "output/dataset.csv", ManifestPath: "output/dataset.manifest.json"}, nil)

	env.ExecuteWorkflow(DatasetBuildWorkflow, DatasetBuildInput{InputDir: "/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out DatasetBuildResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, pipeline.StatusDone, out.Status)
	require.Equal(t, pipeline.StageDone, out.Stage)
	require.Equal(t, "data saved to output/dataset.csv", out.Message)
	require.Equal(t, "output/dataset.csv", out.OutputPath)
	require.Equal(t, "output/dataset.manifest.json", out.ManifestPath)
	require.Equal(t, "text_classification", out.TaskType)
	require.Equal(t, models.StageCounts{Files: 2, Cleaned: 2, Filtered: 1, Dropped: 1, Chunks: 1, Rows: 1}, out.Counts)

	v, err := env.QueryWorkflow(QueryGetProgress)
	require.NoError(t, err)
	var p pipeline.Progress
	require.NoError(t, v.Get(&p))
	require.Equal(t, pipeline.StageDone, p.Stage)
	for _, s := range pipeline.WorkStages() {
		require.Equal(t, pipeline.StepDone, p.Steps[s], s)
	}
}

func TestDatasetBuildWorkflowInputNotFoundFailsGracefully(t *testing.T) {
	env := newEnv(t)
	env.OnActivity("LoadCorpusActivity", mock.Anything, mock.Anything).Return(activities.LoadCorpusOutput{},
		temporal.NewNonRetryableApplicationError("input not found: no .txt files in /in", activities.ErrTypeInputNotFound, nil))

	env.ExecuteWorkflow(DatasetBuildWorkflow, DatasetBuildInput{InputDir: "/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out DatasetBuildResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, pipeline.StatusFailed, out.Status)
	require.Equal(t, pipeline.StageFailed, out.Stage)
	require.Equal(t, pipeline.StageLoading, out.FailedStage)
	require.Equal(t, "input not found: no .txt files in /in", out.Message)
}

func TestDatasetBuildWorkflowOutputFailureFailsGracefully(t *testing.T) {
	env := newEnv(t)
	env.OnActivity("LoadCorpusActivity", mock.Anything, mock.Anything).Return(activities.LoadCorpusOutput{Documents: []dataset.Document{{Name: "a.txt", Text: "bir"}}}, nil)
	env.OnActivity("ClassifyTaskActivity", mock.Anything, mock.Anything).Return(activities.ClassifyTaskOutput{TaskType: dataset.TaskTextClassification}, nil)
	env.OnActivity("CleanTextActivity", mock.Anything, mock.Anything).Return(activities.CleanTextOutput{Texts: []string{"bir"}}, nil)
	env.OnActivity("FilterTextActivity", mock.Anything, mock.Anything).Return(activities.FilterTextOutput{}, nil)
	env.OnActivity("ChunkTextActivity", mock.Anything, mock.Anything).Return(activities.ChunkTextOutput{}, nil)
	env.OnActivity("LabelChunksActivity", mock.Anything, mock.Anything).Return(activities.LabelChunksOutput{}, nil)
	env.OnActivity("FormatTableActivity", mock.Anything, mock.Anything).Return(activities.FormatTableOutput{Table: dataset.Format(nil)}, nil)
	env.OnActivity("SaveTableActivity", mock.Anything, mock.Anything).Return(activities.SaveTableOutput{},
		temporal.NewNonRetryableApplicationError("output write failed: read-only file system", activities.ErrTypeOutput, nil))

	env.ExecuteWorkflow(DatasetBuildWorkflow, DatasetBuildInput{InputDir: "/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out DatasetBuildResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, pipeline.StatusFailed, out.Status)
	require.Equal(t, pipeline.StageSaving, out.FailedStage)
	require.Equal(t, "could not save dataset: output write failed: read-only file system", out.Message)
}

func TestDatasetBuildWorkflowUnexpectedErrorFailsWorkflow(t *testing.T) {
	env := newEnv(t)
	env.OnActivity("LoadCorpusActivity", mock.Anything, mock.Anything).Return(activities.LoadCorpusOutput{Documents: []dataset.Document{{Name: "a.txt", Text: "bir"}}}, nil)
	env.OnActivity("ClassifyTaskActivity", mock.Anything, mock.Anything).Return(activities.ClassifyTaskOutput{TaskType: dataset.TaskTextClassification}, nil)
	env.OnActivity("CleanTextActivity", mock.Anything, mock.Anything).Return(activities.CleanTextOutput{Texts: []string{"bir"}}, nil)
	env.OnActivity("FilterTextActivity", mock.Anything, mock.Anything).Return(activities.FilterTextOutput{}, errors.New("detector crashed"))

	env.ExecuteWorkflow(DatasetBuildWorkflow, DatasetBuildInput{InputDir: "/in"})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
