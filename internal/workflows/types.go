package workflows

import (
	"dataprep/internal/models"
	"dataprep/internal/pipeline"
)

type DatasetBuildInput struct {
	InputDir       string   `json:"input_dir"`
	OutputPath     string   `json:"output_path,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty"`
	Label          string   `json:"label,omitempty"`
	TargetLanguage string   `json:"target_language,omitempty"`
	Extensions     []string `json:"extensions,omitempty"`
}

type DatasetBuildResult struct {
	RunID        string             `json:"run_id"`
	Status       string             `json:"status"`
	Stage        pipeline.Stage     `json:"stage"`
	FailedStage  pipeline.Stage     `json:"failed_stage,omitempty"`
	Message      string             `json:"message"`
	OutputPath   string             `json:"output_path,omitempty"`
	ManifestPath string             `json:"manifest_path,omitempty"`
	TaskType     string             `json:"task_type,omitempty"`
	Counts       models.StageCounts `json:"counts"`
}
