package activities

import (
	"dataprep/internal/dataset"
	"dataprep/internal/models"
)

type LoadCorpusInput struct {
	InputDir   string   `json:"input_dir"`
	Extensions []string `json:"extensions,omitempty"`
}

type LoadCorpusOutput struct {
	Documents []dataset.Document `json:"documents"`
}

type ClassifyTaskInput struct {
	Texts []string `json:"texts"`
}

type ClassifyTaskOutput struct {
	TaskType dataset.TaskType `json:"task_type"`
}

type CleanTextInput struct {
	Texts []string `json:"texts"`
}

type CleanTextOutput struct {
	Texts []string `json:"texts"`
}

type FilterTextInput struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"target_language,omitempty"`
}

type FilterTextOutput struct {
	Kept    []string       `json:"kept"`
	Dropped []dataset.Drop `json:"dropped,omitempty"`
}

type ChunkTextInput struct {
	Texts     []string `json:"texts"`
	MaxTokens int      `json:"max_tokens"`
}

type ChunkTextOutput struct {
	Chunks []string `json:"chunks"`
	// MaxTokens is the window actually applied after defaults.
	MaxTokens int `json:"max_tokens"`
}

type LabelChunksInput struct {
	Chunks []string `json:"chunks"`
	Label  string   `json:"label,omitempty"`
}

type LabelChunksOutput struct {
	Records []models.Record `json:"records"`
}

type FormatTableInput struct {
	Records []models.Record `json:"records"`
}

type FormatTableOutput struct {
	Table models.Table `json:"table"`
}

type SaveTableInput struct {
	OutputPath string           `json:"output_path"`
	Table      models.Table     `json:"table"`
	Manifest   dataset.Manifest `json:"manifest"`
}

type SaveTableOutput struct {
	OutputPath   string `json:"output_path"`
	ManifestPath string `json:"manifest_path,omitempty"`
}

type RecordRunInput struct {
	Run models.Run `json:"run"`
}

type StoreRecordsInput struct {
	RunID   string          `json:"run_id"`
	Records []models.Record `json:"records"`
}
