package dataset

import (
	"time"

	"dataprep/internal/models"
	"dataprep/internal/util"
)

const manifestSuffix = ".manifest.json"

// Manifest summarizes one run next to the dataset it produced.
type Manifest struct {
	RunID      string             `json:"run_id"`
	InputDir   string             `json:"input_dir"`
	OutputPath string             `json:"output_path"`
	TaskType   TaskType           `json:"task_type"`
	MaxTokens  int                `json:"max_tokens"`
	Counts     models.StageCounts `json:"counts"`
	Drops      map[DropReason]int `json:"drops,omitempty"`
	Files      []string           `json:"files"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

func ManifestPath(outputPath string) string {
	return util.SiblingPath(outputPath, manifestSuffix)
}

func WriteManifest(outputPath string, m Manifest) (string, error) {
	path := ManifestPath(outputPath)
	if err := util.WriteJSONAtomic(path, m); err != nil {
		return "", err
	}
	return path, nil
}
