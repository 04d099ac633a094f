package models

import "time"

// Record is one labeled training row.
type Record struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Table is the tabular form written to disk. Rows follow Columns order.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type StageCounts struct {
	Files    int `json:"files"`
	Cleaned  int `json:"cleaned"`
	Filtered int `json:"filtered"`
	Dropped  int `json:"dropped"`
	Chunks   int `json:"chunks"`
	Rows     int `json:"rows"`
}

type Run struct {
	RunID      string      `json:"run_id"`
	InputDir   string      `json:"input_dir"`
	OutputPath string      `json:"output_path"`
	Stage      string      `json:"stage"`
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	TaskType   string      `json:"task_type,omitempty"`
	Counts     StageCounts `json:"counts"`
	StartedAt  time.Time   `json:"started_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
