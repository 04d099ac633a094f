package dataset

import "dataprep/internal/models"

const DefaultLabel = "label"

// Label pairs every chunk with the same placeholder label.
func Label(chunks []string, label string) []models.Record {
	if label == "" {
		label = DefaultLabel
	}
	out := make([]models.Record, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, models.Record{Text: c, Label: label})
	}
	return out
}
