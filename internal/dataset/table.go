package dataset

import "dataprep/internal/models"

var Columns = []string{"text", "label"}

func Format(records []models.Record) models.Table {
	t := models.Table{
		Columns: append([]string(nil), Columns...),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{r.Text, r.Label})
	}
	return t
}
