package dataset

type TaskType string

const (
	TaskTextClassification TaskType = "text_classification"
	TaskUnknown            TaskType = "unknown"
)

// DetectTask classifies a loaded corpus. Every item of a []string is text, so
// this is always text_classification; DetectTaskOf is the seam for
// heterogeneous inputs.
func DetectTask(corpus []string) TaskType {
	items := make([]any, len(corpus))
	for i, s := range corpus {
		items[i] = s
	}
	return DetectTaskOf(items)
}

func DetectTaskOf(items []any) TaskType {
	for _, it := range items {
		if _, ok := it.(string); !ok {
			return TaskUnknown
		}
	}
	return TaskTextClassification
}
