package pipeline

import "fmt"

// Status texts shown after each stage completes. Both drivers use them.

func SelectedMessage(dir string) string {
	if dir == "" {
		return "no directory selected"
	}
	return "directory selected: " + dir
}

func LoadedMessage(files int) string { return fmt.Sprintf("data prepared: %d files loaded", files) }

func TaskMessage(task string) string { return "detected task type: " + task }

const (
	CleanedMessage   = "data cleaned"
	LabeledMessage   = "consistent labeling applied"
	FormattedMessage = "data formatted"
)

func FilteredMessage(kept, total int) string {
	return fmt.Sprintf("irrelevant data filtered: kept %d of %d", kept, total)
}

func ChunkedMessage(chunks int) string { return fmt.Sprintf("text split into %d chunks", chunks) }

func SavedMessage(path string) string { return "data saved to " + path }
