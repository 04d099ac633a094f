package dataset

import "dataprep/internal/util"

// ChunkAll windows every item and flattens the result in item order.
func ChunkAll(items []string, maxTokens int) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, util.ChunkTokens(s, maxTokens)...)
	}
	return out
}
