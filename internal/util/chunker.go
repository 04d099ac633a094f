package util

import "strings"

const DefaultMaxTokens = 128

// ChunkTokens splits text on whitespace and returns consecutive,
// non-overlapping windows of at most maxTokens tokens joined by single spaces.
// Empty or whitespace-only text yields no chunks.
func ChunkTokens(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	tokens := strings.Fields(text)
	out := make([]string, 0, (len(tokens)+maxTokens-1)/maxTokens)
	for i := 0; i < len(tokens); i += maxTokens {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, strings.Join(tokens[i:end], " "))
	}
	return out
}
