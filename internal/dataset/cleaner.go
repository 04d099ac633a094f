package dataset

import "strings"

// Clean collapses every whitespace run to one space and trims each item.
func Clean(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.Join(strings.Fields(s), " ")
	}
	return out
}
