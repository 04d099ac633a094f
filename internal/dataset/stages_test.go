package dataset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanCollapsesWhitespaceAndIsIdempotent(t *testing.T) {
	in := []string{"  Bugün\n\nhava \t çok   güzel  ", "", "\n\t "}
	once := Clean(in)
	require.Equal(t, []string{"Bugün hava çok güzel", "", ""}, once)
	require.Equal(t, once, Clean(once))
	require.Len(t, once, len(in))
}

func TestDetectTask(t *testing.T) {
	require.Equal(t, TaskTextClassification, DetectTask([]string{"a", "b"}))
	require.Equal(t, TaskTextClassification, DetectTask(nil))
	require.Equal(t, TaskUnknown, DetectTaskOf([]any{"a", 3}))
}

func TestChunkAllFlattensInOrder(t *testing.T) {
	words := make([]string, 300)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	chunks := ChunkAll([]string{"a b c", "", strings.Join(words, " ")}, 128)
	require.Len(t, chunks, 4)
	require.Equal(t, "a b c", chunks[0])
	require.Len(t, strings.Fields(chunks[1]), 128)
	require.Len(t, strings.Fields(chunks[2]), 128)
	require.Len(t, strings.Fields(chunks[3]), 44)
	require.True(t, strings.HasPrefix(chunks[1], "w0 "))
}

func TestLabelAndFormat(t *testing.T) {
	records := Label([]string{"bir", "iki"}, "")
	for _, r := range records {
		require.Equal(t, "label", r.Label)
	}
	table := Format(records)
	require.Equal(t, []string{"text", "label"}, table.Columns)
	require.Equal(t, [][]string{{"bir", "label"}, {"iki", "label"}}, table.Rows)

	empty := Format(nil)
	require.Equal(t, []string{"text", "label"}, empty.Columns)
	require.Empty(t, empty.Rows)
}
