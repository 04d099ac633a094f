package dialog

import (
	"context"
	"testing"

	"dataprep/internal/selector"

	"github.com/stretchr/testify/require"
)

var _ selector.Selector = (*Selector)(nil)

func TestSelectHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Select(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
