package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageOrder(t *testing.T) {
	require.Equal(t, []Stage{
		StageSelecting, StageLoading, StageClassifying, StageCleaning, StageFiltering,
		StageChunking, StageLabeling, StageFormatting, StageSaving,
	}, WorkStages())
	require.Equal(t, StageSelecting, StageIdle.Next())
	require.Equal(t, StageDone, StageSaving.Next())
	require.Equal(t, StageDone, StageDone.Next())
}

func TestCanTransition(t *testing.T) {
	require.True(t, CanTransition(StageIdle, StageSelecting))
	require.True(t, CanTransition(StageChunking, StageLabeling))
	require.True(t, CanTransition(StageLoading, StageFailed))
	require.True(t, CanTransition(StageIdle, StageFailed))

	require.False(t, CanTransition(StageIdle, StageLoading))
	require.False(t, CanTransition(StageLoading, StageSelecting))
	require.False(t, CanTransition(StageDone, StageFailed))
	require.False(t, CanTransition(StageFailed, StageSelecting))
	require.False(t, CanTransition(StageSaving, StageSaving))
}
