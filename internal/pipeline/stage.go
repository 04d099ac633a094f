package pipeline

type Stage string

const (
	StageIdle        Stage = "idle"
	StageSelecting   Stage = "selecting"
	StageLoading     Stage = "loading"
	StageClassifying Stage = "classifying"
	StageCleaning    Stage = "cleaning"
	StageFiltering   Stage = "filtering"
	StageChunking    Stage = "chunking"
	StageLabeling    Stage = "labeling"
	StageFormatting  Stage = "formatting"
	StageSaving      Stage = "saving"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

var stageOrder = []Stage{
	StageIdle,
	StageSelecting,
	StageLoading,
	StageClassifying,
	StageCleaning,
	StageFiltering,
	StageChunking,
	StageLabeling,
	StageFormatting,
	StageSaving,
	StageDone,
}

// WorkStages are the stages that carry a unit of work, in execution order.
func WorkStages() []Stage {
	return append([]Stage(nil), stageOrder[1:len(stageOrder)-1]...)
}

// Next returns the linear successor, or the stage itself when terminal.
func (s Stage) Next() Stage {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1]
		}
	}
	return s
}

func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// CanTransition allows the linear successor, or failed from any non-terminal stage.
func CanTransition(from, to Stage) bool {
	if from.Terminal() {
		return false
	}
	if to == StageFailed {
		return true
	}
	return from.Next() == to && from != to
}
