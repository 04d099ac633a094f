package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.LoadCorpusActivity)
	w.RegisterActivity(a.ClassifyTaskActivity)
	w.RegisterActivity(a.CleanTextActivity)
	w.RegisterActivity(a.FilterTextActivity)
	w.RegisterActivity(a.ChunkTextActivity)
	w.RegisterActivity(a.LabelChunksActivity)
	w.RegisterActivity(a.FormatTableActivity)
	w.RegisterActivity(a.SaveTableActivity)
	w.RegisterActivity(a.RecordRunActivity)
	w.RegisterActivity(a.StoreRecordsActivity)
}
