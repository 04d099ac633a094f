package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataprep_runs_total",
			Help: "Count of finished dataset runs by final status",
		},
		[]string{"status"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataprep_stage_duration_seconds",
			Help:    "Wall time spent in each pipeline stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	ItemsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataprep_items_dropped_total",
			Help: "Texts removed by the relevance filter",
		},
		[]string{"reason"},
	)

	RowsWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dataprep_rows_written_total",
			Help: "Dataset rows written to disk",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to reg once per process.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(RunsTotal, StageDuration, ItemsDroppedTotal, RowsWrittenTotal)
	})
}
