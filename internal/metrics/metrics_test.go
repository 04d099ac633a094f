package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	Register(reg)

	RowsWrittenTotal.Add(2)
	ItemsDroppedTotal.WithLabelValues("neutral").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["dataprep_rows_written_total"])
	require.True(t, names["dataprep_items_dropped_total"])
}
