package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegisterWithoutConflicts(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NotPanics(t, func() { reg.MustRegister(m.collectors()...) })
}

func TestMetrics_CountersAccumulate(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.ActivityDropped, m.SessionsEvicted)

	m.ActivityDropped.Inc()
	m.ActivityDropped.Inc()
	m.SessionsEvicted.WithLabelValues("idle").Add(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			got[f.GetName()] += metric.GetCounter().GetValue()
		}
	}
	assert.InDelta(t, 2, got["flood_portal_activity_dropped_total"], 0)
	assert.InDelta(t, 3, got["flood_portal_sessions_evicted_total"], 0)
}
