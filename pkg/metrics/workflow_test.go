package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.IncOrderCreated()
	m.IncOrderCreated()
	m.IncOrderTransition("delivered")
	m.IncOrderTransition("")
	m.IncRechargeSubmitted()
	m.IncRechargeApproved()
	m.IncProductAdopted()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ordersCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.orderTransitions.WithLabelValues("delivered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.orderTransitions.WithLabelValues("unknown")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rechargesSubmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rechargesApproved))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.productsAdopted))
}

func TestWorkflowMetricsNilSafe(t *testing.T) {
	var m *WorkflowMetrics
	require.NotPanics(t, func() {
		m.IncOrderCreated()
		m.IncOrderTransition("placed")
		m.IncRechargeSubmitted()
		m.IncRechargeApproved()
		m.IncProductAdopted()
	})

	empty := NewWorkflowMetrics(nil)
	require.NotPanics(t, func() {
		empty.IncOrderCreated()
	})
}
