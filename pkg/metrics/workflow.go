package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records counters for the main business workflows.
type WorkflowMetrics struct {
	ordersCreated      prometheus.Counter
	orderTransitions   *prometheus.CounterVec
	rechargesSubmitted prometheus.Counter
	rechargesApproved  prometheus.Counter
	productsAdopted    prometheus.Counter
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed through the back office.",
	})
	orderTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status updates, labelled by target status.",
	}, []string{"status"})
	rechargesSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recharges_submitted_total",
		Help: "Recharge proofs uploaded by users.",
	})
	rechargesApproved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recharges_approved_total",
		Help: "Recharge entries approved by admins.",
	})
	productsAdopted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "products_adopted_total",
		Help: "Products adopted by stores.",
	})
	reg.MustRegister(ordersCreated, orderTransitions, rechargesSubmitted, rechargesApproved, productsAdopted)
	return &WorkflowMetrics{
		ordersCreated:      ordersCreated,
		orderTransitions:   orderTransitions,
		rechargesSubmitted: rechargesSubmitted,
		rechargesApproved:  rechargesApproved,
		productsAdopted:    productsAdopted,
	}
}

// IncOrderCreated increments the order creation counter.
func (m *WorkflowMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncOrderTransition increments the transition counter for the target status.
func (m *WorkflowMetrics) IncOrderTransition(status string) {
	if m == nil || m.orderTransitions == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.orderTransitions.WithLabelValues(status).Inc()
}

// IncRechargeSubmitted increments the recharge submission counter.
func (m *WorkflowMetrics) IncRechargeSubmitted() {
	if m == nil || m.rechargesSubmitted == nil {
		return
	}
	m.rechargesSubmitted.Inc()
}

// IncRechargeApproved increments the recharge approval counter.
func (m *WorkflowMetrics) IncRechargeApproved() {
	if m == nil || m.rechargesApproved == nil {
		return
	}
	m.rechargesApproved.Inc()
}

// IncProductAdopted increments the adoption counter.
func (m *WorkflowMetrics) IncProductAdopted() {
	if m == nil || m.productsAdopted == nil {
		return
	}
	m.productsAdopted.Inc()
}
