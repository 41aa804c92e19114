package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	reconcileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pulsar",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation loops in seconds",
			// Buckets chosen to capture fast reconciles and longer tail up to 60s.
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"namespace", "name", "controller"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsar",
			Name:      "reconcile_errors_total",
			Help:      "Total number of reconciliation errors",
		},
		[]string{"namespace", "name", "controller", "reason"},
	)

	clusterReadyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsar",
			Name:      "cluster_ready",
			Help:      "Whether every desired resource of a PulsarCluster was applied (1) or not (0)",
		},
		[]string{"namespace", "name"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcileDurationHistogram,
		reconcileErrorsTotal,
		clusterReadyGauge,
	)
}

// ReconcileMetrics provides helpers to record reconcile-level metrics for a
// specific controller and PulsarCluster.
type ReconcileMetrics struct {
	namespace  string
	name       string
	controller string
}

// NewReconcileMetrics creates a new ReconcileMetrics instance.
func NewReconcileMetrics(namespace, name, controller string) *ReconcileMetrics {
	return &ReconcileMetrics{
		namespace:  namespace,
		name:       name,
		controller: controller,
	}
}

// ObserveDuration records the duration of a reconcile loop in seconds.
func (m *ReconcileMetrics) ObserveDuration(durationSeconds float64) {
	reconcileDurationHistogram.
		WithLabelValues(m.namespace, m.name, m.controller).
		Observe(durationSeconds)
}

// IncrementError increments the reconcile error counter with the given reason.
// Reason values should be low-cardinality strings such as a condition reason.
func (m *ReconcileMetrics) IncrementError(reason string) {
	reconcileErrorsTotal.
		WithLabelValues(m.namespace, m.name, m.controller, reason).
		Inc()
}

// ClusterMetrics provides helpers to record per-cluster state metrics.
type ClusterMetrics struct {
	namespace string
	name      string
}

// NewClusterMetrics creates a new ClusterMetrics instance.
func NewClusterMetrics(namespace, name string) *ClusterMetrics {
	return &ClusterMetrics{
		namespace: namespace,
		name:      name,
	}
}

// SetReady records whether the last pass applied every resource.
func (m *ClusterMetrics) SetReady(ready bool) {
	value := 0.0
	if ready {
		value = 1.0
	}
	clusterReadyGauge.
		WithLabelValues(m.namespace, m.name).
		Set(value)
}

// Clear removes the per-cluster series once the cluster is gone.
func (m *ClusterMetrics) Clear() {
	clusterReadyGauge.DeleteLabelValues(m.namespace, m.name)
}
