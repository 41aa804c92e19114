package autoscaler

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	resultSuccess = "success"
	resultError   = "error"
	resultPanic   = "panic"
)

var (
	scheduledTasksGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsar",
			Name:      "autoscaler_scheduled",
			Help:      "Whether an autoscaler task is scheduled (1) or not (0)",
		},
		[]string{"namespace", "component"},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsar",
			Name:      "autoscaler_runs_total",
			Help:      "Total number of autoscaler runs by result",
		},
		[]string{"namespace", "component", "result"},
	)

	runDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pulsar",
			Name:      "autoscaler_run_duration_seconds",
			Help:      "Duration of autoscaler runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"namespace", "component"},
	)

	brokerReadyReplicasGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsar",
			Name:      "broker_ready_replicas",
			Help:      "Number of Ready broker replicas observed by the autoscaler",
		},
		[]string{"namespace", "cluster"},
	)

	brokerDesiredReplicasGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsar",
			Name:      "broker_desired_replicas",
			Help:      "Number of desired broker replicas observed by the autoscaler",
		},
		[]string{"namespace", "cluster"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		scheduledTasksGauge,
		runsTotal,
		runDurationHistogram,
		brokerReadyReplicasGauge,
		brokerDesiredReplicasGauge,
	)
}

// taskMetrics records metrics for the task of one namespace and component.
type taskMetrics struct {
	namespace string
	component string
}

func newTaskMetrics(namespace, component string) *taskMetrics {
	return &taskMetrics{namespace: namespace, component: component}
}

func (m *taskMetrics) setScheduled(scheduled bool) {
	value := 0.0
	if scheduled {
		value = 1.0
	}
	scheduledTasksGauge.
		WithLabelValues(m.namespace, m.component).
		Set(value)
}

func (m *taskMetrics) recordRun(result string, durationSeconds float64) {
	runsTotal.
		WithLabelValues(m.namespace, m.component, result).
		Inc()
	runDurationHistogram.
		WithLabelValues(m.namespace, m.component).
		Observe(durationSeconds)
}
