package autoscaler

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
)

// Task is the body of one autoscaler run. Implementations must return promptly
// once ctx is cancelled.
type Task interface {
	Run(ctx context.Context, namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error
}

// TaskFunc adapts a function to a Task.
type TaskFunc func(ctx context.Context, namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error

// Run calls f.
func (f TaskFunc) Run(ctx context.Context, namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error {
	return f(ctx, namespace, spec)
}

// BrokerObserver reads the broker StatefulSets of a cluster and publishes their
// ready and desired replica counts. The scale decision itself is left to an
// external autoscaler reading these series.
type BrokerObserver struct {
	client client.Reader
}

// NewBrokerObserver returns a BrokerObserver reading through c.
func NewBrokerObserver(c client.Reader) *BrokerObserver {
	return &BrokerObserver{client: c}
}

// Run implements Task.
func (o *BrokerObserver) Run(ctx context.Context, namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error {
	clusterName := spec.Global.Name

	list := &appsv1.StatefulSetList{}
	if err := o.client.List(ctx, list,
		client.InNamespace(namespace),
		client.MatchingLabels{
			constants.LabelCluster:   clusterName,
			constants.LabelComponent: string(pulsarv1alpha1.ComponentBroker),
		},
	); err != nil {
		return fmt.Errorf("failed to list broker StatefulSets in %s: %w", namespace, err)
	}

	var ready, desired int32
	for i := range list.Items {
		sts := &list.Items[i]
		ready += sts.Status.ReadyReplicas
		desired += ptr.Deref(sts.Spec.Replicas, 1)
	}

	brokerReadyReplicasGauge.WithLabelValues(namespace, clusterName).Set(float64(ready))
	brokerDesiredReplicasGauge.WithLabelValues(namespace, clusterName).Set(float64(desired))

	logger := log.FromContext(ctx)
	logArgs := []any{"cluster", clusterName, "readyReplicas", ready, "desiredReplicas", desired}
	if spec.Broker != nil && spec.Broker.Autoscaler != nil {
		as := spec.Broker.Autoscaler
		logArgs = append(logArgs, "min", as.Min, "max", as.Max,
			"lowerCpuThreshold", as.LowerCPUThreshold, "higherCpuThreshold", as.HigherCPUThreshold)
	}
	logger.V(1).Info("Observed broker replicas", logArgs...)
	return nil
}
