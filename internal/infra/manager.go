// Package infra applies the desired Kubernetes resources of a PulsarCluster.
package infra

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/util/workqueue"
	"sigs.k8s.io/controller-runtime/pkg/client"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/kube"
	"github.com/dc-tec/pulsar-operator/internal/resources"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

const defaultUpsertWorkers = 8

// componentOrder is the order in which components are synthesized.
var componentOrder = []pulsarv1alpha1.ComponentName{
	pulsarv1alpha1.ComponentZooKeeper,
	pulsarv1alpha1.ComponentBookKeeper,
	pulsarv1alpha1.ComponentBroker,
	pulsarv1alpha1.ComponentProxy,
}

// Manager reconciles the ConfigMaps, Services, StatefulSets and PodDisruptionBudgets
// of a PulsarCluster. It keeps no state between passes.
type Manager struct {
	applier kube.Applier
	workers int
}

// NewManager constructs a Manager that writes through the provided Applier.
func NewManager(applier kube.Applier) *Manager {
	return &Manager{
		applier: applier,
		workers: defaultUpsertWorkers,
	}
}

// Desired returns every resource the cluster needs. A configuration error in any
// component fails the whole call, so nothing is applied from a half-valid spec.
func Desired(cluster *pulsarv1alpha1.PulsarCluster) ([]resources.Descriptor, error) {
	global := &cluster.Spec.Global

	var out []resources.Descriptor
	if d := resources.SynthesizeCertConverter(cluster.Namespace, global); d != nil {
		out = append(out, d)
	}

	for _, component := range componentOrder {
		base := cluster.Spec.Component(component)
		if base == nil {
			continue
		}
		resolved, err := spec.ResolveAll(global, component, base)
		if err != nil {
			return nil, err
		}
		descriptors, err := resources.SynthesizeComponent(cluster.Namespace, resolved)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptors...)
	}
	return out, nil
}

// Reconcile upserts every desired resource of the cluster. Upserts run in parallel
// and one failure does not stop the others; all failures are returned together.
func (m *Manager) Reconcile(ctx context.Context, logger logr.Logger, cluster *pulsarv1alpha1.PulsarCluster) error {
	desired, err := Desired(cluster)
	if err != nil {
		return fmt.Errorf("failed to synthesize resources for PulsarCluster %s/%s: %w", cluster.Namespace, cluster.Name, err)
	}

	if debug := logger.V(2); debug.Enabled() {
		for _, d := range desired {
			rendered, err := resources.DumpYAML(d)
			if err != nil {
				debug.Info("Failed to render desired resource", "resource", d.Key().String(), "error", err.Error())
				continue
			}
			debug.Info("Desired resource", "resource", d.Key().String(), "yaml", rendered)
		}
	}

	errs := make([]error, len(desired))
	workqueue.ParallelizeUntil(ctx, m.workers, len(desired), func(i int) {
		d := desired[i]
		obj := d.Object()
		markManaged(obj)
		if err := m.applier.Upsert(ctx, cluster, obj); err != nil {
			errs[i] = fmt.Errorf("failed to upsert %s: %w", d.Key(), err)
			return
		}
		logger.V(1).Info("Resource reconciled", "kind", d.Kind(), "name", d.Key().Name)
	})
	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}

	if err := utilerrors.NewAggregate(errs); err != nil {
		return err
	}

	logger.V(1).Info("Infrastructure reconciled", "resources", len(desired))
	return nil
}

// markManaged adds the managed-by label to the object metadata. Selectors are left
// untouched.
func markManaged(obj client.Object) {
	labels := obj.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}
	labels[constants.LabelAppManagedBy] = constants.LabelValueAppManagedByPulsarOperator
	obj.SetLabels(labels)
}
