package resources

import (
	"fmt"
	"maps"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

// ComponentResourceName returns "{cluster}-{component}".
func ComponentResourceName(clusterName string, component pulsarv1alpha1.ComponentName) string {
	return fmt.Sprintf("%s-%s", clusterName, component)
}

// ResourceName returns "{cluster}-{component}" for the base and
// "{cluster}-{component}-{set}" for a named set.
func ResourceName(r *spec.Resolved) string {
	base := ComponentResourceName(r.ClusterName(), r.Component)
	if r.SetName == "" {
		return base
	}
	return fmt.Sprintf("%s-%s", base, r.SetName)
}

// ComponentLabels returns the labels shared by every resource of a component.
func ComponentLabels(clusterName string, component pulsarv1alpha1.ComponentName) map[string]string {
	return map[string]string{
		constants.LabelApp:       clusterName,
		constants.LabelComponent: string(component),
		constants.LabelCluster:   clusterName,
	}
}

// Labels returns the label set of one resolved set. The same set is used as the
// selector of the StatefulSet, Services, PodDisruptionBudget and anti-affinity terms.
// The resource-set label is present only for named sets.
func Labels(r *spec.Resolved) map[string]string {
	labels := ComponentLabels(r.ClusterName(), r.Component)
	if r.SetName != "" {
		labels[constants.LabelResourceSet] = r.SetName
	}
	return labels
}

func cloneLabels(in map[string]string) map[string]string {
	return maps.Clone(in)
}
