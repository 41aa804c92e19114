package resources

import (
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/dc-tec/pulsar-operator/internal/spec"
)

const defaultMaxUnavailable int32 = 1

// buildPodDisruptionBudget limits voluntary disruptions of one set. The selector is
// the label set of the StatefulSet pods.
func buildPodDisruptionBudget(namespace string, r *spec.Resolved) *policyv1.PodDisruptionBudget {
	value := defaultMaxUnavailable
	if r.Spec.PDB != nil && r.Spec.PDB.MaxUnavailable != nil {
		value = *r.Spec.PDB.MaxUnavailable
	}
	maxUnavailable := intstr.FromInt32(value)

	return &policyv1.PodDisruptionBudget{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "policy/v1",
			Kind:       "PodDisruptionBudget",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ResourceName(r),
			Namespace: namespace,
			Labels:    Labels(r),
		},
		Spec: policyv1.PodDisruptionBudgetSpec{
			MaxUnavailable: &maxUnavailable,
			Selector: &metav1.LabelSelector{
				MatchLabels: Labels(r),
			},
		},
	}
}
