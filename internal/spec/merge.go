package spec

import (
	"maps"
	"slices"

	corev1 "k8s.io/api/core/v1"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
)

// Merge overlays upper onto lower and returns a new value. Neither input is
// modified and the result shares no maps, slices or pointers with them.
//
// Scalars take the upper value when it is set. Maps are unioned key by key with
// upper entries winning. Lists are replaced as a whole. Probe, data volume, service
// and disruption budget options merge field by field; platform structs (resources,
// affinities, update strategy) are replaced as a unit.
func Merge(lower, upper pulsarv1alpha1.ComponentSetSpec) pulsarv1alpha1.ComponentSetSpec {
	out := *lower.DeepCopy()

	if upper.Image != "" {
		out.Image = upper.Image
	}
	if upper.ImagePullPolicy != "" {
		out.ImagePullPolicy = upper.ImagePullPolicy
	}
	if upper.Replicas != nil {
		out.Replicas = copyPtr(upper.Replicas)
	}
	if upper.Resources != nil {
		out.Resources = upper.Resources.DeepCopy()
	}
	out.Config = mergeMaps(lower.Config, upper.Config)
	out.Annotations = mergeMaps(lower.Annotations, upper.Annotations)
	out.NodeSelectors = mergeMaps(lower.NodeSelectors, upper.NodeSelectors)
	if upper.Tolerations != nil {
		out.Tolerations = make([]corev1.Toleration, len(upper.Tolerations))
		for i := range upper.Tolerations {
			upper.Tolerations[i].DeepCopyInto(&out.Tolerations[i])
		}
	}
	if upper.NodeAffinity != nil {
		out.NodeAffinity = upper.NodeAffinity.DeepCopy()
	}
	if upper.PodAntiAffinity != nil {
		out.PodAntiAffinity = upper.PodAntiAffinity.DeepCopy()
	}
	if upper.UpdateStrategy != nil {
		out.UpdateStrategy = upper.UpdateStrategy.DeepCopy()
	}
	if upper.PodManagementPolicy != "" {
		out.PodManagementPolicy = upper.PodManagementPolicy
	}
	if upper.GracePeriod != nil {
		out.GracePeriod = copyPtr(upper.GracePeriod)
	}
	out.Probe = mergeProbe(lower.Probe, upper.Probe)
	out.DataVolume = mergeVolume(lower.DataVolume, upper.DataVolume)
	out.Service = mergeService(lower.Service, upper.Service)
	out.PDB = mergePDB(lower.PDB, upper.PDB)

	return out
}

func mergeProbe(lower, upper *pulsarv1alpha1.ProbeSpec) *pulsarv1alpha1.ProbeSpec {
	if upper == nil {
		return lower.DeepCopy()
	}
	out := &pulsarv1alpha1.ProbeSpec{}
	if lower != nil {
		out = lower.DeepCopy()
	}
	if upper.Enabled != nil {
		out.Enabled = copyPtr(upper.Enabled)
	}
	if upper.Initial != nil {
		out.Initial = copyPtr(upper.Initial)
	}
	if upper.Period != nil {
		out.Period = copyPtr(upper.Period)
	}
	if upper.Timeout != nil {
		out.Timeout = copyPtr(upper.Timeout)
	}
	return out
}

func mergeVolume(lower, upper *pulsarv1alpha1.VolumeSpec) *pulsarv1alpha1.VolumeSpec {
	if upper == nil {
		return lower.DeepCopy()
	}
	out := &pulsarv1alpha1.VolumeSpec{}
	if lower != nil {
		out = lower.DeepCopy()
	}
	if upper.Name != "" {
		out.Name = upper.Name
	}
	if upper.Size != "" {
		out.Size = upper.Size
	}
	if upper.ExistingStorageClassName != "" {
		out.ExistingStorageClassName = upper.ExistingStorageClassName
	}
	return out
}

func mergeService(lower, upper *pulsarv1alpha1.ServiceSpec) *pulsarv1alpha1.ServiceSpec {
	if upper == nil {
		return lower.DeepCopy()
	}
	out := &pulsarv1alpha1.ServiceSpec{}
	if lower != nil {
		out = lower.DeepCopy()
	}
	var lowerAnnotations map[string]string
	if lower != nil {
		lowerAnnotations = lower.Annotations
	}
	out.Annotations = mergeMaps(lowerAnnotations, upper.Annotations)
	if upper.AdditionalPorts != nil {
		out.AdditionalPorts = make([]corev1.ServicePort, len(upper.AdditionalPorts))
		for i := range upper.AdditionalPorts {
			upper.AdditionalPorts[i].DeepCopyInto(&out.AdditionalPorts[i])
		}
	}
	return out
}

func mergePDB(lower, upper *pulsarv1alpha1.PodDisruptionBudgetSpec) *pulsarv1alpha1.PodDisruptionBudgetSpec {
	if upper == nil {
		return lower.DeepCopy()
	}
	out := &pulsarv1alpha1.PodDisruptionBudgetSpec{}
	if lower != nil {
		out = lower.DeepCopy()
	}
	if upper.Enabled != nil {
		out.Enabled = copyPtr(upper.Enabled)
	}
	if upper.MaxUnavailable != nil {
		out.MaxUnavailable = copyPtr(upper.MaxUnavailable)
	}
	return out
}

// mergeMaps returns the key-wise union of lower and upper, upper winning on
// collision. The result is nil when both inputs are empty.
func mergeMaps(lower, upper map[string]string) map[string]string {
	if len(lower) == 0 && len(upper) == 0 {
		return nil
	}
	out := make(map[string]string, len(lower)+len(upper))
	maps.Copy(out, lower)
	maps.Copy(out, upper)
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SortedKeys returns the keys of m in ascending order. Every map that ends up in
// generated output is walked through SortedKeys first.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
