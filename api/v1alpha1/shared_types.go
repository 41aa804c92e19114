/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// ComponentName identifies one logical component of a Pulsar cluster.
type ComponentName string

const (
	// ComponentZooKeeper is the coordination ensemble.
	ComponentZooKeeper ComponentName = "zookeeper"
	// ComponentBookKeeper is the storage layer (bookies).
	ComponentBookKeeper ComponentName = "bookkeeper"
	// ComponentBroker is the stateless serving layer.
	ComponentBroker ComponentName = "broker"
	// ComponentProxy is the client-facing proxy layer.
	ComponentProxy ComponentName = "proxy"
)

// ProbeSpec configures the liveness and readiness probes of a component.
// Both probes share the same configuration.
type ProbeSpec struct {
	// Enabled toggles the probes. When false the pods get no probes at all.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`
	// Initial is the initial delay in seconds.
	// +optional
	Initial *int32 `json:"initial,omitempty"`
	// Period is the probe period in seconds.
	// +optional
	Period *int32 `json:"period,omitempty"`
	// Timeout is the probe timeout in seconds.
	// +optional
	Timeout *int32 `json:"timeout,omitempty"`
}

// VolumeSpec describes the data volume of a component.
type VolumeSpec struct {
	// Name is the volume name. The claim is named "<resource>-<name>".
	// +optional
	Name string `json:"name,omitempty"`
	// Size is a Kubernetes quantity, for example "5Gi".
	// +optional
	Size string `json:"size,omitempty"`
	// ExistingStorageClassName selects an existing StorageClass. When empty the claim
	// requests a class named after the claim itself.
	// +optional
	ExistingStorageClassName string `json:"existingStorageClassName,omitempty"`
}

// ServiceSpec carries per-component overrides for the generated Services.
type ServiceSpec struct {
	// Annotations are merged on top of the built-in Service annotations.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`
	// AdditionalPorts are appended to the fixed ports of the component.
	// +optional
	AdditionalPorts []corev1.ServicePort `json:"additionalPorts,omitempty"`
}

// PodDisruptionBudgetSpec configures the PodDisruptionBudget of a component.
type PodDisruptionBudgetSpec struct {
	// Enabled toggles the PodDisruptionBudget.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`
	// MaxUnavailable is the number of pods that may be voluntarily disrupted at once.
	// +optional
	MaxUnavailable *int32 `json:"maxUnavailable,omitempty"`
}

// ComponentSetSpec is the overridable part of a component specification. The same
// shape is used for the component base and for every named set; unset fields fall
// back to the next, less specific level.
type ComponentSetSpec struct {
	// +optional
	Image string `json:"image,omitempty"`
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`
	// +optional
	// +kubebuilder:validation:Minimum=0
	Replicas *int32 `json:"replicas,omitempty"`
	// +optional
	Resources *corev1.ResourceRequirements `json:"resources,omitempty"`
	// Config is rendered into the component ConfigMap. Entries are merged key by key
	// across levels.
	// +optional
	Config map[string]string `json:"config,omitempty"`
	// Annotations are added to the pod template.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`
	// +optional
	Probe *ProbeSpec `json:"probe,omitempty"`
	// +optional
	NodeSelectors map[string]string `json:"nodeSelectors,omitempty"`
	// +optional
	Tolerations []corev1.Toleration `json:"tolerations,omitempty"`
	// +optional
	NodeAffinity *corev1.NodeAffinity `json:"nodeAffinity,omitempty"`
	// PodAntiAffinity replaces the generated anti-affinity rules when set.
	// +optional
	PodAntiAffinity *corev1.PodAntiAffinity `json:"podAntiAffinity,omitempty"`
	// +optional
	UpdateStrategy *appsv1.StatefulSetUpdateStrategy `json:"updateStrategy,omitempty"`
	// +optional
	PodManagementPolicy appsv1.PodManagementPolicyType `json:"podManagementPolicy,omitempty"`
	// GracePeriod is the pod termination grace period in seconds.
	// +optional
	GracePeriod *int64 `json:"gracePeriod,omitempty"`
	// +optional
	DataVolume *VolumeSpec `json:"dataVolume,omitempty"`
	// +optional
	Service *ServiceSpec `json:"service,omitempty"`
	// +optional
	PDB *PodDisruptionBudgetSpec `json:"pdb,omitempty"`
}

// ComponentSpec is the specification of one component, optionally split into named sets.
type ComponentSpec struct {
	ComponentSetSpec `json:",inline"`

	// Sets maps a set name to a partial override of the component base. Every set
	// becomes its own StatefulSet, ConfigMap, Service and PodDisruptionBudget.
	// +optional
	Sets map[string]ComponentSetSpec `json:"sets,omitempty"`
}
