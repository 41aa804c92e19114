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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConditionType identifies a specific aspect of cluster health.
type ConditionType string

const (
	// ConditionReady indicates whether every desired resource was applied.
	ConditionReady ConditionType = "Ready"
	// ConditionAutoscalerReady indicates whether the broker autoscaler schedule is in sync with the cluster spec.
	ConditionAutoscalerReady ConditionType = "AutoscalerReady"
)

// TLSEntryConfig enables TLS for a single component.
type TLSEntryConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
	// SecretName is the Secret holding tls.crt, tls.key and ca.crt for the component.
	// Defaults to the global default secret name.
	// +optional
	SecretName string `json:"secretName,omitempty"`
}

// TLSConfig is the per-component TLS enablement map. A component serves TLS only when
// both the global switch and its own entry are enabled.
type TLSConfig struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
	// +optional
	DefaultSecretName string `json:"defaultSecretName,omitempty"`
	// +optional
	ZooKeeper *TLSEntryConfig `json:"zookeeper,omitempty"`
	// +optional
	BookKeeper *TLSEntryConfig `json:"bookkeeper,omitempty"`
	// +optional
	Broker *TLSEntryConfig `json:"broker,omitempty"`
	// +optional
	Proxy *TLSEntryConfig `json:"proxy,omitempty"`
}

// AntiAffinityTypeConfig toggles one generated anti-affinity rule.
type AntiAffinityTypeConfig struct {
	// +optional
	Enabled *bool `json:"enabled,omitempty"`
}

// AntiAffinityConfig configures the generated pod anti-affinity rules.
type AntiAffinityConfig struct {
	// Host forbids two pods of the same set on one node. Enabled by default.
	// +optional
	Host *AntiAffinityTypeConfig `json:"host,omitempty"`
	// Zone prefers spreading pods of the same set across zones. Disabled by default.
	// +optional
	Zone *AntiAffinityTypeConfig `json:"zone,omitempty"`
}

// GlobalSpec holds the cluster-wide defaults shared by every component.
type GlobalSpec struct {
	// Name is the cluster name and the prefix of every generated resource.
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`
	// Image is the default container image for every component.
	// +optional
	Image string `json:"image,omitempty"`
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`
	// Persistence requests PersistentVolumeClaims for data volumes. When false the
	// data volumes are emptyDirs. Defaults to true.
	// +optional
	Persistence *bool `json:"persistence,omitempty"`
	// EnableAntiAffinity toggles the anti-affinity rules. Defaults to true.
	// +optional
	EnableAntiAffinity *bool `json:"enableAntiAffinity,omitempty"`
	// +optional
	AntiAffinity *AntiAffinityConfig `json:"antiAffinity,omitempty"`
	// +optional
	DNSConfig *corev1.PodDNSConfig `json:"dnsConfig,omitempty"`
	// PriorityClass assigns the "pulsar-priority" PriorityClass to every pod.
	// +optional
	PriorityClass bool `json:"priorityClass,omitempty"`
	// KubernetesClusterDomain is used to build in-cluster DNS names. Defaults to cluster.local.
	// +optional
	KubernetesClusterDomain string `json:"kubernetesClusterDomain,omitempty"`
	// +optional
	TLS *TLSConfig `json:"tls,omitempty"`
}

// TLSEntry returns the TLS entry for the given component, or nil.
func (g *GlobalSpec) TLSEntry(component ComponentName) *TLSEntryConfig {
	if g == nil || g.TLS == nil {
		return nil
	}
	switch component {
	case ComponentZooKeeper:
		return g.TLS.ZooKeeper
	case ComponentBookKeeper:
		return g.TLS.BookKeeper
	case ComponentBroker:
		return g.TLS.Broker
	case ComponentProxy:
		return g.TLS.Proxy
	}
	return nil
}

// TLSEnabledFor reports whether TLS is enabled for the given component.
func (g *GlobalSpec) TLSEnabledFor(component ComponentName) bool {
	entry := g.TLSEntry(component)
	return g.TLS != nil && g.TLS.Enabled && entry != nil && entry.Enabled
}

// AnyTLSEnabled reports whether at least one component has TLS enabled.
func (g *GlobalSpec) AnyTLSEnabled() bool {
	for _, component := range []ComponentName{ComponentZooKeeper, ComponentBookKeeper, ComponentBroker, ComponentProxy} {
		if g.TLSEnabledFor(component) {
			return true
		}
	}
	return false
}

// AutoscalerSpec configures the periodic broker autoscaler. The operator only schedules
// the autoscaler; the scaling decision uses the remaining fields.
type AutoscalerSpec struct {
	// +optional
	Enabled bool `json:"enabled,omitempty"`
	// PeriodMs is the fixed delay between two autoscaler runs, in milliseconds.
	// +optional
	// +kubebuilder:validation:Minimum=1
	PeriodMs int64 `json:"periodMs,omitempty"`
	// +optional
	Min int32 `json:"min,omitempty"`
	// +optional
	Max int32 `json:"max,omitempty"`
	// LowerCPUThreshold is the average CPU utilization percentage below which brokers are removed.
	// +optional
	LowerCPUThreshold int32 `json:"lowerCpuThreshold,omitempty"`
	// HigherCPUThreshold is the average CPU utilization percentage above which brokers are added.
	// +optional
	HigherCPUThreshold int32 `json:"higherCpuThreshold,omitempty"`
	// +optional
	ScaleUpBy int32 `json:"scaleUpBy,omitempty"`
	// +optional
	ScaleDownBy int32 `json:"scaleDownBy,omitempty"`
	// +optional
	StabilizationWindowMs int64 `json:"stabilizationWindowMs,omitempty"`
}

// BrokerSpec is the broker component specification.
type BrokerSpec struct {
	ComponentSpec `json:",inline"`

	// +optional
	Autoscaler *AutoscalerSpec `json:"autoscaler,omitempty"`
}

// PulsarClusterSpec defines the desired state of PulsarCluster.
type PulsarClusterSpec struct {
	Global GlobalSpec `json:"global"`
	// ZooKeeper runs as a single ensemble and does not accept sets.
	// +optional
	// +kubebuilder:validation:XValidation:rule="!has(self.sets) || size(self.sets) == 0",message="zookeeper does not support sets"
	ZooKeeper *ComponentSpec `json:"zookeeper,omitempty"`
	// +optional
	BookKeeper *ComponentSpec `json:"bookkeeper,omitempty"`
	// +optional
	Broker *BrokerSpec `json:"broker,omitempty"`
	// +optional
	Proxy *ComponentSpec `json:"proxy,omitempty"`
}

// Component returns the specification of the named component, or nil when the
// component is not configured.
func (s *PulsarClusterSpec) Component(name ComponentName) *ComponentSpec {
	switch name {
	case ComponentZooKeeper:
		return s.ZooKeeper
	case ComponentBookKeeper:
		return s.BookKeeper
	case ComponentBroker:
		if s.Broker == nil {
			return nil
		}
		return &s.Broker.ComponentSpec
	case ComponentProxy:
		return s.Proxy
	}
	return nil
}

// PulsarClusterStatus defines the observed state of PulsarCluster.
type PulsarClusterStatus struct {
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
	// LastError is the message of the last failed reconcile pass, cleared on success.
	// +optional
	LastError string `json:"lastError,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=pc
// +kubebuilder:printcolumn:name="Cluster",type="string",JSONPath=".spec.global.name"
// +kubebuilder:printcolumn:name="Ready",type="string",JSONPath=".status.conditions[?(@.type==\"Ready\")].status"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// PulsarCluster is the Schema for the pulsarclusters API.
type PulsarCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PulsarClusterSpec   `json:"spec,omitempty"`
	Status PulsarClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// PulsarClusterList contains a list of PulsarCluster.
type PulsarClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []PulsarCluster `json:"items"`
}

func init() {
	SchemeBuilder.Register(&PulsarCluster{}, &PulsarClusterList{})
}
