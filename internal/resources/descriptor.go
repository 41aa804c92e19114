// Package resources turns a resolved component specification into the Kubernetes
// objects that realize it. Synthesis is pure: identical inputs always produce
// identical objects.
package resources

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Kind is the kind of a synthesized resource.
type Kind string

const (
	KindWorkload         Kind = "StatefulSet"
	KindService          Kind = "Service"
	KindConfigBundle     Kind = "ConfigMap"
	KindDisruptionBudget Kind = "PodDisruptionBudget"
)

// Key identifies a resource for upserts.
type Key struct {
	Namespace string
	Kind      Kind
	Name      string
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s/%s", k.Kind, k.Namespace, k.Name)
}

// Descriptor is one desired resource. The set of implementations is closed:
// Workload, Service, ConfigBundle and DisruptionBudget.
type Descriptor interface {
	Kind() Kind
	// Object returns the fully specified object to apply.
	Object() client.Object
	Key() Key

	descriptor()
}

// Workload is the StatefulSet running the pods of one set.
type Workload struct {
	StatefulSet *appsv1.StatefulSet
}

func (w Workload) Kind() Kind            { return KindWorkload }
func (w Workload) Object() client.Object { return w.StatefulSet }
func (w Workload) Key() Key              { return keyOf(KindWorkload, w.StatefulSet) }
func (Workload) descriptor()             {}

// Service is a discovery or client Service.
type Service struct {
	Service *corev1.Service
}

func (s Service) Kind() Kind            { return KindService }
func (s Service) Object() client.Object { return s.Service }
func (s Service) Key() Key              { return keyOf(KindService, s.Service) }
func (Service) descriptor()             {}

// ConfigBundle is the ConfigMap consumed by the pods through envFrom.
type ConfigBundle struct {
	ConfigMap *corev1.ConfigMap
}

func (c ConfigBundle) Kind() Kind            { return KindConfigBundle }
func (c ConfigBundle) Object() client.Object { return c.ConfigMap }
func (c ConfigBundle) Key() Key              { return keyOf(KindConfigBundle, c.ConfigMap) }
func (ConfigBundle) descriptor()             {}

// DisruptionBudget limits voluntary disruptions of one set.
type DisruptionBudget struct {
	PodDisruptionBudget *policyv1.PodDisruptionBudget
}

func (d DisruptionBudget) Kind() Kind            { return KindDisruptionBudget }
func (d DisruptionBudget) Object() client.Object { return d.PodDisruptionBudget }
func (d DisruptionBudget) Key() Key              { return keyOf(KindDisruptionBudget, d.PodDisruptionBudget) }
func (DisruptionBudget) descriptor()             {}

func keyOf(kind Kind, obj client.Object) Key {
	return Key{Namespace: obj.GetNamespace(), Kind: kind, Name: obj.GetName()}
}
