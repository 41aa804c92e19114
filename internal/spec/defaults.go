// Package spec resolves the layered PulsarCluster specification (global defaults,
// component base, named set override) into one fully resolved specification per set.
package spec

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/utils/ptr"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
)

// componentDefaults are the least specific level of the merge. The values are
// rebuilt on every call so callers can never alias them.
type componentDefaults struct {
	replicas       int32
	cpu            string
	memory         string
	probeInitial   int32
	probePeriod    int32
	probeTimeout   int32
	gracePeriod    int64
	dataVolumeName string
	dataVolumeSize string
}

var knownComponents = map[pulsarv1alpha1.ComponentName]componentDefaults{
	pulsarv1alpha1.ComponentZooKeeper: {
		replicas:       3,
		cpu:            "300m",
		memory:         "1Gi",
		probeInitial:   20,
		probePeriod:    30,
		probeTimeout:   30,
		gracePeriod:    60,
		dataVolumeName: "data",
		dataVolumeSize: "5Gi",
	},
	pulsarv1alpha1.ComponentBookKeeper: {
		replicas:       3,
		cpu:            "1",
		memory:         "2Gi",
		probeInitial:   10,
		probePeriod:    30,
		probeTimeout:   5,
		gracePeriod:    60,
		dataVolumeName: "ledgers",
		dataVolumeSize: "10Gi",
	},
	pulsarv1alpha1.ComponentBroker: {
		replicas:     3,
		cpu:          "1",
		memory:       "2Gi",
		probeInitial: 10,
		probePeriod:  30,
		probeTimeout: 5,
		gracePeriod:  60,
	},
	pulsarv1alpha1.ComponentProxy: {
		replicas:     3,
		cpu:          "1",
		memory:       "1Gi",
		probeInitial: 10,
		probePeriod:  30,
		probeTimeout: 5,
		gracePeriod:  60,
	},
}

// IsKnownComponent reports whether the operator knows how to run the component.
func IsKnownComponent(component pulsarv1alpha1.ComponentName) bool {
	_, ok := knownComponents[component]
	return ok
}

// Defaults returns the built-in specification of a component. Unknown components
// get an empty specification.
func Defaults(component pulsarv1alpha1.ComponentName) pulsarv1alpha1.ComponentSetSpec {
	d, ok := knownComponents[component]
	if !ok {
		return pulsarv1alpha1.ComponentSetSpec{}
	}

	out := pulsarv1alpha1.ComponentSetSpec{
		Replicas: ptr.To(d.replicas),
		Resources: &corev1.ResourceRequirements{
			Requests: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse(d.cpu),
				corev1.ResourceMemory: resource.MustParse(d.memory),
			},
		},
		Probe: &pulsarv1alpha1.ProbeSpec{
			Enabled: ptr.To(true),
			Initial: ptr.To(d.probeInitial),
			Period:  ptr.To(d.probePeriod),
			Timeout: ptr.To(d.probeTimeout),
		},
		UpdateStrategy: &appsv1.StatefulSetUpdateStrategy{
			Type: appsv1.RollingUpdateStatefulSetStrategyType,
		},
		PodManagementPolicy: appsv1.ParallelPodManagement,
		GracePeriod:         ptr.To(d.gracePeriod),
		PDB: &pulsarv1alpha1.PodDisruptionBudgetSpec{
			Enabled:        ptr.To(true),
			MaxUnavailable: ptr.To[int32](1),
		},
	}
	if d.dataVolumeName != "" {
		out.DataVolume = &pulsarv1alpha1.VolumeSpec{
			Name: d.dataVolumeName,
			Size: d.dataVolumeSize,
		}
	}
	return out
}
