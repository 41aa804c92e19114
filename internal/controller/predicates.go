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

package controller

import (
	"k8s.io/apimachinery/pkg/api/equality"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
)

// PulsarClusterPredicate filters PulsarCluster events down to changes that can
// alter the desired resources or the autoscaler schedule.
//
// Updates pass when the generation, deletion timestamp, finalizers, labels or
// annotations change. Status-only updates written by the controller itself are
// dropped.
func PulsarClusterPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldCluster, ok := e.ObjectOld.(*pulsarv1alpha1.PulsarCluster)
			if !ok {
				return true
			}
			newCluster, ok := e.ObjectNew.(*pulsarv1alpha1.PulsarCluster)
			if !ok {
				return true
			}

			if oldCluster.Generation != newCluster.Generation {
				return true
			}
			if !oldCluster.DeletionTimestamp.Equal(newCluster.DeletionTimestamp) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldCluster.Finalizers, newCluster.Finalizers) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldCluster.Labels, newCluster.Labels) {
				return true
			}
			return !equality.Semantic.DeepEqual(oldCluster.Annotations, newCluster.Annotations)
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return true
		},
	}
}

// ResourceGenerationChangedPredicate passes updates of owned resources only when
// their generation moved, so drift on a generated object's spec is repaired
// while status churn is ignored.
func ResourceGenerationChangedPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldObj, ok := e.ObjectOld.(metav1.Object)
			if !ok {
				return true
			}
			newObj, ok := e.ObjectNew.(metav1.Object)
			if !ok {
				return true
			}
			return oldObj.GetGeneration() != newObj.GetGeneration()
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return true
		},
	}
}
