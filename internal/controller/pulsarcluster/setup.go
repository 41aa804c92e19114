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
package pulsarcluster

import (
	"time"

	"golang.org/x/time/rate"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	controllerutil "github.com/dc-tec/pulsar-operator/internal/controller"
)

// SetupWithManager registers the PulsarCluster controller with the Manager.
// Generated StatefulSets and PodDisruptionBudgets only wake the controller when
// their spec changes, so status churn of running pods does not trigger passes.
func (r *PulsarClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	generationChanged := builder.WithPredicates(controllerutil.ResourceGenerationChangedPredicate())

	return ctrl.NewControllerManagedBy(mgr).
		For(&pulsarv1alpha1.PulsarCluster{}, builder.WithPredicates(controllerutil.PulsarClusterPredicate())).
		Owns(&appsv1.StatefulSet{}, generationChanged).
		Owns(&policyv1.PodDisruptionBudget{}, generationChanged).
		Owns(&corev1.Service{}).
		Owns(&corev1.ConfigMap{}).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: 2,
			RateLimiter: workqueue.NewTypedMaxOfRateLimiter(
				workqueue.NewTypedItemExponentialFailureRateLimiter[ctrl.Request](1*time.Second, 60*time.Second),
				&workqueue.TypedBucketRateLimiter[ctrl.Request]{Limiter: rate.NewLimiter(rate.Limit(10), 100)},
			),
		}).
		Named(constants.ControllerNamePulsarCluster).
		Complete(r)
}
