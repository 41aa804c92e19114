// Package status records PulsarCluster status conditions.
package status

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
)

// Set adds or updates a condition on st. LastTransitionTime only moves when the
// condition status changes.
func Set(st *pulsarv1alpha1.PulsarClusterStatus, generation int64, conditionType pulsarv1alpha1.ConditionType, status metav1.ConditionStatus, reason, message string) {
	meta.SetStatusCondition(&st.Conditions, metav1.Condition{
		Type:               string(conditionType),
		Status:             status,
		Reason:             reason,
		Message:            message,
		ObservedGeneration: generation,
		LastTransitionTime: metav1.Now(),
	})
}

// True sets a condition to True status.
func True(st *pulsarv1alpha1.PulsarClusterStatus, generation int64, conditionType pulsarv1alpha1.ConditionType, reason, message string) {
	Set(st, generation, conditionType, metav1.ConditionTrue, reason, message)
}

// False sets a condition to False status.
func False(st *pulsarv1alpha1.PulsarClusterStatus, generation int64, conditionType pulsarv1alpha1.ConditionType, reason, message string) {
	Set(st, generation, conditionType, metav1.ConditionFalse, reason, message)
}

// Get returns the condition with the given type, or nil if not found.
func Get(st *pulsarv1alpha1.PulsarClusterStatus, conditionType pulsarv1alpha1.ConditionType) *metav1.Condition {
	return meta.FindStatusCondition(st.Conditions, string(conditionType))
}

// IsTrue reports whether the condition with the given type has Status=True.
func IsTrue(st *pulsarv1alpha1.PulsarClusterStatus, conditionType pulsarv1alpha1.ConditionType) bool {
	return meta.IsStatusConditionTrue(st.Conditions, string(conditionType))
}
