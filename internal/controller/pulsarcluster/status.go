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
	"context"
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
	"github.com/dc-tec/pulsar-operator/internal/status"
)

func (r *PulsarClusterReconciler) updateStatus(
	ctx context.Context,
	cluster *pulsarv1alpha1.PulsarCluster,
	infraErr, scaleErr error,
) error {
	original := cluster.DeepCopy()
	st := &cluster.Status
	gen := cluster.Generation

	if infraErr == nil {
		status.True(st, gen, pulsarv1alpha1.ConditionReady, constants.ReasonReady, "All desired resources are applied")
	} else {
		status.False(st, gen, pulsarv1alpha1.ConditionReady, readyReason(infraErr), infraErr.Error())
	}

	switch {
	case scaleErr != nil:
		reason := constants.ReasonError
		if operatorerrors.IsPermanent(scaleErr) {
			reason = constants.ReasonInvalidSpec
		}
		status.False(st, gen, pulsarv1alpha1.ConditionAutoscalerReady, reason, scaleErr.Error())
	case autoscalerEnabled(&cluster.Spec):
		status.True(st, gen, pulsarv1alpha1.ConditionAutoscalerReady, constants.ReasonScheduled,
			fmt.Sprintf("Broker autoscaler runs every %dms", cluster.Spec.Broker.Autoscaler.PeriodMs))
	default:
		status.True(st, gen, pulsarv1alpha1.ConditionAutoscalerReady, constants.ReasonDisabled, "Broker autoscaler is disabled")
	}

	st.LastError = ""
	if err := utilerrors.NewAggregate([]error{infraErr, scaleErr}); err != nil {
		st.LastError = err.Error()
	}
	st.ObservedGeneration = gen

	if err := r.Status().Patch(ctx, cluster, client.MergeFrom(original)); err != nil {
		err = fmt.Errorf("failed to update status for PulsarCluster %s/%s: %w", cluster.Namespace, cluster.Name, err)
		if operatorerrors.IsTransientKubernetesAPI(err) {
			return operatorerrors.WrapTransientKubernetesAPI(err)
		}
		return err
	}

	log.FromContext(ctx).V(1).Info("Updated status for PulsarCluster",
		"ready", infraErr == nil,
		"observedGeneration", gen)
	return nil
}

// readyReason classifies an infrastructure failure for the Ready condition. Only a
// failure made entirely of configuration errors counts as an invalid spec.
func readyReason(err error) string {
	for _, e := range flatten([]error{err}) {
		if !operatorerrors.IsPermanent(e) {
			return constants.ReasonApplyFailed
		}
	}
	return constants.ReasonInvalidSpec
}

func autoscalerEnabled(spec *pulsarv1alpha1.PulsarClusterSpec) bool {
	return spec.Broker != nil && spec.Broker.Autoscaler != nil && spec.Broker.Autoscaler.Enabled
}

// flatten expands aggregate errors so each failure is classified on its own.
func flatten(errs []error) []error {
	agg := utilerrors.NewAggregate(errs)
	if agg == nil {
		return nil
	}
	return utilerrors.Flatten(agg).Errors()
}
