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
	"errors"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/autoscaler"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	controllermetrics "github.com/dc-tec/pulsar-operator/internal/controller"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
	"github.com/dc-tec/pulsar-operator/internal/infra"
	"github.com/dc-tec/pulsar-operator/internal/logging"
)

// SpecObserver receives every PulsarCluster spec seen by the controller, keyed by
// namespace. An empty spec means the cluster is gone.
type SpecObserver interface {
	OnSpecChange(namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error
}

// PulsarClusterReconciler reconciles a PulsarCluster object.
type PulsarClusterReconciler struct {
	client.Client
	Scheme       *runtime.Scheme
	InfraManager *infra.Manager
	Autoscaler   SpecObserver
}

// +kubebuilder:rbac:groups=pulsar.dc-tec.io,resources=pulsarclusters,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=pulsar.dc-tec.io,resources=pulsarclusters/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=apps,resources=statefulsets,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=services;configmaps,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=policy,resources=poddisruptionbudgets,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// Reconcile applies the desired resources of one PulsarCluster and hands its spec to
// the autoscaler. Both steps run on every pass; their outcomes are reported through
// the Ready and AutoscalerReady conditions.
func (r *PulsarClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	reconcileMetrics := controllermetrics.NewReconcileMetrics(req.Namespace, req.Name, constants.ControllerNamePulsarCluster)
	startTime := time.Now()
	errorReason := ""
	defer func() {
		reconcileMetrics.ObserveDuration(time.Since(startTime).Seconds())
		if errorReason != "" {
			reconcileMetrics.IncrementError(errorReason)
		}
	}()

	logger := log.FromContext(ctx).WithValues(
		"cluster_namespace", req.Namespace,
		"cluster_name", req.Name,
		"controller", constants.ControllerNamePulsarCluster,
	)
	ctx = log.IntoContext(ctx, logger)

	logger.Info("Reconciling PulsarCluster")

	cluster := &pulsarv1alpha1.PulsarCluster{}
	if err := r.Get(ctx, req.NamespacedName, cluster); err != nil {
		if apierrors.IsNotFound(err) {
			logging.LogAuditEvent(logger, logging.AuditEventClusterRemoved, nil)
			controllermetrics.NewClusterMetrics(req.Namespace, req.Name).Clear()
			if err := r.observe(req.Namespace, &pulsarv1alpha1.PulsarClusterSpec{}); err != nil {
				errorReason = constants.ReasonError
				return ctrl.Result{}, err
			}
			return ctrl.Result{}, nil
		}

		errorReason = constants.ReasonError
		getErr := operatorerrors.WrapCRDMissing(fmt.Errorf("failed to get PulsarCluster %s/%s: %w", req.Namespace, req.Name, err))
		if operatorerrors.IsPermanent(getErr) {
			logger.Error(getErr, "PulsarCluster API is not served; waiting for the CRD to be installed")
		}
		return requeueFor(getErr)
	}

	if !cluster.DeletionTimestamp.IsZero() {
		// Owned resources are garbage collected through their owner references.
		logger.Info("PulsarCluster is marked for deletion")
		return ctrl.Result{}, r.observe(cluster.Namespace, &pulsarv1alpha1.PulsarClusterSpec{})
	}

	infraErr := r.InfraManager.Reconcile(ctx, logger, cluster)
	if infraErr != nil {
		logger.Error(infraErr, "Failed to reconcile infrastructure")
	}

	scaleErr := r.observe(cluster.Namespace, &cluster.Spec)
	if scaleErr != nil {
		logger.Error(scaleErr, "Failed to update autoscaler schedule")
	}

	statusErr := r.updateStatus(ctx, cluster, infraErr, scaleErr)
	controllermetrics.NewClusterMetrics(cluster.Namespace, cluster.Name).SetReady(infraErr == nil)

	result, err := requeueFor(infraErr, scaleErr, statusErr)
	switch {
	case infraErr != nil:
		errorReason = readyReason(infraErr)
	case scaleErr != nil || statusErr != nil:
		errorReason = constants.ReasonError
	}
	if err == nil && result.IsZero() && errorReason != "" {
		logger.Info("Configuration error; waiting for the next spec change")
	}
	return result, err
}

// observe forwards the cluster spec to the autoscaler. A closed scheduler means the manager
// is shutting down and is not an error.
func (r *PulsarClusterReconciler) observe(namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error {
	if r.Autoscaler == nil {
		return nil
	}
	err := r.Autoscaler.OnSpecChange(namespace, spec)
	if errors.Is(err, autoscaler.ErrSchedulerClosed) {
		return nil
	}
	return err
}

// requeueFor folds the pass errors into a controller result. Any error without a
// fixed delay goes through the rate limiter; transient errors requeue after a short
// delay; permanent errors alone are not requeued.
func requeueFor(errs ...error) (ctrl.Result, error) {
	var (
		requeueAfter time.Duration
		backoff      []error
	)
	for _, err := range flatten(errs) {
		requeue, after := operatorerrors.ShouldRequeue(err)
		switch {
		case !requeue:
		case after == 0:
			backoff = append(backoff, err)
		case requeueAfter == 0 || after < requeueAfter:
			requeueAfter = after
		}
	}
	if len(backoff) > 0 {
		return ctrl.Result{}, utilerrors.NewAggregate(backoff)
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}
