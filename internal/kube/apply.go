// Package kube wraps the Kubernetes API calls the operator makes when it writes
// desired state.
package kube

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/dc-tec/pulsar-operator/internal/constants"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
)

// GVKResolver resolves the GroupVersionKind of a typed object. client.Client
// satisfies it.
type GVKResolver interface {
	GroupVersionKindFor(obj runtime.Object) (schema.GroupVersionKind, error)
}

// ToApplyConfiguration converts a typed object into an ApplyConfiguration usable
// with client.Client.Apply. The resolver is only consulted when the object carries
// no TypeMeta.
func ToApplyConfiguration(obj client.Object, resolver GVKResolver) (runtime.ApplyConfiguration, error) {
	if obj == nil {
		return nil, fmt.Errorf("object cannot be nil")
	}

	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert object to unstructured: %w", err)
	}

	unstructuredObj := &unstructured.Unstructured{Object: u}
	gvk := obj.GetObjectKind().GroupVersionKind()
	if gvk.Empty() {
		if resolver == nil {
			return nil, fmt.Errorf("resolver is required when object GVK is empty")
		}
		gvk, err = resolver.GroupVersionKindFor(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to get GVK for object: %w", err)
		}
	}
	unstructuredObj.SetGroupVersionKind(gvk)

	return client.ApplyConfigurationFromUnstructured(unstructuredObj), nil
}

// Applier creates or updates one desired object owned by owner.
type Applier interface {
	Upsert(ctx context.Context, owner client.Object, obj client.Object) error
}

// SSAApplier upserts objects with Server-Side Apply. Every object gets a controller
// reference to its owner so it is garbage collected with the cluster.
type SSAApplier struct {
	client     client.Client
	scheme     *runtime.Scheme
	fieldOwner string
}

var _ Applier = (*SSAApplier)(nil)

// NewSSAApplier returns an Applier that applies as the operator field manager.
func NewSSAApplier(c client.Client, scheme *runtime.Scheme) *SSAApplier {
	return &SSAApplier{
		client:     c,
		scheme:     scheme,
		fieldOwner: constants.FieldOwner,
	}
}

// Upsert applies obj with ForceOwnership. The object is modified in place to carry
// the owner reference.
func (a *SSAApplier) Upsert(ctx context.Context, owner client.Object, obj client.Object) error {
	if a.scheme == nil {
		return fmt.Errorf("scheme is required")
	}

	if err := controllerutil.SetControllerReference(owner, obj, a.scheme); err != nil {
		return fmt.Errorf("failed to set owner reference: %w", err)
	}

	applyConfig, err := ToApplyConfiguration(obj, a.client)
	if err != nil {
		return fmt.Errorf("failed to convert object to ApplyConfiguration: %w", err)
	}

	applyOpts := []client.ApplyOption{
		client.ForceOwnership,
		client.FieldOwner(a.fieldOwner),
	}

	if err := a.client.Apply(ctx, applyConfig, applyOpts...); err != nil {
		err = fmt.Errorf("failed to apply %s %s/%s: %w",
			obj.GetObjectKind().GroupVersionKind().Kind, obj.GetNamespace(), obj.GetName(), err)
		if operatorerrors.IsCRDMissingError(err) {
			return operatorerrors.WrapCRDMissing(err)
		}
		if operatorerrors.IsTransientKubernetesAPI(err) {
			return operatorerrors.WrapTransientKubernetesAPI(err)
		}
		return err
	}

	return nil
}
