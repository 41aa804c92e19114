package kube

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
)

var testScheme = func() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	_ = pulsarv1alpha1.AddToScheme(scheme)
	return scheme
}()

type recordedApply struct {
	object  *unstructured.Unstructured
	options *client.ApplyOptions
}

func newRecordingClient(t *testing.T, applyErr error, recorded *[]recordedApply) client.Client {
	t.Helper()
	return fake.NewClientBuilder().
		WithScheme(testScheme).
		WithInterceptorFuncs(interceptor.Funcs{
			Apply: func(_ context.Context, _ client.WithWatch, obj runtime.ApplyConfiguration, opts ...client.ApplyOption) error {
				raw, err := json.Marshal(obj)
				if err != nil {
					t.Fatalf("failed to marshal apply configuration: %v", err)
				}
				u := &unstructured.Unstructured{}
				if err := u.UnmarshalJSON(raw); err != nil {
					t.Fatalf("failed to decode apply configuration: %v", err)
				}
				*recorded = append(*recorded, recordedApply{
					object:  u,
					options: (&client.ApplyOptions{}).ApplyOptions(opts),
				})
				return applyErr
			},
		}).
		Build()
}

func newOwner() *pulsarv1alpha1.PulsarCluster {
	return &pulsarv1alpha1.PulsarCluster{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "pulsar",
			Namespace: "default",
			UID:       "owner-uid",
		},
	}
}

func newConfigMap() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "pulsarname-broker",
			Namespace: "default",
		},
		Data: map[string]string{"key": "value"},
	}
}

func TestSSAApplier_Upsert(t *testing.T) {
	var recorded []recordedApply
	applier := NewSSAApplier(newRecordingClient(t, nil, &recorded), testScheme)

	if err := applier.Upsert(context.Background(), newOwner(), newConfigMap()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if len(recorded) != 1 {
		t.Fatalf("expected 1 apply call, got %d", len(recorded))
	}
	got := recorded[0]

	if got.object.GetKind() != "ConfigMap" || got.object.GetName() != "pulsarname-broker" {
		t.Errorf("applied %s %s, want ConfigMap pulsarname-broker", got.object.GetKind(), got.object.GetName())
	}

	refs := got.object.GetOwnerReferences()
	if len(refs) != 1 {
		t.Fatalf("expected 1 owner reference, got %d", len(refs))
	}
	if refs[0].UID != "owner-uid" || refs[0].Kind != "PulsarCluster" {
		t.Errorf("unexpected owner reference %+v", refs[0])
	}
	if refs[0].Controller == nil || !*refs[0].Controller {
		t.Error("owner reference should be a controller reference")
	}

	if got.options.Force == nil || !*got.options.Force {
		t.Error("apply should force ownership")
	}
	if got.options.FieldManager != constants.FieldOwner {
		t.Errorf("FieldManager = %q, want %q", got.options.FieldManager, constants.FieldOwner)
	}
}

func TestSSAApplier_UpsertErrors(t *testing.T) {
	gr := schema.GroupResource{Resource: "configmaps"}

	tests := []struct {
		name          string
		applyErr      error
		wantTransient bool
		wantPermanent bool
	}{
		{
			name:          "throttled",
			applyErr:      apierrors.NewTooManyRequests("slow down", 1),
			wantTransient: true,
		},
		{
			name:          "conflict",
			applyErr:      apierrors.NewConflict(gr, "pulsarname-broker", errors.New("conflict")),
			wantTransient: true,
		},
		{
			name:          "rejected",
			applyErr:      apierrors.NewBadRequest("bad"),
			wantTransient: false,
		},
		{
			name:          "kind not served",
			applyErr:      &meta.NoKindMatchError{GroupKind: schema.GroupKind{Group: "policy", Kind: "PodDisruptionBudget"}},
			wantPermanent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recorded []recordedApply
			applier := NewSSAApplier(newRecordingClient(t, tt.applyErr, &recorded), testScheme)

			err := applier.Upsert(context.Background(), newOwner(), newConfigMap())
			if err == nil {
				t.Fatal("Upsert() expected error")
			}
			if !errors.Is(err, tt.applyErr) {
				t.Errorf("Upsert() error should wrap the API error, got %v", err)
			}
			if got := errors.Is(err, operatorerrors.ErrTransientKubernetesAPI); got != tt.wantTransient {
				t.Errorf("transient = %v, want %v", got, tt.wantTransient)
			}
			if got := operatorerrors.IsPermanent(err); got != tt.wantPermanent {
				t.Errorf("permanent = %v, want %v", got, tt.wantPermanent)
			}
		})
	}
}

func TestSSAApplier_NilScheme(t *testing.T) {
	var recorded []recordedApply
	applier := NewSSAApplier(newRecordingClient(t, nil, &recorded), nil)

	if err := applier.Upsert(context.Background(), newOwner(), newConfigMap()); err == nil {
		t.Fatal("Upsert() with nil scheme should error")
	}
	if len(recorded) != 0 {
		t.Errorf("expected no apply call, got %d", len(recorded))
	}
}

func TestToApplyConfiguration(t *testing.T) {
	if _, err := ToApplyConfiguration(nil, nil); err == nil {
		t.Error("ToApplyConfiguration(nil) should error")
	}

	noTypeMeta := newConfigMap()
	noTypeMeta.TypeMeta = metav1.TypeMeta{}
	if _, err := ToApplyConfiguration(noTypeMeta, nil); err == nil {
		t.Error("ToApplyConfiguration() without TypeMeta or resolver should error")
	}

	c := fake.NewClientBuilder().WithScheme(testScheme).Build()
	cfg, err := ToApplyConfiguration(noTypeMeta, c)
	if err != nil {
		t.Fatalf("ToApplyConfiguration() error = %v", err)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal apply configuration: %v", err)
	}
	u := &unstructured.Unstructured{}
	if err := u.UnmarshalJSON(raw); err != nil {
		t.Fatalf("failed to decode apply configuration: %v", err)
	}
	if u.GetAPIVersion() != "v1" || u.GetKind() != "ConfigMap" {
		t.Errorf("resolved %s %s, want v1 ConfigMap", u.GetAPIVersion(), u.GetKind())
	}
}
