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
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/autoscaler"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
	"github.com/dc-tec/pulsar-operator/internal/infra"
)

// recordingApplier records upserted object names and fails the ones listed in failures.
type recordingApplier struct {
	mu       sync.Mutex
	names    []string
	owners   []string
	failures map[string]error
}

func (a *recordingApplier) Upsert(_ context.Context, owner client.Object, obj client.Object) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.names = append(a.names, obj.GetName())
	a.owners = append(a.owners, owner.GetName())
	return a.failures[obj.GetName()]
}

func (a *recordingApplier) upserted() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.names...)
}

type observation struct {
	namespace string
	spec      *pulsarv1alpha1.PulsarClusterSpec
}

// recordingObserver stands in for the autoscaler scheduler.
type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
	err  error
}

func (o *recordingObserver) OnSpecChange(namespace string, spec *pulsarv1alpha1.PulsarClusterSpec) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observation{namespace: namespace, spec: spec.DeepCopy()})
	return o.err
}

func (o *recordingObserver) last() observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	Expect(o.seen).NotTo(BeEmpty())
	return o.seen[len(o.seen)-1]
}

func newPulsarCluster(name string) *pulsarv1alpha1.PulsarCluster {
	return &pulsarv1alpha1.PulsarCluster{
		ObjectMeta: metav1.ObjectMeta{
			Name:       name,
			Namespace:  "pulsar",
			Generation: 1,
		},
		Spec: pulsarv1alpha1.PulsarClusterSpec{
			Global: pulsarv1alpha1.GlobalSpec{
				Name:  "pulsarname",
				Image: "apachepulsar/pulsar:3.0.0",
			},
			ZooKeeper: &pulsarv1alpha1.ComponentSpec{},
			Broker: &pulsarv1alpha1.BrokerSpec{
				Autoscaler: &pulsarv1alpha1.AutoscalerSpec{Enabled: true, PeriodMs: 1000},
			},
		},
	}
}

var _ = Describe("PulsarCluster Controller", func() {
	var (
		ctx        context.Context
		applier    *recordingApplier
		observer   *recordingObserver
		reconciler *PulsarClusterReconciler
	)

	build := func(funcs *interceptor.Funcs, objs ...client.Object) {
		b := fake.NewClientBuilder().
			WithScheme(testScheme).
			WithStatusSubresource(&pulsarv1alpha1.PulsarCluster{}).
			WithObjects(objs...)
		if funcs != nil {
			b = b.WithInterceptorFuncs(*funcs)
		}
		c := b.Build()
		reconciler = &PulsarClusterReconciler{
			Client:       c,
			Scheme:       testScheme,
			InfraManager: infra.NewManager(applier),
			Autoscaler:   observer,
		}
	}

	reconcileCluster := func(name string) (ctrl.Result, error) {
		return reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "pulsar", Name: name}})
	}

	fetch := func(name string) *pulsarv1alpha1.PulsarCluster {
		cluster := &pulsarv1alpha1.PulsarCluster{}
		Expect(reconciler.Get(ctx, types.NamespacedName{Namespace: "pulsar", Name: name}, cluster)).To(Succeed())
		return cluster
	}

	BeforeEach(func() {
		ctx = context.Background()
		applier = &recordingApplier{}
		observer = &recordingObserver{}
	})

	It("applies every desired resource and reports Ready", func() {
		build(nil, newPulsarCluster("ok"))

		result, err := reconcileCluster("ok")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsZero()).To(BeTrue())

		Expect(applier.upserted()).To(ContainElements(
			"pulsarname-zookeeper",
			"pulsarname-zookeeper-ca",
			"pulsarname-broker",
		))
		Expect(applier.upserted()).NotTo(ContainElement("pulsarname-proxy"))

		cluster := fetch("ok")
		Expect(cluster.Status.ObservedGeneration).To(Equal(int64(1)))
		Expect(cluster.Status.LastError).To(BeEmpty())

		ready := meta.FindStatusCondition(cluster.Status.Conditions, string(pulsarv1alpha1.ConditionReady))
		Expect(ready).NotTo(BeNil())
		Expect(ready.Status).To(Equal(metav1.ConditionTrue))
		Expect(ready.Reason).To(Equal(constants.ReasonReady))

		scaling := meta.FindStatusCondition(cluster.Status.Conditions, string(pulsarv1alpha1.ConditionAutoscalerReady))
		Expect(scaling).NotTo(BeNil())
		Expect(scaling.Status).To(Equal(metav1.ConditionTrue))
		Expect(scaling.Reason).To(Equal(constants.ReasonScheduled))
	})

	It("hands the cluster spec to the autoscaler", func() {
		build(nil, newPulsarCluster("observed"))

		_, err := reconcileCluster("observed")
		Expect(err).NotTo(HaveOccurred())

		last := observer.last()
		Expect(last.namespace).To(Equal("pulsar"))
		Expect(last.spec.Broker.Autoscaler.PeriodMs).To(Equal(int64(1000)))
	})

	It("reports a disabled autoscaler", func() {
		cluster := newPulsarCluster("no-scaling")
		cluster.Spec.Broker.Autoscaler = nil
		build(nil, cluster)

		_, err := reconcileCluster("no-scaling")
		Expect(err).NotTo(HaveOccurred())

		scaling := meta.FindStatusCondition(fetch("no-scaling").Status.Conditions, string(pulsarv1alpha1.ConditionAutoscalerReady))
		Expect(scaling).NotTo(BeNil())
		Expect(scaling.Reason).To(Equal(constants.ReasonDisabled))
	})

	It("cancels the autoscaler with an empty spec when the cluster is gone", func() {
		build(nil)

		result, err := reconcileCluster("missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsZero()).To(BeTrue())

		last := observer.last()
		Expect(last.namespace).To(Equal("pulsar"))
		Expect(last.spec.Broker).To(BeNil())
		Expect(applier.upserted()).To(BeEmpty())
	})

	It("treats a closed scheduler as a clean shutdown", func() {
		observer.err = autoscaler.ErrSchedulerClosed
		build(nil)

		_, err := reconcileCluster("missing")
		Expect(err).NotTo(HaveOccurred())
	})

	It("does not requeue an invalid spec", func() {
		cluster := newPulsarCluster("invalid")
		cluster.Spec.ZooKeeper.DataVolume = &pulsarv1alpha1.VolumeSpec{Size: "not-a-size"}
		build(nil, cluster)

		result, err := reconcileCluster("invalid")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsZero()).To(BeTrue())
		Expect(applier.upserted()).To(BeEmpty())

		updated := fetch("invalid")
		Expect(updated.Status.LastError).To(ContainSubstring("not-a-size"))
		ready := meta.FindStatusCondition(updated.Status.Conditions, string(pulsarv1alpha1.ConditionReady))
		Expect(ready).NotTo(BeNil())
		Expect(ready.Status).To(Equal(metav1.ConditionFalse))
		Expect(ready.Reason).To(Equal(constants.ReasonInvalidSpec))

		// The autoscaler still sees the cluster spec even though synthesis failed.
		Expect(observer.last().spec.Broker.Autoscaler.Enabled).To(BeTrue())
	})

	It("requeues shortly after a transient apply failure", func() {
		applier.failures = map[string]error{
			"pulsarname-broker": apierrors.NewTooManyRequests("slow down", 1),
		}
		build(nil, newPulsarCluster("throttled"))

		result, err := reconcileCluster("throttled")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(Equal(constants.RequeueShort))

		// The failure of one resource does not stop the others.
		Expect(applier.upserted()).To(ContainElement("pulsarname-zookeeper"))

		ready := meta.FindStatusCondition(fetch("throttled").Status.Conditions, string(pulsarv1alpha1.ConditionReady))
		Expect(ready).NotTo(BeNil())
		Expect(ready.Reason).To(Equal(constants.ReasonApplyFailed))
	})

	It("returns unclassified apply failures for rate-limited retry", func() {
		applier.failures = map[string]error{
			"pulsarname-zookeeper": errors.New("boom"),
		}
		build(nil, newPulsarCluster("broken"))

		_, err := reconcileCluster("broken")
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("reports autoscaler configuration errors without requeueing", func() {
		observer.err = operatorerrors.WrapPermanentConfig(errors.New("periodMs must be positive"))
		build(nil, newPulsarCluster("bad-period"))

		result, err := reconcileCluster("bad-period")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsZero()).To(BeTrue())

		updated := fetch("bad-period")
		scaling := meta.FindStatusCondition(updated.Status.Conditions, string(pulsarv1alpha1.ConditionAutoscalerReady))
		Expect(scaling).NotTo(BeNil())
		Expect(scaling.Status).To(Equal(metav1.ConditionFalse))
		Expect(scaling.Reason).To(Equal(constants.ReasonInvalidSpec))
		Expect(updated.Status.LastError).To(ContainSubstring("periodMs"))

		ready := meta.FindStatusCondition(updated.Status.Conditions, string(pulsarv1alpha1.ConditionReady))
		Expect(ready.Status).To(Equal(metav1.ConditionTrue))
	})

	It("clears the last error once a pass succeeds", func() {
		applier.failures = map[string]error{
			"pulsarname-broker": errors.New("boom"),
		}
		build(nil, newPulsarCluster("recovers"))

		_, err := reconcileCluster("recovers")
		Expect(err).To(HaveOccurred())
		Expect(fetch("recovers").Status.LastError).NotTo(BeEmpty())

		applier.mu.Lock()
		applier.failures = nil
		applier.mu.Unlock()

		_, err = reconcileCluster("recovers")
		Expect(err).NotTo(HaveOccurred())
		Expect(fetch("recovers").Status.LastError).To(BeEmpty())
	})

	It("sets every generated resource's owner to the cluster", func() {
		build(nil, newPulsarCluster("owner"))

		_, err := reconcileCluster("owner")
		Expect(err).NotTo(HaveOccurred())
		Expect(applier.owners).NotTo(BeEmpty())
		for _, owner := range applier.owners {
			Expect(owner).To(Equal("owner"))
		}
	})

	It("returns transient status patch failures as a short requeue", func() {
		build(&interceptor.Funcs{
			SubResourcePatch: func(ctx context.Context, c client.Client, subResourceName string, obj client.Object, patch client.Patch, opts ...client.SubResourcePatchOption) error {
				return apierrors.NewServiceUnavailable("api down")
			},
		}, newPulsarCluster("status-down"))

		result, err := reconcileCluster("status-down")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(Equal(constants.RequeueShort))
	})

	It("surfaces get failures", func() {
		build(&interceptor.Funcs{
			Get: func(ctx context.Context, c client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
				return apierrors.NewForbidden(schema.GroupResource{Group: "pulsar.dc-tec.io", Resource: "pulsarclusters"}, key.Name, errors.New("denied"))
			},
		})

		_, err := reconcileCluster("forbidden")
		Expect(err).To(MatchError(ContainSubstring("failed to get PulsarCluster")))
	})

	It("does not requeue when the PulsarCluster CRD is missing", func() {
		build(&interceptor.Funcs{
			Get: func(ctx context.Context, c client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
				return &meta.NoKindMatchError{
					GroupKind:        schema.GroupKind{Group: "pulsar.dc-tec.io", Kind: "PulsarCluster"},
					SearchedVersions: []string{"v1alpha1"},
				}
			},
		})

		result, err := reconcileCluster("missing-crd")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsZero()).To(BeTrue())
		Expect(applier.upserted()).To(BeEmpty())
	})

	It("requeues transient get failures after a short delay", func() {
		build(&interceptor.Funcs{
			Get: func(ctx context.Context, c client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
				return apierrors.NewTooManyRequests("slow down", 1)
			},
		})

		result, err := reconcileCluster("throttled")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(Equal(constants.RequeueShort))
	})

	It("cancels the autoscaler for a cluster being deleted", func() {
		cluster := newPulsarCluster("deleting")
		cluster.Finalizers = []string{"example.com/hold"}
		cluster.DeletionTimestamp = ptr.To(metav1.Now())
		build(nil, cluster)

		_, err := reconcileCluster("deleting")
		Expect(err).NotTo(HaveOccurred())
		Expect(observer.last().spec.Broker).To(BeNil())
		Expect(applier.upserted()).To(BeEmpty())
	})
})
