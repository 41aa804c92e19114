package resources

import (
	"maps"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

func buildServicePorts(ro role, tls bool, additional []corev1.ServicePort) []corev1.ServicePort {
	ports := make([]corev1.ServicePort, 0, len(ro.ports)+1+len(additional))
	for _, p := range ro.ports {
		ports = append(ports, corev1.ServicePort{Name: p.name, Port: p.port})
	}
	if tls && ro.tlsPort != nil {
		ports = append(ports, corev1.ServicePort{Name: ro.tlsPort.name, Port: ro.tlsPort.port})
	}
	for _, p := range additional {
		ports = append(ports, *p.DeepCopy())
	}
	return ports
}

func serviceOverrides(r *spec.Resolved) (map[string]string, []corev1.ServicePort) {
	if r.Spec.Service == nil {
		return nil, nil
	}
	return r.Spec.Service.Annotations, r.Spec.Service.AdditionalPorts
}

// buildHeadlessService builds the discovery Service of one set. Peers must resolve
// each other before they are ready, so unready endpoints are published.
func buildHeadlessService(namespace string, r *spec.Resolved, ro role) *corev1.Service {
	overrideAnnotations, additionalPorts := serviceOverrides(r)
	annotations := map[string]string{
		constants.AnnotationTolerateUnreadyEndpoints: "true",
	}
	maps.Copy(annotations, overrideAnnotations)

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        ResourceName(r),
			Namespace:   namespace,
			Labels:      Labels(r),
			Annotations: annotations,
		},
		Spec: corev1.ServiceSpec{
			Ports:                    buildServicePorts(ro, r.TLSEnabled(), additionalPorts),
			ClusterIP:                corev1.ClusterIPNone,
			PublishNotReadyAddresses: true,
			Selector:                 Labels(r),
		},
	}
}

// buildHeadService builds the non-headless "-ca" client Service.
func buildHeadService(namespace string, r *spec.Resolved, ro role) *corev1.Service {
	overrideAnnotations, additionalPorts := serviceOverrides(r)
	var annotations map[string]string
	if len(overrideAnnotations) > 0 {
		annotations = maps.Clone(overrideAnnotations)
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        ResourceName(r) + constants.SuffixHeadService,
			Namespace:   namespace,
			Labels:      Labels(r),
			Annotations: annotations,
		},
		Spec: corev1.ServiceSpec{
			Ports:    buildServicePorts(ro, r.TLSEnabled(), additionalPorts),
			Selector: Labels(r),
		},
	}
}

// buildComponentService builds the headless Service spanning every set of a component.
func buildComponentService(namespace string, global *pulsarv1alpha1.GlobalSpec, component pulsarv1alpha1.ComponentName, ro role) *corev1.Service {
	labels := ComponentLabels(global.Name, component)
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ComponentResourceName(global.Name, component),
			Namespace: namespace,
			Labels:    labels,
			Annotations: map[string]string{
				constants.AnnotationTolerateUnreadyEndpoints: "true",
			},
		},
		Spec: corev1.ServiceSpec{
			Ports:                    buildServicePorts(ro, global.TLSEnabledFor(component), nil),
			ClusterIP:                corev1.ClusterIPNone,
			PublishNotReadyAddresses: true,
			Selector:                 cloneLabels(labels),
		},
	}
}
