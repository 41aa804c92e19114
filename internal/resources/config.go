package resources

import (
	"maps"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

// certConverterScript converts the mounted PEM key into the PKCS#8 key the Pulsar
// components read.
const certConverterScript = `#!/bin/bash
set -e
openssl pkcs8 -topk8 -inform PEM -outform PEM -nocrypt \
  -in /pulsar/certs/tls.key \
  -out ` + constants.PathTLSKeyPK8 + `
echo "converted certificate key to ` + constants.PathTLSKeyPK8 + `"
`

// buildConfigData layers the role defaults, the TLS listener settings and the
// user config. The user config wins on collision.
func buildConfigData(namespace string, r *spec.Resolved, ro role) map[string]string {
	data := ro.config(namespace, r)
	if r.TLSEnabled() && ro.tlsConfig != nil {
		maps.Copy(data, ro.tlsConfig(namespace, r))
	}
	maps.Copy(data, r.Spec.Config)
	return data
}

func buildConfigMap(namespace string, r *spec.Resolved, data map[string]string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ResourceName(r),
			Namespace: namespace,
			Labels:    Labels(r),
		},
		Data: data,
	}
}

// CertConverterConfigMapName returns the name of the cluster-wide certificate converter ConfigMap.
func CertConverterConfigMapName(clusterName string) string {
	return clusterName + constants.SuffixCertConverterConfigMap
}

// SynthesizeCertConverter returns the certificate converter ConfigMap mounted by every
// TLS-enabled component, or nil when no component has TLS enabled.
func SynthesizeCertConverter(namespace string, global *pulsarv1alpha1.GlobalSpec) Descriptor {
	if global == nil || !global.AnyTLSEnabled() {
		return nil
	}
	return ConfigBundle{ConfigMap: &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      CertConverterConfigMapName(global.Name),
			Namespace: namespace,
			Labels: map[string]string{
				constants.LabelApp:     global.Name,
				constants.LabelCluster: global.Name,
			},
		},
		Data: map[string]string{
			"certconverter.sh": certConverterScript,
		},
	}}
}
