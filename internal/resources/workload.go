package resources

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

const (
	hostnameTopologyKey = "kubernetes.io/hostname"
	zoneTopologyKey     = "topology.kubernetes.io/zone"
	zoneAffinityWeight  = 100
)

// buildCommand assembles the startup pipeline: config templating, certificate
// conversion (TLS only), ensemble config generation (ZooKeeper only), then exec.
func buildCommand(r *spec.Resolved, ro role) string {
	steps := []string{"bin/apply-config-from-env.py " + ro.confFile}
	if r.TLSEnabled() {
		steps = append(steps, constants.PathCertConverter)
	}
	if ro.ensembleConfig {
		steps = append(steps, "bin/generate-zookeeper-config.sh "+ro.confFile)
	}
	steps = append(steps, `OPTS="${OPTS} -Dlog4j2.formatMsgNoLookups=true" exec bin/pulsar `+ro.process)
	return strings.Join(steps, " && ")
}

func buildProbe(r *spec.Resolved, ro role) *corev1.Probe {
	if !r.ProbeEnabled() {
		return nil
	}
	p := r.Spec.Probe
	timeout := ptr.Deref(p.Timeout, 0)
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			Exec: &corev1.ExecAction{Command: ro.probeCommand(timeout)},
		},
		InitialDelaySeconds: ptr.Deref(p.Initial, 0),
		PeriodSeconds:       ptr.Deref(p.Period, 0),
		TimeoutSeconds:      timeout,
	}
}

func dataVolumeName(r *spec.Resolved) string {
	return fmt.Sprintf("%s-%s", ResourceName(r), r.Spec.DataVolume.Name)
}

func buildVolumes(r *spec.Resolved) ([]corev1.Volume, []corev1.VolumeMount) {
	var volumes []corev1.Volume
	var mounts []corev1.VolumeMount

	if r.TLSEnabled() {
		mounts = append(mounts,
			corev1.VolumeMount{
				Name:      constants.VolumeNameCerts,
				ReadOnly:  true,
				MountPath: constants.PathCertsMount,
			},
			corev1.VolumeMount{
				Name:      constants.VolumeNameCertConverter,
				MountPath: constants.PathCertConverterMount,
			},
		)
		volumes = append(volumes,
			corev1.Volume{
				Name: constants.VolumeNameCerts,
				VolumeSource: corev1.VolumeSource{
					Secret: &corev1.SecretVolumeSource{SecretName: r.TLSSecretName()},
				},
			},
			corev1.Volume{
				Name: constants.VolumeNameCertConverter,
				VolumeSource: corev1.VolumeSource{
					ConfigMap: &corev1.ConfigMapVolumeSource{
						LocalObjectReference: corev1.LocalObjectReference{Name: CertConverterConfigMapName(r.ClusterName())},
						DefaultMode:          ptr.To(constants.CertConverterFileMode),
					},
				},
			},
		)
	}

	if r.Spec.DataVolume != nil {
		name := dataVolumeName(r)
		mounts = append(mounts, corev1.VolumeMount{
			Name:      name,
			MountPath: constants.PathDataMount,
		})
		if !r.PersistenceEnabled() {
			volumes = append(volumes, corev1.Volume{
				Name:         name,
				VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
			})
		}
	}

	return volumes, mounts
}

func buildVolumeClaimTemplates(r *spec.Resolved) ([]corev1.PersistentVolumeClaim, error) {
	if r.Spec.DataVolume == nil || !r.PersistenceEnabled() {
		return nil, nil
	}
	size, err := resource.ParseQuantity(r.Spec.DataVolume.Size)
	if err != nil {
		return nil, fmt.Errorf("invalid storage size %q: %w", r.Spec.DataVolume.Size, err)
	}

	name := dataVolumeName(r)
	storageClass := r.Spec.DataVolume.ExistingStorageClassName
	if storageClass == "" {
		storageClass = name
	}

	return []corev1.PersistentVolumeClaim{{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{
				corev1.ReadWriteOnce,
			},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: size,
				},
			},
			StorageClassName: &storageClass,
		},
	}}, nil
}

// buildPodAntiAffinity returns the explicit override when present. Otherwise it
// combines a required same-host rule and a preferred same-zone rule, each only when
// its toggle is on.
func buildPodAntiAffinity(r *spec.Resolved) *corev1.PodAntiAffinity {
	if !r.AntiAffinityEnabled() {
		return nil
	}
	if r.Spec.PodAntiAffinity != nil {
		return r.Spec.PodAntiAffinity.DeepCopy()
	}

	host, zone := r.HostAntiAffinity(), r.ZoneAntiAffinity()
	if !host && !zone {
		return nil
	}

	out := &corev1.PodAntiAffinity{}
	if host {
		out.RequiredDuringSchedulingIgnoredDuringExecution = []corev1.PodAffinityTerm{{
			TopologyKey:   hostnameTopologyKey,
			LabelSelector: &metav1.LabelSelector{MatchLabels: Labels(r)},
		}}
	}
	if zone {
		out.PreferredDuringSchedulingIgnoredDuringExecution = []corev1.WeightedPodAffinityTerm{{
			Weight: zoneAffinityWeight,
			PodAffinityTerm: corev1.PodAffinityTerm{
				TopologyKey:   zoneTopologyKey,
				LabelSelector: &metav1.LabelSelector{MatchLabels: Labels(r)},
			},
		}}
	}
	return out
}

func buildAffinity(r *spec.Resolved) *corev1.Affinity {
	antiAffinity := buildPodAntiAffinity(r)
	if r.Spec.NodeAffinity == nil && antiAffinity == nil {
		return nil
	}
	return &corev1.Affinity{
		NodeAffinity:    r.Spec.NodeAffinity.DeepCopy(),
		PodAntiAffinity: antiAffinity,
	}
}

func buildPodAnnotations(r *spec.Resolved, ro role, configChecksum string) map[string]string {
	annotations := map[string]string{
		constants.AnnotationPrometheusScrape: "true",
		constants.AnnotationPrometheusPort:   strconv.Itoa(int(ro.metricsPort)),
	}
	maps.Copy(annotations, r.Spec.Annotations)
	annotations[constants.AnnotationConfigChecksum] = configChecksum
	return annotations
}

func buildEnv(r *spec.Resolved) []corev1.EnvVar {
	if !ensembleMember(r) {
		return nil
	}
	name := ResourceName(r)
	servers := make([]string, 0, r.Replicas())
	for i := range r.Replicas() {
		servers = append(servers, fmt.Sprintf("%s-%d", name, i))
	}
	return []corev1.EnvVar{{
		Name:  constants.EnvZooKeeperServers,
		Value: strings.Join(servers, ","),
	}}
}

func ensembleMember(r *spec.Resolved) bool {
	ro, ok := roles[r.Component]
	return ok && ro.ensembleConfig
}

func buildContainerPorts(ro role) []corev1.ContainerPort {
	ports := make([]corev1.ContainerPort, 0, len(ro.ports))
	for _, p := range ro.ports {
		ports = append(ports, corev1.ContainerPort{Name: p.name, ContainerPort: p.port})
	}
	return ports
}

func buildPodSpec(r *spec.Resolved, ro role, volumes []corev1.Volume, mounts []corev1.VolumeMount) corev1.PodSpec {
	name := ResourceName(r)

	var tolerations []corev1.Toleration
	if r.Spec.Tolerations != nil {
		tolerations = make([]corev1.Toleration, len(r.Spec.Tolerations))
		for i := range r.Spec.Tolerations {
			r.Spec.Tolerations[i].DeepCopyInto(&tolerations[i])
		}
	}

	var resources corev1.ResourceRequirements
	if r.Spec.Resources != nil {
		resources = *r.Spec.Resources.DeepCopy()
	}

	podSpec := corev1.PodSpec{
		DNSConfig:                     r.Global.DNSConfig.DeepCopy(),
		NodeSelector:                  maps.Clone(r.Spec.NodeSelectors),
		Tolerations:                   tolerations,
		Affinity:                      buildAffinity(r),
		TerminationGracePeriodSeconds: ptr.To(ptr.Deref(r.Spec.GracePeriod, 0)),
		SecurityContext: &corev1.PodSecurityContext{
			FSGroup: ptr.To[int64](0),
		},
		Containers: []corev1.Container{{
			Name:            name,
			Image:           r.Spec.Image,
			ImagePullPolicy: r.Spec.ImagePullPolicy,
			Resources:       resources,
			Command:         []string{"sh", "-c"},
			Args:            []string{buildCommand(r, ro)},
			Ports:           buildContainerPorts(ro),
			Env:             buildEnv(r),
			EnvFrom: []corev1.EnvFromSource{{
				ConfigMapRef: &corev1.ConfigMapEnvSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: name},
				},
			}},
			LivenessProbe:  buildProbe(r, ro),
			ReadinessProbe: buildProbe(r, ro),
			VolumeMounts:   mounts,
		}},
		Volumes: volumes,
	}
	if r.Global.PriorityClass {
		podSpec.PriorityClassName = constants.PriorityClassName
	}
	return podSpec
}

func buildStatefulSet(namespace string, r *spec.Resolved, ro role, configChecksum string) (*appsv1.StatefulSet, error) {
	claims, err := buildVolumeClaimTemplates(r)
	if err != nil {
		return nil, err
	}
	volumes, mounts := buildVolumes(r)

	var updateStrategy appsv1.StatefulSetUpdateStrategy
	if r.Spec.UpdateStrategy != nil {
		updateStrategy = *r.Spec.UpdateStrategy.DeepCopy()
	}

	name := ResourceName(r)
	statefulSet := &appsv1.StatefulSet{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "StatefulSet",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(r),
		},
		Spec: appsv1.StatefulSetSpec{
			ServiceName: name,
			Replicas:    ptr.To(r.Replicas()),
			Selector: &metav1.LabelSelector{
				MatchLabels: Labels(r),
			},
			UpdateStrategy:      updateStrategy,
			PodManagementPolicy: r.Spec.PodManagementPolicy,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      Labels(r),
					Annotations: buildPodAnnotations(r, ro, configChecksum),
				},
				Spec: buildPodSpec(r, ro, volumes, mounts),
			},
			VolumeClaimTemplates: claims,
		},
	}

	return statefulSet, nil
}
