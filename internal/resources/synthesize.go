package resources

import (
	"fmt"

	"sigs.k8s.io/yaml"

	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
	"github.com/dc-tec/pulsar-operator/internal/revision"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

// Synthesize returns the resources of one resolved set in apply order: ConfigMap,
// Service(s), StatefulSet and, unless disabled, PodDisruptionBudget.
func Synthesize(namespace string, r *spec.Resolved) ([]Descriptor, error) {
	ro, err := roleFor(r.Component)
	if err != nil {
		return nil, operatorerrors.WrapPermanentConfig(err)
	}

	data := buildConfigData(namespace, r, ro)
	out := []Descriptor{
		ConfigBundle{ConfigMap: buildConfigMap(namespace, r, data)},
		Service{Service: buildHeadlessService(namespace, r, ro)},
	}
	if ro.headService {
		out = append(out, Service{Service: buildHeadService(namespace, r, ro)})
	}

	sts, err := buildStatefulSet(namespace, r, ro, revision.ConfigChecksum(data))
	if err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("%s: %w", ResourceName(r), err))
	}
	out = append(out, Workload{StatefulSet: sts})

	if r.PDBEnabled() {
		out = append(out, DisruptionBudget{PodDisruptionBudget: buildPodDisruptionBudget(namespace, r)})
	}
	return out, nil
}

// SynthesizeComponent synthesizes every resolved set of one component. When the
// component is split into named sets, a headless Service spanning all sets is added.
func SynthesizeComponent(namespace string, resolved []*spec.Resolved) ([]Descriptor, error) {
	var out []Descriptor
	for _, r := range resolved {
		descriptors, err := Synthesize(namespace, r)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptors...)
	}

	if len(resolved) > 0 && resolved[0].SetName != "" {
		first := resolved[0]
		ro, err := roleFor(first.Component)
		if err != nil {
			return nil, operatorerrors.WrapPermanentConfig(err)
		}
		out = append(out, Service{Service: buildComponentService(namespace, first.Global, first.Component, ro)})
	}
	return out, nil
}

// DumpYAML renders a descriptor as YAML for debug logging.
func DumpYAML(d Descriptor) (string, error) {
	b, err := yaml.Marshal(d.Object())
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", d.Key(), err)
	}
	return string(b), nil
}
