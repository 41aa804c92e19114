package spec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
)

// ErrUnknownSet is returned when a set name is not a key of the component's sets map.
var ErrUnknownSet = errors.New("unknown set")

// ErrUnknownComponent is returned for component names the operator cannot run.
var ErrUnknownComponent = errors.New("unknown component")

// ErrSetsUnsupported is returned for components that must run as a single group.
// ZooKeeper is one ensemble that every other component connects to through one
// client Service, so it cannot be split into sets.
var ErrSetsUnsupported = errors.New("sets are not supported")

// Resolved is the fully merged specification of one set of one component.
// Global is shared by reference across every Resolved of a pass and must be
// treated as read-only.
type Resolved struct {
	Component pulsarv1alpha1.ComponentName
	// SetName is empty when the component has no sets.
	SetName string
	Global  *pulsarv1alpha1.GlobalSpec
	Spec    pulsarv1alpha1.ComponentSetSpec
}

// AsOverride returns the resolved values as a set override. Merging it back onto
// the resolved specification yields the same specification.
func (r *Resolved) AsOverride() pulsarv1alpha1.ComponentSetSpec {
	return *r.Spec.DeepCopy()
}

// ClusterName returns the cluster name used as the resource name prefix.
func (r *Resolved) ClusterName() string {
	return r.Global.Name
}

// Replicas returns the resolved replica count.
func (r *Resolved) Replicas() int32 {
	if r.Spec.Replicas == nil {
		return 0
	}
	return *r.Spec.Replicas
}

// TLSEnabled reports whether the component serves TLS.
func (r *Resolved) TLSEnabled() bool {
	return r.Global.TLSEnabledFor(r.Component)
}

// TLSSecretName returns the Secret holding the component certificates.
func (r *Resolved) TLSSecretName() string {
	if entry := r.Global.TLSEntry(r.Component); entry != nil && entry.SecretName != "" {
		return entry.SecretName
	}
	if r.Global.TLS != nil {
		return r.Global.TLS.DefaultSecretName
	}
	return ""
}

// PersistenceEnabled reports whether data volumes are backed by claims.
func (r *Resolved) PersistenceEnabled() bool {
	return boolOr(r.Global.Persistence, true)
}

// AntiAffinityEnabled reports whether anti-affinity rules apply at all.
func (r *Resolved) AntiAffinityEnabled() bool {
	return boolOr(r.Global.EnableAntiAffinity, true)
}

// HostAntiAffinity reports whether the required same-host exclusion is active.
func (r *Resolved) HostAntiAffinity() bool {
	aa := r.Global.AntiAffinity
	if aa == nil || aa.Host == nil {
		return true
	}
	return boolOr(aa.Host.Enabled, true)
}

// ZoneAntiAffinity reports whether the preferred same-zone exclusion is active.
func (r *Resolved) ZoneAntiAffinity() bool {
	aa := r.Global.AntiAffinity
	if aa == nil || aa.Zone == nil {
		return false
	}
	return boolOr(aa.Zone.Enabled, false)
}

// ClusterDomain returns the in-cluster DNS domain.
func (r *Resolved) ClusterDomain() string {
	if r.Global.KubernetesClusterDomain != "" {
		return r.Global.KubernetesClusterDomain
	}
	return constants.DefaultKubernetesClusterDomain
}

// ProbeEnabled reports whether liveness and readiness probes are configured.
func (r *Resolved) ProbeEnabled() bool {
	return r.Spec.Probe != nil && boolOr(r.Spec.Probe.Enabled, true)
}

// PDBEnabled reports whether a PodDisruptionBudget is generated.
func (r *Resolved) PDBEnabled() bool {
	return r.Spec.PDB != nil && boolOr(r.Spec.PDB.Enabled, true)
}

// Resolve merges the component defaults, the component base and the named set into
// one specification. An empty setName resolves the base alone. A set name that is
// not a key of base.Sets is a configuration error wrapping ErrUnknownSet, and sets
// on a component that cannot have them wrap ErrSetsUnsupported.
func Resolve(
	global *pulsarv1alpha1.GlobalSpec,
	component pulsarv1alpha1.ComponentName,
	base *pulsarv1alpha1.ComponentSpec,
	setName string,
) (*Resolved, error) {
	if global == nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("global spec is required"))
	}
	if strings.TrimSpace(global.Name) == "" {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("global.name is required"))
	}
	if !IsKnownComponent(component) {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("%w: %q", ErrUnknownComponent, component))
	}
	if base == nil {
		base = &pulsarv1alpha1.ComponentSpec{}
	}
	if len(base.Sets) > 0 && !SupportsSets(component) {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("%w for component %s", ErrSetsUnsupported, component))
	}

	merged := Merge(Defaults(component), base.ComponentSetSpec)
	if setName != "" {
		override, ok := base.Sets[setName]
		if !ok {
			return nil, operatorerrors.WrapPermanentConfig(
				fmt.Errorf("%w %q for component %s", ErrUnknownSet, setName, component))
		}
		if errs := validation.IsDNS1123Label(setName); len(errs) > 0 {
			return nil, operatorerrors.WrapPermanentConfig(
				fmt.Errorf("invalid set name %q for component %s: %s", setName, component, strings.Join(errs, ", ")))
		}
		merged = Merge(merged, override)
	}

	if merged.Image == "" {
		merged.Image = global.Image
	}
	if merged.Image == "" {
		merged.Image = constants.DefaultPulsarImage()
	}
	if merged.ImagePullPolicy == "" {
		merged.ImagePullPolicy = global.ImagePullPolicy
	}
	if merged.ImagePullPolicy == "" {
		merged.ImagePullPolicy = corev1.PullIfNotPresent
	}

	r := &Resolved{
		Component: component,
		SetName:   setName,
		Global:    global,
		Spec:      merged,
	}
	if err := validate(r); err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("%s: %w", r.describe(), err))
	}
	return r, nil
}

// ResolveAll resolves every set of the component, ordered by set name. A component
// without sets resolves to a single specification with an empty set name.
func ResolveAll(
	global *pulsarv1alpha1.GlobalSpec,
	component pulsarv1alpha1.ComponentName,
	base *pulsarv1alpha1.ComponentSpec,
) ([]*Resolved, error) {
	if base == nil || len(base.Sets) == 0 {
		r, err := Resolve(global, component, base, "")
		if err != nil {
			return nil, err
		}
		return []*Resolved{r}, nil
	}

	out := make([]*Resolved, 0, len(base.Sets))
	for _, setName := range SortedKeys(base.Sets) {
		r, err := Resolve(global, component, base, setName)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// SupportsSets reports whether the component may be split into named sets.
func SupportsSets(component pulsarv1alpha1.ComponentName) bool {
	return component != pulsarv1alpha1.ComponentZooKeeper
}

func validate(r *Resolved) error {
	if _, err := name.ParseReference(r.Spec.Image); err != nil {
		return fmt.Errorf("invalid image %q: %w", r.Spec.Image, err)
	}
	if r.Replicas() < 0 {
		return fmt.Errorf("replicas must not be negative, got %d", r.Replicas())
	}
	if v := r.Spec.DataVolume; v != nil && v.Size != "" {
		if _, err := resource.ParseQuantity(v.Size); err != nil {
			return fmt.Errorf("invalid data volume size %q: %w", v.Size, err)
		}
	}
	if p := r.Spec.PDB; p != nil && p.MaxUnavailable != nil && *p.MaxUnavailable < 0 {
		return fmt.Errorf("pdb.maxUnavailable must not be negative, got %d", *p.MaxUnavailable)
	}
	return nil
}

func (r *Resolved) describe() string {
	if r.SetName == "" {
		return string(r.Component)
	}
	return fmt.Sprintf("%s set %q", r.Component, r.SetName)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
