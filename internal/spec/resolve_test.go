package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
)

func parseClusterSpec(t *testing.T, doc string) *pulsarv1alpha1.PulsarClusterSpec {
	t.Helper()
	out := &pulsarv1alpha1.PulsarClusterSpec{}
	require.NoError(t, yaml.Unmarshal([]byte(doc), out))
	return out
}

const overrideSpec = `
global:
  name: pulsarname
  image: apachepulsar/pulsar:global
broker:
  replicas: 6
  config:
    common: commonvalue
  sets:
    set1:
      service:
        annotations:
          externaldns: myset1
        additionalPorts:
        - name: customport
          port: 8888
      replicas: 3
      config:
        myname: set1
      pdb:
        maxUnavailable: 2
    set2:
      config:
        common: override
`

func TestResolveAll_SetOverrides(t *testing.T) {
	cluster := parseClusterSpec(t, overrideSpec)

	resolved, err := ResolveAll(&cluster.Global, pulsarv1alpha1.ComponentBroker, &cluster.Broker.ComponentSpec)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	set1, set2 := resolved[0], resolved[1]
	assert.Equal(t, "set1", set1.SetName)
	assert.Equal(t, "set2", set2.SetName)

	assert.Equal(t, int32(3), set1.Replicas())
	assert.Equal(t, map[string]string{"common": "commonvalue", "myname": "set1"}, set1.Spec.Config)
	assert.Equal(t, int32(2), *set1.Spec.PDB.MaxUnavailable)
	assert.True(t, *set1.Spec.PDB.Enabled)
	assert.Equal(t, map[string]string{"externaldns": "myset1"}, set1.Spec.Service.Annotations)

	assert.Equal(t, int32(6), set2.Replicas())
	assert.Equal(t, map[string]string{"common": "override"}, set2.Spec.Config)
	assert.Equal(t, int32(1), *set2.Spec.PDB.MaxUnavailable)
	assert.Nil(t, set2.Spec.Service)

	assert.Equal(t, "apachepulsar/pulsar:global", set1.Spec.Image)
	assert.Same(t, &cluster.Global, set1.Global)
}

func TestResolveAll_NoSetsResolvesBase(t *testing.T) {
	cluster := parseClusterSpec(t, `
global:
  name: pulsarname
zookeeper:
  replicas: 5
`)

	resolved, err := ResolveAll(&cluster.Global, pulsarv1alpha1.ComponentZooKeeper, cluster.ZooKeeper)
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	r := resolved[0]
	assert.Empty(t, r.SetName)
	assert.Equal(t, int32(5), r.Replicas())
	assert.Equal(t, "data", r.Spec.DataVolume.Name)
	assert.Equal(t, "5Gi", r.Spec.DataVolume.Size)
	assert.Equal(t, corev1.PullIfNotPresent, r.Spec.ImagePullPolicy)
	assert.NotEmpty(t, r.Spec.Image)
}

func TestResolveAll_NilComponentUsesDefaults(t *testing.T) {
	global := &pulsarv1alpha1.GlobalSpec{Name: "pulsar", Image: "apachepulsar/pulsar:3.3.2"}

	resolved, err := ResolveAll(global, pulsarv1alpha1.ComponentProxy, nil)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, int32(3), resolved[0].Replicas())
	assert.Nil(t, resolved[0].Spec.DataVolume)
	assert.True(t, resolved[0].ProbeEnabled())
	assert.True(t, resolved[0].PDBEnabled())
}

func TestResolve_UnknownSet(t *testing.T) {
	cluster := parseClusterSpec(t, overrideSpec)

	_, err := Resolve(&cluster.Global, pulsarv1alpha1.ComponentBroker, &cluster.Broker.ComponentSpec, "set3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSet))
	assert.True(t, errors.Is(err, operatorerrors.ErrPermanentConfig))
	assert.Contains(t, err.Error(), "set3")
}

func TestResolve_ZooKeeperSetsUnsupported(t *testing.T) {
	global := &pulsarv1alpha1.GlobalSpec{Name: "pulsarname"}
	base := &pulsarv1alpha1.ComponentSpec{
		Sets: map[string]pulsarv1alpha1.ComponentSetSpec{"a": {}, "b": {}},
	}

	_, err := ResolveAll(global, pulsarv1alpha1.ComponentZooKeeper, base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSetsUnsupported))
	assert.True(t, errors.Is(err, operatorerrors.ErrPermanentConfig))

	_, err = Resolve(global, pulsarv1alpha1.ComponentZooKeeper, base, "a")
	assert.True(t, errors.Is(err, ErrSetsUnsupported))

	assert.False(t, SupportsSets(pulsarv1alpha1.ComponentZooKeeper))
	for _, component := range []pulsarv1alpha1.ComponentName{
		pulsarv1alpha1.ComponentBookKeeper,
		pulsarv1alpha1.ComponentBroker,
		pulsarv1alpha1.ComponentProxy,
	} {
		assert.True(t, SupportsSets(component), component)
		_, err := ResolveAll(global, component, base)
		assert.NoError(t, err, component)
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		global    *pulsarv1alpha1.GlobalSpec
		component pulsarv1alpha1.ComponentName
		base      *pulsarv1alpha1.ComponentSpec
		wantErr   string
	}{
		{
			name:      "missing cluster name",
			global:    &pulsarv1alpha1.GlobalSpec{},
			component: pulsarv1alpha1.ComponentBroker,
			wantErr:   "global.name",
		},
		{
			name:      "unknown component",
			global:    &pulsarv1alpha1.GlobalSpec{Name: "pulsar"},
			component: "functions",
			wantErr:   "unknown component",
		},
		{
			name:      "malformed size",
			global:    &pulsarv1alpha1.GlobalSpec{Name: "pulsar"},
			component: pulsarv1alpha1.ComponentBookKeeper,
			base: &pulsarv1alpha1.ComponentSpec{ComponentSetSpec: pulsarv1alpha1.ComponentSetSpec{
				DataVolume: &pulsarv1alpha1.VolumeSpec{Size: "ten gigs"},
			}},
			wantErr: "invalid data volume size",
		},
		{
			name:      "invalid image",
			global:    &pulsarv1alpha1.GlobalSpec{Name: "pulsar", Image: "Not A Valid:Image"},
			component: pulsarv1alpha1.ComponentBroker,
			wantErr:   "invalid image",
		},
		{
			name:      "negative replicas",
			global:    &pulsarv1alpha1.GlobalSpec{Name: "pulsar"},
			component: pulsarv1alpha1.ComponentBroker,
			base: &pulsarv1alpha1.ComponentSpec{ComponentSetSpec: pulsarv1alpha1.ComponentSetSpec{
				Replicas: ptr.To[int32](-1),
			}},
			wantErr: "replicas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.global, tt.component, tt.base, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, operatorerrors.ErrPermanentConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve_InvalidSetName(t *testing.T) {
	global := &pulsarv1alpha1.GlobalSpec{Name: "pulsar"}
	base := &pulsarv1alpha1.ComponentSpec{Sets: map[string]pulsarv1alpha1.ComponentSetSpec{"Set_One": {}}}

	_, err := ResolveAll(global, pulsarv1alpha1.ComponentBroker, base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, operatorerrors.ErrPermanentConfig))
}

func TestResolve_ImageFallback(t *testing.T) {
	global := &pulsarv1alpha1.GlobalSpec{Name: "pulsar", Image: "apachepulsar/pulsar:global"}
	base := &pulsarv1alpha1.ComponentSpec{
		Sets: map[string]pulsarv1alpha1.ComponentSetSpec{
			"own":     {Image: "apachepulsar/pulsar:set"},
			"inherit": {},
		},
	}

	own, err := Resolve(global, pulsarv1alpha1.ComponentBroker, base, "own")
	require.NoError(t, err)
	assert.Equal(t, "apachepulsar/pulsar:set", own.Spec.Image)

	inherit, err := Resolve(global, pulsarv1alpha1.ComponentBroker, base, "inherit")
	require.NoError(t, err)
	assert.Equal(t, "apachepulsar/pulsar:global", inherit.Spec.Image)
}

func TestResolve_MergeIdempotence(t *testing.T) {
	cluster := parseClusterSpec(t, overrideSpec)

	resolved, err := ResolveAll(&cluster.Global, pulsarv1alpha1.ComponentBroker, &cluster.Broker.ComponentSpec)
	require.NoError(t, err)

	for _, r := range resolved {
		again := Merge(r.Spec, r.AsOverride())
		assert.True(t, equality.Semantic.DeepEqual(r.Spec, again), "set %s is not idempotent", r.SetName)

		rebased, err := Resolve(&cluster.Global, pulsarv1alpha1.ComponentBroker,
			&pulsarv1alpha1.ComponentSpec{ComponentSetSpec: r.AsOverride()}, "")
		require.NoError(t, err)
		assert.True(t, equality.Semantic.DeepEqual(r.Spec, rebased.Spec), "set %s does not resolve back to itself", r.SetName)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	cluster := parseClusterSpec(t, overrideSpec)
	before := cluster.DeepCopy()

	resolved, err := ResolveAll(&cluster.Global, pulsarv1alpha1.ComponentBroker, &cluster.Broker.ComponentSpec)
	require.NoError(t, err)
	resolved[0].Spec.Config["leak"] = "yes"
	resolved[1].Spec.Annotations = map[string]string{"x": "y"}

	assert.True(t, equality.Semantic.DeepEqual(before, cluster))
}

func TestResolved_GlobalToggles(t *testing.T) {
	r := &Resolved{Component: pulsarv1alpha1.ComponentZooKeeper, Global: &pulsarv1alpha1.GlobalSpec{Name: "p"}}
	assert.True(t, r.PersistenceEnabled())
	assert.True(t, r.AntiAffinityEnabled())
	assert.True(t, r.HostAntiAffinity())
	assert.False(t, r.ZoneAntiAffinity())
	assert.False(t, r.TLSEnabled())
	assert.Equal(t, "cluster.local", r.ClusterDomain())

	r.Global = &pulsarv1alpha1.GlobalSpec{
		Name:        "p",
		Persistence: ptr.To(false),
		AntiAffinity: &pulsarv1alpha1.AntiAffinityConfig{
			Host: &pulsarv1alpha1.AntiAffinityTypeConfig{Enabled: ptr.To(false)},
			Zone: &pulsarv1alpha1.AntiAffinityTypeConfig{Enabled: ptr.To(true)},
		},
		TLS: &pulsarv1alpha1.TLSConfig{
			Enabled:           true,
			DefaultSecretName: "pulsar-tls",
			ZooKeeper:         &pulsarv1alpha1.TLSEntryConfig{Enabled: true},
		},
	}
	assert.False(t, r.PersistenceEnabled())
	assert.False(t, r.HostAntiAffinity())
	assert.True(t, r.ZoneAntiAffinity())
	assert.True(t, r.TLSEnabled())
	assert.Equal(t, "pulsar-tls", r.TLSSecretName())

	r.Global.TLS.ZooKeeper.SecretName = "zk-tls"
	assert.Equal(t, "zk-tls", r.TLSSecretName())

	r.Global.TLS.Enabled = false
	assert.False(t, r.TLSEnabled())
}
