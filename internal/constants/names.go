package constants

// Resource name suffixes and well-known names used when generating per-cluster resources.
const (
	// SuffixCertConverterConfigMap is appended to the resource name for the TLS
	// certificate converter script ConfigMap.
	SuffixCertConverterConfigMap = "-certconverter-configmap"
	// SuffixHeadService is appended to the ZooKeeper resource name for its non-headless client Service.
	SuffixHeadService = "-ca"

	// PriorityClassName is assigned to every pod when the global priority class switch is on.
	PriorityClassName = "pulsar-priority"

	// FieldOwner is the Server-Side Apply field manager of the operator.
	FieldOwner = "pulsar-operator"

	// DefaultKubernetesClusterDomain is used when the cluster spec leaves the domain empty.
	DefaultKubernetesClusterDomain = "cluster.local"
)

// Well-known container and volume names.
const (
	VolumeNameCerts         = "certs"
	VolumeNameCertConverter = "certconverter"
)
