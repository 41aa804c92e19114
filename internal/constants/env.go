package constants

// Environment variable keys read by the operator or injected into pods.
const (
	// EnvPodNamespace is the namespace the operator runs in.
	EnvPodNamespace = "POD_NAMESPACE"
	// EnvWatchNamespace restricts the manager cache to a single namespace when set.
	EnvWatchNamespace = "WATCH_NAMESPACE"

	// EnvPulsarImageRepository overrides the default Pulsar image repository.
	EnvPulsarImageRepository = "PULSAR_IMAGE_REPOSITORY"
	// EnvPulsarVersion overrides the default Pulsar image tag.
	EnvPulsarVersion = "PULSAR_VERSION"

	// EnvZooKeeperServers lists the ZooKeeper ensemble members for config generation.
	EnvZooKeeperServers = "ZOOKEEPER_SERVERS"
)
