package constants

// Controller names registered with the manager.
const (
	ControllerNamePulsarCluster = "pulsarcluster"
)
