package constants

// Common condition reasons used by the operator for PulsarCluster status conditions.
const (
	// ReasonReady indicates every desired resource was applied.
	ReasonReady = "Ready"
	// ReasonError indicates a generic failure state.
	ReasonError = "Error"
	// ReasonInvalidSpec indicates the cluster spec cannot be merged or synthesized.
	ReasonInvalidSpec = "InvalidSpec"
	// ReasonApplyFailed indicates at least one resource could not be applied.
	ReasonApplyFailed = "ApplyFailed"

	// ReasonScheduled indicates the broker autoscaler task is running.
	ReasonScheduled = "Scheduled"
	// ReasonDisabled indicates no autoscaler task is scheduled.
	ReasonDisabled = "Disabled"
)
