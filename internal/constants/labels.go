package constants

// Label keys stamped on every resource the operator generates. Selectors on
// Services, PodDisruptionBudgets, StatefulSets and anti-affinity terms use the same keys.
const (
	LabelApp         = "app"
	LabelComponent   = "component"
	LabelCluster     = "cluster"
	LabelResourceSet = "resource-set"

	LabelAppManagedBy = "app.kubernetes.io/managed-by"
)

// Common label values used by the operator.
const (
	LabelValueAppManagedByPulsarOperator = "pulsar-operator"
)
