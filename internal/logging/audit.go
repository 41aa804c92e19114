// Package logging holds structured logging helpers shared by the operator.
package logging

import (
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// Audit event types emitted by the operator.
const (
	// AuditEventAutoscalerScheduled is emitted when a broker autoscaler task is (re)started.
	AuditEventAutoscalerScheduled = "autoscaler_scheduled"
	// AuditEventAutoscalerCancelled is emitted when a running autoscaler task is stopped
	// without a replacement.
	AuditEventAutoscalerCancelled = "autoscaler_cancelled"
	// AuditEventClusterRemoved is emitted when the controller observes a PulsarCluster is gone.
	AuditEventClusterRemoved = "cluster_removed"
)

// LogAuditEvent logs a structured audit event for operator actions.
// Audit events are tagged with "audit=true" for filtering in log aggregation
// systems. Fields are attached in key order.
func LogAuditEvent(logger logr.Logger, eventType string, fields map[string]string) {
	kv := make([]any, 0, 4+2*len(fields))
	kv = append(kv, "audit", "true", "event_type", eventType)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, key, fields[key])
	}
	logger.Info("Operator audit event", kv...)
}
