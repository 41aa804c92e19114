package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestLogAuditEvent(t *testing.T) {
	data := &sinkData{}
	logger := logr.New(&capturingSink{data: data}).WithValues("controller", "pulsarcluster")

	LogAuditEvent(logger, AuditEventAutoscalerScheduled, map[string]string{
		"namespace": "pulsar",
		"component": "broker",
		"period_ms": "1000",
	})

	assert.Equal(t, "Operator audit event", data.msg)
	assert.Equal(t, []any{
		"controller", "pulsarcluster",
		"audit", "true",
		"event_type", AuditEventAutoscalerScheduled,
		"component", "broker",
		"namespace", "pulsar",
		"period_ms", "1000",
	}, data.keysAndValues)
}

func TestLogAuditEvent_NoFields(t *testing.T) {
	data := &sinkData{}

	LogAuditEvent(logr.New(&capturingSink{data: data}), AuditEventClusterRemoved, nil)

	assert.Equal(t, []any{"audit", "true", "event_type", AuditEventClusterRemoved}, data.keysAndValues)
}

type sinkData struct {
	msg           string
	keysAndValues []any
}

// capturingSink implements logr.LogSink
type capturingSink struct {
	data     *sinkData
	localKVs []any
}

func (s *capturingSink) Init(info logr.RuntimeInfo) {}
func (s *capturingSink) Enabled(level int) bool     { return true }
func (s *capturingSink) Info(level int, msg string, keysAndValues ...any) {
	s.data.msg = msg
	allKVs := append([]any{}, s.localKVs...)
	s.data.keysAndValues = append(allKVs, keysAndValues...)
}
func (s *capturingSink) Error(err error, msg string, keysAndValues ...any) {
	s.Info(0, msg, keysAndValues...)
}
func (s *capturingSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &capturingSink{
		data:     s.data,
		localKVs: append(append([]any{}, s.localKVs...), keysAndValues...),
	}
}
func (s *capturingSink) WithName(name string) logr.LogSink {
	return s
}
