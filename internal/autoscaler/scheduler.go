// Package autoscaler schedules the periodic broker autoscaler of every namespace.
// At most one run is active per namespace and component, and all runs execute
// serially on a single worker.
package autoscaler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/api/equality"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	operatorerrors "github.com/dc-tec/pulsar-operator/internal/errors"
	"github.com/dc-tec/pulsar-operator/internal/logging"
)

// ErrSchedulerClosed is returned by OnSpecChange after Close.
var ErrSchedulerClosed = errors.New("autoscaler scheduler is closed")

type autoscaledComponent struct {
	name     pulsarv1alpha1.ComponentName
	selector func(*pulsarv1alpha1.PulsarClusterSpec) *pulsarv1alpha1.AutoscalerSpec
}

// autoscaledComponents lists the components with their own autoscaler schedule.
var autoscaledComponents = []autoscaledComponent{
	{name: pulsarv1alpha1.ComponentBroker, selector: brokerAutoscaler},
}

func brokerAutoscaler(s *pulsarv1alpha1.PulsarClusterSpec) *pulsarv1alpha1.AutoscalerSpec {
	if s == nil || s.Broker == nil {
		return nil
	}
	return s.Broker.Autoscaler
}

type taskHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// stop cancels the task and blocks until its goroutine, including any run in
// progress, has returned.
func (h *taskHandle) stop() {
	h.cancel()
	<-h.done
}

type componentState struct {
	lastApplied *pulsarv1alpha1.AutoscalerSpec
	task        *taskHandle
}

type namespaceState struct {
	mu         sync.Mutex
	components map[pulsarv1alpha1.ComponentName]*componentState
}

func (n *namespaceState) component(name pulsarv1alpha1.ComponentName) *componentState {
	state, ok := n.components[name]
	if !ok {
		state = &componentState{}
		n.components[name] = state
	}
	return state
}

type job struct {
	run  func()
	done chan struct{}
}

// Scheduler keeps one periodic task per namespace and autoscaled component in sync
// with the cluster specification.
type Scheduler struct {
	clock  clock.Clock
	task   Task
	logger logr.Logger

	mu         sync.Mutex
	namespaces map[string]*namespaceState
	closed     bool

	jobs       chan *job
	stopWorker chan struct{}
	workerDone chan struct{}
	closeOnce  sync.Once
}

var _ manager.Runnable = (*Scheduler)(nil)
var _ manager.LeaderElectionRunnable = (*Scheduler)(nil)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the clock used for the fixed delay.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger overrides the scheduler logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler returns a Scheduler running task on every tick. The worker starts
// immediately; Close stops it.
func NewScheduler(task Task, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:      clock.RealClock{},
		task:       task,
		logger:     log.Log.WithName("autoscaler"),
		namespaces: map[string]*namespaceState{},
		jobs:       make(chan *job),
		stopWorker: make(chan struct{}),
		workerDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.worker()
	return s
}

// OnSpecChange brings the tasks of namespace in line with clusterSpec. An
// autoscaler spec equal to the last applied one leaves its running task alone.
// Any other change cancels the running task, waits for it to stop and, when the
// new spec is enabled, schedules a replacement whose first run is one period away.
// A nil clusterSpec cancels every task of the namespace.
func (s *Scheduler) OnSpecChange(namespace string, clusterSpec *pulsarv1alpha1.PulsarClusterSpec) error {
	ns, err := s.namespaceState(namespace)
	if err != nil {
		return err
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if s.isClosed() {
		return ErrSchedulerClosed
	}

	var errs []error
	for _, c := range autoscaledComponents {
		if err := s.applyComponent(ns, namespace, c.name, clusterSpec, c.selector(clusterSpec)); err != nil {
			errs = append(errs, err)
		}
	}
	return utilerrors.NewAggregate(errs)
}

func (s *Scheduler) applyComponent(
	ns *namespaceState,
	namespace string,
	component pulsarv1alpha1.ComponentName,
	clusterSpec *pulsarv1alpha1.PulsarClusterSpec,
	incoming *pulsarv1alpha1.AutoscalerSpec,
) error {
	logger := s.logger.WithValues("namespace", namespace, "component", component)
	state := ns.component(component)

	if state.lastApplied != nil && incoming != nil && equality.Semantic.DeepEqual(state.lastApplied, incoming) {
		logger.V(1).Info("Autoscaler spec unchanged")
		return nil
	}

	if incoming != nil && incoming.Enabled && incoming.PeriodMs <= 0 {
		return operatorerrors.WrapPermanentConfig(fmt.Errorf(
			"autoscaler for %s in namespace %s: periodMs must be positive, got %d", component, namespace, incoming.PeriodMs))
	}

	m := newTaskMetrics(namespace, string(component))
	stopped := state.task != nil
	if stopped {
		state.task.stop()
		state.task = nil
		m.setScheduled(false)
	}

	switch {
	case incoming != nil && incoming.Enabled:
		period := time.Duration(incoming.PeriodMs) * time.Millisecond
		state.task = s.schedule(namespace, component, clusterSpec.DeepCopy(), period, m)
		m.setScheduled(true)
		logging.LogAuditEvent(logger, logging.AuditEventAutoscalerScheduled, map[string]string{
			"period_ms": strconv.FormatInt(incoming.PeriodMs, 10),
		})
	case stopped:
		logging.LogAuditEvent(logger, logging.AuditEventAutoscalerCancelled, nil)
	}

	state.lastApplied = incoming.DeepCopy()
	return nil
}

func (s *Scheduler) namespaceState(namespace string) (*namespaceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSchedulerClosed
	}
	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = &namespaceState{components: map[pulsarv1alpha1.ComponentName]*componentState{}}
		s.namespaces[namespace] = ns
	}
	return ns, nil
}

func (s *Scheduler) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Scheduler) schedule(
	namespace string,
	component pulsarv1alpha1.ComponentName,
	clusterSpec *pulsarv1alpha1.PulsarClusterSpec,
	period time.Duration,
	m *taskMetrics,
) *taskHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &taskHandle{cancel: cancel, done: make(chan struct{})}
	go s.runTask(ctx, h, namespace, component, clusterSpec, period, m)
	return h
}

// runTask waits one period, hands a run to the worker, waits for it to finish and
// starts over. The delay is measured from the end of the previous run.
func (s *Scheduler) runTask(
	ctx context.Context,
	h *taskHandle,
	namespace string,
	component pulsarv1alpha1.ComponentName,
	clusterSpec *pulsarv1alpha1.PulsarClusterSpec,
	period time.Duration,
	m *taskMetrics,
) {
	defer close(h.done)

	for {
		timer := s.clock.NewTimer(period)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
		}

		if !s.submit(ctx, func() { s.invoke(ctx, namespace, component, clusterSpec, m) }) {
			return
		}
	}
}

// submit queues run on the worker and waits for it to complete. It returns false
// when ctx is cancelled before the worker picked the run up.
func (s *Scheduler) submit(ctx context.Context, run func()) bool {
	j := &job{run: run, done: make(chan struct{})}
	select {
	case s.jobs <- j:
	case <-ctx.Done():
		return false
	}
	<-j.done
	return true
}

func (s *Scheduler) worker() {
	defer close(s.workerDone)
	for {
		select {
		case j := <-s.jobs:
			j.run()
			close(j.done)
		case <-s.stopWorker:
			return
		}
	}
}

// invoke runs the task once. Errors and panics are logged and counted; the
// schedule continues either way.
func (s *Scheduler) invoke(
	ctx context.Context,
	namespace string,
	component pulsarv1alpha1.ComponentName,
	clusterSpec *pulsarv1alpha1.PulsarClusterSpec,
	m *taskMetrics,
) {
	if ctx.Err() != nil {
		return
	}

	logger := s.logger.WithValues("namespace", namespace, "component", component)
	start := s.clock.Now()
	result := resultSuccess
	defer func() {
		if r := recover(); r != nil {
			result = resultPanic
			logger.Error(fmt.Errorf("%v", r), "Autoscaler run panicked")
		}
		m.recordRun(result, s.clock.Since(start).Seconds())
	}()

	if err := s.task.Run(log.IntoContext(ctx, logger), namespace, clusterSpec); err != nil {
		result = resultError
		logger.Error(err, "Autoscaler run failed")
		return
	}
	logger.V(1).Info("Autoscaler run completed")
}

// Close cancels every task, waits for them to stop and stops the worker. Further
// calls to OnSpecChange return ErrSchedulerClosed. Close is idempotent.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		namespaces := maps.Clone(s.namespaces)
		s.mu.Unlock()

		for name, ns := range namespaces {
			ns.mu.Lock()
			for component, state := range ns.components {
				if state.task == nil {
					continue
				}
				state.task.stop()
				state.task = nil
				newTaskMetrics(name, string(component)).setScheduled(false)
			}
			ns.mu.Unlock()
		}

		close(s.stopWorker)
		<-s.workerDone
		s.logger.Info("Autoscaler scheduler closed")
	})
}

// Start blocks until ctx is done and then closes the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	<-ctx.Done()
	s.Close()
	return nil
}

// NeedLeaderElection reports that only the leader runs autoscaler tasks.
func (s *Scheduler) NeedLeaderElection() bool {
	return true
}
