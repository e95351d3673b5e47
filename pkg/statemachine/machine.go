package statemachine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type observer[S any] struct {
	fn     func(S)
	active atomic.Bool
}

// Machine owns the canonical state and serializes every update through the Reducer.
type Machine[S, P, I any] struct {
	name     string
	executor Executor
	logger   *slog.Logger
	hooks    Hooks

	intentTransform IntentTransform[I, P]
	errorTransform  ErrorTransform[P]
	reducer         Reducer[S, P]

	partials chan P

	// current is only touched by the run loop; latest mirrors it for readers.
	current S
	latest  atomic.Pointer[S]

	// publishMu orders publications against observer registration.
	publishMu sync.Mutex
	// observersMu guards the observer list only.
	observersMu sync.Mutex
	observers   []*observer[S]

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newMachine[S, P, I any](
	parent context.Context,
	cfg config,
	initialState S,
	intentTransform IntentTransform[I, P],
	errorTransform ErrorTransform[P],
	reducer Reducer[S, P],
) *Machine[S, P, I] {
	ctx, cancel := context.WithCancel(parent)

	m := &Machine[S, P, I]{
		name:            cfg.name,
		executor:        cfg.executor,
		logger:          cfg.logger.With("machine", cfg.name),
		hooks:           cfg.hooks,
		intentTransform: intentTransform,
		errorTransform:  errorTransform,
		reducer:         reducer,
		partials:        make(chan P, cfg.bufferSize),
		current:         initialState,
		ctx:             ctx,
		cancel:          cancel,
		done:            make(chan struct{}),
	}
	m.latest.Store(&initialState)
	return m
}

// AcceptIntent enqueues an intent for asynchronous processing.
// It never blocks and is safe for concurrent use. Intents accepted after the
// machine stopped are dropped.
func (m *Machine[S, P, I]) AcceptIntent(intent I) {
	if m.ctx.Err() != nil {
		m.logger.Debug("Intent dropped, machine stopped", "intent", NameOf(intent))
		return
	}

	event := &IntentEvent{
		EventBase:  m.base(EventIntentAccepted),
		PipelineID: uuid.NewString(),
		Intent:     intent,
	}
	if m.hooks.OnIntent != nil {
		m.hooks.OnIntent(m.ctx, event)
	}

	m.executor.Go(m.ctx, func(ctx context.Context) {
		m.process(ctx, intent, event.PipelineID)
	})
}

// State returns the latest published state.
func (m *Machine[S, P, I]) State() S {
	return *m.latest.Load()
}

// Observe registers fn and calls it with the current state before returning.
// fn is then called with every published state, in registration order, on the
// publishing goroutine. fn must not call Observe. The returned stop func is idempotent.
func (m *Machine[S, P, I]) Observe(fn func(S)) (stop func()) {
	obs := &observer[S]{fn: fn}
	obs.active.Store(true)

	m.publishMu.Lock()
	m.observersMu.Lock()
	m.observers = append(m.observers, obs)
	m.observersMu.Unlock()
	fn(*m.latest.Load())
	m.publishMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			obs.active.Store(false)
			m.observersMu.Lock()
			defer m.observersMu.Unlock()
			for i, o := range m.observers {
				if o == obs {
					m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribe returns a channel that immediately holds the current state and then
// the most recent published state. Readers that fall behind skip intermediate
// values. The channel is closed when ctx ends or the machine stops.
func (m *Machine[S, P, I]) Subscribe(ctx context.Context) <-chan S {
	ch := make(chan S, 1)
	stop := m.Observe(func(s S) {
		// Single writer: publications are serialized by publishMu.
		select {
		case <-ch:
		default:
		}
		ch <- s
	})

	go func() {
		select {
		case <-ctx.Done():
		case <-m.done:
		}
		stop()
		m.publishMu.Lock()
		close(ch)
		m.publishMu.Unlock()
	}()

	return ch
}

// Observers returns the number of registered observers.
func (m *Machine[S, P, I]) Observers() int {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()
	return len(m.observers)
}

// Done is closed once the run loop has exited.
func (m *Machine[S, P, I]) Done() <-chan struct{} {
	return m.done
}

// Close stops the machine and waits for the run loop to exit.
// In-flight pipelines are cancelled; no further partial states are applied.
func (m *Machine[S, P, I]) Close() {
	m.cancel()
	<-m.done
}

func (m *Machine[S, P, I]) run() {
	defer close(m.done)

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Debug("Run loop stopped", "cause", context.Cause(m.ctx))
			return
		case partial := <-m.partials:
			if m.ctx.Err() != nil {
				return
			}
			m.apply(partial)
		}
	}
}

func (m *Machine[S, P, I]) apply(partial P) {
	next := m.reducer(m.current, partial)
	m.current = next

	if m.hooks.OnPartial != nil {
		m.hooks.OnPartial(m.ctx, &PartialEvent{
			EventBase: m.base(EventPartialApplied),
			Partial:   partial,
		})
	}

	observers := m.publish(next)

	if m.hooks.OnState != nil {
		m.hooks.OnState(m.ctx, &StateEvent{
			EventBase: m.base(EventStatePublished),
			State:     next,
			Observers: observers,
		})
	}
}

func (m *Machine[S, P, I]) publish(state S) int {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	m.latest.Store(&state)

	m.observersMu.Lock()
	snapshot := make([]*observer[S], len(m.observers))
	copy(snapshot, m.observers)
	m.observersMu.Unlock()

	for _, obs := range snapshot {
		if obs.active.Load() {
			obs.fn(state)
		}
	}
	return len(snapshot)
}

func (m *Machine[S, P, I]) emitter(ctx context.Context) Emit[P] {
	return func(partial P) error {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrClosed, context.Cause(ctx))
		case m.partials <- partial:
			return nil
		}
	}
}

func (m *Machine[S, P, I]) process(ctx context.Context, intent I, pipelineID string) {
	start := time.Now()
	emit := m.emitter(ctx)
	logger := m.logger.With("intent", NameOf(intent), "pipeline_id", pipelineID)

	err := m.transform(ctx, intent, emit)

	event := &IntentEvent{
		EventBase:  m.base(EventPipelineDone),
		PipelineID: pipelineID,
		Intent:     intent,
		Err:        err,
	}

	switch {
	case err == nil:
	case ctx.Err() != nil:
		// Cancellation of the owning scope is not a pipeline failure.
		logger.Debug("Pipeline cancelled", "err", err)
	default:
		logger.Warn("Pipeline failed, routing to error transform", "err", err)
		if m.hooks.OnFailure != nil {
			failed := *event
			failed.Type = EventPipelineFailed
			failed.Duration = time.Since(start)
			m.hooks.OnFailure(ctx, &failed)
		}
		m.errorTransform(ctx, err, emit)
	}

	event.Duration = time.Since(start)
	if m.hooks.OnPipelineDone != nil {
		m.hooks.OnPipelineDone(ctx, event)
	}
}

// transform runs the intent transform, converting a panic into a *PanicError.
func (m *Machine[S, P, I]) transform(ctx context.Context, intent I, emit Emit[P]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return m.intentTransform(ctx, intent, emit)
}

func (m *Machine[S, P, I]) base(t EventType) EventBase {
	return EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   m.name,
	}
}
