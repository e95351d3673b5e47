package statemachine

import (
	"context"
	"log/slog"

	"github.com/aretw0/infoboard/internal/logging"
)

// DefaultBufferSize is the capacity of the channel between pipelines and the run loop.
const DefaultBufferSize = 16

type config struct {
	name       string
	executor   Executor
	logger     *slog.Logger
	hooks      Hooks
	bufferSize int
}

// Option configures a Factory.
type Option func(*config)

// WithName labels machines in logs and events.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithExecutor sets the execution context used for intent pipelines.
func WithExecutor(executor Executor) Option {
	return func(c *config) {
		c.executor = executor
	}
}

// WithLogger sets a structured logger for machine internals.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls are merged.
func WithHooks(hooks Hooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithBufferSize sets the partial state channel capacity.
func WithBufferSize(size int) Option {
	return func(c *config) {
		c.bufferSize = size
	}
}

// Factory assembles machines without exposing their concurrency wiring.
type Factory[S, P, I any] struct {
	cfg config
}

// NewFactory creates a Factory. Without WithExecutor, pipelines run on a pool
// sized to GOMAXPROCS.
func NewFactory[S, P, I any](opts ...Option) *Factory[S, P, I] {
	cfg := config{
		name:       "machine",
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.executor == nil {
		cfg.executor = NewPool(0)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.bufferSize < 0 {
		cfg.bufferSize = 0
	}

	return &Factory[S, P, I]{cfg: cfg}
}

// Create starts a machine owned by ctx. The machine stops when ctx ends or Close is called.
func (f *Factory[S, P, I]) Create(
	ctx context.Context,
	initialState S,
	intentTransform IntentTransform[I, P],
	errorTransform ErrorTransform[P],
	reducer Reducer[S, P],
) *Machine[S, P, I] {
	if intentTransform == nil || errorTransform == nil || reducer == nil {
		panic("statemachine: intentTransform, errorTransform and reducer are required")
	}

	m := newMachine(ctx, f.cfg, initialState, intentTransform, errorTransform, reducer)
	go m.run()
	return m
}
