package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/infoboard/internal/adapters/memory"
	"github.com/aretw0/infoboard/internal/adapters/redis"
	"github.com/aretw0/infoboard/internal/config"
	"github.com/aretw0/infoboard/internal/data/network"
	"github.com/aretw0/infoboard/internal/data/repository"
	"github.com/aretw0/infoboard/internal/metrics"
	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/pkg/ports"
	"github.com/aretw0/infoboard/pkg/statemachine"
)

// Board is a running view model together with the resources it owns.
type Board struct {
	*presentation.ViewModel

	Config  config.Config
	Metrics *metrics.Collectors

	closers []func() error
}

type boardOptions struct {
	repo        ports.InfoRepository
	autoRefresh bool
	hooks       statemachine.Hooks
}

// BoardOption configures NewBoard.
type BoardOption func(*boardOptions)

// WithRepository replaces the network repository, mainly for tests.
func WithRepository(repo ports.InfoRepository) BoardOption {
	return func(o *boardOptions) {
		o.repo = repo
	}
}

// WithAutoRefresh controls whether the board fetches as soon as it starts.
func WithAutoRefresh(enabled bool) BoardOption {
	return func(o *boardOptions) {
		o.autoRefresh = enabled
	}
}

// WithHooks adds machine hooks next to the metrics and debug hooks.
func WithHooks(hooks statemachine.Hooks) BoardOption {
	return func(o *boardOptions) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// NewBoard wires the client, repository, cache, executor and metrics described by cfg
// and starts a view model owned by ctx.
func NewBoard(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...BoardOption) (*Board, error) {
	o := boardOptions{autoRefresh: true}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Board{Config: cfg, Metrics: metrics.New()}

	repo := o.repo
	if repo == nil {
		client, err := network.NewClient(cfg.API.BaseURL, cfg.API.Endpoint,
			network.WithToken(cfg.API.Token),
			network.WithTimeout(cfg.API.Timeout),
			network.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("error initializing client: %w", err)
		}
		repo = repository.NewInfoRepository(client, repository.WithLogger(logger))
	}

	cache, err := b.newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		repo = repository.NewCachedRepository(repo, cache, repository.WithLogger(logger))
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = b.closeResources()
		return nil, err
	}

	factory := presentation.NewFactory(
		statemachine.WithName("main"),
		statemachine.WithExecutor(statemachine.NewPool(cfg.Machine.Workers)),
		statemachine.WithBufferSize(cfg.Machine.Buffer),
		statemachine.WithLogger(logger),
		statemachine.WithHooks(b.Metrics.Hooks()),
		statemachine.WithHooks(debugHooks(logger)),
		statemachine.WithHooks(o.hooks),
	)

	b.ViewModel = presentation.NewViewModel(ctx, factory, repo,
		presentation.WithAutoRefresh(o.autoRefresh),
		presentation.WithTimeFormat(cfg.UI.TimeFormat, loc),
		presentation.WithLogger(logger),
	)
	return b, nil
}

func (b *Board) newCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ports.HeaderCache, error) {
	switch cfg.Driver {
	case config.CacheMemory:
		return memory.New(memory.WithTTL(cfg.TTL)), nil
	case config.CacheRedis:
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		if err := cache.Ping(ctx); err != nil {
			_ = cache.Close()
			return nil, fmt.Errorf("redis cache unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		b.closers = append(b.closers, cache.Close)
		return cache, nil
	default:
		return nil, nil
	}
}

// Close stops the view model and releases the cache connection.
func (b *Board) Close() error {
	if b.ViewModel != nil {
		b.ViewModel.Close()
	}
	return b.closeResources()
}

func (b *Board) closeResources() error {
	var errs []error
	for _, closeFn := range b.closers {
		errs = append(errs, closeFn())
	}
	b.closers = nil
	return errors.Join(errs...)
}

func debugHooks(logger *slog.Logger) statemachine.Hooks {
	return statemachine.Hooks{
		OnIntent: func(ctx context.Context, e *statemachine.IntentEvent) {
			logger.Debug("Intent accepted", "intent", statemachine.NameOf(e.Intent), "pipeline_id", e.PipelineID)
		},
		OnFailure: func(ctx context.Context, e *statemachine.IntentEvent) {
			logger.Debug("Intent failed", "intent", statemachine.NameOf(e.Intent), "pipeline_id", e.PipelineID, "err", e.Err)
		},
		OnPipelineDone: func(ctx context.Context, e *statemachine.IntentEvent) {
			logger.Debug("Intent done", "intent", statemachine.NameOf(e.Intent), "pipeline_id", e.PipelineID, "duration", e.Duration)
		},
		OnPartial: func(ctx context.Context, e *statemachine.PartialEvent) {
			logger.Debug("Partial state applied", "partial", statemachine.NameOf(e.Partial))
		},
	}
}

// SettleGrace is added to the API timeout when waiting for a refresh to settle.
const SettleGrace = 2 * time.Second

// RefreshAndWait refreshes and returns the state published once loading finished.
func (b *Board) RefreshAndWait(ctx context.Context) (presentation.UIState, error) {
	return b.AcceptAndWait(ctx, presentation.RefreshScreen{}, presentation.LoadingFinished)
}
