package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/ports"
)

// CachedRepository always asks the upstream repository first. Successful results are
// written to the cache. When the upstream fails, the last cached dataset is returned
// together with a *domain.StaleError wrapping the failure.
type CachedRepository struct {
	next   ports.InfoRepository
	cache  ports.HeaderCache
	logger *slog.Logger
}

// NewCachedRepository decorates next with cache.
func NewCachedRepository(next ports.InfoRepository, cache ports.HeaderCache, opts ...Option) *CachedRepository {
	o := resolve(opts)
	return &CachedRepository{
		next:   next,
		cache:  cache,
		logger: o.logger,
	}
}

// GetHeaderInfo implements ports.InfoRepository.
func (r *CachedRepository) GetHeaderInfo(ctx context.Context) (domain.HeaderInfo, error) {
	info, err := r.next.GetHeaderInfo(ctx)
	if err == nil {
		if setErr := r.cache.Set(ctx, info); setErr != nil {
			r.logger.Warn("Failed to update header cache", "err", setErr)
		}
		return info, nil
	}

	if ctx.Err() != nil {
		return domain.HeaderInfo{}, err
	}

	cached, cacheErr := r.cache.Get(ctx)
	if cacheErr != nil {
		if !errors.Is(cacheErr, domain.ErrCacheMiss) {
			r.logger.Warn("Failed to read header cache", "err", cacheErr)
		}
		return domain.HeaderInfo{}, err
	}

	r.logger.Warn("Upstream failed, serving cached header", "err", err)
	return cached, &domain.StaleError{Err: err}
}
