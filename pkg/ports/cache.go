package ports

import (
	"context"

	"github.com/aretw0/infoboard/pkg/domain"
)

// HeaderCache stores the last successfully fetched dataset.
type HeaderCache interface {
	// Get returns the cached dataset or domain.ErrCacheMiss.
	Get(ctx context.Context) (domain.HeaderInfo, error)

	// Set replaces the cached dataset.
	Set(ctx context.Context, info domain.HeaderInfo) error

	// Clear removes the cached dataset.
	Clear(ctx context.Context) error
}
