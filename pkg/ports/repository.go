package ports

import (
	"context"

	"github.com/aretw0/infoboard/pkg/domain"
)

// InfoRepository is the upstream data collaborator.
type InfoRepository interface {
	// GetHeaderInfo performs one logical fetch and returns either the dataset or a failure.
	GetHeaderInfo(ctx context.Context) (domain.HeaderInfo, error)
}

// InfoRepositoryFunc adapts a function to InfoRepository.
type InfoRepositoryFunc func(ctx context.Context) (domain.HeaderInfo, error)

// GetHeaderInfo calls f(ctx).
func (f InfoRepositoryFunc) GetHeaderInfo(ctx context.Context) (domain.HeaderInfo, error) {
	return f(ctx)
}
