package repository

import (
	"context"
	"log/slog"

	"github.com/aretw0/infoboard/internal/data/mapper"
	"github.com/aretw0/infoboard/internal/data/network"
	"github.com/aretw0/infoboard/internal/logging"
	"github.com/aretw0/infoboard/pkg/domain"
)

// InfoAPI is the remote source of the info payload.
type InfoAPI interface {
	GetInfo(ctx context.Context) (network.InfoResponse, error)
}

// InfoRepository implements ports.InfoRepository on top of the info endpoint.
type InfoRepository struct {
	api    InfoAPI
	mapper mapper.HeaderInfoMapper
	logger *slog.Logger
}

// Option configures a repository.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger configures a logger for the repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func resolve(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewInfoRepository creates a repository reading from api.
func NewInfoRepository(api InfoAPI, opts ...Option) *InfoRepository {
	o := resolve(opts)
	return &InfoRepository{
		api:    api,
		mapper: mapper.NewHeaderInfoMapper(),
		logger: o.logger,
	}
}

// GetHeaderInfo performs one fetch. A payload carrying an error message becomes a
// *domain.APIError; a payload with neither header nor error is domain.ErrUnknownAPI.
func (r *InfoRepository) GetHeaderInfo(ctx context.Context) (domain.HeaderInfo, error) {
	resp, err := r.api.GetInfo(ctx)
	if err != nil {
		r.logger.Error("Failed to fetch header info", "err", err)
		return domain.HeaderInfo{}, err
	}

	switch {
	case resp.Header != nil:
		return r.mapper.ToDomain(*resp.Header, resp.Items), nil
	case resp.Error != "":
		return domain.HeaderInfo{}, &domain.APIError{Message: resp.Error}
	default:
		return domain.HeaderInfo{}, domain.ErrUnknownAPI
	}
}
