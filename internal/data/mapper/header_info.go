package mapper

import (
	"github.com/aretw0/infoboard/internal/data/network"
	"github.com/aretw0/infoboard/pkg/domain"
)

// HeaderInfoMapper converts wire DTOs into domain models.
type HeaderInfoMapper struct {
	items ItemInfoMapper
}

// NewHeaderInfoMapper creates a HeaderInfoMapper.
func NewHeaderInfoMapper() HeaderInfoMapper {
	return HeaderInfoMapper{}
}

// ToDomain maps a header and its items.
func (m HeaderInfoMapper) ToDomain(header network.HeaderDTO, items []network.ItemDTO) domain.HeaderInfo {
	info := domain.HeaderInfo{
		Title:            header.Title,
		Description:      header.Description,
		TimestampSeconds: header.Timestamp,
		Items:            make([]domain.ItemInfo, 0, len(items)),
	}
	for _, item := range items {
		info.Items = append(info.Items, m.items.ToDomain(item))
	}
	return info
}

// ItemInfoMapper converts item DTOs into domain models.
type ItemInfoMapper struct{}

// ToDomain maps one item.
func (ItemInfoMapper) ToDomain(item network.ItemDTO) domain.ItemInfo {
	return domain.ItemInfo{
		Title:            item.Title,
		Description:      item.Description,
		ImageURL:         item.Image,
		TimestampSeconds: item.Timestamp,
	}
}
