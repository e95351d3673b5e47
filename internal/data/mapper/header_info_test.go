package mapper_test

import (
	"testing"

	"github.com/aretw0/infoboard/internal/data/mapper"
	"github.com/aretw0/infoboard/internal/data/network"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestHeaderInfoMapper_ToDomain(t *testing.T) {
	m := mapper.NewHeaderInfoMapper()

	got := m.ToDomain(
		network.HeaderDTO{Title: "Jobs", Description: "Today", Timestamp: 1700000000},
		[]network.ItemDTO{
			{Title: "a", Description: "first", Image: "https://img/a.png", Timestamp: 1700000060},
			{Title: "b", Timestamp: 1700000120},
		},
	)

	assert.Equal(t, domain.HeaderInfo{
		Title:            "Jobs",
		Description:      "Today",
		TimestampSeconds: 1700000000,
		Items: []domain.ItemInfo{
			{Title: "a", Description: "first", ImageURL: "https://img/a.png", TimestampSeconds: 1700000060},
			{Title: "b", TimestampSeconds: 1700000120},
		},
	}, got)
}

func TestHeaderInfoMapper_NoItems(t *testing.T) {
	got := mapper.NewHeaderInfoMapper().ToDomain(network.HeaderDTO{Title: "x"}, nil)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}
