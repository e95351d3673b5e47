package presentation_test

import (
	"testing"
	"time"

	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestHeaderUIModelMapper(t *testing.T) {
	items := presentation.NewItemUIModelMapper("", time.UTC)
	headers := presentation.NewHeaderUIModelMapper(items)

	got := headers.ToUIModel(domain.HeaderInfo{
		Title:            "H",
		Description:      "d",
		TimestampSeconds: 1700000000, // 2023-11-14T22:13:20Z
		Items: []domain.ItemInfo{
			{Title: "a", ImageURL: "https://img/a.png", TimestampSeconds: 1700000000 + 3600},
		},
	})

	assert.Equal(t, presentation.HeaderUIModel{
		Title:       "H",
		Description: "d",
		Timestamp:   "22:13",
		Items: []presentation.ItemUIModel{
			{Title: "a", ImageURL: "https://img/a.png", Timestamp: "23:13"},
		},
	}, got)
}

func TestItemUIModelMapper_CustomFormat(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	m := presentation.NewItemUIModelMapper(time.Kitchen, loc)

	got := m.ToUIModel(domain.ItemInfo{TimestampSeconds: 1700000000})
	assert.Equal(t, "12:13AM", got.Timestamp)

	assert.NotNil(t, m.ToUIModels(nil))
}
