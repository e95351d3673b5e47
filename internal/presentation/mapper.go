package presentation

import (
	"time"

	"github.com/aretw0/infoboard/pkg/domain"
)

// DefaultTimeFormat renders timestamps as hours and minutes.
const DefaultTimeFormat = "15:04"

// ItemUIModelMapper maps domain items for display.
type ItemUIModelMapper struct {
	format   string
	location *time.Location
}

// NewItemUIModelMapper creates a mapper rendering times with format in loc.
// Empty format and nil loc default to DefaultTimeFormat and time.Local.
func NewItemUIModelMapper(format string, loc *time.Location) ItemUIModelMapper {
	if format == "" {
		format = DefaultTimeFormat
	}
	if loc == nil {
		loc = time.Local
	}
	return ItemUIModelMapper{format: format, location: loc}
}

// ToUIModel maps one item.
func (m ItemUIModelMapper) ToUIModel(item domain.ItemInfo) ItemUIModel {
	return ItemUIModel{
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Timestamp:   m.formatTime(item.Time()),
	}
}

// ToUIModels maps a list of items, never returning nil.
func (m ItemUIModelMapper) ToUIModels(items []domain.ItemInfo) []ItemUIModel {
	out := make([]ItemUIModel, 0, len(items))
	for _, item := range items {
		out = append(out, m.ToUIModel(item))
	}
	return out
}

func (m ItemUIModelMapper) formatTime(t time.Time) string {
	return t.In(m.location).Format(m.format)
}

// HeaderUIModelMapper maps the domain header for display.
type HeaderUIModelMapper struct {
	items ItemUIModelMapper
}

// NewHeaderUIModelMapper creates a header mapper sharing the item mapper's formatting.
func NewHeaderUIModelMapper(items ItemUIModelMapper) HeaderUIModelMapper {
	return HeaderUIModelMapper{items: items}
}

// ToUIModel maps the header and its items.
func (m HeaderUIModelMapper) ToUIModel(info domain.HeaderInfo) HeaderUIModel {
	return HeaderUIModel{
		Title:       info.Title,
		Description: info.Description,
		Timestamp:   m.items.formatTime(info.Time()),
		Items:       m.items.ToUIModels(info.Items),
	}
}
