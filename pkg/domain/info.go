package domain

import "time"

// HeaderInfo is the header of the dataset together with its items.
type HeaderInfo struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TimestampSeconds int64      `json:"timestamp"`
	Items            []ItemInfo `json:"items"`
}

// Time returns the header timestamp.
func (h HeaderInfo) Time() time.Time {
	return time.Unix(h.TimestampSeconds, 0)
}

// ItemInfo is a single entry of the dataset.
type ItemInfo struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url,omitempty"`
	TimestampSeconds int64  `json:"timestamp"`
}

// Time returns the item timestamp.
func (i ItemInfo) Time() time.Time {
	return time.Unix(i.TimestampSeconds, 0)
}
