package presentation

import "strings"

// UIState is the immutable snapshot rendered by every frontend.
// An empty ErrorMessage means no error is shown.
type UIState struct {
	IsLoading    bool          `json:"is_loading"`
	Header       HeaderUIModel `json:"header"`
	Items        []ItemUIModel `json:"items"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// HasError reports whether an error message is visible.
func (s UIState) HasError() bool {
	return s.ErrorMessage != ""
}

// HeaderUIModel is the rendered header.
type HeaderUIModel struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Timestamp   string        `json:"timestamp"`
	Items       []ItemUIModel `json:"items,omitempty"`
}

// IsEmpty reports whether nothing has been loaded into the header.
func (h HeaderUIModel) IsEmpty() bool {
	return strings.TrimSpace(h.Title) == "" &&
		strings.TrimSpace(h.Description) == "" &&
		strings.TrimSpace(h.Timestamp) == "" &&
		len(h.Items) == 0
}

// ItemUIModel is one rendered item.
type ItemUIModel struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Timestamp   string `json:"timestamp"`
}
