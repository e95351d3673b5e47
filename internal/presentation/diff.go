package presentation

import "slices"

// Field names used by StateDiff and SSE watch filters.
const (
	FieldIsLoading    = "is_loading"
	FieldHeader       = "header"
	FieldItems        = "items"
	FieldErrorMessage = "error_message"
)

// StateDiff holds the fields that changed between two states.
// It is serialized to JSON for partial updates on the client.
type StateDiff struct {
	IsLoading *bool          `json:"is_loading,omitempty"`
	Header    *HeaderUIModel `json:"header,omitempty"`
	Items     *[]ItemUIModel `json:"items,omitempty"`

	// ErrorMessage is "" when the error was hidden.
	ErrorMessage *string `json:"error_message,omitempty"`
}

// Diff calculates the difference between previous and next.
// A nil previous yields a diff carrying the entire next state (initial load).
// It returns nil when nothing changed.
func Diff(previous *UIState, next UIState) *StateDiff {
	d := &StateDiff{}

	if previous == nil || previous.IsLoading != next.IsLoading {
		d.IsLoading = &next.IsLoading
	}
	if previous == nil || !equalHeader(previous.Header, next.Header) {
		header := next.Header
		d.Header = &header
	}
	if previous == nil || !slices.Equal(previous.Items, next.Items) {
		items := slices.Clone(next.Items)
		if items == nil {
			items = []ItemUIModel{}
		}
		d.Items = &items
	}
	if previous == nil || previous.ErrorMessage != next.ErrorMessage {
		d.ErrorMessage = &next.ErrorMessage
	}

	if d.IsEmpty() {
		return nil
	}
	return d
}

// IsEmpty checks if the diff contains any change.
func (d *StateDiff) IsEmpty() bool {
	return d.IsLoading == nil && d.Header == nil && d.Items == nil && d.ErrorMessage == nil
}

// Has reports whether field changed.
func (d *StateDiff) Has(field string) bool {
	switch field {
	case FieldIsLoading:
		return d.IsLoading != nil
	case FieldHeader:
		return d.Header != nil
	case FieldItems:
		return d.Items != nil
	case FieldErrorMessage:
		return d.ErrorMessage != nil
	}
	return false
}

func equalHeader(a, b HeaderUIModel) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.Timestamp == b.Timestamp &&
		slices.Equal(a.Items, b.Items)
}
