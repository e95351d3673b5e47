package presentation

import "slices"

// PartialState is an atomic change to UIState.
// The set of variants is closed: each one carries its own reduction, so adding a
// variant without one does not compile.
type PartialState interface {
	Name() string
	reduce(previous UIState) UIState
}

// ShowLoadingState marks the screen as loading.
type ShowLoadingState struct{}

// HideLoadingState clears the loading flag.
type HideLoadingState struct{}

// UpdateHeaderState replaces the header.
type UpdateHeaderState struct {
	Header HeaderUIModel
}

// UpdateItemsState replaces the item list.
type UpdateItemsState struct {
	Items []ItemUIModel
}

// UpdateErrorMessageState shows an error, or hides it when ErrorMessage is empty.
// Showing an error clears the items.
type UpdateErrorMessageState struct {
	ErrorMessage string
}

func (ShowLoadingState) Name() string        { return "show_loading" }
func (HideLoadingState) Name() string        { return "hide_loading" }
func (UpdateHeaderState) Name() string       { return "update_header" }
func (UpdateItemsState) Name() string        { return "update_items" }
func (UpdateErrorMessageState) Name() string { return "update_error_message" }

func (ShowLoadingState) reduce(s UIState) UIState {
	s.IsLoading = true
	return s
}

func (HideLoadingState) reduce(s UIState) UIState {
	s.IsLoading = false
	return s
}

func (p UpdateHeaderState) reduce(s UIState) UIState {
	s.Header = p.Header
	s.Header.Items = slices.Clone(p.Header.Items)
	return s
}

func (p UpdateItemsState) reduce(s UIState) UIState {
	s.Items = slices.Clone(p.Items)
	if s.Items == nil {
		s.Items = []ItemUIModel{}
	}
	return s
}

func (p UpdateErrorMessageState) reduce(s UIState) UIState {
	s.ErrorMessage = p.ErrorMessage
	if p.ErrorMessage != "" {
		s.Items = []ItemUIModel{}
	}
	return s
}

// Reduce folds a partial state into the previous state. It is pure.
func Reduce(previous UIState, partial PartialState) UIState {
	return partial.reduce(previous)
}
