package presentation

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/statemachine"
)

// Intent is a user or system request handled by the ViewModel.
// The set of variants is closed: each one carries its own transform.
type Intent interface {
	Name() string
	transform(ctx context.Context, vm *ViewModel, emit statemachine.Emit[PartialState]) error
}

// RefreshScreen fetches the dataset again.
type RefreshScreen struct{}

// HideErrorMessage dismisses the visible error.
type HideErrorMessage struct{}

func (RefreshScreen) Name() string    { return "refresh_screen" }
func (HideErrorMessage) Name() string { return "hide_error_message" }

func (RefreshScreen) transform(ctx context.Context, vm *ViewModel, emit statemachine.Emit[PartialState]) error {
	return vm.onRefreshScreen(ctx, emit)
}

func (HideErrorMessage) transform(ctx context.Context, vm *ViewModel, emit statemachine.Emit[PartialState]) error {
	return vm.onHideErrorMessage(emit)
}

// ParseIntent maps an external intent name to an Intent.
func ParseIntent(name string) (Intent, error) {
	clean, err := SanitizeInput(name)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(clean)) {
	case "refresh", "refresh_screen", "r":
		return RefreshScreen{}, nil
	case "hide_error", "hide_error_message", "dismiss", "d":
		return HideErrorMessage{}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIntent, name)
}
