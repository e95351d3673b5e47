package presentation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/infoboard/internal/logging"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/ports"
	"github.com/aretw0/infoboard/pkg/statemachine"
)

// Factory builds the machine behind a ViewModel.
type Factory = statemachine.Factory[UIState, PartialState, Intent]

// NewFactory creates a Factory for the main screen.
func NewFactory(opts ...statemachine.Option) *Factory {
	return statemachine.NewFactory[UIState, PartialState, Intent](opts...)
}

// ViewModel owns the main screen state. Frontends send intents and observe UIState.
type ViewModel struct {
	machine *statemachine.Machine[UIState, PartialState, Intent]
	repo    ports.InfoRepository
	headers HeaderUIModelMapper
	items   ItemUIModelMapper
	logger  *slog.Logger
}

type viewModelConfig struct {
	initial     UIState
	autoRefresh bool
	timeFormat  string
	location    *time.Location
	logger      *slog.Logger
}

// Option configures a ViewModel.
type Option func(*viewModelConfig)

// WithInitialState overrides the default empty state.
func WithInitialState(state UIState) Option {
	return func(c *viewModelConfig) {
		c.initial = state
	}
}

// WithAutoRefresh controls whether the view model refreshes on its own whenever the
// header becomes empty (including at start). Enabled by default.
func WithAutoRefresh(enabled bool) Option {
	return func(c *viewModelConfig) {
		c.autoRefresh = enabled
	}
}

// WithTimeFormat sets the layout and location used for timestamps.
func WithTimeFormat(layout string, loc *time.Location) Option {
	return func(c *viewModelConfig) {
		c.timeFormat = layout
		c.location = loc
	}
}

// WithLogger configures a logger for the view model.
func WithLogger(logger *slog.Logger) Option {
	return func(c *viewModelConfig) {
		c.logger = logger
	}
}

// NewViewModel creates the view model and starts its machine, owned by ctx.
func NewViewModel(ctx context.Context, factory *Factory, repo ports.InfoRepository, opts ...Option) *ViewModel {
	cfg := viewModelConfig{
		autoRefresh: true,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	items := NewItemUIModelMapper(cfg.timeFormat, cfg.location)
	vm := &ViewModel{
		repo:    repo,
		items:   items,
		headers: NewHeaderUIModelMapper(items),
		logger:  cfg.logger,
	}

	vm.machine = factory.Create(ctx, cfg.initial, vm.intentTransform, vm.errorTransform, Reduce)

	if cfg.autoRefresh {
		// Released together with the machine.
		_ = vm.machine.Observe(vm.refreshWhenEmpty())
	}

	return vm
}

// AcceptIntent forwards the intent to the machine. It never blocks.
func (vm *ViewModel) AcceptIntent(intent Intent) {
	vm.machine.AcceptIntent(intent)
}

// State returns the current UIState.
func (vm *ViewModel) State() UIState {
	return vm.machine.State()
}

// Observe registers fn for every published state, starting with the current one.
func (vm *ViewModel) Observe(fn func(UIState)) (stop func()) {
	return vm.machine.Observe(fn)
}

// Subscribe returns a latest-value channel of states.
func (vm *ViewModel) Subscribe(ctx context.Context) <-chan UIState {
	return vm.machine.Subscribe(ctx)
}

// Done is closed once the view model stopped.
func (vm *ViewModel) Done() <-chan struct{} {
	return vm.machine.Done()
}

// Close stops the view model and cancels in-flight work.
func (vm *ViewModel) Close() {
	vm.machine.Close()
}

func (vm *ViewModel) refreshWhenEmpty() func(UIState) {
	// Observer callbacks are serialized, so no locking is needed.
	wasEmpty := false
	return func(s UIState) {
		empty := s.Header.IsEmpty()
		if empty && !wasEmpty {
			vm.AcceptIntent(RefreshScreen{})
		}
		wasEmpty = empty
	}
}

func (vm *ViewModel) intentTransform(ctx context.Context, intent Intent, emit statemachine.Emit[PartialState]) error {
	return intent.transform(ctx, vm, emit)
}

func (vm *ViewModel) errorTransform(ctx context.Context, err error, emit statemachine.Emit[PartialState]) {
	vm.logger.Error("Intent failed", "err", err)

	_ = emitAll(emit,
		HideLoadingState{},
		UpdateItemsState{Items: []ItemUIModel{}},
		UpdateErrorMessageState{ErrorMessage: err.Error()},
	)
}

func (vm *ViewModel) onHideErrorMessage(emit statemachine.Emit[PartialState]) error {
	return emit(UpdateErrorMessageState{})
}

func (vm *ViewModel) onRefreshScreen(ctx context.Context, emit statemachine.Emit[PartialState]) error {
	if err := emit(ShowLoadingState{}); err != nil {
		return err
	}

	info, err := vm.repo.GetHeaderInfo(ctx)

	var stale *domain.StaleError
	switch {
	case err == nil:
		err = emitAll(emit,
			UpdateHeaderState{Header: vm.headers.ToUIModel(info)},
			UpdateItemsState{Items: vm.items.ToUIModels(info.Items)},
		)
	case ctx.Err() != nil:
		return err
	case errors.As(err, &stale):
		// Cached header is kept, but the failure is still reported.
		err = emitAll(emit,
			UpdateHeaderState{Header: vm.headers.ToUIModel(info)},
			UpdateErrorMessageState{ErrorMessage: stale.Error()},
		)
	default:
		err = emit(UpdateErrorMessageState{ErrorMessage: err.Error()})
	}
	if err != nil {
		return err
	}

	return emit(HideLoadingState{})
}

func emitAll(emit statemachine.Emit[PartialState], partials ...PartialState) error {
	for _, p := range partials {
		if err := emit(p); err != nil {
			return err
		}
	}
	return nil
}

// Settled reports whether s is the outcome an intent waits for. sawLoading tells
// whether a loading state was published since the intent was accepted.
type Settled func(sawLoading bool, s UIState) bool

// LoadingFinished settles once loading started and ended again.
func LoadingFinished(sawLoading bool, s UIState) bool {
	return sawLoading && !s.IsLoading
}

// ErrorHidden settles once no error message is shown.
func ErrorHidden(_ bool, s UIState) bool {
	return !s.HasError()
}

// AcceptAndWait accepts intent and returns the first later state for which settled
// holds. On ctx expiry it returns the latest state with the context error.
func (vm *ViewModel) AcceptAndWait(ctx context.Context, intent Intent, settled Settled) (UIState, error) {
	result := make(chan UIState, 1)

	// Observer calls are serialized; first skips the state delivered on registration.
	first, sawLoading := true, false
	stop := vm.Observe(func(s UIState) {
		if first {
			first = false
			return
		}
		sawLoading = sawLoading || s.IsLoading
		if settled(sawLoading, s) {
			select {
			case result <- s:
			default:
			}
		}
	})
	defer stop()

	vm.AcceptIntent(intent)

	select {
	case s := <-result:
		return s, nil
	case <-ctx.Done():
		return vm.State(), ctx.Err()
	case <-vm.Done():
		return vm.State(), statemachine.ErrClosed
	}
}
