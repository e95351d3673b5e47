package presentation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/internal/testutils"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/aretw0/infoboard/pkg/ports"
	"github.com/aretw0/infoboard/pkg/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewModel(t *testing.T, repo *testutils.StubRepository, opts ...presentation.Option) *presentation.ViewModel {
	t.Helper()
	opts = append([]presentation.Option{presentation.WithTimeFormat("", time.UTC)}, opts...)
	factory := presentation.NewFactory(statemachine.WithExecutor(statemachine.NewPool(4)))
	vm := presentation.NewViewModel(context.Background(), factory, repo, opts...)
	t.Cleanup(vm.Close)
	return vm
}

// recorder collects every published state.
type recorder struct {
	mu     sync.Mutex
	states []presentation.UIState
}

func (r *recorder) observe(s presentation.UIState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []presentation.UIState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]presentation.UIState(nil), r.states...)
}

func (r *recorder) last() presentation.UIState {
	s := r.snapshot()
	return s[len(s)-1]
}

func TestViewModel_RefreshSuccess(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	vm := newViewModel(t, repo, presentation.WithAutoRefresh(false))

	rec := &recorder{}
	defer vm.Observe(rec.observe)()

	vm.AcceptIntent(presentation.RefreshScreen{})

	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && s.Header.Title == "H"
	})

	s := vm.State()
	assert.Equal(t, "22:13", s.Header.Timestamp)
	require.Len(t, s.Items, 2)
	assert.Equal(t, "a", s.Items[0].Title)
	assert.Equal(t, "b", s.Items[1].Title)
	assert.Empty(t, s.ErrorMessage)

	testutils.WaitFor(t, func() bool { return len(rec.snapshot()) == 5 })
	states := rec.snapshot()
	assert.False(t, states[0].IsLoading, "initial state")
	assert.True(t, states[1].IsLoading, "loading shown first")
	assert.Equal(t, "H", states[2].Header.Title)
	assert.Len(t, states[3].Items, 2)
	assert.False(t, states[4].IsLoading, "loading hidden last")
	assert.Equal(t, 1, repo.Calls())
}

func TestViewModel_RefreshFailure(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader()).Fail(errors.New("network down"))
	vm := newViewModel(t, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithInitialState(presentation.UIState{
			Header: presentation.HeaderUIModel{Title: "Old"},
			Items:  []presentation.ItemUIModel{{Title: "stale"}},
		}),
	)

	vm.AcceptIntent(presentation.RefreshScreen{})

	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && s.HasError()
	})

	s := vm.State()
	assert.Equal(t, "network down", s.ErrorMessage)
	assert.Empty(t, s.Items)
	assert.Equal(t, "Old", s.Header.Title)
}

func TestViewModel_RefreshServedFromCacheStillReportsFailure(t *testing.T) {
	repo := ports.InfoRepositoryFunc(func(ctx context.Context) (domain.HeaderInfo, error) {
		return testutils.SampleHeader(), &domain.StaleError{Err: errors.New("network down")}
	})
	factory := presentation.NewFactory(statemachine.WithExecutor(statemachine.NewPool(4)))
	vm := presentation.NewViewModel(context.Background(), factory, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithTimeFormat("", time.UTC),
	)
	defer vm.Close()

	s, err := vm.AcceptAndWait(context.Background(), presentation.RefreshScreen{}, presentation.LoadingFinished)
	require.NoError(t, err)

	assert.False(t, s.IsLoading)
	assert.Equal(t, "network down", s.ErrorMessage)
	assert.Empty(t, s.Items)
	assert.Equal(t, "H", s.Header.Title, "cached header stays visible")
}

func TestViewModel_HideErrorMessage(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	vm := newViewModel(t, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithInitialState(presentation.UIState{
			Header:       presentation.HeaderUIModel{Title: "H"},
			Items:        []presentation.ItemUIModel{{Title: "a"}},
			ErrorMessage: "boom",
		}),
	)

	vm.AcceptIntent(presentation.HideErrorMessage{})

	testutils.WaitFor(t, func() bool { return !vm.State().HasError() })
	assert.Len(t, vm.State().Items, 1)
	assert.Equal(t, 0, repo.Calls())
}

func TestViewModel_AutoRefreshRunsOncePerEmptyHeader(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader()).Fail(errors.New("network down"))
	vm := newViewModel(t, repo)

	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && s.HasError()
	})

	// The header stays empty after the failure; no retry loop starts.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, repo.Calls())

	repo.Succeed(testutils.SampleHeader())
	vm.AcceptIntent(presentation.RefreshScreen{})

	testutils.WaitFor(t, func() bool { return vm.State().Header.Title == "H" })
	assert.Equal(t, 2, repo.Calls())
}

func TestViewModel_AutoRefreshOnStart(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	vm := newViewModel(t, repo)

	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && len(s.Items) == 2
	})
	assert.Equal(t, 1, repo.Calls())
}

func TestViewModel_DismissIsNotBlockedByRefresh(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	repo.Gate = make(chan struct{})

	vm := newViewModel(t, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithInitialState(presentation.UIState{ErrorMessage: "old"}),
	)

	vm.AcceptIntent(presentation.RefreshScreen{})
	testutils.WaitFor(t, func() bool { return vm.State().IsLoading })

	vm.AcceptIntent(presentation.HideErrorMessage{})
	testutils.WaitFor(t, func() bool { return !vm.State().HasError() })
	assert.True(t, vm.State().IsLoading, "refresh is still in flight")

	close(repo.Gate)
	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && s.Header.Title == "H"
	})
	assert.Empty(t, vm.State().ErrorMessage)
}

func TestViewModel_PanicBecomesErrorMessage(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader()).Panic("kaboom")
	vm := newViewModel(t, repo, presentation.WithAutoRefresh(false))

	vm.AcceptIntent(presentation.RefreshScreen{})

	testutils.WaitFor(t, func() bool { return vm.State().HasError() })
	s := vm.State()
	assert.Contains(t, s.ErrorMessage, "kaboom")
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Items)
}

func TestViewModel_LateSubscriberGetsCurrentState(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	vm := newViewModel(t, repo, presentation.WithAutoRefresh(false))

	vm.AcceptIntent(presentation.RefreshScreen{})
	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return !s.IsLoading && s.Header.Title == "H"
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case s := <-vm.Subscribe(ctx):
		assert.Equal(t, "H", s.Header.Title)
		assert.Len(t, s.Items, 2)
	case <-time.After(time.Second):
		t.Fatal("late subscriber received nothing")
	}
}

func TestViewModel_ConcurrentIntents(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	factory := presentation.NewFactory(statemachine.WithExecutor(statemachine.NewPool(4)))
	vm := presentation.NewViewModel(context.Background(), factory, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithTimeFormat("", time.UTC),
	)
	defer vm.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			vm.AcceptIntent(presentation.RefreshScreen{})
		}()
		go func() {
			defer wg.Done()
			vm.AcceptIntent(presentation.HideErrorMessage{})
		}()
	}
	wg.Wait()

	testutils.WaitFor(t, func() bool {
		s := vm.State()
		return repo.Calls() == 10 && !s.IsLoading && len(s.Items) == 2
	})
	assert.Empty(t, vm.State().ErrorMessage)
}

func TestViewModel_CloseStopsUpdates(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	repo.Gate = make(chan struct{})
	vm := presentation.NewViewModel(context.Background(), presentation.NewFactory(), repo,
		presentation.WithAutoRefresh(false))

	vm.AcceptIntent(presentation.RefreshScreen{})
	testutils.WaitFor(t, func() bool { return vm.State().IsLoading })

	vm.Close()
	<-vm.Done()
	close(repo.Gate)

	time.Sleep(20 * time.Millisecond)
	s := vm.State()
	assert.True(t, s.IsLoading, "no partial state is applied after close")
	assert.Empty(t, s.ErrorMessage)
}

func TestViewModel_AcceptAndWait(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	vm := newViewModel(t, repo, presentation.WithAutoRefresh(false))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := vm.AcceptAndWait(ctx, presentation.RefreshScreen{}, presentation.LoadingFinished)
	require.NoError(t, err)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "H", s.Header.Title)
	assert.Len(t, s.Items, 2)
}

func TestViewModel_AcceptAndWaitTimeout(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	repo.Gate = make(chan struct{})
	defer close(repo.Gate)
	vm := newViewModel(t, repo, presentation.WithAutoRefresh(false))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	s, err := vm.AcceptAndWait(ctx, presentation.RefreshScreen{}, presentation.LoadingFinished)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, s.IsLoading)
}
