package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/internal/testutils"
	"github.com/aretw0/infoboard/pkg/statemachine"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, repo *testutils.StubRepository, initial presentation.UIState) (*Server, *presentation.ViewModel) {
	t.Helper()
	factory := presentation.NewFactory(statemachine.WithExecutor(statemachine.NewPool(4)))
	vm := presentation.NewViewModel(context.Background(), factory, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithInitialState(initial),
		presentation.WithTimeFormat("", time.UTC),
	)
	t.Cleanup(vm.Close)
	return NewServer(vm, "test", WithWaitTimeout(2*time.Second)), vm
}

func TestGetState(t *testing.T) {
	s, _ := newTestServer(t, testutils.NewStubRepository(testutils.SampleHeader()),
		presentation.UIState{Header: presentation.HeaderUIModel{Title: "Existing"}})

	st, err := s.handleGetState(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Existing", st.Header.Title)
}

func TestRefreshWaitsForResult(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	s, _ := newTestServer(t, repo, presentation.UIState{})

	st, err := s.handleRefresh(context.Background(), mcp.CallToolRequest{}, RefreshArgs{})
	require.NoError(t, err)

	assert.False(t, st.IsLoading)
	assert.Equal(t, "H", st.Header.Title)
	assert.Len(t, st.Items, 2)
	assert.Equal(t, 1, repo.Calls())
}

func TestRefreshFailureIsReportedInState(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader()).Fail(errors.New("network down"))
	s, _ := newTestServer(t, repo, presentation.UIState{})

	st, err := s.handleRefresh(context.Background(), mcp.CallToolRequest{}, RefreshArgs{})
	require.NoError(t, err)
	assert.Equal(t, "network down", st.ErrorMessage)
	assert.Empty(t, st.Items)
}

func TestRefreshWithoutWaiting(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	repo.Gate = make(chan struct{})
	defer close(repo.Gate)
	s, vm := newTestServer(t, repo, presentation.UIState{})

	wait := false
	_, err := s.handleRefresh(context.Background(), mcp.CallToolRequest{}, RefreshArgs{Wait: &wait})
	require.NoError(t, err)

	testutils.WaitFor(t, func() bool { return vm.State().IsLoading })
}

func TestRefreshTimesOut(t *testing.T) {
	repo := testutils.NewStubRepository(testutils.SampleHeader())
	repo.Gate = make(chan struct{})
	defer close(repo.Gate)

	s, _ := newTestServer(t, repo, presentation.UIState{})
	s.waitTimeout = 50 * time.Millisecond

	st, err := s.handleRefresh(context.Background(), mcp.CallToolRequest{}, RefreshArgs{})
	assert.Error(t, err)
	assert.True(t, st.IsLoading)
}

func TestHideError(t *testing.T) {
	s, _ := newTestServer(t, testutils.NewStubRepository(testutils.SampleHeader()), presentation.UIState{
		Items:        []presentation.ItemUIModel{{Title: "a"}},
		ErrorMessage: "boom",
	})

	st, err := s.handleHideError(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Empty(t, st.ErrorMessage)
	assert.Len(t, st.Items, 1)
}
