package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/infoboard/internal/metrics"
	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/internal/testutils"
	"github.com/aretw0/infoboard/pkg/statemachine"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordViewModelActivity(t *testing.T) {
	m := metrics.New()
	repo := testutils.NewStubRepository(testutils.SampleHeader()).Fail(errors.New("network down"))

	factory := presentation.NewFactory(
		statemachine.WithName("main"),
		statemachine.WithHooks(m.Hooks()),
	)
	vm := presentation.NewViewModel(context.Background(), factory, repo,
		presentation.WithAutoRefresh(false),
		presentation.WithTimeFormat("", time.UTC),
	)
	defer vm.Close()

	vm.AcceptIntent(presentation.RefreshScreen{})
	testutils.WaitFor(t, func() bool {
		return testutil.ToFloat64(m.Partials.WithLabelValues("main", "hide_loading")) == 1
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("main", "refresh_screen")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Partials.WithLabelValues("main", "show_loading")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Partials.WithLabelValues("main", "update_error_message")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Failures.WithLabelValues("main", "refresh_screen")),
		"a repository failure is handled inside the pipeline")
	testutils.WaitFor(t, func() bool { return testutil.ToFloat64(m.States) == 3 })
}

func TestHooks_FailureAndDuration(t *testing.T) {
	m := metrics.New()
	hooks := m.Hooks()

	event := &statemachine.IntentEvent{
		EventBase: statemachine.EventBase{Machine: "main"},
		Intent:    presentation.RefreshScreen{},
		Duration:  250 * time.Millisecond,
		Err:       errors.New("x"),
	}
	hooks.OnFailure(context.Background(), event)
	hooks.OnPipelineDone(context.Background(), event)
	hooks.OnState(context.Background(), &statemachine.StateEvent{Observers: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("main", "refresh_screen")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Watchers))
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.States.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "infoboard_states_published_total 1")
}
