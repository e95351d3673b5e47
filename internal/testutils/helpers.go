package testutils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/stretchr/testify/require"
)

// StubRepository is a controllable ports.InfoRepository.
// When Gate is set, every call waits for it to close (or for ctx to end).
type StubRepository struct {
	mu    sync.Mutex
	info  domain.HeaderInfo
	err   error
	panic any

	Gate  chan struct{}
	calls atomic.Int32
}

// NewStubRepository returns a stub answering with info.
func NewStubRepository(info domain.HeaderInfo) *StubRepository {
	return &StubRepository{info: info}
}

// Fail makes subsequent calls return err.
func (s *StubRepository) Fail(err error) *StubRepository {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Panic makes subsequent calls panic with v.
func (s *StubRepository) Panic(v any) *StubRepository {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panic = v
	return s
}

// Succeed makes subsequent calls return info.
func (s *StubRepository) Succeed(info domain.HeaderInfo) *StubRepository {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info, s.err, s.panic = info, nil, nil
	return s
}

// Calls returns how many fetches were made.
func (s *StubRepository) Calls() int {
	return int(s.calls.Load())
}

// GetHeaderInfo implements ports.InfoRepository.
func (s *StubRepository) GetHeaderInfo(ctx context.Context) (domain.HeaderInfo, error) {
	s.calls.Add(1)

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return domain.HeaderInfo{}, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panic != nil {
		panic(s.panic)
	}
	return s.info, s.err
}

// SampleHeader returns a header with items "a" and "b".
func SampleHeader() domain.HeaderInfo {
	return domain.HeaderInfo{
		Title:            "H",
		Description:      "Header description",
		TimestampSeconds: 1700000000,
		Items: []domain.ItemInfo{
			{Title: "a", Description: "first", TimestampSeconds: 1700000060},
			{Title: "b", Description: "second", TimestampSeconds: 1700000120},
		},
	}
}

// WaitFor polls cond until it holds or fails the test after timeout.
func WaitFor(t *testing.T, cond func() bool, msgAndArgs ...any) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msgAndArgs...)
}
