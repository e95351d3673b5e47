package statemachine

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Executor runs intent pipelines. Go must not block the caller.
type Executor interface {
	Go(ctx context.Context, task func(ctx context.Context))
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, task func(ctx context.Context))

// Go calls f(ctx, task).
func (f ExecutorFunc) Go(ctx context.Context, task func(ctx context.Context)) {
	f(ctx, task)
}

// Unbounded starts one goroutine per task.
var Unbounded Executor = ExecutorFunc(func(ctx context.Context, task func(ctx context.Context)) {
	go task(ctx)
})

// Pool bounds the number of concurrently running tasks.
// Submitting never blocks: each task waits for a slot on its own goroutine and is
// skipped if its context ends first.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool running at most size tasks at once.
// A non-positive size defaults to GOMAXPROCS.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the maximum number of concurrent tasks.
func (p *Pool) Size() int {
	return p.size
}

// Go schedules task on the pool.
func (p *Pool) Go(ctx context.Context, task func(ctx context.Context)) {
	go func() {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)

		if ctx.Err() != nil {
			return
		}
		task(ctx)
	}()
}
