package statemachine

import "context"

// Emit delivers one partial state to the machine's run loop.
// It blocks the calling pipeline until the value is accepted and returns the
// machine's context error once the machine has stopped.
type Emit[P any] func(partial P) error

// Reducer folds a partial state into a state. It must be pure and total.
type Reducer[S, P any] func(state S, partial P) S

// IntentTransform produces the partial states for a single intent by calling emit
// zero or more times. A returned error (or a panic) is routed to the ErrorTransform.
type IntentTransform[I, P any] func(ctx context.Context, intent I, emit Emit[P]) error

// ErrorTransform converts a pipeline failure into partial states.
// It must not fail; a panic here is treated as a programming error.
type ErrorTransform[P any] func(ctx context.Context, err error, emit Emit[P])
