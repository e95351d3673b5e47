/*
Package statemachine implements a generic reactive state container.

A Machine turns a stream of intents into a race-free stream of states. Each accepted
intent runs through an IntentTransform on a worker, which emits partial states. Every
partial state from every running pipeline is sent to a single run loop that folds it
into the current state with a Reducer, one at a time, and publishes the result.

# Concepts

  - Intent: a requested action. Consumed once by its pipeline.
  - PartialState: an atomic state delta. Consumed once by the Reducer.
  - State: the immutable snapshot observers read.
  - Reducer: pure fold (State, PartialState) -> State.
  - IntentTransform: Intent -> sequence of PartialState, possibly asynchronous, possibly failing.
  - ErrorTransform: error -> sequence of PartialState, used when a pipeline fails.

# Usage

	factory := statemachine.NewFactory[State, Partial, Intent](
		statemachine.WithExecutor(statemachine.NewPool(4)),
		statemachine.WithLogger(logger),
	)

	machine := factory.Create(ctx, State{}, intentTransform, errorTransform, reduce)
	defer machine.Close()

	updates := machine.Subscribe(ctx)
	machine.AcceptIntent(Refresh{})

	for state := range updates {
		render(state)
	}

# Concurrency

Intents are not serialized: a new intent may start while an earlier pipeline is still
waiting on I/O. The Reducer is the single serialization point. Partial states from the
same pipeline are applied in emission order; partial states from different pipelines
interleave in arrival order.

The owning context passed to Factory.Create bounds the machine's lifetime. When it ends,
in-flight pipelines are cancelled and no further partial states are applied.
*/
package statemachine
