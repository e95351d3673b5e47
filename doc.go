/*
Package infoboard is a reactive header and item board built on a generic,
unidirectional state container.

Frontends send intents (refresh the screen, hide the error message) to a view model.
Intents are transformed concurrently into partial states, which a single run loop
folds through a pure reducer into the next immutable UIState. Every published
state is delivered, in order, to the terminal screen, the HTTP/SSE API and the MCP
server.

# Layout

  - pkg/statemachine: the generic Machine, Factory and Executor.
  - pkg/domain, pkg/ports: domain types and the repository and cache ports.
  - internal/data: the upstream HTTP client, DTO mappers and repositories.
  - internal/presentation: UIState, intents, partial states and the ViewModel.
  - internal/adapters: memory and redis caches, HTTP and MCP frontends.
  - cmd/infoboard: the command line.

# Usage

	factory := statemachine.NewFactory[State, Partial, Intent]()
	m := factory.Create(ctx, State{}, intentTransform, errorTransform, reduce)
	defer m.Close()

	stop := m.Observe(func(s State) { render(s) })
	defer stop()

	m.AcceptIntent(Refresh{})
*/
package infoboard
