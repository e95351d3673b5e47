package statemachine

import (
	"context"
	"fmt"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIntentAccepted EventType = "intent_accepted"
	EventPartialApplied EventType = "partial_applied"
	EventStatePublished EventType = "state_published"
	EventPipelineFailed EventType = "pipeline_failed"
	EventPipelineDone   EventType = "pipeline_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// IntentEvent describes one intent pipeline.
type IntentEvent struct {
	EventBase
	PipelineID string        `json:"pipeline_id"`
	Intent     any           `json:"intent"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`
}

// PartialEvent is raised after the Reducer applied a partial state.
type PartialEvent struct {
	EventBase
	Partial any `json:"partial"`
}

// StateEvent is raised after a state was published to observers.
type StateEvent struct {
	EventBase
	State     any `json:"state"`
	Observers int `json:"observers"`
}

// Hooks defines callbacks for machine observability.
// Hooks run on the goroutine that raised the event and must not block.
type Hooks struct {
	OnIntent       func(context.Context, *IntentEvent)
	OnFailure      func(context.Context, *IntentEvent)
	OnPipelineDone func(context.Context, *IntentEvent)
	OnPartial      func(context.Context, *PartialEvent)
	OnState        func(context.Context, *StateEvent)
}

// Merge returns hooks calling h first, then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnIntent:       chain(h.OnIntent, other.OnIntent),
		OnFailure:      chain(h.OnFailure, other.OnFailure),
		OnPipelineDone: chain(h.OnPipelineDone, other.OnPipelineDone),
		OnPartial:      chain(h.OnPartial, other.OnPartial),
		OnState:        chain(h.OnState, other.OnState),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// Namer is implemented by intents and partial states that want a stable label
// in logs and metrics.
type Namer interface {
	Name() string
}

// NameOf returns v.Name() when available, otherwise its dynamic type.
func NameOf(v any) string {
	if n, ok := v.(Namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
