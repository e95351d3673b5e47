// Package metrics exposes state machine activity as Prometheus collectors.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/infoboard/pkg/statemachine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "infoboard"

// Collectors groups the machine metrics.
type Collectors struct {
	registry *prometheus.Registry

	Intents  *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Partials *prometheus.CounterVec
	States   prometheus.Counter
	Watchers prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		Intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Intents accepted by the state machine.",
		}, []string{"machine", "intent"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_failures_total",
			Help:      "Intent pipelines routed to the error transform.",
		}, []string{"machine", "intent"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intent_duration_seconds",
			Help:      "Duration of intent pipelines.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"machine", "intent"}),
		Partials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_states_total",
			Help:      "Partial states applied by the reducer.",
		}, []string{"machine", "partial"}),
		States: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_published_total",
			Help:      "States published to observers.",
		}),
		Watchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observers",
			Help:      "Observers registered at the last publication.",
		}),
	}

	c.registry.MustRegister(
		c.Intents, c.Failures, c.Duration, c.Partials, c.States, c.Watchers,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Hooks records machine events into the collectors.
func (c *Collectors) Hooks() statemachine.Hooks {
	return statemachine.Hooks{
		OnIntent: func(_ context.Context, e *statemachine.IntentEvent) {
			c.Intents.WithLabelValues(e.Machine, statemachine.NameOf(e.Intent)).Inc()
		},
		OnFailure: func(_ context.Context, e *statemachine.IntentEvent) {
			c.Failures.WithLabelValues(e.Machine, statemachine.NameOf(e.Intent)).Inc()
		},
		OnPipelineDone: func(_ context.Context, e *statemachine.IntentEvent) {
			c.Duration.WithLabelValues(e.Machine, statemachine.NameOf(e.Intent)).Observe(e.Duration.Seconds())
		},
		OnPartial: func(_ context.Context, e *statemachine.PartialEvent) {
			c.Partials.WithLabelValues(e.Machine, statemachine.NameOf(e.Partial)).Inc()
		},
		OnState: func(_ context.Context, e *statemachine.StateEvent) {
			c.States.Inc()
			c.Watchers.Set(float64(e.Observers))
		},
	}
}
