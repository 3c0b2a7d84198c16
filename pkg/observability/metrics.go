package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the engine and its stores.
type Metrics struct {
	searches      *prometheus.CounterVec
	expansions    *prometheus.CounterVec
	outcomes      *prometheus.CounterVec
	explored      *prometheus.HistogramVec
	pathLength    *prometheus.HistogramVec
	storeDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg.
// A nil reg uses a fresh registry, which keeps tests independent.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "labyrinth_searches_total",
			Help: "Searches started, by strategy",
		}, []string{"strategy"}),
		expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "labyrinth_nodes_expanded_total",
			Help: "Nodes expanded, by strategy",
		}, []string{"strategy"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "labyrinth_search_outcomes_total",
			Help: "Finished searches, by strategy and outcome (solved or exhausted)",
		}, []string{"strategy", "outcome"}),
		explored: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labyrinth_states_explored",
			Help:    "States explored per finished search",
			Buckets: prometheus.ExponentialBuckets(4, 2, 12),
		}, []string{"strategy"}),
		pathLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labyrinth_solution_length",
			Help:    "Moves in the solutions found",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}, []string{"strategy"}),
		storeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labyrinth_session_store_duration_seconds",
			Help:    "Duration of session store operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "result"}),
		gatherer: reg,
	}
}

// Hooks returns lifecycle hooks that feed the search collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(_ context.Context, e *domain.SearchEvent) {
			m.searches.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnNodeExpand: func(_ context.Context, e *domain.ExpandEvent) {
			m.expansions.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnSolved: func(_ context.Context, e *domain.SearchEvent) {
			strategy := string(e.Strategy)
			m.outcomes.WithLabelValues(strategy, "solved").Inc()
			m.explored.WithLabelValues(strategy).Observe(float64(e.NumExplored))
			m.pathLength.WithLabelValues(strategy).Observe(float64(e.PathLength))
		},
		OnExhausted: func(_ context.Context, e *domain.SearchEvent) {
			strategy := string(e.Strategy)
			m.outcomes.WithLabelValues(strategy, "exhausted").Inc()
			m.explored.WithLabelValues(strategy).Observe(float64(e.NumExplored))
		},
	}
}

// ObserveStore records the duration of one session store operation.
func (m *Metrics) ObserveStore(op string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeDuration.WithLabelValues(op, result).Observe(d.Seconds())
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
