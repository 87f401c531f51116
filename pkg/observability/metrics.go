package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wayfinder"

// Metrics holds the collectors fed by navigator lifecycle hooks.
type Metrics struct {
	gatherer prometheus.Gatherer

	VisitsStarted  *prometheus.CounterVec
	VisitsFinished *prometheus.CounterVec
	VisitDuration  *prometheus.HistogramVec
	RouteDecisions *prometheus.CounterVec
	Proposals      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		VisitsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "visits_started_total",
				Help:      "Total number of visits started",
			},
			[]string{"stack", "cold_boot"},
		),
		VisitsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "visits_finished_total",
				Help:      "Total number of visits that reached a terminal state",
			},
			[]string{"stack", "state"},
		),
		VisitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "visit_duration_seconds",
				Help:      "Time from visit start to its terminal state",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stack", "state"},
		),
		RouteDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "route_decisions_total",
				Help:      "Total number of router decisions",
			},
			[]string{"handler", "decision"},
		),
		Proposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proposals_total",
				Help:      "Total number of proposals handed to the delegate",
			},
			[]string{"context", "presentation", "accepted"},
		),
	}
	reg.MustRegister(m.VisitsStarted, m.VisitsFinished, m.VisitDuration, m.RouteDecisions, m.Proposals)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVisitStart: func(_ context.Context, e *domain.VisitEvent) {
			m.VisitsStarted.WithLabelValues(string(e.Stack), strconv.FormatBool(e.ColdBoot)).Inc()
		},
		OnVisitFinish: func(_ context.Context, e *domain.VisitEvent) {
			m.VisitsFinished.WithLabelValues(string(e.Stack), string(e.State)).Inc()
			m.VisitDuration.WithLabelValues(string(e.Stack), string(e.State)).Observe(e.Duration.Seconds())
		},
		OnRouteDecision: func(_ context.Context, e *domain.RouteEvent) {
			handler := e.Handler
			if handler == "" {
				handler = "none"
			}
			m.RouteDecisions.WithLabelValues(handler, e.Decision).Inc()
		},
		OnProposal: func(_ context.Context, e *domain.ProposalEvent) {
			m.Proposals.WithLabelValues(string(e.Context), string(e.Presentation), strconv.FormatBool(e.Accepted)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
