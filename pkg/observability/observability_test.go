package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnVisitStart(ctx, &domain.VisitEvent{Stack: domain.StackMain, ColdBoot: true})
	hooks.OnVisitFinish(ctx, &domain.VisitEvent{Stack: domain.StackMain, State: domain.VisitCompleted, Duration: 20 * time.Millisecond})
	hooks.OnRouteDecision(ctx, &domain.RouteEvent{Handler: "app-navigation", Decision: "navigate"})
	hooks.OnRouteDecision(ctx, &domain.RouteEvent{Decision: "cancel"})
	hooks.OnProposal(ctx, &domain.ProposalEvent{Context: domain.ContextModal, Presentation: domain.PresentationDefault, Accepted: true})

	body := scrape(t, m)
	assert.Contains(t, body, `wayfinder_visits_started_total{cold_boot="true",stack="main"} 1`)
	assert.Contains(t, body, `wayfinder_visits_finished_total{stack="main",state="completed"} 1`)
	assert.Contains(t, body, `wayfinder_visit_duration_seconds_count{stack="main",state="completed"} 1`)
	assert.Contains(t, body, `wayfinder_route_decisions_total{decision="navigate",handler="app-navigation"} 1`)
	assert.Contains(t, body, `wayfinder_route_decisions_total{decision="cancel",handler="none"} 1`)
	assert.Contains(t, body, `wayfinder_proposals_total{accepted="true",context="modal",presentation="default"} 1`)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	m.Hooks().OnVisitStart(context.Background(), &domain.VisitEvent{Stack: domain.StackModal})

	assert.Contains(t, scrape(t, m), `wayfinder_visits_started_total{cold_boot="false",stack="modal"} 1`)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LoggingHooks(logger)
	ctx := context.Background()

	hooks.OnVisitFinish(ctx, &domain.VisitEvent{Stack: domain.StackMain, State: domain.VisitFailed, Err: errors.New("boom")})
	hooks.OnRouteDecision(ctx, &domain.RouteEvent{Location: "https://example.com/", Decision: "navigate"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN msg=visit_finish")
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "msg=route_decision")
}

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
