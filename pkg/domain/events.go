package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventVisitStart    EventType = "visit_start"
	EventVisitFinish   EventType = "visit_finish"
	EventRouteDecision EventType = "route_decision"
	EventProposal      EventType = "proposal"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// VisitEvent describes a visit entering or leaving the started state.
type VisitEvent struct {
	EventBase
	Stack    StackKind     `json:"stack"`
	VisitID  string        `json:"visit_id"`
	Location string        `json:"location"`
	Action   VisitAction   `json:"action"`
	ColdBoot bool          `json:"cold_boot"`
	State    VisitState    `json:"state"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// RouteEvent represents a router decision for a location.
type RouteEvent struct {
	EventBase
	Location string `json:"location"`
	Handler  string `json:"handler,omitempty"`
	Decision string `json:"decision"`
}

// ProposalEvent represents a proposal handed to the hierarchy controller.
type ProposalEvent struct {
	EventBase
	Location     string       `json:"location"`
	Context      Context      `json:"context"`
	Presentation Presentation `json:"presentation"`
	Accepted     bool         `json:"accepted"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnVisitStart    func(context.Context, *VisitEvent)
	OnVisitFinish   func(context.Context, *VisitEvent)
	OnRouteDecision func(context.Context, *RouteEvent)
	OnProposal      func(context.Context, *ProposalEvent)
}

// Merge returns hooks that call h first, then other, for every callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnVisitStart:    chain(h.OnVisitStart, other.OnVisitStart),
		OnVisitFinish:   chain(h.OnVisitFinish, other.OnVisitFinish),
		OnRouteDecision: chain(h.OnRouteDecision, other.OnRouteDecision),
		OnProposal:      chain(h.OnProposal, other.OnProposal),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
