package routing

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Decision is the outcome of routing a location.
type Decision string

const (
	// DecisionNavigate permits in-app navigation.
	DecisionNavigate Decision = "navigate"
	// DecisionCancel prevents in-app navigation. Handlers use it after handing the URL elsewhere.
	DecisionCancel Decision = "cancel"
)

// Navigator is the subset of the navigator that decision handlers may drive.
type Navigator interface {
	Route(ctx context.Context, u *url.URL)
	Reload(ctx context.Context)
}

// RouteDecisionHandler decides what happens to a location it matches.
type RouteDecisionHandler interface {
	Name() string
	Matches(location *url.URL, cfg domain.Configuration) bool
	Handle(ctx context.Context, location *url.URL, cfg domain.Configuration, nav Navigator) Decision
}

// Option configures a Router or PolicyManager.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for match diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Router runs an ordered chain of handlers; the first match decides.
type Router struct {
	handlers []RouteDecisionHandler
	logger   *slog.Logger
}

// NewRouter creates a router over handlers, evaluated in order.
func NewRouter(handlers []RouteDecisionHandler, opts ...Option) *Router {
	o := buildOptions(opts)
	return &Router{handlers: handlers, logger: o.logger}
}

// DefaultRouter keeps same-host locations in the app, sends other web locations
// to browser and anything else to system.
func DefaultRouter(browser, system ports.ExternalOpener, opts ...Option) *Router {
	o := buildOptions(opts)
	return NewRouter([]RouteDecisionHandler{
		AppNavigationHandler{},
		BrowserHandler{Opener: browser, Logger: o.logger},
		SystemNavigationHandler{Opener: system, Logger: o.logger},
	}, opts...)
}

// Handlers returns the handler chain in evaluation order.
func (r *Router) Handlers() []RouteDecisionHandler {
	return r.handlers
}

// Decide returns the decision of the first matching handler, or cancel when none matches.
func (r *Router) Decide(ctx context.Context, location *url.URL, cfg domain.Configuration, nav Navigator) Decision {
	decision, _ := r.Resolve(ctx, location, cfg, nav)
	return decision
}

// Resolve is Decide that also reports the name of the handler that decided.
// The name is empty when no handler matched.
func (r *Router) Resolve(ctx context.Context, location *url.URL, cfg domain.Configuration, nav Navigator) (Decision, string) {
	for _, h := range r.handlers {
		if h.Matches(location, cfg) {
			r.logger.Debug("router handler matched", "handler", h.Name(), "location", location.String())
			return h.Handle(ctx, location, cfg, nav), h.Name()
		}
	}

	r.logger.Warn("no route handler for location", "location", location.String())
	return DecisionCancel, ""
}
