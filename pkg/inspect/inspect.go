// Package inspect explains how a navigator would treat a location without running one.
// The CLI, the HTTP API and the MCP server all answer from it.
package inspect

import (
	"context"
	"net/url"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// Report is the resolved view of one location.
type Report struct {
	URL        string            `json:"url"`
	Properties domain.Properties `json:"properties"`

	Context                    domain.Context                 `json:"context"`
	Presentation               domain.Presentation            `json:"presentation"`
	ModalStyle                 domain.ModalStyle              `json:"modal_style"`
	QueryStringPresentation    domain.QueryStringPresentation `json:"query_string_presentation"`
	ViewController             string                         `json:"view_controller"`
	PullToRefreshEnabled       bool                           `json:"pull_to_refresh_enabled"`
	ModalDismissGestureEnabled bool                           `json:"modal_dismiss_gesture_enabled"`
	Animated                   bool                           `json:"animated"`
	HistoricalLocation         bool                           `json:"historical_location"`

	// Set by Decide only.
	Decision routing.Decision `json:"decision,omitempty"`
	Handler  string           `json:"handler,omitempty"`
}

// Inspector resolves reports against one path configuration and router.
type Inspector struct {
	app    domain.Configuration
	config *pathconfig.Configuration
	router *routing.Router
	hooks  domain.LifecycleHooks
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLifecycleHooks reports every Decide through hooks.OnRouteDecision.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Inspector) {
		i.hooks = hooks
	}
}

// New creates an inspector. A nil router means the default router with no external openers,
// so deciding never hands a location to anything.
func New(app domain.Configuration, config *pathconfig.Configuration, router *routing.Router, opts ...Option) *Inspector {
	if router == nil {
		router = routing.DefaultRouter(nil, nil)
	}
	i := &Inspector{app: app, config: config, router: router}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Inspector) App() domain.Configuration                { return i.app }
func (i *Inspector) Configuration() *pathconfig.Configuration { return i.config }

// Properties resolves the property bag and derived navigation attributes for u.
func (i *Inspector) Properties(u *url.URL) Report {
	p := domain.NewVisitProposal(u, domain.DefaultVisitOptions(), i.config.PropertiesForURL(u), nil)
	return Report{
		URL:                        u.String(),
		Properties:                 p.Properties(),
		Context:                    p.Context(),
		Presentation:               p.Presentation(),
		ModalStyle:                 p.ModalStyle(),
		QueryStringPresentation:    p.QueryStringPresentation(),
		ViewController:             p.ViewController(),
		PullToRefreshEnabled:       p.PullToRefreshEnabled(),
		ModalDismissGestureEnabled: p.ModalDismissGestureEnabled(),
		Animated:                   p.Animated(),
		HistoricalLocation:         p.IsHistoricalLocation(),
	}
}

// Decide is Properties plus the router decision for u.
func (i *Inspector) Decide(ctx context.Context, u *url.URL) Report {
	r := i.Properties(u)
	r.Decision, r.Handler = i.router.Resolve(ctx, u, i.app, nopNavigator{})
	if i.hooks.OnRouteDecision != nil {
		i.hooks.OnRouteDecision(ctx, &domain.RouteEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRouteDecision},
			Location:  r.URL,
			Handler:   r.Handler,
			Decision:  string(r.Decision),
		})
	}
	return r
}

// nopNavigator keeps handlers from driving anything while a decision is only explained.
type nopNavigator struct{}

func (nopNavigator) Route(context.Context, *url.URL) {}
func (nopNavigator) Reload(context.Context)          {}
