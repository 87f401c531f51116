package wayfinder

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/navigation"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/registry"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/aretw0/wayfinder/pkg/session"
)

// Navigator is the high-level entry point of the library.
// It owns a main and a modal session, routes locations through the router and
// the delegate, and places the resulting screens on the navigation hierarchy.
//
// A Navigator is driven from a single goroutine.
type Navigator struct {
	config domain.Configuration

	delegate       Delegate
	router         *routing.Router
	policy         *routing.PolicyManager
	pathConfig     *pathconfig.Configuration
	surfaceFactory ports.SurfaceFactory
	presenter      ports.Presenter
	registry       *registry.Registry
	resolver       session.RedirectResolver
	opener         ports.ExternalOpener
	hooks          domain.LifecycleHooks
	logger         *slog.Logger

	hierarchy    *navigation.Controller
	session      *session.Session
	modalSession *session.Session

	background                   bool
	backgroundTerminatedSessions []*session.Session
}

// Option defines a functional option for configuring the Navigator.
type Option func(*Navigator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithDelegate sets the host delegate. Defaults to DefaultDelegate.
func WithDelegate(delegate Delegate) Option {
	return func(n *Navigator) {
		n.delegate = delegate
	}
}

// WithRouter replaces the default route decision chain.
func WithRouter(router *routing.Router) Option {
	return func(n *Navigator) {
		n.router = router
	}
}

// WithPolicyManager replaces the default content surface policy chain.
func WithPolicyManager(policy *routing.PolicyManager) Option {
	return func(n *Navigator) {
		n.policy = policy
	}
}

// WithPathConfiguration sets the rules that give locations their properties.
func WithPathConfiguration(cfg *pathconfig.Configuration) Option {
	return func(n *Navigator) {
		n.pathConfig = cfg
	}
}

// WithSurfaceFactory sets how content surfaces are created. It is required.
func WithSurfaceFactory(factory ports.SurfaceFactory) Option {
	return func(n *Navigator) {
		n.surfaceFactory = factory
	}
}

// WithPresenter notifies the host of modal presentation and alerts.
func WithPresenter(presenter ports.Presenter) Option {
	return func(n *Navigator) {
		n.presenter = presenter
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithRegistry sets the screen factories used for accepted proposals.
func WithRegistry(reg *registry.Registry) Option {
	return func(n *Navigator) {
		n.registry = reg
	}
}

// WithRedirectResolver replaces the probe sessions use for visits that fail without a status.
func WithRedirectResolver(resolver session.RedirectResolver) Option {
	return func(n *Navigator) {
		n.resolver = resolver
	}
}

// WithExternalOpener receives locations the default router keeps out of the app.
// It has no effect together with WithRouter.
func WithExternalOpener(opener ports.ExternalOpener) Option {
	return func(n *Navigator) {
		n.opener = opener
	}
}

// New initializes a Navigator for cfg.
func New(cfg domain.Configuration, opts ...Option) (*Navigator, error) {
	n := &Navigator{config: cfg}
	for _, opt := range opts {
		opt(n)
	}

	if cfg.StartLocation == nil {
		return nil, fmt.Errorf("start location: %w", domain.ErrMissingURL)
	}
	if n.surfaceFactory == nil {
		return nil, domain.ErrMissingSurfaceFactory
	}

	if n.logger == nil {
		n.logger = logging.NewNop()
	}
	if cfg.Name != "" {
		n.logger = n.logger.With("navigator", cfg.Name)
	}
	if n.delegate == nil {
		n.delegate = DefaultDelegate{}
	}
	if n.router == nil {
		n.router = routing.DefaultRouter(n.opener, n.opener, routing.WithLogger(n.logger))
	}
	if n.policy == nil {
		n.policy = routing.DefaultPolicyManager(routing.WithLogger(n.logger))
	}
	if n.pathConfig == nil {
		n.pathConfig = pathconfig.New(pathconfig.WithLogger(n.logger))
	}
	if n.registry == nil {
		n.registry = registry.NewRegistry()
	}

	n.session = n.newSession(domain.StackMain)
	n.modalSession = n.newSession(domain.StackModal)

	hierarchyOpts := []navigation.Option{
		navigation.WithObserver(n.observe),
		navigation.WithLogger(n.logger),
	}
	if n.presenter != nil {
		hierarchyOpts = append(hierarchyOpts, navigation.WithPresenter(n.presenter))
	}
	n.hierarchy = navigation.NewController(n, hierarchyOpts...)

	return n, nil
}

func (n *Navigator) newSession(kind domain.StackKind) *session.Session {
	opts := []session.Option{
		session.WithKind(kind),
		session.WithDelegate(n),
		session.WithPathConfiguration(n.pathConfig),
		session.WithLogger(n.logger),
		session.WithLifecycleHooks(n.hooks),
	}
	if n.resolver != nil {
		opts = append(opts, session.WithRedirectResolver(n.resolver))
	}
	return session.New(n.surfaceFactory(), opts...)
}

// Configuration returns the configuration the navigator was built with.
func (n *Navigator) Configuration() domain.Configuration { return n.config }

func (n *Navigator) Session() *session.Session                    { return n.session }
func (n *Navigator) ModalSession() *session.Session               { return n.modalSession }
func (n *Navigator) Hierarchy() *navigation.Controller            { return n.hierarchy }
func (n *Navigator) PathConfiguration() *pathconfig.Configuration { return n.pathConfig }

// SessionFor returns the session serving the stack of the given kind.
func (n *Navigator) SessionFor(kind domain.StackKind) *session.Session {
	if kind == domain.StackModal {
		return n.modalSession
	}
	return n.session
}

// ActiveSession returns the session serving the frontmost stack.
func (n *Navigator) ActiveSession() *session.Session {
	return n.SessionFor(n.hierarchy.ActiveStack())
}

// ActiveLocation is the location of the frontmost screen.
func (n *Navigator) ActiveLocation() (*url.URL, error) {
	top := n.hierarchy.Stack(n.hierarchy.ActiveStack()).Top()
	if top == nil {
		return nil, domain.ErrNotStarted
	}
	if visitable, ok := top.(ports.Visitable); ok {
		return visitable.VisitableURL(), nil
	}
	return nil, domain.ErrMissingURL
}

// Start routes to the configured start location.
func (n *Navigator) Start(ctx context.Context) error {
	if !n.hierarchy.Main().IsEmpty() || !n.hierarchy.Modal().IsEmpty() {
		n.logger.Warn("start ignored, screens already on the stack")
		return domain.ErrAlreadyStarted
	}
	n.Route(ctx, n.config.StartLocation)
	return nil
}

// Route routes u as an advance visit.
func (n *Navigator) Route(ctx context.Context, u *url.URL) {
	n.RouteWithOptions(ctx, u, domain.DefaultVisitOptions(), nil)
}

// RouteWithOptions builds a proposal for u from the path configuration and routes it.
// Parameters are handed through to the delegate untouched.
func (n *Navigator) RouteWithOptions(ctx context.Context, u *url.URL, options domain.VisitOptions, parameters map[string]any) {
	if u == nil {
		n.logger.Warn("route ignored", "err", domain.ErrMissingURL)
		return
	}
	properties := n.pathConfig.PropertiesForURL(u)
	n.RouteProposal(ctx, domain.NewVisitProposal(u, options, properties, parameters))
}

// RouteProposal asks the router and then the delegate about proposal, and hands
// the resulting screen to the hierarchy.
func (n *Navigator) RouteProposal(ctx context.Context, proposal domain.VisitProposal) {
	location := proposal.URL()
	decision, handler := n.router.Resolve(ctx, location, n.config, n)
	n.emitRouteDecision(ctx, location, handler, decision)
	if decision == routing.DecisionCancel {
		return
	}

	screen := n.screenFor(ctx, proposal)
	n.emitProposal(ctx, proposal, screen != nil)
	if screen == nil {
		return
	}
	n.hierarchy.Route(ctx, screen, proposal)
}

func (n *Navigator) screenFor(ctx context.Context, proposal domain.VisitProposal) ports.Screen {
	result := n.delegate.Handle(ctx, proposal)
	switch result.Decision {
	case ProposalAccept:
		screen, err := n.registry.Build(ctx, proposal)
		if err != nil {
			n.logger.Warn("proposal dropped", "location", proposal.URL().String(), "err", err)
			return nil
		}
		return screen
	case ProposalAcceptCustom:
		return result.Screen
	default:
		n.logger.Debug("proposal rejected", "location", proposal.URL().String())
		return nil
	}
}

// Pop removes the frontmost screen, dismissing a modal that holds only one.
func (n *Navigator) Pop(ctx context.Context, animated bool) {
	n.hierarchy.Pop(ctx, animated)
}

// ClearAll dismisses the modal and pops the main stack to its root.
func (n *Navigator) ClearAll(ctx context.Context, animated bool) {
	n.hierarchy.ClearAll(ctx, animated)
}

// Reload reloads both sessions.
func (n *Navigator) Reload(ctx context.Context) {
	n.session.Reload(ctx)
	n.modalSession.Reload(ctx)
}

// PresentDialog presents a page dialog over the frontmost stack.
func (n *Navigator) PresentDialog(_ context.Context, dialog domain.Dialog) *registry.AlertScreen {
	alert := registry.NewAlertScreen(dialog)
	n.hierarchy.PresentAlert(alert, true)
	return alert
}

// VisitableDidRequestReload reloads the session showing visitable.
func (n *Navigator) VisitableDidRequestReload(ctx context.Context, visitable ports.Visitable) {
	if s := n.sessionShowing(visitable); s != nil {
		s.ScreenDidRequestReload(ctx, visitable)
	}
}

// VisitableDidRequestRefresh handles a pull to refresh on visitable.
func (n *Navigator) VisitableDidRequestRefresh(ctx context.Context, visitable ports.Visitable) {
	if s := n.sessionShowing(visitable); s != nil {
		s.ScreenDidRequestRefresh(ctx, visitable)
	}
}

func (n *Navigator) sessionShowing(visitable ports.Visitable) *session.Session {
	for _, kind := range []domain.StackKind{domain.StackModal, domain.StackMain} {
		if n.hierarchy.Stack(kind).Contains(visitable) {
			return n.SessionFor(kind)
		}
	}
	return nil
}

// observe forwards appearance events of visitable screens to the session of their stack.
func (n *Navigator) observe(ctx context.Context, ev navigation.AppearanceEvent) {
	visitable, ok := ev.Screen.(ports.Visitable)
	if !ok {
		return
	}
	s := n.SessionFor(ev.Stack)
	switch ev.Phase {
	case navigation.PhaseWillAppear:
		s.ScreenWillAppear(ctx, visitable, ev.Reason)
	case navigation.PhaseDidAppear:
		s.ScreenDidAppear(ctx, visitable, ev.Reason)
	case navigation.PhaseWillDisappear:
		s.ScreenWillDisappear(ctx, visitable, ev.Reason)
	case navigation.PhaseDidDisappear:
		s.ScreenDidDisappear(ctx, visitable, ev.Reason)
	}
}

func (n *Navigator) emitRouteDecision(ctx context.Context, location *url.URL, handler string, decision routing.Decision) {
	if n.hooks.OnRouteDecision == nil {
		return
	}
	n.hooks.OnRouteDecision(ctx, &domain.RouteEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRouteDecision},
		Location:  location.String(),
		Handler:   handler,
		Decision:  string(decision),
	})
}

func (n *Navigator) emitProposal(ctx context.Context, proposal domain.VisitProposal, accepted bool) {
	if n.hooks.OnProposal == nil {
		return
	}
	n.hooks.OnProposal(ctx, &domain.ProposalEvent{
		EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventProposal},
		Location:     proposal.URL().String(),
		Context:      proposal.Context(),
		Presentation: proposal.Presentation(),
		Accepted:     accepted,
	})
}
