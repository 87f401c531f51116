package session

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/bridge"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/redirect"
)

// RedirectResolver probes a location that failed without an HTTP status.
type RedirectResolver interface {
	Resolve(ctx context.Context, location *url.URL) (redirect.Result, error)
}

// Session manages visits on one content surface.
type Session struct {
	kind       domain.StackKind
	surface    ports.ContentSurface
	bridge     *bridge.Bridge
	delegate   Delegate
	pathConfig *pathconfig.Configuration
	resolver   RedirectResolver
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	initialized         bool
	refreshing          bool
	showingStaleContent bool
	snapshotCacheStale  bool

	currentVisit  *Visit
	topmostVisit  *Visit
	previousVisit *Visit

	activated      ports.Visitable
	restorationIDs map[ports.Visitable]string
}

// Option configures a Session.
type Option func(*Session)

// WithKind tags the session with the stack it serves. Defaults to the main stack.
func WithKind(kind domain.StackKind) Option {
	return func(s *Session) {
		s.kind = kind
	}
}

func WithDelegate(delegate Delegate) Option {
	return func(s *Session) {
		s.delegate = delegate
	}
}

// WithPathConfiguration sets the rules used to build proposals from the page.
func WithPathConfiguration(cfg *pathconfig.Configuration) Option {
	return func(s *Session) {
		s.pathConfig = cfg
	}
}

// WithRedirectResolver replaces the probe used for visits that fail without a status.
func WithRedirectResolver(resolver RedirectResolver) Option {
	return func(s *Session) {
		s.resolver = resolver
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers callbacks for visit start and finish.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// New creates a session over surface.
func New(surface ports.ContentSurface, opts ...Option) *Session {
	s := &Session{
		kind:           domain.StackMain,
		surface:        surface,
		bridge:         bridge.New(surface),
		delegate:       NopDelegate{},
		logger:         logging.NewNop(),
		restorationIDs: make(map[ports.Visitable]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = redirect.New()
	}
	return s
}

func (s *Session) Kind() domain.StackKind        { return s.kind }
func (s *Session) Surface() ports.ContentSurface { return s.surface }
func (s *Session) Initialized() bool             { return s.initialized }
func (s *Session) CurrentVisit() *Visit          { return s.currentVisit }

// TopmostVisitable is the visitable that most recently completed navigation.
func (s *Session) TopmostVisitable() ports.Visitable {
	if s.topmostVisit == nil {
		return nil
	}
	return s.topmostVisit.visitable
}

// ActiveVisitable is the visitable currently holding the surface.
func (s *Session) ActiveVisitable() ports.Visitable {
	return s.activated
}

// VisitAction visits visitable with the given action and no response.
func (s *Session) VisitAction(ctx context.Context, visitable ports.Visitable, action domain.VisitAction) error {
	return s.Visit(ctx, visitable, domain.VisitOptions{Action: action})
}

// Visit cancels the current visit, if any, and starts a new one for visitable.
// Before the page has initialized its navigation script the visit is a cold boot.
func (s *Session) Visit(ctx context.Context, visitable ports.Visitable, options domain.VisitOptions) error {
	return s.visit(ctx, visitable, options, false)
}

func (s *Session) visit(ctx context.Context, visitable ports.Visitable, options domain.VisitOptions, reload bool) error {
	if visitable == nil || visitable.VisitableURL() == nil {
		return domain.ErrMissingURL
	}
	if reload {
		s.initialized = false
	}

	var v *Visit
	if s.initialized {
		v = newScriptVisit(s, visitable, options, s.restorationIDs[visitable])
	} else {
		v = newColdBootVisit(s, visitable, options)
	}
	if s.currentVisit != nil {
		s.currentVisit.cancel(ctx)
	}
	s.currentVisit = v

	s.logger.Debug("visit", "stack", s.kind, "location", v.location.String(), "action", v.options.Action, "cold_boot", v.ColdBoot(), "reload", reload)
	v.start(ctx)
	return nil
}

// Reload cold boots the topmost visitable again.
func (s *Session) Reload(ctx context.Context) {
	visitable := s.TopmostVisitable()
	if visitable == nil {
		return
	}
	if err := s.visit(ctx, visitable, domain.DefaultVisitOptions(), true); err != nil {
		s.logger.Warn("reload failed", "stack", s.kind, "err", err)
		return
	}
	s.topmostVisit = s.currentVisit
}

// ClearSnapshotCache drops the page's cached snapshots.
func (s *Session) ClearSnapshotCache(ctx context.Context) {
	if err := s.bridge.ClearSnapshotCache(ctx); err != nil {
		s.logger.Debug("snapshot cache not cleared", "stack", s.kind, "err", err)
	}
}

// MarkSnapshotCacheAsStale clears the snapshot cache the next time a visitable appears.
func (s *Session) MarkSnapshotCacheAsStale() {
	s.snapshotCacheStale = true
}

// MarkContentAsStale reloads the session the next time a visitable appears.
func (s *Session) MarkContentAsStale() {
	s.showingStaleContent = true
}

func (s *Session) completeNavigationForCurrentVisit() {
	if s.currentVisit == nil {
		return
	}
	s.topmostVisit = s.currentVisit
}

// Surface activation

func (s *Session) activateVisitable(visitable ports.Visitable) {
	if s.activated == visitable {
		return
	}
	s.deactivateActivatedVisitable()
	visitable.ActivateSurface(s.surface)
	s.activated = visitable
}

func (s *Session) deactivateActivatedVisitable() {
	if s.activated == nil {
		return
	}
	s.deactivateVisitable(s.activated, true)
}

func (s *Session) deactivateVisitable(visitable ports.Visitable, showScreenshot bool) {
	if s.activated != visitable {
		return
	}
	if showScreenshot {
		visitable.UpdateScreenshot()
		visitable.ShowScreenshot()
	}
	visitable.DeactivateSurface()
	s.activated = nil
}

// Visit callbacks

func (s *Session) visitWillStart(v *Visit) {
	if v.isPageRefresh {
		return
	}
	v.visitable.ShowScreenshot()
	s.activateVisitable(v.visitable)
}

func (s *Session) visitDidStart(v *Visit) {
	if v.hasCachedSnapshot || v.isPageRefresh {
		return
	}
	v.visitable.ShowActivityIndicator()
}

func (s *Session) visitWillLoadResponse(v *Visit) {
	v.visitable.UpdateScreenshot()
	v.visitable.ShowScreenshot()
}

func (s *Session) visitDidRender(v *Visit) {
	v.visitable.HideScreenshot()
	v.visitable.HideActivityIndicator()
	v.visitable.DidRender()
}

func (s *Session) visitDidInitializeSurface(ctx context.Context) {
	s.initialized = true
	s.delegate.SessionDidLoadSurface(ctx, s)
}

func (s *Session) visitDidComplete(v *Visit) {
	if v.restorationID == "" {
		return
	}
	s.restorationIDs[v.visitable] = v.restorationID
}

func (s *Session) visitDidFail(v *Visit) {
	v.visitable.ClearScreenshot()
	v.visitable.ShowScreenshot()
	v.visitable.HideActivityIndicator()
}

func (s *Session) visitDidFinish(v *Visit) {
	if !s.refreshing {
		return
	}
	s.refreshing = false
	v.visitable.DidRefresh()
}

func (s *Session) visitRequestDidFail(ctx context.Context, v *Visit, err error) {
	s.logger.Debug("visit request failed", "stack", s.kind, "location", v.location.String(), "err", err)
	s.delegate.SessionDidFailRequest(ctx, s, v.visitable, err)
}

// scriptEvaluationFailed recovers from a broken page by cold booting the current visitable.
func (s *Session) scriptEvaluationFailed(ctx context.Context, err error) {
	current := s.currentVisit
	if current == nil || !s.initialized {
		return
	}
	s.logger.Warn("script evaluation failed, reinitializing", "stack", s.kind, "err", err)
	s.initialized = false
	current.cancel(ctx)
	if err := s.visit(ctx, current.visitable, domain.DefaultVisitOptions(), false); err != nil {
		s.logger.Warn("reinitializing visit failed", "stack", s.kind, "err", err)
	}
}

// Lifecycle hooks

func (s *Session) emitVisitStart(ctx context.Context, v *Visit) {
	if s.hooks.OnVisitStart == nil {
		return
	}
	s.hooks.OnVisitStart(ctx, s.visitEvent(domain.EventVisitStart, v, nil))
}

func (s *Session) emitVisitFinish(ctx context.Context, v *Visit, err error) {
	if s.hooks.OnVisitFinish == nil {
		return
	}
	s.hooks.OnVisitFinish(ctx, s.visitEvent(domain.EventVisitFinish, v, err))
}

func (s *Session) visitEvent(t domain.EventType, v *Visit, err error) *domain.VisitEvent {
	now := time.Now()
	ev := &domain.VisitEvent{
		EventBase: domain.EventBase{Timestamp: now, Type: t},
		Stack:     s.kind,
		VisitID:   v.id,
		Location:  v.location.String(),
		Action:    v.options.Action,
		ColdBoot:  v.ColdBoot(),
		State:     v.state,
		Err:       err,
	}
	if t == domain.EventVisitFinish {
		ev.Duration = now.Sub(v.startedAt)
	}
	return ev
}
