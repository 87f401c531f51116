package routing

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// PolicyDecision tells the content surface whether to perform a navigation it started itself.
type PolicyDecision string

const (
	// PolicyAllow lets the surface perform the navigation.
	PolicyAllow PolicyDecision = "allow"
	// PolicyCancel stops it. Handlers use it when they handle the navigation themselves.
	PolicyCancel PolicyDecision = "cancel"
)

// NavigationType is what triggered a content surface navigation.
type NavigationType string

const (
	NavigationLinkActivated   NavigationType = "link_activated"
	NavigationFormSubmitted   NavigationType = "form_submitted"
	NavigationBackForward     NavigationType = "back_forward"
	NavigationReload          NavigationType = "reload"
	NavigationFormResubmitted NavigationType = "form_resubmitted"
	NavigationOther           NavigationType = "other"
)

// FrameKind describes the frame a navigation targets.
type FrameKind string

const (
	// FrameNone means no target frame, as for links that open a new window.
	FrameNone FrameKind = "none"
	FrameMain FrameKind = "main"
	FrameSub  FrameKind = "sub"
)

// NavigationAction describes a navigation the content surface is about to perform.
type NavigationAction struct {
	URL         *url.URL       `json:"url"`
	Type        NavigationType `json:"type"`
	TargetFrame FrameKind      `json:"target_frame"`
}

// IsMainFrameNavigation reports whether the main frame is navigating.
func (a NavigationAction) IsMainFrameNavigation() bool {
	return a.TargetFrame == FrameMain
}

// RequestsNewWindow reports a missing target frame or a non-main one.
func (a NavigationAction) RequestsNewWindow() bool {
	return a.TargetFrame != FrameMain
}

// ShouldReloadPage reports a main-frame reload.
func (a NavigationAction) ShouldReloadPage() bool {
	return a.IsMainFrameNavigation() && a.Type == NavigationReload
}

// ShouldOpenURLExternally reports a link activation, or a main-frame navigation of type other.
func (a NavigationAction) ShouldOpenURLExternally() bool {
	return a.Type == NavigationLinkActivated ||
		(a.IsMainFrameNavigation() && a.Type == NavigationOther)
}

// PolicyDecisionHandler decides a policy for navigation actions it matches.
type PolicyDecisionHandler interface {
	Name() string
	Matches(action NavigationAction, cfg domain.Configuration) bool
	Handle(ctx context.Context, action NavigationAction, cfg domain.Configuration, nav Navigator) PolicyDecision
}

// PolicyManager runs an ordered chain of policy handlers; the first match decides.
type PolicyManager struct {
	handlers []PolicyDecisionHandler
	logger   *slog.Logger
}

// NewPolicyManager creates a manager over handlers, evaluated in order.
func NewPolicyManager(handlers []PolicyDecisionHandler, opts ...Option) *PolicyManager {
	o := buildOptions(opts)
	return &PolicyManager{handlers: handlers, logger: o.logger}
}

// DefaultPolicyManager handles reloads, new windows, external navigation and link activation, in that order.
func DefaultPolicyManager(opts ...Option) *PolicyManager {
	o := buildOptions(opts)
	return NewPolicyManager([]PolicyDecisionHandler{
		ReloadPolicyHandler{Logger: o.logger},
		NewWindowPolicyHandler{},
		ExternalNavigationPolicyHandler{},
		LinkActivatedPolicyHandler{},
	}, opts...)
}

// Decide returns the policy of the first matching handler, or allow when none matches.
func (m *PolicyManager) Decide(ctx context.Context, action NavigationAction, cfg domain.Configuration, nav Navigator) PolicyDecision {
	for _, h := range m.handlers {
		if h.Matches(action, cfg) {
			m.logger.Debug("policy handler matched", "handler", h.Name(), "type", action.Type, "url", urlString(action.URL))
			return h.Handle(ctx, action, cfg, nav)
		}
	}

	m.logger.Warn("no policy handler for navigation action", "type", action.Type, "url", urlString(action.URL))
	return PolicyAllow
}

// ReloadPolicyHandler reloads the navigator on a main-frame reload.
type ReloadPolicyHandler struct {
	Logger *slog.Logger
}

func (ReloadPolicyHandler) Name() string { return "reload-policy" }

func (ReloadPolicyHandler) Matches(action NavigationAction, _ domain.Configuration) bool {
	return action.ShouldReloadPage()
}

func (h ReloadPolicyHandler) Handle(ctx context.Context, action NavigationAction, _ domain.Configuration, nav Navigator) PolicyDecision {
	if h.Logger != nil {
		h.Logger.Info("reloading on page reload request", "url", urlString(action.URL))
	}
	nav.Reload(ctx)
	return PolicyCancel
}

// NewWindowPolicyHandler routes links that request a new window through the navigator.
type NewWindowPolicyHandler struct{}

func (NewWindowPolicyHandler) Name() string { return "new-window-policy" }

func (NewWindowPolicyHandler) Matches(action NavigationAction, _ domain.Configuration) bool {
	return action.URL != nil &&
		action.Type == NavigationLinkActivated &&
		action.RequestsNewWindow()
}

func (NewWindowPolicyHandler) Handle(ctx context.Context, action NavigationAction, _ domain.Configuration, nav Navigator) PolicyDecision {
	nav.Route(ctx, action.URL)
	return PolicyCancel
}

// ExternalNavigationPolicyHandler routes navigations the page should not perform itself.
type ExternalNavigationPolicyHandler struct{}

func (ExternalNavigationPolicyHandler) Name() string { return "external-navigation-policy" }

func (ExternalNavigationPolicyHandler) Matches(action NavigationAction, _ domain.Configuration) bool {
	return action.URL != nil && action.ShouldOpenURLExternally()
}

func (ExternalNavigationPolicyHandler) Handle(ctx context.Context, action NavigationAction, _ domain.Configuration, nav Navigator) PolicyDecision {
	nav.Route(ctx, action.URL)
	return PolicyCancel
}

// LinkActivatedPolicyHandler cancels main-frame link activations.
type LinkActivatedPolicyHandler struct{}

func (LinkActivatedPolicyHandler) Name() string { return "link-activated-policy" }

func (LinkActivatedPolicyHandler) Matches(action NavigationAction, _ domain.Configuration) bool {
	return action.Type == NavigationLinkActivated && action.IsMainFrameNavigation()
}

func (LinkActivatedPolicyHandler) Handle(context.Context, NavigationAction, domain.Configuration, Navigator) PolicyDecision {
	return PolicyCancel
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
