package wayfinder

import (
	"context"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/aretw0/wayfinder/pkg/session"
)

// Session callbacks

func (n *Navigator) SessionDidProposeVisit(ctx context.Context, _ *session.Session, proposal domain.VisitProposal) {
	n.RouteProposal(ctx, proposal)
}

// SessionDidProposeCrossOriginRedirect drops the screen whose visit was redirected
// off-origin and routes the redirect target as a fresh navigation.
func (n *Navigator) SessionDidProposeCrossOriginRedirect(ctx context.Context, _ *session.Session, location *url.URL) {
	n.Pop(ctx, false)
	n.Route(ctx, location)
}

func (n *Navigator) SessionDidFailRequest(ctx context.Context, s *session.Session, visitable ports.Visitable, err error) {
	n.logger.Warn("visit failed", "stack", s.Kind(), "location", locationOf(visitable), "err", err)
	n.delegate.VisitableDidFailRequest(ctx, visitable, err, func() {
		s.Reload(ctx)
	})
}

func (n *Navigator) SessionDecidePolicy(ctx context.Context, _ *session.Session, action routing.NavigationAction) routing.PolicyDecision {
	return n.policy.Decide(ctx, action, n.config, n)
}

func (n *Navigator) SessionDidLoadSurface(_ context.Context, s *session.Session) {
	n.logger.Debug("surface loaded", "stack", s.Kind())
}

func (n *Navigator) SessionDidStartRequest(context.Context, *session.Session) {}

func (n *Navigator) SessionDidFinishRequest(ctx context.Context, s *session.Session) {
	if active := s.ActiveVisitable(); active != nil {
		n.delegate.RequestDidFinish(ctx, active.VisitableURL())
	}
}

func (n *Navigator) SessionDidStartFormSubmission(ctx context.Context, s *session.Session) {
	if top := s.TopmostVisitable(); top != nil {
		n.delegate.FormSubmissionDidStart(ctx, top.VisitableURL())
	}
}

// SessionDidFinishFormSubmission marks the main session's snapshots stale when a
// modal form finishes, so the screen underneath does not restore outdated content.
func (n *Navigator) SessionDidFinishFormSubmission(ctx context.Context, s *session.Session) {
	if s == n.modalSession {
		n.session.MarkSnapshotCacheAsStale()
	}
	if top := s.TopmostVisitable(); top != nil {
		n.delegate.FormSubmissionDidFinish(ctx, top.VisitableURL())
	}
}

func (n *Navigator) SessionProcessDidTerminate(ctx context.Context, s *session.Session) {
	n.reloadIfPermitted(ctx, s)
}

// Hierarchy callbacks

// Visit starts a visit of visitable on the session serving stack.
func (n *Navigator) Visit(ctx context.Context, visitable ports.Visitable, stack domain.StackKind, options domain.VisitOptions) {
	if err := n.SessionFor(stack).Visit(ctx, visitable, options); err != nil {
		n.logger.Warn("visit not started", "stack", stack, "err", err)
	}
}

// RefreshVisitable restores visitable on the session serving stack.
func (n *Navigator) RefreshVisitable(ctx context.Context, stack domain.StackKind, visitable ports.Visitable) {
	if err := n.SessionFor(stack).VisitAction(ctx, visitable, domain.ActionRestore); err != nil {
		n.logger.Warn("refresh not started", "stack", stack, "err", err)
	}
}

func locationOf(visitable ports.Visitable) string {
	if visitable == nil || visitable.VisitableURL() == nil {
		return ""
	}
	return visitable.VisitableURL().String()
}
