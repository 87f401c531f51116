package wayfinder

import (
	"context"
	"slices"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/session"
)

// AppDidEnterBackground defers surface recovery until the app returns.
func (n *Navigator) AppDidEnterBackground(context.Context) {
	n.background = true
}

// AppWillEnterForeground reloads sessions whose surface terminated in the background
// and recreates sessions whose surface process is gone.
func (n *Navigator) AppWillEnterForeground(ctx context.Context) {
	n.background = false
	for _, s := range []*session.Session{n.session, n.modalSession} {
		n.inspect(ctx, s)
	}
}

// Background reports whether the app is in the background.
func (n *Navigator) Background() bool { return n.background }

// reloadIfPermitted reloads s only while its active screen is still on a stack.
// Reloading an off-screen surface would fetch content nobody sees.
func (n *Navigator) reloadIfPermitted(ctx context.Context, s *session.Session) {
	active := s.ActiveVisitable()
	if active == nil || !n.hierarchy.Stack(s.Kind()).Contains(active) {
		n.logger.Debug("terminated surface not reloaded, screen detached", "stack", s.Kind())
		return
	}

	if n.background {
		if !slices.Contains(n.backgroundTerminatedSessions, s) {
			n.backgroundTerminatedSessions = append(n.backgroundTerminatedSessions, s)
		}
		return
	}

	n.logger.Info("reloading terminated surface", "stack", s.Kind())
	s.Reload(ctx)
}

func (n *Navigator) inspect(ctx context.Context, s *session.Session) {
	if i := slices.Index(n.backgroundTerminatedSessions, s); i >= 0 {
		n.backgroundTerminatedSessions = slices.Delete(n.backgroundTerminatedSessions, i, i+1)
		n.logger.Info("reloading surface terminated in background", "stack", s.Kind())
		s.Reload(ctx)
		return
	}

	if s.TopmostVisitable() == nil {
		return
	}
	if s.Surface().ProcessTerminated(ctx) {
		n.recreateSession(ctx, s)
	}
}

// recreateSession swaps s for a session on a fresh surface and replaces the active screen.
func (n *Navigator) recreateSession(ctx context.Context, s *session.Session) {
	active := s.ActiveVisitable()
	if active == nil {
		return
	}
	location := active.VisitableURL()

	replacement := n.newSession(s.Kind())
	if s == n.session {
		n.session = replacement
	} else {
		n.modalSession = replacement
	}

	n.logger.Info("recreated session after surface termination", "stack", s.Kind(), "location", location.String())
	n.RouteWithOptions(ctx, location, domain.VisitOptions{Action: domain.ActionReplace}, nil)
}
