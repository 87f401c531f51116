package session

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// ScreenWillAppear is called before visitable becomes visible on its stack.
func (s *Session) ScreenWillAppear(ctx context.Context, visitable ports.Visitable, reason domain.AppearanceReason) {
	// Forgetting the previous visit here keeps web to web navigation from snapshotting twice.
	defer func() { s.previousVisit = nil }()

	topmost, current := s.topmostVisit, s.currentVisit
	if topmost == nil || current == nil {
		return
	}

	if s.snapshotCacheStale {
		s.ClearSnapshotCache(ctx)
		s.snapshotCacheStale = false
	}

	if s.showingStaleContent {
		s.Reload(ctx)
		s.showingStaleContent = false
		return
	}

	// A back gesture was canceled and the topmost screen is being put back.
	if visitable == topmost.visitable && reason == domain.ReasonReinserted {
		if topmost.state == domain.VisitCompleted {
			current.cancel(ctx)
		} else {
			s.visitOrLog(ctx, visitable, domain.ActionAdvance)
		}
		return
	}

	// Navigating forward: complete navigation early.
	if visitable == current.visitable {
		// Form submission redirects that carry their own HTML may already be complete here.
		hasResponse := current.options.Response.HasHTML()
		if current.state == domain.VisitStarted || (hasResponse && current.state == domain.VisitCompleted) {
			s.completeNavigationForCurrentVisit()
			return
		}
	}

	// Navigating back from one web screen to another.
	if visitable != topmost.visitable {
		s.visitOrLog(ctx, visitable, domain.ActionRestore)
		return
	}

	// Navigating back from a native screen to a web screen.
	if s.previousVisit != nil && visitable == s.previousVisit.visitable {
		s.visitOrLog(ctx, visitable, domain.ActionRestore)
	}
}

// ScreenDidAppear is called once visitable is visible on its stack.
func (s *Session) ScreenDidAppear(ctx context.Context, visitable ports.Visitable, _ domain.AppearanceReason) {
	if current := s.currentVisit; current != nil && visitable == current.visitable {
		s.completeNavigationForCurrentVisit()
		if current.state != domain.VisitFailed {
			s.activateVisitable(visitable)
		}
		return
	}
	// Reappearing after a canceled navigation.
	if topmost := s.topmostVisit; topmost != nil && visitable == topmost.visitable && topmost.state == domain.VisitCompleted {
		s.visitOrLog(ctx, visitable, domain.ActionRestore)
	}
}

// ScreenWillDisappear is called before visitable stops being visible.
func (s *Session) ScreenWillDisappear(_ context.Context, _ ports.Visitable, _ domain.AppearanceReason) {
	s.previousVisit = s.topmostVisit
}

// ScreenDidDisappear is called once visitable is no longer visible.
func (s *Session) ScreenDidDisappear(ctx context.Context, visitable ports.Visitable, _ domain.AppearanceReason) {
	if s.previousVisit != nil {
		s.previousVisit.cacheSnapshot(ctx)
	}
	s.deactivateVisitable(visitable, false)
}

// ScreenDidRequestReload reloads the session when visitable is the topmost screen.
func (s *Session) ScreenDidRequestReload(ctx context.Context, visitable ports.Visitable) {
	if visitable != s.TopmostVisitable() {
		return
	}
	s.Reload(ctx)
}

// ScreenDidRequestRefresh reloads the topmost screen as a pull-to-refresh.
func (s *Session) ScreenDidRequestRefresh(ctx context.Context, visitable ports.Visitable) {
	if visitable != s.TopmostVisitable() {
		return
	}
	s.refreshing = true
	visitable.WillRefresh()
	s.Reload(ctx)
}

func (s *Session) visitOrLog(ctx context.Context, visitable ports.Visitable, action domain.VisitAction) {
	if err := s.VisitAction(ctx, visitable, action); err != nil {
		s.logger.Warn("visit from appearance failed", "stack", s.kind, "action", action, "err", err)
	}
}
