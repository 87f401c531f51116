package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/bridge"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/redirect"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// HandleMessage dispatches a message posted by the page's navigation script.
// Unknown messages are logged and dropped.
func (s *Session) HandleMessage(ctx context.Context, msg bridge.Message) {
	payload, err := msg.Decode()
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMessage) {
			s.logger.Debug("ignoring page message", "stack", s.kind, "name", msg.Name)
		} else {
			s.logger.Warn("malformed page message", "stack", s.kind, "name", msg.Name, "err", err)
		}
		return
	}

	switch m := payload.(type) {
	case bridge.PageLoaded:
		s.pageLoaded(ctx, m)
	case bridge.PageLoadFailed:
		s.pageLoadFailed(ctx)
	case bridge.PageInvalidated:
		s.pageInvalidated(ctx)
	case bridge.ErrorRaised:
		s.logger.Error("page raised an error", "stack", s.kind, "message", m.Error)
	case bridge.Log:
		s.logger.Debug("page log", "stack", s.kind, "message", m.Message)
	case bridge.VisitProposed:
		s.visitProposed(ctx, m)
	case bridge.FormSubmissionStarted:
		s.delegate.SessionDidStartFormSubmission(ctx, s)
	case bridge.FormSubmissionFinished:
		s.delegate.SessionDidFinishFormSubmission(ctx, s)
	case bridge.VisitStarted:
		s.visitStarted(m)
	case bridge.VisitRequestStarted:
		if v := s.scriptVisit(m.Identifier); v != nil {
			v.startRequest(ctx)
		}
	case bridge.VisitRequestCompleted:
		if v := s.scriptVisit(m.Identifier); v != nil && v.hasCachedSnapshot {
			s.visitWillLoadResponse(v)
		}
	case bridge.VisitRequestFailed:
		if v := s.scriptVisit(m.Identifier); v != nil {
			v.fail(ctx, domain.NewTurboError(m.StatusCode))
		}
	case bridge.VisitRequestFailedWithNonHTTPStatusCode:
		s.resolveRedirect(ctx, m.Location, m.Identifier)
	case bridge.VisitRequestFinished:
		if v := s.scriptVisit(m.Identifier); v != nil {
			v.finishRequest(ctx)
		}
	case bridge.VisitRendered:
		if v := s.scriptVisit(m.Identifier); v != nil {
			s.visitDidRender(v)
		}
	case bridge.VisitCompleted:
		if v := s.scriptVisit(m.Identifier); v != nil {
			v.restorationID = m.RestorationIdentifier
			v.complete(ctx)
		}
	}
}

// scriptVisit returns the current visit when it is the in-page visit identified by id.
func (s *Session) scriptVisit(id string) *Visit {
	if s.currentVisit == nil || !s.currentVisit.matches(id) {
		return nil
	}
	return s.currentVisit
}

func (s *Session) visitStarted(m bridge.VisitStarted) {
	v := s.currentVisit
	if v == nil || v.kind != scriptVisit || v.state != domain.VisitStarted {
		return
	}
	if v.id != "" && v.id != m.Identifier {
		return
	}
	v.id = m.Identifier
	v.hasCachedSnapshot = m.HasCachedSnapshot
	v.isPageRefresh = m.IsPageRefresh
	s.visitDidStart(v)
}

func (s *Session) pageLoaded(ctx context.Context, m bridge.PageLoaded) {
	v := s.currentVisit
	if v == nil || v.kind != coldBootVisit || v.state != domain.VisitStarted {
		return
	}
	v.restorationID = m.RestorationIdentifier
	s.visitDidRender(v)
	v.complete(ctx)
}

// pageLoadFailed handles a cold boot whose page never set up its navigation script.
func (s *Session) pageLoadFailed(ctx context.Context) {
	v := s.currentVisit
	if v == nil || s.initialized {
		return
	}
	s.initialized = false
	v.cancel(ctx)
	s.visitDidFail(v)
	s.visitRequestDidFail(ctx, v, domain.PageLoadError())
}

func (s *Session) pageInvalidated(ctx context.Context) {
	visitable := s.TopmostVisitable()
	if visitable == nil {
		return
	}
	visitable.UpdateScreenshot()
	visitable.ShowScreenshot()
	visitable.ShowActivityIndicator()
	s.Reload(ctx)
}

func (s *Session) visitProposed(ctx context.Context, m bridge.VisitProposed) {
	if m.Location == nil {
		s.logger.Warn("visit proposed without a location", "stack", s.kind)
		return
	}
	var props domain.Properties
	if s.pathConfig != nil {
		props = s.pathConfig.PropertiesForURL(m.Location)
	}
	proposal := domain.NewVisitProposal(m.Location, m.Options, props, nil)
	s.delegate.SessionDidProposeVisit(ctx, s, proposal)
}

// resolveRedirect probes a location whose in-page visit failed without a status.
// Cross-origin redirects cannot be observed from the page, so they surface here.
func (s *Session) resolveRedirect(ctx context.Context, location *url.URL, identifier string) {
	s.logger.Debug("visit failed without status, probing for redirect", "stack", s.kind, "location", location, "visit", identifier)

	result, err := s.resolver.Resolve(ctx, location)

	// The probe may outlive the visit it was started for.
	v := s.scriptVisit(identifier)
	if v == nil {
		return
	}

	if err != nil {
		v.fail(ctx, fmt.Errorf("failed to resolve redirect for %s: %w", location, err))
		return
	}

	switch result.Kind {
	case redirect.CrossOriginRedirect:
		s.logger.Debug("cross-origin redirect", "stack", s.kind, "location", location, "redirect", result.Location, "visit", identifier)
		s.delegate.SessionDidProposeCrossOriginRedirect(ctx, s, result.Location)
	default:
		// Same-origin redirects are followed by the page itself.
		v.fail(ctx, domain.HTTPError(0))
	}
}

// SurfaceDidReceiveResponse reports the HTTP status of a cold boot page load.
func (s *Session) SurfaceDidReceiveResponse(ctx context.Context, statusCode int) {
	v := s.currentVisit
	if v == nil || v.kind != coldBootVisit {
		return
	}
	if statusCode >= 200 && statusCode <= 299 {
		return
	}
	s.surface.StopLoading()
	v.fail(ctx, domain.HTTPError(statusCode))
}

// SurfaceDidFinishLoad reports that a cold boot page load finished.
func (s *Session) SurfaceDidFinishLoad(ctx context.Context) {
	v := s.currentVisit
	if v == nil || v.kind != coldBootVisit || v.state != domain.VisitStarted {
		return
	}
	v.finishRequest(ctx)
}

// SurfaceDidFailLoad reports that a cold boot page load failed.
func (s *Session) SurfaceDidFailLoad(ctx context.Context, err error) {
	v := s.currentVisit
	if v == nil || v.kind != coldBootVisit {
		return
	}
	v.fail(ctx, err)
}

// SurfaceProcessDidTerminate reports that the surface's content process died.
func (s *Session) SurfaceProcessDidTerminate(ctx context.Context) {
	s.logger.Warn("content process terminated", "stack", s.kind)
	s.delegate.SessionProcessDidTerminate(ctx, s)
}

// DecidePolicy decides a navigation the surface is about to perform.
// Navigations during a cold boot are the page load itself and always proceed.
func (s *Session) DecidePolicy(ctx context.Context, action routing.NavigationAction) routing.PolicyDecision {
	if !s.initialized {
		return routing.PolicyAllow
	}
	return s.delegate.SessionDecidePolicy(ctx, s, action)
}
