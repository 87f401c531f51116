package session

import (
	"context"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// Delegate receives the outcomes of a session's visits and page events.
type Delegate interface {
	// SessionDidProposeVisit is called when the page asks to navigate somewhere new.
	SessionDidProposeVisit(ctx context.Context, s *Session, proposal domain.VisitProposal)

	// SessionDidProposeCrossOriginRedirect is called when a failed in-page visit
	// turned out to be a redirect to another origin.
	SessionDidProposeCrossOriginRedirect(ctx context.Context, s *Session, location *url.URL)

	SessionDidFailRequest(ctx context.Context, s *Session, visitable ports.Visitable, err error)

	// SessionDecidePolicy decides surface navigations once the page is initialized.
	SessionDecidePolicy(ctx context.Context, s *Session, action routing.NavigationAction) routing.PolicyDecision

	SessionDidLoadSurface(ctx context.Context, s *Session)
	SessionDidStartRequest(ctx context.Context, s *Session)
	SessionDidFinishRequest(ctx context.Context, s *Session)
	SessionDidStartFormSubmission(ctx context.Context, s *Session)
	SessionDidFinishFormSubmission(ctx context.Context, s *Session)
	SessionProcessDidTerminate(ctx context.Context, s *Session)
}

// NopDelegate ignores every callback and allows every navigation.
// Embed it to implement only the callbacks you need.
type NopDelegate struct{}

func (NopDelegate) SessionDidProposeVisit(context.Context, *Session, domain.VisitProposal)   {}
func (NopDelegate) SessionDidProposeCrossOriginRedirect(context.Context, *Session, *url.URL) {}
func (NopDelegate) SessionDidFailRequest(context.Context, *Session, ports.Visitable, error)  {}
func (NopDelegate) SessionDidLoadSurface(context.Context, *Session)                          {}
func (NopDelegate) SessionDidStartRequest(context.Context, *Session)                         {}
func (NopDelegate) SessionDidFinishRequest(context.Context, *Session)                        {}
func (NopDelegate) SessionDidStartFormSubmission(context.Context, *Session)                  {}
func (NopDelegate) SessionDidFinishFormSubmission(context.Context, *Session)                 {}
func (NopDelegate) SessionProcessDidTerminate(context.Context, *Session)                     {}

func (NopDelegate) SessionDecidePolicy(context.Context, *Session, routing.NavigationAction) routing.PolicyDecision {
	return routing.PolicyAllow
}
