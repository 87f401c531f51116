package wayfinder

import (
	"context"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// ProposalDecision is what a Delegate wants done with a proposal.
type ProposalDecision string

const (
	// ProposalAccept builds the screen registered for the proposal's view controller.
	ProposalAccept ProposalDecision = "accept"
	// ProposalAcceptCustom uses the screen carried by the result.
	ProposalAcceptCustom ProposalDecision = "accept_custom"
	// ProposalReject drops the proposal.
	ProposalReject ProposalDecision = "reject"
)

// ProposalResult is returned by Delegate.Handle.
type ProposalResult struct {
	Decision ProposalDecision
	Screen   ports.Screen
}

func Accept() ProposalResult { return ProposalResult{Decision: ProposalAccept} }
func Reject() ProposalResult { return ProposalResult{Decision: ProposalReject} }

// AcceptCustom routes the proposal to screen instead of a registry-built one.
func AcceptCustom(screen ports.Screen) ProposalResult {
	return ProposalResult{Decision: ProposalAcceptCustom, Screen: screen}
}

// Delegate lets the host take part in navigation decisions.
type Delegate interface {
	// Handle decides what screen, if any, a proposal is routed to.
	Handle(ctx context.Context, proposal domain.VisitProposal) ProposalResult

	// VisitableDidFailRequest reports a failed visit. Calling retry reloads the session.
	VisitableDidFailRequest(ctx context.Context, visitable ports.Visitable, err error, retry func())

	FormSubmissionDidStart(ctx context.Context, location *url.URL)
	FormSubmissionDidFinish(ctx context.Context, location *url.URL)

	// RequestDidFinish is called when the active visitable's request completes.
	RequestDidFinish(ctx context.Context, location *url.URL)
}

// DefaultDelegate accepts every proposal and ignores the rest.
type DefaultDelegate struct{}

func (DefaultDelegate) Handle(context.Context, domain.VisitProposal) ProposalResult { return Accept() }

func (DefaultDelegate) VisitableDidFailRequest(context.Context, ports.Visitable, error, func()) {}
func (DefaultDelegate) FormSubmissionDidStart(context.Context, *url.URL)                        {}
func (DefaultDelegate) FormSubmissionDidFinish(context.Context, *url.URL)                       {}
func (DefaultDelegate) RequestDidFinish(context.Context, *url.URL)                              {}
