package domain

import "net/url"

// VisitProposal is a resolved navigation request awaiting a stack decision.
// It is immutable once constructed; accessors derive behavior from Properties.
type VisitProposal struct {
	url        *url.URL
	options    VisitOptions
	properties Properties
	parameters map[string]any
}

// NewVisitProposal builds a proposal. The URL and properties are copied.
func NewVisitProposal(u *url.URL, options VisitOptions, properties Properties, parameters map[string]any) VisitProposal {
	var copied *url.URL
	if u != nil {
		c := *u
		copied = &c
	}
	if properties == nil {
		properties = Properties{}
	}
	return VisitProposal{
		url:        copied,
		options:    options.Normalized(),
		properties: properties.Clone(),
		parameters: parameters,
	}
}

// URL returns a copy of the destination.
func (p VisitProposal) URL() *url.URL {
	if p.url == nil {
		return nil
	}
	c := *p.url
	return &c
}

func (p VisitProposal) Options() VisitOptions      { return p.options }
func (p VisitProposal) Properties() Properties     { return p.properties.Clone() }
func (p VisitProposal) Parameters() map[string]any { return p.parameters }

func (p VisitProposal) Context() Context           { return p.properties.Context() }
func (p VisitProposal) Presentation() Presentation { return p.properties.Presentation() }
func (p VisitProposal) ModalStyle() ModalStyle     { return p.properties.ModalStyle() }
func (p VisitProposal) Animated() bool             { return p.properties.Animated() }
func (p VisitProposal) ViewController() string     { return p.properties.ViewController() }

func (p VisitProposal) PullToRefreshEnabled() bool {
	return p.properties.PullToRefreshEnabled()
}

func (p VisitProposal) ModalDismissGestureEnabled() bool {
	return p.properties.ModalDismissGestureEnabled()
}

func (p VisitProposal) IsHistoricalLocation() bool {
	return p.properties.HistoricalLocation()
}

func (p VisitProposal) QueryStringPresentation() QueryStringPresentation {
	return p.properties.QueryStringPresentation()
}

// SameLocation reports whether a and b refer to the same location under the
// given query string presentation: path equality, plus query equality unless
// the presentation is replace.
func SameLocation(a, b *url.URL, qsp QueryStringPresentation) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Path != b.Path {
		return false
	}
	if qsp == QueryStringReplace {
		return true
	}
	return a.RawQuery == b.RawQuery
}
