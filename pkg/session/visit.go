package session

import (
	"context"
	"net/url"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/google/uuid"
)

type visitKind int

const (
	coldBootVisit visitKind = iota
	scriptVisit
)

// Visit is one navigation of a Visitable on the session's surface.
type Visit struct {
	kind          visitKind
	id            string
	visitable     ports.Visitable
	location      *url.URL
	options       domain.VisitOptions
	state         domain.VisitState
	restorationID string

	hasCachedSnapshot bool
	isPageRefresh     bool
	requestStarted    bool
	requestFinished   bool
	startedAt         time.Time

	session *Session
}

func newColdBootVisit(s *Session, visitable ports.Visitable, options domain.VisitOptions) *Visit {
	return &Visit{
		kind:      coldBootVisit,
		id:        uuid.NewString(),
		visitable: visitable,
		location:  visitable.VisitableURL(),
		options:   options.Normalized(),
		state:     domain.VisitInitialized,
		session:   s,
	}
}

// Script visits learn their identifier from the page once it starts them.
func newScriptVisit(s *Session, visitable ports.Visitable, options domain.VisitOptions, restorationID string) *Visit {
	return &Visit{
		kind:          scriptVisit,
		visitable:     visitable,
		location:      visitable.VisitableURL(),
		options:       options.Normalized(),
		state:         domain.VisitInitialized,
		restorationID: restorationID,
		session:       s,
	}
}

func (v *Visit) ID() string                   { return v.id }
func (v *Visit) Visitable() ports.Visitable   { return v.visitable }
func (v *Visit) Options() domain.VisitOptions { return v.options }
func (v *Visit) State() domain.VisitState     { return v.state }
func (v *Visit) RestorationID() string        { return v.restorationID }
func (v *Visit) ColdBoot() bool               { return v.kind == coldBootVisit }
func (v *Visit) HasCachedSnapshot() bool      { return v.hasCachedSnapshot }
func (v *Visit) IsPageRefresh() bool          { return v.isPageRefresh }

// Location returns a copy of the visited location.
func (v *Visit) Location() *url.URL {
	c := *v.location
	return &c
}

func (v *Visit) start(ctx context.Context) {
	if v.state != domain.VisitInitialized {
		return
	}

	v.session.visitWillStart(v)
	v.state = domain.VisitStarted
	v.startedAt = time.Now()
	v.session.emitVisitStart(ctx, v)

	switch v.kind {
	case coldBootVisit:
		surface := v.session.surface
		var err error
		if resp := v.options.Response; resp.HasHTML() && resp.IsSuccessful() {
			err = surface.LoadHTML(ctx, resp.ResponseHTML, v.location)
		} else {
			err = surface.Load(ctx, v.location)
		}
		if err != nil {
			v.fail(ctx, err)
			return
		}
		v.session.visitDidStart(v)
		v.startRequest(ctx)
	case scriptVisit:
		if err := v.session.bridge.VisitLocation(ctx, v.location, v.options, v.restorationID); err != nil {
			v.session.scriptEvaluationFailed(ctx, err)
		}
	}
}

func (v *Visit) cancel(ctx context.Context) {
	if v.state != domain.VisitStarted {
		return
	}

	v.state = domain.VisitCanceled
	switch v.kind {
	case coldBootVisit:
		v.session.surface.StopLoading()
	case scriptVisit:
		if v.id != "" {
			// The page may already be gone; a canceled visit has nothing left to report.
			_ = v.session.bridge.CancelVisit(ctx, v.id)
		}
	}
	v.finishRequest(ctx)
	v.session.emitVisitFinish(ctx, v, nil)
}

func (v *Visit) complete(ctx context.Context) {
	if v.state != domain.VisitStarted {
		return
	}

	v.state = domain.VisitCompleted
	if v.kind == coldBootVisit {
		v.session.visitDidInitializeSurface(ctx)
	}
	v.session.visitDidComplete(v)
	v.session.visitDidFinish(v)
	v.session.emitVisitFinish(ctx, v, nil)
}

func (v *Visit) fail(ctx context.Context, err error) {
	if v.state != domain.VisitStarted {
		return
	}

	v.state = domain.VisitFailed
	v.session.visitRequestDidFail(ctx, v, err)
	v.finishRequest(ctx)
	v.session.visitDidFail(v)
	v.session.visitDidFinish(v)
	v.session.emitVisitFinish(ctx, v, err)
}

func (v *Visit) startRequest(ctx context.Context) {
	if v.requestStarted {
		return
	}
	v.requestStarted = true
	v.session.delegate.SessionDidStartRequest(ctx, v.session)
}

func (v *Visit) finishRequest(ctx context.Context) {
	if !v.requestStarted || v.requestFinished {
		return
	}
	v.requestFinished = true
	v.session.delegate.SessionDidFinishRequest(ctx, v.session)
}

func (v *Visit) cacheSnapshot(ctx context.Context) {
	if err := v.session.bridge.CacheSnapshot(ctx); err != nil {
		v.session.logger.Debug("snapshot not cached", "visit", v.id, "err", err)
	}
}

// matches reports whether a page message about identifier belongs to v.
func (v *Visit) matches(identifier string) bool {
	return v.kind == scriptVisit && v.state == domain.VisitStarted && v.id == identifier
}
