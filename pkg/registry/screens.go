package registry

import (
	"context"
	"net/url"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// WebScreen is the default Visitable: a screen that shows the session's content
// surface and tracks the placeholder state a host renders around it.
type WebScreen struct {
	mu  sync.Mutex
	url *url.URL

	surface           ports.ContentSurface
	screenshotVisible bool
	hasScreenshot     bool
	loading           bool
	refreshing        bool
	rendered          bool
	pullToRefresh     bool
	modalStyle        domain.ModalStyle
	dismissGesture    bool
}

// NewWebScreen is the ScreenFactory for the default "web" identifier.
func NewWebScreen(_ context.Context, proposal domain.VisitProposal) (ports.Screen, error) {
	return &WebScreen{url: proposal.URL(), pullToRefresh: true, dismissGesture: true}, nil
}

// WebScreenState is a snapshot of what a host should draw for a WebScreen.
type WebScreenState struct {
	SurfaceAttached   bool
	ScreenshotVisible bool
	Loading           bool
	Refreshing        bool
	Rendered          bool
	PullToRefresh     bool
	ModalStyle        domain.ModalStyle
	DismissGesture    bool
}

// State returns the current drawing state.
func (w *WebScreen) State() WebScreenState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WebScreenState{
		SurfaceAttached:   w.surface != nil,
		ScreenshotVisible: w.screenshotVisible && w.hasScreenshot,
		Loading:           w.loading,
		Refreshing:        w.refreshing,
		Rendered:          w.rendered,
		PullToRefresh:     w.pullToRefresh,
		ModalStyle:        w.modalStyle,
		DismissGesture:    w.dismissGesture,
	}
}

func (w *WebScreen) VisitableURL() *url.URL {
	c := *w.url
	return &c
}

func (w *WebScreen) ActivateSurface(surface ports.ContentSurface) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surface = surface
}

func (w *WebScreen) DeactivateSurface() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surface = nil
}

func (w *WebScreen) UpdateScreenshot() {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Nothing to capture before the first render.
	if w.rendered {
		w.hasScreenshot = true
	}
}

func (w *WebScreen) ShowScreenshot() { w.setScreenshot(true) }
func (w *WebScreen) HideScreenshot() { w.setScreenshot(false) }

func (w *WebScreen) ClearScreenshot() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hasScreenshot = false
}

func (w *WebScreen) ShowActivityIndicator() { w.setLoading(true) }
func (w *WebScreen) HideActivityIndicator() { w.setLoading(false) }

func (w *WebScreen) DidRender() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rendered = true
}

func (w *WebScreen) WillRefresh() { w.setRefreshing(true) }
func (w *WebScreen) DidRefresh()  { w.setRefreshing(false) }

func (w *WebScreen) SetPullToRefreshEnabled(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pullToRefresh = enabled
}

func (w *WebScreen) ConfigureModal(style domain.ModalStyle, dismissGestureEnabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modalStyle = style
	w.dismissGesture = dismissGestureEnabled
}

func (w *WebScreen) setScreenshot(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.screenshotVisible = visible
}

func (w *WebScreen) setLoading(loading bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = loading
}

func (w *WebScreen) setRefreshing(refreshing bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshing = refreshing
}

// AlertScreen presents a page dialog. It is never pushed onto a stack.
type AlertScreen struct {
	dialog domain.Dialog
	once   sync.Once
}

func NewAlertScreen(dialog domain.Dialog) *AlertScreen {
	return &AlertScreen{dialog: dialog}
}

func (a *AlertScreen) Dialog() domain.Dialog { return a.dialog }

// Respond answers the dialog once; later calls are ignored.
// Alerts have no cancel choice, so they always report true.
func (a *AlertScreen) Respond(confirmed bool) {
	a.once.Do(func() {
		if a.dialog.Kind == domain.DialogAlert {
			confirmed = true
		}
		if a.dialog.Respond != nil {
			a.dialog.Respond(confirmed)
		}
	})
}
