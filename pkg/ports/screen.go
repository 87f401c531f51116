package ports

import (
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Screen is an opaque handle to a native screen hosted by a navigation stack.
type Screen any

// Visitable is a screen that hosts the content surface of a session.
type Visitable interface {
	// VisitableURL is the location the screen was created for.
	VisitableURL() *url.URL

	ActivateSurface(surface ContentSurface)
	DeactivateSurface()

	// Placeholder snapshot shown while the surface is detached or loading.
	UpdateScreenshot()
	ShowScreenshot()
	HideScreenshot()
	ClearScreenshot()

	ShowActivityIndicator()
	HideActivityIndicator()

	DidRender()
	WillRefresh()
	DidRefresh()

	SetPullToRefreshEnabled(enabled bool)
}

// ModalConfigurable is implemented by screens that react to modal presentation properties.
type ModalConfigurable interface {
	ConfigureModal(style domain.ModalStyle, dismissGestureEnabled bool)
}

// Alert is a transient screen that is always presented, never pushed.
type Alert interface {
	Dialog() domain.Dialog
}

// Presenter is notified when the hierarchy presents or dismisses the modal stack or an alert.
type Presenter interface {
	PresentModal(style domain.ModalStyle, animated bool)
	DismissModal(animated bool)
	PresentAlert(on domain.StackKind, alert Alert, animated bool)
}
