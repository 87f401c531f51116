package ports

import (
	"context"
	"net/url"
)

// ContentSurface is the embedded web-content renderer a session drives.
// Results of a load are reported back to the session through its Surface* methods.
type ContentSurface interface {
	// Load starts a full page load of u.
	Load(ctx context.Context, u *url.URL) error

	// LoadHTML renders markup as if it had been served from base.
	LoadHTML(ctx context.Context, html string, base *url.URL) error

	// StopLoading aborts an in-flight page load.
	StopLoading()

	// Evaluate runs script in the page and returns its result.
	Evaluate(ctx context.Context, script string) (any, error)

	// ProcessTerminated reports whether the process rendering the surface has gone away.
	ProcessTerminated(ctx context.Context) bool
}

// SurfaceFactory creates a fresh content surface for a session.
type SurfaceFactory func() ContentSurface
