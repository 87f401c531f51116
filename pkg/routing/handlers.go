package routing

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// AppNavigationHandler navigates in-app when the location shares the start location's host.
type AppNavigationHandler struct{}

func (AppNavigationHandler) Name() string { return "app-navigation" }

func (AppNavigationHandler) Matches(location *url.URL, cfg domain.Configuration) bool {
	return sameHost(location, cfg)
}

func (AppNavigationHandler) Handle(context.Context, *url.URL, domain.Configuration, Navigator) Decision {
	return DecisionNavigate
}

// BrowserHandler opens web locations on other hosts in an in-app browser.
type BrowserHandler struct {
	Opener ports.ExternalOpener
	Logger *slog.Logger
}

func (BrowserHandler) Name() string { return "browser" }

func (BrowserHandler) Matches(location *url.URL, cfg domain.Configuration) bool {
	return isWeb(location) && !sameHost(location, cfg)
}

func (h BrowserHandler) Handle(ctx context.Context, location *url.URL, _ domain.Configuration, _ Navigator) Decision {
	open(ctx, h.Opener, h.Logger, location)
	return DecisionCancel
}

// SystemNavigationHandler hands every other foreign location to the operating system.
type SystemNavigationHandler struct {
	Opener ports.ExternalOpener
	Logger *slog.Logger
}

func (SystemNavigationHandler) Name() string { return "system-navigation" }

func (SystemNavigationHandler) Matches(location *url.URL, cfg domain.Configuration) bool {
	return !sameHost(location, cfg)
}

func (h SystemNavigationHandler) Handle(ctx context.Context, location *url.URL, _ domain.Configuration, _ Navigator) Decision {
	open(ctx, h.Opener, h.Logger, location)
	return DecisionCancel
}

func sameHost(location *url.URL, cfg domain.Configuration) bool {
	if cfg.StartLocation == nil || location == nil {
		return false
	}
	return cfg.StartLocation.Hostname() == location.Hostname()
}

func isWeb(u *url.URL) bool {
	return u != nil && (u.Scheme == "http" || u.Scheme == "https")
}

func open(ctx context.Context, opener ports.ExternalOpener, logger *slog.Logger, location *url.URL) {
	if opener == nil {
		return
	}
	if err := opener.Open(ctx, location); err != nil && logger != nil {
		logger.Warn("failed to open external location", "location", location.String(), "error", err)
	}
}
