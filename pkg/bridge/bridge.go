package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Functions exposed by the in-page navigation script.
const (
	fnVisitLocation      = "window.turboNative.visitLocationWithOptionsAndRestorationIdentifier"
	fnCancelVisit        = "window.turboNative.cancelVisitWithIdentifier"
	fnCacheSnapshot      = "window.turboNative.cacheSnapshot"
	fnClearSnapshotCache = "window.turboNative.clearSnapshotCache"
)

// Bridge issues navigation calls into the page loaded on a content surface.
type Bridge struct {
	surface ports.ContentSurface
}

// New creates a bridge over surface.
func New(surface ports.ContentSurface) *Bridge {
	return &Bridge{surface: surface}
}

// VisitLocation asks the page to perform an in-page visit.
// An empty restoration identifier is sent as null.
func (b *Bridge) VisitLocation(ctx context.Context, location *url.URL, options domain.VisitOptions, restorationID string) error {
	var rid any
	if restorationID != "" {
		rid = restorationID
	}
	_, err := b.Call(ctx, fnVisitLocation, location.String(), options, rid)
	return err
}

// CancelVisit cancels the in-page visit with the given identifier.
func (b *Bridge) CancelVisit(ctx context.Context, identifier string) error {
	_, err := b.Call(ctx, fnCancelVisit, identifier)
	return err
}

// CacheSnapshot stores a snapshot of the current page for later restore visits.
func (b *Bridge) CacheSnapshot(ctx context.Context) error {
	_, err := b.Call(ctx, fnCacheSnapshot)
	return err
}

// ClearSnapshotCache drops every cached page snapshot.
func (b *Bridge) ClearSnapshotCache(ctx context.Context) error {
	_, err := b.Call(ctx, fnClearSnapshotCache)
	return err
}

// Call evaluates function with JSON-encoded arguments.
func (b *Bridge) Call(ctx context.Context, function string, args ...any) (any, error) {
	script, err := Script(function, args...)
	if err != nil {
		return nil, err
	}
	result, err := b.surface.Evaluate(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s: %w", function, err)
	}
	return result, nil
}

// Script renders a call expression such as fn("a", {"b":1}, null).
func Script(function string, args ...any) (string, error) {
	encoded := make([]string, 0, len(args))
	for _, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("failed to encode argument for %s: %w", function, err)
		}
		encoded = append(encoded, string(raw))
	}
	return function + "(" + strings.Join(encoded, ", ") + ")", nil
}
