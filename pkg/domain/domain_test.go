package domain_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestProperties_Defaults(t *testing.T) {
	p := domain.Properties{}

	assert.Equal(t, domain.ContextDefault, p.Context())
	assert.Equal(t, domain.PresentationDefault, p.Presentation())
	assert.Equal(t, domain.ModalStyleLarge, p.ModalStyle())
	assert.Equal(t, domain.QueryStringDefault, p.QueryStringPresentation())
	assert.True(t, p.PullToRefreshEnabled())
	assert.True(t, p.ModalDismissGestureEnabled())
	assert.True(t, p.Animated())
	assert.False(t, p.HistoricalLocation())
	assert.Equal(t, domain.DefaultViewController, p.ViewController())
}

func TestProperties_InvalidValuesFallBack(t *testing.T) {
	p := domain.Properties{
		"context":      "sideways",
		"presentation": 42,
		"modal_style":  "huge",
		"animated":     "no",
	}

	assert.Equal(t, domain.ContextDefault, p.Context())
	assert.Equal(t, domain.PresentationDefault, p.Presentation())
	assert.Equal(t, domain.ModalStyleLarge, p.ModalStyle())
	assert.True(t, p.Animated())
}

func TestProperties_Values(t *testing.T) {
	p := domain.Properties{
		"context":                   "modal",
		"presentation":              "replace_root",
		"modal_style":               "page_sheet",
		"query_string_presentation": "replace",
		"pull_to_refresh_enabled":   false,
		"animated":                  false,
		"historical_location":       true,
		"view_controller":           "numbers",
	}

	assert.Equal(t, domain.ContextModal, p.Context())
	assert.Equal(t, domain.PresentationReplaceRoot, p.Presentation())
	assert.Equal(t, domain.ModalStylePageSheet, p.ModalStyle())
	assert.Equal(t, domain.QueryStringReplace, p.QueryStringPresentation())
	assert.False(t, p.PullToRefreshEnabled())
	assert.False(t, p.Animated())
	assert.True(t, p.HistoricalLocation())
	assert.Equal(t, "numbers", p.ViewController())
}

func TestProperties_Decode(t *testing.T) {
	var out struct {
		Title   string `mapstructure:"title"`
		Count   int    `mapstructure:"count"`
		Context string `mapstructure:"context"`
	}

	p := domain.Properties{"title": "Inbox", "count": "3", "context": "modal"}
	require.NoError(t, p.Decode(&out))

	assert.Equal(t, "Inbox", out.Title)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "modal", out.Context)
}

func TestVisitProposal_IsImmutable(t *testing.T) {
	u := mustURL(t, "https://example.com/one")
	props := domain.Properties{"context": "modal"}

	p := domain.NewVisitProposal(u, domain.VisitOptions{}, props, nil)

	u.Path = "/two"
	props["context"] = "default"
	p.Properties()["context"] = "default"

	assert.Equal(t, "/one", p.URL().Path)
	assert.Equal(t, domain.ContextModal, p.Context())
	assert.Equal(t, domain.ActionAdvance, p.Options().Action)
}

func TestSameLocation(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		qsp  domain.QueryStringPresentation
		want bool
	}{
		{"same path no query", "https://a.com/x", "https://a.com/x", domain.QueryStringDefault, true},
		{"different path", "https://a.com/x", "https://a.com/y", domain.QueryStringDefault, false},
		{"query differs default", "https://a.com/x?a=1", "https://a.com/x?a=2", domain.QueryStringDefault, false},
		{"query differs replace", "https://a.com/x?a=1", "https://a.com/x?a=2", domain.QueryStringReplace, true},
		{"same query default", "https://a.com/x?a=1", "https://a.com/x?a=1", domain.QueryStringDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.SameLocation(mustURL(t, tt.a), mustURL(t, tt.b), tt.qsp)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, domain.SameLocation(nil, mustURL(t, "/x"), domain.QueryStringDefault))
}

func TestNewTurboError(t *testing.T) {
	tests := []struct {
		code int
		kind domain.TurboErrorKind
		msg  string
	}{
		{0, domain.ErrKindNetworkFailure, "A network error occurred."},
		{-1, domain.ErrKindTimeoutFailure, "A network timeout occurred."},
		{-2, domain.ErrKindContentTypeMismatch, "The server returned an invalid content type."},
		{503, domain.ErrKindServiceUnavailable, "The service is temporarily unavailable."},
		{404, domain.ErrKindHTTP, "There was an HTTP error (404)."},
		{500, domain.ErrKindHTTP, "There was an HTTP error (500)."},
	}

	for _, tt := range tests {
		err := domain.NewTurboError(tt.code)
		assert.Equal(t, tt.kind, err.Kind, "code %d", tt.code)
		assert.Equal(t, tt.msg, err.Error())
	}
}

func TestTurboError_Is(t *testing.T) {
	var err error = domain.NewTurboError(404)

	assert.True(t, errors.Is(err, domain.HTTPError(404)))
	assert.False(t, errors.Is(err, domain.HTTPError(500)))
	assert.True(t, errors.Is(domain.HTTPError(0), domain.HTTPError(0)))
	assert.False(t, errors.Is(domain.HTTPError(0), domain.NewTurboError(0)))
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnRouteDecision: func(_ context.Context, _ *domain.RouteEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{OnRouteDecision: func(_ context.Context, _ *domain.RouteEvent) { calls = append(calls, "b") }}

	merged := a.Merge(b)
	merged.OnRouteDecision(context.Background(), &domain.RouteEvent{})

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Nil(t, merged.OnVisitStart)
}
