package pathconfig_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "settings": {"screenshots_enabled": true},
  "rules": [
    {"patterns": ["/new$", "/edit$"], "properties": {"context": "modal", "pull_to_refresh_enabled": false}},
    {"patterns": ["/numbers$"], "properties": {"view_controller": "numbers"}},
    {"patterns": ["/search\\?q=.*"], "properties": {"presentation": "replace"}},
    {"patterns": ["[invalid"], "properties": {"context": "modal"}}
  ]
}`

func load(t *testing.T, doc string, opts ...pathconfig.Option) *pathconfig.Configuration {
	t.Helper()
	opts = append(opts, pathconfig.WithSources(pathconfig.DataSource([]byte(doc))))
	cfg := pathconfig.New(opts...)
	require.NoError(t, cfg.Load(context.Background()))
	return cfg
}

func TestProperties_MergeLastWriteWins(t *testing.T) {
	cfg := load(t, `{"rules": [
		{"patterns": ["^/x"], "properties": {"a": 1, "b": 1}},
		{"patterns": ["^/x$"], "properties": {"b": 2}}
	]}`)

	assert.Equal(t, domain.Properties{"a": float64(1), "b": float64(2)}, cfg.Properties("/x"))
	assert.Equal(t, domain.Properties{"a": float64(1), "b": float64(1)}, cfg.Properties("/xy"))
}

func TestProperties_NoMatchIsEmpty(t *testing.T) {
	cfg := load(t, fixture)

	assert.Empty(t, cfg.Properties("/nothing/here"))
}

func TestProperties_UnanchoredMatch(t *testing.T) {
	cfg := load(t, fixture)

	props := cfg.Properties("/posts/1/edit")
	assert.Equal(t, domain.ContextModal, props.Context())
	assert.False(t, props.PullToRefreshEnabled())
}

func TestProperties_InvalidPatternIsSkipped(t *testing.T) {
	cfg := load(t, fixture)

	assert.Empty(t, cfg.Properties("[invalid"))
	assert.Len(t, cfg.Rules(), 4+3)
}

func TestPropertiesForURL_QueryStrings(t *testing.T) {
	u, err := url.Parse("https://example.com/search?q=boots")
	require.NoError(t, err)

	cfg := load(t, fixture)
	assert.Equal(t, domain.PresentationReplace, cfg.PropertiesForURL(u).Presentation())

	cfg.SetMatchQueryStrings(false)
	assert.Equal(t, domain.PresentationDefault, cfg.PropertiesForURL(u).Presentation())
}

func TestHistoricalLocations(t *testing.T) {
	tests := []struct {
		path string
		want domain.Presentation
	}{
		{pathconfig.RecedeHistoricalLocation, domain.PresentationPop},
		{pathconfig.ResumeHistoricalLocation, domain.PresentationNone},
		{pathconfig.RefreshHistoricalLocation, domain.PresentationRefresh},
	}

	configs := map[string]*pathconfig.Configuration{
		"empty":  pathconfig.New(),
		"loaded": load(t, fixture),
		"overriding": load(t, `{"rules": [
			{"patterns": [".*"], "properties": {"presentation": "replace_root", "historical_location": false}}
		]}`),
	}

	for name, cfg := range configs {
		for _, tt := range tests {
			t.Run(name+tt.path, func(t *testing.T) {
				props := cfg.Properties(tt.path)
				assert.True(t, props.HistoricalLocation())
				assert.Equal(t, tt.want, props.Presentation())
			})
		}
	}
}

func TestSettings(t *testing.T) {
	cfg := load(t, fixture)

	assert.Equal(t, map[string]any{"screenshots_enabled": true}, cfg.Settings())
}

func TestDecode_MissingRules(t *testing.T) {
	_, err := pathconfig.Decode([]byte(`{"settings": {}}`), pathconfig.FormatJSON)

	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestLoad_FileSourceYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "path-configuration.yaml")
	doc := `
settings:
  tabs: 2
rules:
  - patterns: ["/modal$"]
    properties:
      context: modal
      modal_style: form_sheet
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := pathconfig.New(pathconfig.WithSources(pathconfig.FileSource(path)))
	require.NoError(t, cfg.Load(context.Background()))

	props := cfg.Properties("/a/modal")
	assert.Equal(t, domain.ContextModal, props.Context())
	assert.Equal(t, domain.ModalStyleFormSheet, props.ModalStyle())
	assert.Equal(t, 2, cfg.Settings()["tabs"])
}

func TestLoad_FailingSourceKeepsPreviousRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote, err := url.Parse(srv.URL + "/config.json")
	require.NoError(t, err)

	var updates atomic.Int32
	cfg := pathconfig.New(
		pathconfig.WithOnUpdate(func() { updates.Add(1) }),
		pathconfig.WithSources(
			pathconfig.DataSource([]byte(fixture)),
			pathconfig.ServerSource(remote),
		),
	)

	err = cfg.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), updates.Load())
	assert.Equal(t, "numbers", cfg.Properties("/numbers").ViewController())
	assert.True(t, cfg.Properties(pathconfig.RecedeHistoricalLocation).HistoricalLocation())
}

func TestLoadAsync_ServerSourceUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"rules": [{"patterns": ["/remote$"], "properties": {"context": "modal"}}]}`))
	}))
	defer srv.Close()

	remote, err := url.Parse(srv.URL + "/config.json")
	require.NoError(t, err)

	cache := memory.NewStore()
	ctx := context.Background()

	first := pathconfig.New(pathconfig.WithCache(cache), pathconfig.WithSources(pathconfig.ServerSource(remote)))
	require.NoError(t, <-first.LoadAsync(ctx))
	assert.Equal(t, domain.ContextModal, first.Properties("/remote").Context())

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	// A second configuration sees the cached rules before its own fetch completes.
	srv.Close()
	second := pathconfig.New(pathconfig.WithCache(cache), pathconfig.WithSources(pathconfig.ServerSource(remote)))
	done := second.LoadAsync(ctx)
	assert.Equal(t, domain.ContextModal, second.Properties("/remote").Context())
	assert.Error(t, <-done)
	assert.Equal(t, domain.ContextModal, second.Properties("/remote").Context())
	assert.Equal(t, int32(1), hits.Load())
}
