package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
settings:
  tabs: none
rules:
  - patterns: ["/new$"]
    properties:
      context: modal
`

func TestParseSources(t *testing.T) {
	sources, err := ParseSources([]string{"config.json", " https://example.com/config.json ", ""})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, pathconfig.SourceFile, sources[0].Kind)
	assert.Equal(t, "config.json", sources[0].Path)
	assert.Equal(t, pathconfig.SourceServer, sources[1].Kind)
	assert.Equal(t, "example.com", sources[1].URL.Host)
}

func TestAppConfiguration(t *testing.T) {
	t.Run("Name defaults to host", func(t *testing.T) {
		app, err := AppConfiguration(Options{Start: "https://example.com/"})
		require.NoError(t, err)
		assert.Equal(t, "example.com", app.Name)
	})

	t.Run("Relative start is rejected", func(t *testing.T) {
		_, err := AppConfiguration(Options{Start: "/home"})
		assert.Error(t, err)
	})
}

func TestNewCache(t *testing.T) {
	cache, err := NewCache(Options{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, cache)

	mr := miniredis.RunT(t)
	cache, err = NewCache(Options{Redis: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &redis.Store{}, cache)
}

func TestNewCache_Encrypted(t *testing.T) {
	mr := miniredis.RunT(t)
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	cache, err := NewCache(Options{Redis: mr.Addr(), CacheKey: key})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "doc", []byte(`{"rules":[]}`)))

	raw, err := mr.Get("wayfinder:config:doc")
	require.NoError(t, err)
	assert.NotContains(t, raw, "rules")

	got, err := cache.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, `{"rules":[]}`, string(got))

	_, err = NewCache(Options{CacheKey: "c2hvcnQ="})
	assert.Error(t, err)
}

func TestNewConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paths.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0644))

	updates := 0
	cfg, err := NewConfiguration(context.Background(), Options{Sources: []string{path}}, logging.NewNop(),
		pathconfig.WithOnUpdate(func() { updates++ }))
	require.NoError(t, err)

	assert.Equal(t, 1, updates)
	assert.Equal(t, "none", cfg.Settings()["tabs"])
	assert.Equal(t, "modal", cfg.Properties("/posts/new")[domain.KeyContext])
}

func TestNewConfiguration_MissingFile(t *testing.T) {
	cfg, err := NewConfiguration(context.Background(), Options{Sources: []string{"does-not-exist.json"}}, logging.NewNop())
	assert.Error(t, err)
	require.NotNil(t, cfg)
	// Historical location rules are always present.
	assert.Len(t, cfg.Rules(), 3)
}

func TestPrintReport(t *testing.T) {
	r := inspect.Report{URL: "https://example.com/", Context: domain.ContextDefault}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, r, true, true))
	var decoded inspect.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.URL, decoded.URL)

	buf.Reset()
	require.NoError(t, PrintReport(&buf, r, false, true))
	assert.Contains(t, buf.String(), "# https://example.com/")
}

func TestNewLocker(t *testing.T) {
	assert.Nil(t, NewLocker(Options{}))

	mr := miniredis.RunT(t)
	assert.IsType(t, &redis.Locker{}, NewLocker(Options{Redis: mr.Addr()}))
}

type countingLocker struct {
	locks, unlocks int
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.locks++
	return func(context.Context) error {
		l.unlocks++
		return nil
	}, nil
}

func TestRefreshOnce(t *testing.T) {
	updates := 0
	cfg := pathconfig.New(
		pathconfig.WithSources(pathconfig.DataSource([]byte(`{"rules":[]}`))),
		pathconfig.WithOnUpdate(func() { updates++ }),
	)
	locker := &countingLocker{}

	refreshOnce(context.Background(), cfg, time.Second, locker, logging.NewNop())

	assert.Equal(t, 1, updates)
	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks)
}

func TestRefresh_Disabled(t *testing.T) {
	done := make(chan struct{})
	go func() {
		Refresh(context.Background(), pathconfig.New(), 0, nil, logging.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Refresh with no interval should return immediately")
	}
}
