package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// ErrNoSources is returned when a command needs at least one path configuration source.
var ErrNoSources = errors.New("no path configuration sources given")

// ParseSources maps http(s) URLs to server sources and anything else to file sources.
func ParseSources(raw []string) ([]pathconfig.Source, error) {
	sources := make([]pathconfig.Source, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://") {
			u, err := url.Parse(r)
			if err != nil {
				return nil, fmt.Errorf("invalid source %q: %w", r, err)
			}
			sources = append(sources, pathconfig.ServerSource(u))
			continue
		}
		sources = append(sources, pathconfig.FileSource(r))
	}
	return sources, nil
}

// AppConfiguration builds the navigator configuration from the start location.
func AppConfiguration(opts Options) (domain.Configuration, error) {
	start, err := url.Parse(opts.Start)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("invalid start location: %w", err)
	}
	if !start.IsAbs() {
		return domain.Configuration{}, fmt.Errorf("start location must be absolute: %s", opts.Start)
	}
	name := opts.Name
	if name == "" {
		name = start.Host
	}
	return domain.Configuration{Name: name, StartLocation: start}, nil
}

// NewCache returns the remote document cache selected by opts.
func NewCache(opts Options) (ports.ConfigCache, error) {
	var cache ports.ConfigCache = memory.NewStore()
	if opts.Redis != "" {
		cache = redis.New(opts.Redis, "", 0)
	}
	if opts.CacheKey == "" {
		return cache, nil
	}

	key, err := base64.StdEncoding.DecodeString(opts.CacheKey)
	if err != nil {
		return nil, fmt.Errorf("invalid cache key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid cache key: want 32 bytes, got %d", len(key))
	}
	return middleware.Chain(cache, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})), nil
}

// NewLocker returns a Redis locker when opts name a Redis server, nil otherwise.
func NewLocker(opts Options) ports.DistributedLocker {
	if opts.Redis == "" {
		return nil
	}
	return redis.New(opts.Redis, "", 0).Locker()
}

// NewConfiguration creates a path configuration over opts.Sources and loads it once.
// Load failures are returned with the configuration, which keeps whatever did apply.
func NewConfiguration(ctx context.Context, opts Options, logger *slog.Logger, extra ...pathconfig.Option) (*pathconfig.Configuration, error) {
	sources, err := ParseSources(opts.Sources)
	if err != nil {
		return nil, err
	}
	cache, err := NewCache(opts)
	if err != nil {
		return nil, err
	}

	cfgOpts := []pathconfig.Option{
		pathconfig.WithLogger(logger),
		pathconfig.WithSources(sources...),
		pathconfig.WithCache(cache),
		pathconfig.WithMatchQueryStrings(opts.MatchQueryStrings),
	}
	cfg := pathconfig.New(append(cfgOpts, extra...)...)
	return cfg, cfg.Load(ctx)
}

// NewInspector wires a configuration and the default router into an inspector.
func NewInspector(app domain.Configuration, cfg *pathconfig.Configuration, logger *slog.Logger, opts ...inspect.Option) *inspect.Inspector {
	router := routing.DefaultRouter(nil, nil, routing.WithLogger(logger))
	return inspect.New(app, cfg, router, opts...)
}

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout output).
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
