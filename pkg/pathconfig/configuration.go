package pathconfig

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Configuration resolves locations to merged property bags using an ordered rule table.
// Lookups are safe while remote sources are being applied from another goroutine.
type Configuration struct {
	mu                sync.RWMutex
	rules             []Rule
	settings          map[string]any
	matchQueryStrings bool

	sources  []Source
	cache    ports.ConfigCache
	client   *http.Client
	logger   *slog.Logger
	onUpdate func()
}

// Option configures a Configuration.
type Option func(*Configuration)

// WithLogger sets the logger used for load diagnostics and invalid patterns.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Configuration) {
		c.logger = logger
	}
}

// WithSources sets the ordered list of sources applied by Load.
func WithSources(sources ...Source) Option {
	return func(c *Configuration) {
		c.sources = sources
	}
}

// WithCache stores fetched server documents and serves them before the next fetch.
func WithCache(cache ports.ConfigCache) Option {
	return func(c *Configuration) {
		c.cache = cache
	}
}

// WithHTTPClient sets the client used for server sources.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Configuration) {
		c.client = client
	}
}

// WithMatchQueryStrings controls whether URL lookups include the query string.
func WithMatchQueryStrings(match bool) Option {
	return func(c *Configuration) {
		c.matchQueryStrings = match
	}
}

// WithOnUpdate registers a callback invoked after every successful source application.
func WithOnUpdate(fn func()) Option {
	return func(c *Configuration) {
		c.onUpdate = fn
	}
}

// New creates a configuration holding only the historical location rules.
// Call Load or LoadAsync to apply the configured sources.
func New(opts ...Option) *Configuration {
	c := &Configuration{
		rules:             HistoricalLocationRules(),
		settings:          map[string]any{},
		matchQueryStrings: true,
		client:            http.DefaultClient,
		logger:            logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Properties merges the properties of every rule matching path, in table order.
// Later rules overwrite earlier keys. No match yields an empty bag.
func (c *Configuration) Properties(path string) domain.Properties {
	c.mu.RLock()
	defer c.mu.RUnlock()

	props := domain.Properties{}
	for _, rule := range c.rules {
		if rule.Match(path) {
			props.Merge(rule.Properties)
		}
	}
	return props
}

// PropertiesForURL looks up u by path, or by "path?query" when query matching is on.
func (c *Configuration) PropertiesForURL(u *url.URL) domain.Properties {
	if u == nil {
		return domain.Properties{}
	}
	if c.MatchQueryStrings() && u.RawQuery != "" {
		return c.Properties(u.Path + "?" + u.RawQuery)
	}
	return c.Properties(u.Path)
}

// MatchQueryStrings reports whether URL lookups include the query string.
func (c *Configuration) MatchQueryStrings() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchQueryStrings
}

// SetMatchQueryStrings toggles query string matching.
func (c *Configuration) SetMatchQueryStrings(match bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matchQueryStrings = match
}

// Settings returns a copy of the top-level settings object.
func (c *Configuration) Settings() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.settings))
	for k, v := range c.settings {
		out[k] = v
	}
	return out
}

// Rules returns a copy of the current rule table, historical rules included.
func (c *Configuration) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Apply replaces settings and rules with doc, then re-appends the historical rules.
func (c *Configuration) Apply(doc *Document) {
	rules := make([]Rule, 0, len(doc.Rules)+3)
	for _, r := range doc.Rules {
		r.compile(c.logger)
		rules = append(rules, r)
	}
	rules = append(rules, HistoricalLocationRules()...)

	settings := doc.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	c.mu.Lock()
	c.rules = rules
	c.settings = settings
	c.mu.Unlock()

	if c.onUpdate != nil {
		c.onUpdate()
	}
}
