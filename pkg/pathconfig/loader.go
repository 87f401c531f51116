package pathconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// SourceKind identifies where a document comes from.
type SourceKind string

const (
	SourceData   SourceKind = "data"
	SourceFile   SourceKind = "file"
	SourceServer SourceKind = "server"
)

// Source is one entry of the ordered source list.
type Source struct {
	Kind SourceKind
	Data []byte
	Path string
	URL  *url.URL
}

// DataSource serves an in-memory document, usually one embedded in the binary.
func DataSource(data []byte) Source { return Source{Kind: SourceData, Data: data} }

// FileSource reads a JSON or YAML document from disk. The extension picks the format.
func FileSource(path string) Source { return Source{Kind: SourceFile, Path: path} }

// ServerSource fetches a document over HTTP.
func ServerSource(u *url.URL) Source { return Source{Kind: SourceServer, URL: u} }

func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		return "file:" + s.Path
	case SourceServer:
		if s.URL != nil {
			return "server:" + s.URL.String()
		}
		return "server:<nil>"
	default:
		return "data"
	}
}

// Load applies every source in order. A failing source is logged and skipped,
// leaving the previously applied rules in effect. The joined failures are returned.
func (c *Configuration) Load(ctx context.Context) error {
	var errs []error
	for _, src := range c.sources {
		if src.Kind == SourceServer {
			c.applyCached(ctx, src)
		}
		if err := c.loadSource(ctx, src); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadAsync applies local sources and cached server documents before returning,
// then fetches server sources in the background. The returned channel receives
// the joined fetch failures (nil on success) and is then closed.
func (c *Configuration) LoadAsync(ctx context.Context) <-chan error {
	var remote []Source
	var errs []error
	for _, src := range c.sources {
		if src.Kind == SourceServer {
			c.applyCached(ctx, src)
			remote = append(remote, src)
			continue
		}
		if err := c.loadSource(ctx, src); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan error, 1)
	go func() {
		defer close(done)
		for _, src := range remote {
			if err := c.loadSource(ctx, src); err != nil {
				errs = append(errs, err)
			}
		}
		done <- errors.Join(errs...)
	}()
	return done
}

func (c *Configuration) loadSource(ctx context.Context, src Source) error {
	data, format, err := c.read(ctx, src)
	if err != nil {
		c.logger.Warn("path configuration source failed", "source", src.String(), "error", err)
		return fmt.Errorf("failed to load %s: %w", src, err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		c.logger.Warn("path configuration source is invalid", "source", src.String(), "error", err)
		return fmt.Errorf("failed to load %s: %w", src, err)
	}

	c.Apply(doc)
	c.logger.Debug("path configuration applied", "source", src.String(), "rules", len(doc.Rules))

	if src.Kind == SourceServer && c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey(src), data); err != nil {
			c.logger.Warn("failed to cache path configuration", "source", src.String(), "error", err)
		}
	}
	return nil
}

func (c *Configuration) applyCached(ctx context.Context, src Source) {
	if c.cache == nil {
		return
	}
	data, err := c.cache.Get(ctx, cacheKey(src))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn("failed to read cached path configuration", "source", src.String(), "error", err)
		}
		return
	}
	doc, err := Decode(data, SniffFormat(data))
	if err != nil {
		c.logger.Warn("cached path configuration is invalid", "source", src.String(), "error", err)
		return
	}
	c.Apply(doc)
	c.logger.Debug("cached path configuration applied", "source", src.String())
}

func (c *Configuration) read(ctx context.Context, src Source) ([]byte, Format, error) {
	switch src.Kind {
	case SourceData:
		return src.Data, SniffFormat(src.Data), nil
	case SourceFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, "", err
		}
		return data, FormatForPath(src.Path), nil
	case SourceServer:
		return c.fetch(ctx, src.URL)
	default:
		return nil, "", fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

func (c *Configuration) fetch(ctx context.Context, u *url.URL) ([]byte, Format, error) {
	if u == nil {
		return nil, "", domain.ErrMissingURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	format := FormatForPath(u.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		format = FormatYAML
	}
	return data, format, nil
}

func cacheKey(src Source) string {
	return "pathconfig:" + src.URL.String()
}
