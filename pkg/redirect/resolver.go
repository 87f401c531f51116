// Package redirect probes a location to tell whether it redirects, and where.
//
// Script-driven visits cannot observe cross-origin redirects, so a visit that
// fails without an HTTP status is probed with a plain GET that follows redirects.
package redirect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Kind classifies a probe result.
type Kind string

const (
	NoRedirect          Kind = "no_redirect"
	SameOriginRedirect  Kind = "same_origin_redirect"
	CrossOriginRedirect Kind = "cross_origin_redirect"
)

// Result is the outcome of a successful probe. Location is set for redirects.
type Result struct {
	Kind     Kind
	Location *url.URL
}

// ErrorKind separates transport failures from responses that failed validation.
type ErrorKind string

const (
	RequestFailed            ErrorKind = "request_failed"
	ResponseValidationFailed ErrorKind = "response_validation_failed"
)

// Reason details a response validation failure.
type Reason string

const (
	MissingURL             Reason = "missing_url"
	InvalidResponse        Reason = "invalid_response"
	UnacceptableStatusCode Reason = "unacceptable_status_code"
)

// ResolveError is returned when the probe cannot produce a Result.
type ResolveError struct {
	Kind       ErrorKind
	Reason     Reason // only for ResponseValidationFailed
	StatusCode int    // only for UnacceptableStatusCode
	Err        error  // only for RequestFailed
}

func (e *ResolveError) Error() string {
	switch {
	case e.Kind == RequestFailed:
		return fmt.Sprintf("redirect probe failed: %v", e.Err)
	case e.Reason == UnacceptableStatusCode:
		return fmt.Sprintf("redirect probe response invalid: %s (%d)", e.Reason, e.StatusCode)
	default:
		return fmt.Sprintf("redirect probe response invalid: %s", e.Reason)
	}
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolver performs the probe.
type Resolver struct {
	client *http.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the client used for probing. It must follow redirects.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithTimeout bounds each probe.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		c := *r.client
		c.Timeout = timeout
		r.client = &c
	}
}

// New creates a resolver using a client with default redirect handling.
func New(opts ...Option) *Resolver {
	r := &Resolver{client: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve issues a GET to location and compares the final URL with it.
// A different host means a cross-origin redirect.
func (r *Resolver) Resolve(ctx context.Context, location *url.URL) (Result, error) {
	if location == nil {
		return Result{}, &ResolveError{Kind: ResponseValidationFailed, Reason: MissingURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
	if err != nil {
		return Result{}, &ResolveError{Kind: RequestFailed, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, &ResolveError{Kind: RequestFailed, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &ResolveError{Kind: ResponseValidationFailed, Reason: UnacceptableStatusCode, StatusCode: resp.StatusCode}
	}
	if resp.Request == nil {
		return Result{}, &ResolveError{Kind: ResponseValidationFailed, Reason: InvalidResponse}
	}
	final := resp.Request.URL
	if final == nil {
		return Result{}, &ResolveError{Kind: ResponseValidationFailed, Reason: MissingURL}
	}

	if final.String() == location.String() {
		return Result{Kind: NoRedirect}, nil
	}
	if final.Host != location.Host {
		return Result{Kind: CrossOriginRedirect, Location: final}, nil
	}
	return Result{Kind: SameOriginRedirect, Location: final}, nil
}
