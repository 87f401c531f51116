package domain

import "fmt"

// TurboErrorKind is the closed taxonomy of visit failures.
type TurboErrorKind string

const (
	ErrKindNetworkFailure      TurboErrorKind = "network_failure"
	ErrKindTimeoutFailure      TurboErrorKind = "timeout_failure"
	ErrKindContentTypeMismatch TurboErrorKind = "content_type_mismatch"
	ErrKindPageLoadFailure     TurboErrorKind = "page_load_failure"
	ErrKindServiceUnavailable  TurboErrorKind = "service_unavailable"
	ErrKindHTTP                TurboErrorKind = "http"
)

// Sentinel status codes reported by the page for non-HTTP failures.
const (
	StatusNetworkFailure      = 0
	StatusTimeoutFailure      = -1
	StatusContentTypeMismatch = -2
)

// TurboError describes why a visit failed.
type TurboError struct {
	Kind       TurboErrorKind
	StatusCode int // only meaningful for ErrKindHTTP
}

// NewTurboError maps a signed status code onto the taxonomy.
func NewTurboError(statusCode int) *TurboError {
	switch statusCode {
	case StatusNetworkFailure:
		return &TurboError{Kind: ErrKindNetworkFailure}
	case StatusTimeoutFailure:
		return &TurboError{Kind: ErrKindTimeoutFailure}
	case StatusContentTypeMismatch:
		return &TurboError{Kind: ErrKindContentTypeMismatch}
	case 503:
		return &TurboError{Kind: ErrKindServiceUnavailable}
	default:
		return HTTPError(statusCode)
	}
}

// HTTPError builds an http(statusCode) error without sentinel mapping.
func HTTPError(statusCode int) *TurboError {
	return &TurboError{Kind: ErrKindHTTP, StatusCode: statusCode}
}

// PageLoadError is raised when the page never initializes its navigation script.
func PageLoadError() *TurboError {
	return &TurboError{Kind: ErrKindPageLoadFailure}
}

func (e *TurboError) Error() string {
	switch e.Kind {
	case ErrKindNetworkFailure:
		return "A network error occurred."
	case ErrKindTimeoutFailure:
		return "A network timeout occurred."
	case ErrKindContentTypeMismatch:
		return "The server returned an invalid content type."
	case ErrKindPageLoadFailure:
		return "The page could not be loaded due to a configuration error."
	case ErrKindServiceUnavailable:
		return "The service is temporarily unavailable."
	default:
		return fmt.Sprintf("There was an HTTP error (%d).", e.StatusCode)
	}
}

// Is makes errors.Is compare kind and status code.
func (e *TurboError) Is(target error) bool {
	t, ok := target.(*TurboError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.StatusCode == t.StatusCode
}
