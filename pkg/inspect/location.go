package inspect

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxLocationSize is 8KB, the usual request line limit of web servers.
	DefaultMaxLocationSize = 8192
	// EnvMaxLocationSize is the environment variable to override the default
	EnvMaxLocationSize = "WAYFINDER_MAX_LOCATION_SIZE"
)

var (
	ErrLocationTooLarge = errors.New("location exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("location contains invalid UTF-8 sequences")
	ErrEmptyLocation    = errors.New("location is empty")
	ErrRelativeLocation = errors.New("location must be an absolute URL")
)

// ParseLocation cleans untrusted input and parses it as an absolute URL.
// Oversized input and invalid UTF-8 are rejected; control characters are stripped.
func ParseLocation(raw string) (*url.URL, error) {
	clean, err := sanitize(raw)
	if err != nil {
		return nil, err
	}
	if clean == "" {
		return nil, ErrEmptyLocation
	}

	u, err := url.Parse(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %s", ErrRelativeLocation, clean)
	}
	return u, nil
}

func sanitize(input string) (string, error) {
	// Oversized input is rejected, never truncated.
	if limit := maxLocationSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLocationTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	input = strings.TrimSpace(input)
	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxLocationSize() int {
	if val := os.Getenv(EnvMaxLocationSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxLocationSize
}
