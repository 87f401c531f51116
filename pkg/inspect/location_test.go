package inspect

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLocation_SizeLimit(t *testing.T) {
	prefix := "https://example.com/"
	limit := DefaultMaxLocationSize

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := prefix + strings.Repeat("a", tt.size-len(prefix))
			_, err := ParseLocation(raw)
			if tt.wantErr {
				if !errors.Is(err, ErrLocationTooLarge) {
					t.Errorf("ParseLocation() expected ErrLocationTooLarge for size %d, got %v", tt.size, err)
				}
			} else if err != nil {
				t.Errorf("ParseLocation() unexpected error: %v", err)
			}
		})
	}
}

func TestParseLocation_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal", "https://example.com/posts", "https://example.com/posts"},
		{"Surrounding Space", "  https://example.com/\n", "https://example.com/"},
		{"ANSI Code", "https://example.com/\x1b[31mred", "https://example.com/[31mred"},
		{"Null Byte", "https://exa\x00mple.com/", "https://example.com/"},
		{"Tab Inside", "https://example.com/a\tb", "https://example.com/ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseLocation(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if u.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, u.String())
			}
		})
	}
}

func TestParseLocation_Rejected(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyLocation},
		{"  \x07 ", ErrEmptyLocation},
		{"/posts/new", ErrRelativeLocation},
		{"\xbd\xb2\x3d\xbc", ErrInvalidUTF8},
	}
	for _, tt := range tests {
		if _, err := ParseLocation(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestParseLocation_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxLocationSize, "20")

	if _, err := ParseLocation("https://example.com/long"); err == nil {
		t.Error("Expected error for location > 20 when env var is set")
	}
	if _, err := ParseLocation("https://a.test/"); err != nil {
		t.Errorf("Unexpected error for valid location: %v", err)
	}
}
