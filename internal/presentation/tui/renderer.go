package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// With plain set, markdown is returned untouched, for pipes and files.
func NewRenderer(plain bool) func(string) (string, error) {
	if plain {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ReportMarkdown lays a report out as a markdown document.
func ReportMarkdown(r inspect.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.URL)

	if r.Handler != "" {
		fmt.Fprintf(&b, "**Decision:** `%s` by `%s`\n\n", r.Decision, r.Handler)
	}

	b.WriteString("| Attribute | Value |\n|---|---|\n")
	rows := [][2]string{
		{"context", string(r.Context)},
		{"presentation", string(r.Presentation)},
		{"modal_style", string(r.ModalStyle)},
		{"query_string_presentation", string(r.QueryStringPresentation)},
		{"view_controller", r.ViewController},
		{"pull_to_refresh_enabled", fmt.Sprint(r.PullToRefreshEnabled)},
		{"modal_dismiss_gesture_enabled", fmt.Sprint(r.ModalDismissGestureEnabled)},
		{"animated", fmt.Sprint(r.Animated)},
		{"historical_location", fmt.Sprint(r.HistoricalLocation)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | `%s` |\n", row[0], row[1])
	}

	if len(r.Properties) > 0 {
		b.WriteString("\n## Properties\n\n")
		keys := make([]string, 0, len(r.Properties))
		for k := range r.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- `%s`: `%v`\n", k, r.Properties[k])
		}
	}
	return b.String()
}
