package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(inspect.Report{
		URL:          "https://example.com/posts/new",
		Properties:   domain.Properties{"context": "modal", "b": 1},
		Context:      domain.ContextModal,
		Presentation: domain.PresentationDefault,
		Decision:     routing.DecisionNavigate,
		Handler:      "app-navigation",
	})

	assert.Contains(t, md, "# https://example.com/posts/new")
	assert.Contains(t, md, "**Decision:** `navigate` by `app-navigation`")
	assert.Contains(t, md, "| context | `modal` |")
	assert.Less(t, strings.Index(md, "- `b`"), strings.Index(md, "- `context`"))
}

func TestReportMarkdown_NoDecision(t *testing.T) {
	md := ReportMarkdown(inspect.Report{URL: "https://example.com/"})
	assert.NotContains(t, md, "Decision")
	assert.NotContains(t, md, "## Properties")
}

func TestNewRenderer_Plain(t *testing.T) {
	render := NewRenderer(true)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|__/")
}
