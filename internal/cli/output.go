package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/inspect"
)

// PrintReport writes r as indented JSON, or as rendered markdown.
// Markdown is styled only when plain is false.
func PrintReport(w io.Writer, r inspect.Report, asJSON, plain bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	out, err := tui.NewRenderer(plain)(tui.ReportMarkdown(r))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
