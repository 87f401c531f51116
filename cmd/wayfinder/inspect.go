package main

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Show the path configuration properties for a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0], false)
	},
}

var routeCmd = &cobra.Command{
	Use:   "route <url>",
	Short: "Explain how the navigator would route a URL",
	Long: `Resolves the properties for a URL and runs the default router over it:
same-host locations stay in the app, other web locations go to the browser
and anything else to the system. Nothing is opened.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0], true)
	},
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, routeCmd} {
		c.Flags().Bool("json", false, "Print the report as JSON")
		rootCmd.AddCommand(c)
	}
}

func runInspect(cmd *cobra.Command, raw string, decide bool) error {
	opts := commonOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	app, err := cli.AppConfiguration(opts)
	if err != nil {
		return err
	}
	u, err := inspect.ParseLocation(raw)
	if errors.Is(err, inspect.ErrRelativeLocation) {
		// Paths are resolved against the start location.
		if rel, perr := url.Parse(strings.TrimSpace(raw)); perr == nil {
			u, err = inspect.ParseLocation(app.StartLocation.ResolveReference(rel).String())
		}
	}
	if err != nil {
		return err
	}

	cfg, err := cli.NewConfiguration(cmd.Context(), opts, logger)
	if cfg == nil {
		return err
	}
	if err != nil {
		logger.Warn("path configuration partially loaded", "err", err)
	}

	inspector := cli.NewInspector(app, cfg, logger)
	report := inspector.Properties(u)
	if decide {
		report = inspector.Decide(cmd.Context(), u)
	}
	return cli.PrintReport(os.Stdout, report, opts.JSON, !tui.IsInteractive(os.Stdout))
}
