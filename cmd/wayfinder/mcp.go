package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes property resolution and route decisions as MCP tools, and the
path configuration as an MCP resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := cli.CreateLogger(opts.Debug)
		log.SetOutput(os.Stderr)

		app, err := cli.AppConfiguration(opts)
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

		srv := mcp.NewServer(cli.NewInspector(app, cfg, logger), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("Starting Wayfinder MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()
			if err := srv.ServeSSE(sigCtx, port); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
