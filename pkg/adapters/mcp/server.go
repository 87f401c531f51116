package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configurationURI = "wayfinder://configuration"

// LocationArgs are the arguments shared by the location tools.
type LocationArgs struct {
	URL string `json:"url"`
}

// Server exposes an inspector as an MCP server, so agents can ask how a
// location would be presented before anything is navigated.
type Server struct {
	inspector *inspect.Inspector
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(inspector *inspect.Inspector, opts ...Option) *Server {
	s := &Server{
		inspector: inspector,
		mcpServer: server.NewMCPServer("wayfinder-mcp", strings.TrimSpace(wayfinder.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: resolve_properties
	propertiesTool := mcp.NewTool("resolve_properties",
		mcp.WithDescription("Resolve the path configuration properties and presentation attributes for a URL."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Absolute URL to resolve")),
		mcp.WithOutputSchema[inspect.Report](),
	)
	s.mcpServer.AddTool(propertiesTool, mcp.NewStructuredToolHandler(s.handleResolveProperties))

	// TOOL: decide_route
	routeTool := mcp.NewTool("decide_route",
		mcp.WithDescription("Explain whether the navigator would navigate to a URL in-app or hand it off, and which handler decides."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Absolute URL to route")),
		mcp.WithOutputSchema[inspect.Report](),
	)
	s.mcpServer.AddTool(routeTool, mcp.NewStructuredToolHandler(s.handleDecideRoute))
}

func (s *Server) handleResolveProperties(ctx context.Context, request mcp.CallToolRequest, args LocationArgs) (inspect.Report, error) {
	u, err := inspect.ParseLocation(args.URL)
	if err != nil {
		return inspect.Report{}, err
	}
	return s.inspector.Properties(u), nil
}

func (s *Server) handleDecideRoute(ctx context.Context, request mcp.CallToolRequest, args LocationArgs) (inspect.Report, error) {
	u, err := inspect.ParseLocation(args.URL)
	if err != nil {
		return inspect.Report{}, err
	}
	report := s.inspector.Decide(ctx, u)
	s.logger.Debug("MCP route decided", "url", report.URL, "decision", report.Decision, "handler", report.Handler)
	return report, nil
}

func (s *Server) registerResources() {
	// EXPOSE: wayfinder://configuration
	s.mcpServer.AddResource(mcp.NewResource(configurationURI, "Current Path Configuration",
		mcp.WithMIMEType("application/json"),
	), s.readConfiguration)
}

func (s *Server) readConfiguration(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg := s.inspector.Configuration()
	jsonBytes, err := json.Marshal(pathconfig.Document{
		Settings: cfg.Settings(),
		Rules:    cfg.Rules(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      configurationURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
