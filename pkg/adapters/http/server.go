package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

// Server answers diagnostic questions about one path configuration and router.
type Server struct {
	Inspector *inspect.Inspector
	Streams   *StreamManager

	metrics    http.Handler
	apiVersion string
	logger     *slog.Logger
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams shares a stream manager, usually one already fed by
// pathconfig.WithOnUpdate through ConfigurationUpdated.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) {
		s.Streams = streams
	}
}

// NewHandler creates the HTTP handler for inspector.
func NewHandler(inspector *inspect.Inspector, opts ...Option) (http.Handler, error) {
	s := &Server{
		Inspector: inspector,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	s.apiVersion = doc.Info.Version

	validate, err := validateRequests(doc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Get("/configuration", s.GetConfiguration)
		r.Get("/properties", s.GetProperties)
		r.Get("/route", s.GetRoute)
		r.Get("/events", s.SubscribeEvents)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Wayfinder Diagnostics API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetHealth", map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetInfo", map[string]string{
		"app":         "wayfinder-http",
		"navigator":   s.Inspector.App().Name,
		"version":     strings.TrimSpace(wayfinder.Version),
		"api_version": s.apiVersion,
	})
}

// GetConfiguration handles the GET /configuration request.
func (s *Server) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg := s.Inspector.Configuration()
	s.writeJSON(w, "GetConfiguration", pathconfig.Document{
		Settings: cfg.Settings(),
		Rules:    cfg.Rules(),
	})
}

// GetProperties handles the GET /properties request.
func (s *Server) GetProperties(w http.ResponseWriter, r *http.Request) {
	u, ok := s.location(w, r, "GetProperties")
	if !ok {
		return
	}
	s.writeJSON(w, "GetProperties", s.Inspector.Properties(u))
}

// GetRoute handles the GET /route request.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	u, ok := s.location(w, r, "GetRoute")
	if !ok {
		return
	}
	s.writeJSON(w, "GetRoute", s.Inspector.Decide(r.Context(), u))
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// location binds the required url query parameter.
func (s *Server) location(w http.ResponseWriter, r *http.Request, op string) (*url.URL, bool) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "url", r.URL.Query(), &raw); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter url: %v", err), http.StatusBadRequest)
		s.logger.Warn(op+": invalid url parameter", "err", err)
		return nil, false
	}
	u, err := inspect.ParseLocation(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid parameter url: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return u, true
}

func (s *Server) writeJSON(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(op+" response encode failed", "err", err)
	}
}
