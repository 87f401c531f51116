package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *pathconfig.Configuration) {
	t.Helper()
	start, _ := url.Parse("https://example.com/")
	cfg := pathconfig.New()
	cfg.Apply(&pathconfig.Document{Rules: []pathconfig.Rule{
		pathconfig.NewRule([]string{"/new$"}, domain.Properties{domain.KeyContext: "modal"}),
	}})
	handler, err := NewHandler(inspect.New(domain.Configuration{Name: "demo", StartLocation: start}, cfg, nil), opts...)
	if err != nil {
		t.Fatalf("NewHandler failed: %v", err)
	}
	return handler, cfg
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger failed: %v", err)
	}
	if doc.Paths.Find("/route") == nil {
		t.Error("Expected /route in the document")
	}
}

func TestGetProperties(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := get(handler, "/properties?url="+url.QueryEscape("https://example.com/posts/new"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var report inspect.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if report.Context != domain.ContextModal {
		t.Errorf("Expected modal context, got %q", report.Context)
	}
	if report.Decision != "" {
		t.Errorf("Expected no decision, got %q", report.Decision)
	}
}

func TestGetRoute(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := get(handler, "/route?url="+url.QueryEscape("https://other.test/"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var report inspect.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if report.Decision != "cancel" || report.Handler != "browser" {
		t.Errorf("Expected browser cancel, got %s by %s", report.Decision, report.Handler)
	}
}

func TestGetRoute_InvalidLocation(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []string{
		"/route",
		"/route?url=",
		"/route?url=" + url.QueryEscape("/relative/path"),
	}
	for _, target := range tests {
		if w := get(handler, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestGetConfiguration(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := get(handler, "/configuration")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}

	var doc pathconfig.Document
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// One configured rule plus the three historical location rules.
	if len(doc.Rules) != 4 {
		t.Errorf("Expected 4 rules, got %d", len(doc.Rules))
	}
}

func TestGetInfoAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wayfinder_visits_started_total 0\n"))
	})
	handler, _ := newTestHandler(t, WithMetrics(metrics))

	w := get(handler, "/info")
	if !strings.Contains(w.Body.String(), `"api_version":"1.0.0"`) {
		t.Errorf("Expected api version in %s", w.Body.String())
	}

	w = get(handler, "/metrics")
	if !strings.Contains(w.Body.String(), "wayfinder_visits_started_total") {
		t.Error("Expected metrics output")
	}
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(logging.NewNop())
	handler, cfg := newTestHandler(t, WithStreams(streams))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	cfg.Apply(&pathconfig.Document{})
	streams.ConfigurationUpdated()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := w.Body.String()
	if !strings.Contains(output, "event: ping") {
		t.Error("Expected initial ping")
	}
	if !strings.Contains(output, `"type":"configuration_updated"`) {
		t.Error("Expected configuration update in SSE output")
	}
}
