package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NERVsystems/staticsnap/pkg/config"
	"github.com/NERVsystems/staticsnap/pkg/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Maps:      config.MapsConfig{Host: "maps.google.com", Sensor: "false"},
		Cache:     config.CacheConfig{Size: 16, TTL: time.Minute},
		RateLimit: config.RateLimitConfig{RPS: 10, Burst: 10},
		Log:       config.LogConfig{Level: "info"},
	}
}

func TestNewServer(t *testing.T) {
	s, err := NewServer(testConfig(), testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if s == nil {
		t.Fatal("NewServer() returned nil server")
	}

	names := s.Tools()
	if len(names) != 6 {
		t.Errorf("Tools() = %v, want 6 tools", names)
	}
}

func TestNewServerInvalidConfig(t *testing.T) {
	if _, err := NewServer(nil, testutil.DiscardLogger()); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := testConfig()
	cfg.Maps.Host = ""
	if _, err := NewServer(cfg, testutil.DiscardLogger()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestServerServeStopsOnCancel(t *testing.T) {
	s, err := NewServer(testConfig(), testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	in, inWriter := io.Pipe()
	defer inWriter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Serve(ctx, in, io.Discard)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestNewMetricsServer(t *testing.T) {
	srv := NewMetricsServer(":0")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /metrics = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /other = %d, want 404", rec.Code)
	}
}
