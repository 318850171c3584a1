package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveBuild(OutcomeOK, 420)
	ObserveBuild(OutcomeURLTooLong, 2500)
	ObserveToolCall("encode_polyline", false, time.Now())
	ObserveToolCall("decode_polyline", true, time.Now())
	CacheHits.Inc()
	CacheMisses.Inc()
	RateLimitWaits.WithLabelValues("clip_path").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		`staticsnap_snapshot_builds_total{outcome="ok"}`,
		`staticsnap_snapshot_builds_total{outcome="url_too_long"}`,
		`staticsnap_snapshot_url_length_chars_count`,
		`staticsnap_tool_calls_total{status="ok",tool="encode_polyline"}`,
		`staticsnap_tool_calls_total{status="error",tool="decode_polyline"}`,
		`staticsnap_tool_call_duration_seconds_bucket`,
		`staticsnap_tool_ratelimit_waits_total{tool="clip_path"}`,
		`staticsnap_cache_hits_total`,
		`staticsnap_cache_misses_total`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
