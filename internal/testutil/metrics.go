package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/game-library-service/internal/metrics"
)

// NewTelemetry sets up OTel-backed metrics for a test and tears them down on
// cleanup. The returned func scrapes the Prometheus handler.
func NewTelemetry(t testing.TB) (*metrics.Recorder, func() string) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	scrape := func() string {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		body, _ := io.ReadAll(rr.Body)
		return string(body)
	}
	return rec, scrape
}
