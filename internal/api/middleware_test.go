package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/laps", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	id := rec.Header().Get("X-Request-Id")
	if len(id) != 8 {
		t.Errorf("X-Request-Id = %q, want 8 characters", id)
	}
}

func TestLoggingMiddleware_UniqueRequestIDs(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rec.Header().Get("X-Request-Id")] = true
	}
	if len(seen) != 20 {
		t.Errorf("got %d distinct request ids out of 20", len(seen))
	}
}

func TestStatusCodeColor(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, colorBoldGreen + "200" + colorReset},
		{302, colorYellow + "302" + colorReset},
		{404, colorBoldRed + "404" + colorReset},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := statusCodeColor(tt.code); got != tt.want {
			t.Errorf("statusCodeColor(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestRecordRequest_CollapsesUnmatchedPaths(t *testing.T) {
	unmatched := requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := promtestutil.ToFloat64(unmatched)

	recordRequest(http.MethodGet, "/definitely/not/a/route", 404, time.Millisecond)
	recordRequest(http.MethodGet, "/another/scanner/path", 404, time.Millisecond)

	if got := promtestutil.ToFloat64(unmatched); got != before+2 {
		t.Errorf("unmatched counter = %v, want %v", got, before+2)
	}
}

func TestRecordRequest_KeepsRegisteredPaths(t *testing.T) {
	counter := requestsTotal.WithLabelValues(http.MethodGet, "/api/laps", "200")
	before := promtestutil.ToFloat64(counter)

	recordRequest(http.MethodGet, "/api/laps", 200, time.Millisecond)

	if got := promtestutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter for /api/laps = %v, want %v", got, before+1)
	}
}

func TestLoggingResponseWriter_DefaultsTo200(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // implicit 200, WriteHeader never called
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
