package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ANSI escape codes for request logging.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs request id, method, path, status and duration,
// and records Prometheus metrics. Each request gets a short correlation
// id echoed back in the X-Request-Id header.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()[:8]
		w.Header().Set("X-Request-Id", requestID)

		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)

		elapsed := time.Since(start)
		if r.URL.Path != "/metrics" {
			recordRequest(r.Method, r.URL.Path, lrw.statusCode, elapsed)
		}
		log.Printf(
			"[%s] %s %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), requestID, r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(elapsed.Nanoseconds())/1e6,
		)
	})
}
