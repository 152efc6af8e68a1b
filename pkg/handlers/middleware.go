package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/sunelevation/pkg/logger"
	"github.com/spencer-p/sunelevation/pkg/metrics"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// logRequests attaches a request scoped logger to the context and logs the
// outcome of every request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithKV(r.Context(), "method", r.Method, "path", r.URL.Path)
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r.WithContext(ctx))

		logger.InfoKV(ctx, "request",
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start))
	})
}

func measureRequests(next http.Handler) http.Handler {
	return metrics.LatencyHandler(routeTemplate, next)
}

// routeTemplate labels metrics by the matched route rather than the raw URL.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return ""
}
