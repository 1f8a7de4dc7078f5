package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avalosmendoza/wedding-backend/pkg/metrics"
)

// Metrics records request counts and latency per route pattern. The chi
// pattern keeps the label cardinality bounded regardless of path params.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := chi.RouteContext(r.Context()).RoutePattern()
			m.Observe(r.Method, path, recorder.status, time.Since(start))
		})
	}
}
