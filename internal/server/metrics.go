package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimatch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_evaluations_total",
			Help: "Total matcher evaluations by outcome",
		},
		[]string{"outcome"},
	)

	compileErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_compile_errors_total",
			Help: "Total config compilation failures by error kind",
		},
		[]string{"kind"},
	)

	matcherCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unimatch_matcher_cache_hits_total",
			Help: "Compiled-matcher cache hits",
		},
	)

	matcherCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unimatch_matcher_cache_misses_total",
			Help: "Compiled-matcher cache misses",
		},
	)
)

// MetricsMiddleware instruments HTTP requests with Prometheus metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		endpoint := r.URL.Path
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func recordEvaluation(matched bool) {
	if matched {
		evaluationsTotal.WithLabelValues("matched").Inc()
	} else {
		evaluationsTotal.WithLabelValues("no_match").Inc()
	}
}
