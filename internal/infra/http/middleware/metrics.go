package middleware

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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	importsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_imports_total",
			Help: "Total number of import attempts by outcome",
		},
		[]string{"outcome"},
	)

	importRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proposal_import_rows_total",
			Help: "Total number of canonical records produced by imports",
		},
	)

	importParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proposal_import_parse_failures_total",
			Help: "Total number of fields that needed a lossy parse fallback",
		},
	)

	statusUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proposal_status_updates_total",
			Help: "Total number of manual status updates",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordImport(outcome string, records, parseFailures int) {
	importsTotal.WithLabelValues(outcome).Inc()
	importRowsTotal.Add(float64(records))
	importParseFailures.Add(float64(parseFailures))
}

func RecordStatusUpdate() {
	statusUpdatesTotal.Inc()
}
