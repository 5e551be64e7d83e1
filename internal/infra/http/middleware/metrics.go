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

	interactionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_logged_total",
			Help: "Total number of interactions logged",
		},
		[]string{"type"},
	)

	meetingsCascaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meetings_cascaded_total",
			Help: "Total number of meetings derived from interactions",
		},
	)

	cascadeSoftFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_soft_failures_total",
			Help: "Total number of swallowed meeting-synthesis failures",
		},
	)

	notificationsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_read_total",
			Help: "Total number of notifications marked as read",
		},
	)

	tasksMarkedOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_marked_overdue_total",
			Help: "Total number of tasks flipped to OVERDUE by the worker",
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

func RecordInteractionLogged(interactionType string) {
	interactionsLogged.WithLabelValues(interactionType).Inc()
}

func RecordMeetingCascaded() {
	meetingsCascaded.Inc()
}

func RecordCascadeSoftFailure() {
	cascadeSoftFailures.Inc()
}

func RecordNotificationRead() {
	notificationsRead.Inc()
}

func RecordTasksMarkedOverdue(n int) {
	tasksMarkedOverdue.Add(float64(n))
}
