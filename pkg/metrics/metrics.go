package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	completionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_completion_toggles_total",
			Help: "Lesson completion toggles recorded, by direction.",
		},
		[]string{"completed"},
	)

	lessonReorders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_reorders_total",
			Help: "Lesson reorder requests applied, by direction.",
		},
		[]string{"direction"},
	)

	slowQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_queries_total",
			Help: "Database queries exceeding the slow query threshold.",
		},
	)
)

// Middleware collects request count and latency metrics per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		requestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordCompletionToggle counts a lesson completion state change.
func RecordCompletionToggle(completed bool) {
	completionToggles.WithLabelValues(strconv.FormatBool(completed)).Inc()
}

// RecordReorder counts an applied lesson reorder.
func RecordReorder(direction string) {
	lessonReorders.WithLabelValues(direction).Inc()
}

// RecordSlowQuery counts a query that crossed the slow threshold.
func RecordSlowQuery() {
	slowQueries.Inc()
}
