// Package metrics exposes the Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sign-in outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeUnknownProvider = "unknown_provider"
	OutcomeDeclined        = "declined"
	OutcomeExchangeFailed  = "exchange_failed"
	OutcomeProfileFailed   = "profile_failed"
	OutcomeStorageFailed   = "storage_failed"
)

var (
	SignInAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskapp",
		Subsystem: "auth",
		Name:      "signin_attempts_total",
		Help:      "Sign-in callback outcomes by provider.",
	}, []string{"provider", "outcome"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskapp",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// HTTPMiddleware records request latency per route. The route template is
// used instead of the raw path so ids do not explode the cardinality.
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
