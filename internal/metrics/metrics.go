// Package metrics holds the prometheus collectors of the API process.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirewise_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hirewise_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	aiCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirewise_ai_calls_total",
			Help: "Total number of generative model calls",
		},
		[]string{"operation", "status"}, // status: success/error/malformed
	)

	aiDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hirewise_ai_call_duration_seconds",
			Help:    "Latency of generative model calls",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"operation"},
	)

	answerScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hirewise_answer_overall_score",
			Help:    "Overall score of evaluated answers",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
		[]string{"mode"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirewise_analysis_cache_lookups_total",
			Help: "Resume analysis cache lookups",
		},
		[]string{"result"}, // hit/miss/error
	)
)

// ObserveAICall records one model call.
func ObserveAICall(operation, status string, elapsed time.Duration) {
	aiCalls.WithLabelValues(operation, status).Inc()
	aiDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func ObserveAnswerScore(mode string, score int) {
	answerScores.WithLabelValues(mode).Observe(float64(score))
}

func ObserveCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

// Middleware counts requests per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves /metrics.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
