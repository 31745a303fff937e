package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AnswerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "answer_request_duration_seconds",
		Help:    "Latency of calls to the chat completion endpoint.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	})

	AnswerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "answer_failures_total",
		Help: "Chat completion calls that produced no answer.",
	})
)
