package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Uploaded files by final status.",
	}, []string{"status"})

	PredictionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prediction_requests_total",
		Help: "Outbound calls to the prediction service.",
	}, []string{"endpoint", "result"})

	PredictionRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prediction_request_duration_seconds",
		Help:    "Latency of outbound calls to the prediction service.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"endpoint"})

	PredictionBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prediction_breaker_state",
		Help: "Prediction client circuit breaker state (0 closed, 1 half-open, 2 open).",
	})

	RealtimeClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_clients",
		Help: "Connected websocket clients on this instance.",
	})

	RealtimeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_total",
		Help: "Published realtime events by name.",
	}, []string{"event"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
