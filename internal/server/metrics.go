package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the HTTP layer.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cacheapi_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cacheapi_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds by method and route",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"method", "route"})

	productLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cacheapi_product_lookups_total",
		Help: "Product lookups by the source that served them",
	}, []string{"source"})
)
