// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for DatasetLoads.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulsreq_dataset_loads_total",
			Help: "Dataset loads by game and result",
		},
		[]string{"game", "result"},
	)

	DatasetCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "soulsreq_dataset_cache_hits_total",
			Help: "Dataset fetches served from the cache",
		},
	)

	Verdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulsreq_verdicts_total",
			Help: "Usability verdicts returned by the API",
		},
		[]string{"game", "verdict"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soulsreq_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)
