package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calibrator",
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the exchange-rate provider, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "calibrator",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of exchange-rate provider requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calibrator",
		Name:      "pipeline_runs_total",
		Help:      "Convert-and-plot runs, by outcome.",
	}, []string{"outcome"})
)

const (
	EndpointLatest     = "latest"
	EndpointTimeseries = "timeseries"

	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeNetwork    = "network_error"
	OutcomeData       = "data_error"
)
