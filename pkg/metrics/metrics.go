package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekly_submissions_total",
			Help: "Weekly summary submissions by write mode",
		},
		[]string{"mode"}, // create | edit
	)

	ReplacedSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weekly_submissions_replaced_total",
			Help: "Prior submissions removed by replace-on-conflict",
		},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekly_reports_generated_total",
			Help: "Report generation attempts by data source and result",
		},
		[]string{"source", "result"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekly_exports_total",
			Help: "Raw data exports by format",
		},
		[]string{"format"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weekly_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
