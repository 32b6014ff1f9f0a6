package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_requests_total",
		Help: "Analysis requests by outcome.",
	}, []string{"outcome"})

	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_duration_seconds",
		Help:    "End-to-end duration of one page analysis, fetch included.",
		Buckets: prometheus.DefBuckets,
	})
)
