package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cleaningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_cleanings_total",
		Help: "Total number of datasets cleaned",
	})

	rowsCleanedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_rows_cleaned_total",
		Help: "Total number of rows cleaned",
	})

	cleanCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_cache_hits_total",
		Help: "Cleaning requests served from the result cache",
	})

	cleanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tabclean_clean_duration_seconds",
		Help:    "Wall time spent cleaning a dataset",
		Buckets: prometheus.DefBuckets,
	})
)
