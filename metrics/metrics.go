package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayscout_listings_normalized_total",
			Help: "Total number of raw listings turned into canonical listings",
		},
		[]string{"source"},
	)

	ListingsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayscout_listings_dropped_total",
			Help: "Total number of raw listings dropped because a required field was missing",
		},
		[]string{"source", "reason"},
	)

	DetailsMerged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayscout_details_merged_total",
			Help: "Total number of detail attribute sets merged into listings",
		},
		[]string{"source"},
	)

	ScrapeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayscout_scrape_errors_total",
			Help: "Total number of failed search or detail fetches",
		},
		[]string{"source", "stage"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stayscout_analysis_duration_seconds",
			Help:    "Duration of scoring, classification and aggregation for one search run",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
)
