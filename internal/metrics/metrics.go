package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swatchcard_images_total",
			Help: "Images processed by the fetch pipeline, by outcome",
		},
		[]string{"outcome"},
	)

	ImageFetchSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swatchcard_image_fetch_seconds",
			Help:    "Duration of one fetch+normalize+place task in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swatchcard_reports_total",
			Help: "Report generation requests, by status",
		},
		[]string{"status"},
	)

	ReportRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swatchcard_report_rows",
			Help:    "Data rows per generated report",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)
