package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eccn"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	HTTPRequests           *prometheus.CounterVec
	HTTPDuration           *prometheus.HistogramVec
	Classifications        *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	IngestedDefinitions    prometheus.Counter
	IngestFailedBatches    prometheus.Counter
	CatalogSize            prometheus.Gauge
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classifications by source.",
		}, []string{"source"}),
		ClassificationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "End-to-end classification latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		IngestedDefinitions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_ingested_definitions_total",
			Help:      "ECCN definitions embedded and stored.",
		}),
		IngestFailedBatches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_failed_batches_total",
			Help:      "Embedding batches skipped during ingestion.",
		}),
		CatalogSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_index_size",
			Help:      "Definitions loaded in the vector index.",
		}),
	}
}

// ObserveClassification records one classification
func (m *Metrics) ObserveClassification(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(source).Inc()
	m.ClassificationDuration.Observe(elapsed.Seconds())
}
