// Package metrics exposes Prometheus collectors for store queries and
// transaction aggregations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paymentapi"

// Aggregation results.
const (
	ResultPage  = "page"
	ResultEmpty = "empty"
	ResultError = "error"
)

// Collector owns a private registry. A nil *Collector is valid and records
// nothing, so callers never need to guard.
type Collector struct {
	registry *prometheus.Registry

	queryDuration       *prometheus.HistogramVec
	aggregations        *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
}

// NewCollector registers all metrics on registry, or on a fresh registry when nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of store queries by operation and outcome.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation", "outcome"}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_total",
			Help:      "Transaction list aggregations by result.",
		}, []string{"result"}),
		aggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "End-to-end duration of transaction list aggregations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(c.queryDuration, c.aggregations, c.aggregationDuration)
	return c
}

// ObserveQuery records one store call. err decides the outcome label.
func (c *Collector) ObserveQuery(operation string, d time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.queryDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// ObserveAggregation records one aggregation with its result label.
func (c *Collector) ObserveAggregation(result string, d time.Duration) {
	if c == nil {
		return
	}
	c.aggregations.WithLabelValues(result).Inc()
	c.aggregationDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry; nil for a nil collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
