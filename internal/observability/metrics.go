// Package observability provides metrics and output formatting for the feed optimizer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "feedoptimizer"

// Metrics holds the Prometheus collectors for batch processing.
// Initialize once at startup; all operations are thread-safe via
// Prometheus's internal locking.
type Metrics struct {
	// BatchRequestsTotal counts batch optimize requests by status
	// (ok, bad_request, error).
	BatchRequestsTotal *prometheus.CounterVec

	// OptimizerRunsTotal counts optimizer executions by parameter and
	// result (success, failure).
	OptimizerRunsTotal *prometheus.CounterVec

	// ProductsOptimizedTotal counts products modified, by optimizer
	// parameter.
	ProductsOptimizedTotal *prometheus.CounterVec

	// BatchDurationSeconds measures end-to-end batch processing time.
	BatchDurationSeconds prometheus.Histogram
}

// NewMetrics creates and registers the collectors on a registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh
// registry so parallel tests do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BatchRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "batch_requests_total",
			Help:      "Batch optimize requests by status.",
		}, []string{"status"}),
		OptimizerRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "optimizer_runs_total",
			Help:      "Optimizer executions by parameter and result.",
		}, []string{"optimizer", "result"}),
		ProductsOptimizedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "products_optimized_total",
			Help:      "Products modified by each optimizer.",
		}, []string{"optimizer"}),
		BatchDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "batch_duration_seconds",
			Help:      "End-to-end batch processing duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
