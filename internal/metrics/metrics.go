// Package metrics provides Prometheus metrics for procurement runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"procure-service/internal/procure/model"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"source", "status"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procure_run_duration_seconds",
			Help:    "Time taken by a pipeline run, file parsing included",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	// lines by how their garment was resolved
	LinesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_po_lines_total",
			Help: "Purchase order lines processed, by resolution method",
		},
		[]string{"method"},
	)

	WarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_warnings_total",
			Help: "Data quality warnings raised during runs",
		},
		[]string{"code"},
	)

	PurchaseOrdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procure_purchase_orders_total",
			Help: "Supplier purchase orders generated",
		},
	)
)

// RecordRun records a successful run. source is "http" or "cli".
func RecordRun(source string, res model.Result, duration time.Duration) {
	RunsTotal.WithLabelValues(source, "ok").Inc()
	RunDuration.WithLabelValues(source).Observe(duration.Seconds())

	s := res.Summary
	LinesResolved.WithLabelValues(string(model.MethodDictionary)).Add(float64(s.DictionaryHits))
	LinesResolved.WithLabelValues(string(model.MethodFuzzy)).Add(float64(s.FuzzyHits))
	LinesResolved.WithLabelValues(string(model.MethodNone)).Add(float64(s.PoLines - s.DictionaryHits - s.FuzzyHits))
	for _, w := range res.Warnings {
		WarningsTotal.WithLabelValues(w.Code).Inc()
	}
	PurchaseOrdersTotal.Add(float64(len(res.PurchaseOrders)))
}

// RecordFailure records a run that ended with an error.
func RecordFailure(source string, duration time.Duration) {
	RunsTotal.WithLabelValues(source, "error").Inc()
	RunDuration.WithLabelValues(source).Observe(duration.Seconds())
}
