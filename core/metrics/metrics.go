package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inventory_sync"

// Document outcomes recorded during a reload.
const (
	DocumentCreated = "created"
	DocumentUpdated = "updated"
	DocumentFailed  = "failed"
	DocumentSkipped = "skipped"
)

// Adjustment results.
const (
	AdjustmentApplied   = "applied"
	AdjustmentNotFound  = "not_found"
	AdjustmentFailed    = "failed"
	AdjustmentDuplicate = "duplicate"
)

// SyncMetrics groups the synchronizer's Prometheus collectors.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	documents      *prometheus.CounterVec
	adjustments    *prometheus.CounterVec
	reloadDuration prometheus.Histogram
}

// NewSyncMetrics creates the collectors and registers them with reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Documents processed by full reloads, by outcome",
			},
			[]string{"outcome"},
		),
		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "adjustments_total",
				Help:      "Stock adjustment events handled, by result",
			},
			[]string{"result"},
		),
		reloadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reload_duration_seconds",
				Help:      "Duration of full index reloads",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.documents, m.adjustments, m.reloadDuration)
	return m
}

// ObserveDocument counts one document outcome.
func (m *SyncMetrics) ObserveDocument(outcome string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(outcome).Inc()
}

// ObserveAdjustment counts one adjustment result.
func (m *SyncMetrics) ObserveAdjustment(result string) {
	if m == nil {
		return
	}
	m.adjustments.WithLabelValues(result).Inc()
}

// ObserveReload records the duration of a full reload.
func (m *SyncMetrics) ObserveReload(d time.Duration) {
	if m == nil {
		return
	}
	m.reloadDuration.Observe(d.Seconds())
}

// Handler exposes the gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
