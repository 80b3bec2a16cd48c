package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Namespace is the Prometheus metric namespace. Default: "mercator"
	Namespace string
	// Subsystem is the Prometheus metric subsystem. Default: "ganymede"
	Subsystem string
	// ParseDurationBuckets overrides the parse duration histogram buckets.
	ParseDurationBuckets []float64
}

// Collector registers and records all Prometheus metrics for the MCL
// toolchain: parse and decode outcomes, watcher reloads, and snapshot
// persistence.
type Collector struct {
	registry *prometheus.Registry

	parsesTotal    *prometheus.CounterVec
	parseDuration  prometheus.Histogram
	decodesTotal   *prometheus.CounterVec
	reloadsTotal   *prometheus.CounterVec
	snapshotsSaved prometheus.Counter
}

// Outcome labels used by the collector.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewCollector creates a metrics collector registered against the given
// registry. If registry is nil, a fresh registry is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "mercator"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "ganymede"
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		// Parses are fast; bucket from 10µs to 1s.
		cfg.ParseDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0}
	}

	c := &Collector{registry: registry}

	c.parsesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "parses_total",
		Help:      "Total number of document parses by status.",
	}, []string{"status"})

	c.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "parse_duration_seconds",
		Help:      "Duration of document parses.",
		Buckets:   cfg.ParseDurationBuckets,
	})

	c.decodesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "decodes_total",
		Help:      "Total number of schema decodes by status.",
	}, []string{"status"})

	c.reloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "reloads_total",
		Help:      "Total number of watcher reloads by status.",
	}, []string{"status"})

	c.snapshotsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "snapshots_saved_total",
		Help:      "Total number of snapshots persisted to the store.",
	})

	registry.MustRegister(
		c.parsesTotal,
		c.parseDuration,
		c.decodesTotal,
		c.reloadsTotal,
		c.snapshotsSaved,
	)

	return c
}

// RecordParse records the outcome and duration of one parse.
func (c *Collector) RecordParse(status string, duration time.Duration) {
	c.parsesTotal.WithLabelValues(status).Inc()
	c.parseDuration.Observe(duration.Seconds())
}

// RecordDecode records the outcome of one schema decode.
func (c *Collector) RecordDecode(status string) {
	c.decodesTotal.WithLabelValues(status).Inc()
}

// RecordReload records the outcome of one watcher reload.
func (c *Collector) RecordReload(status string) {
	c.reloadsTotal.WithLabelValues(status).Inc()
}

// RecordSnapshotSaved records one snapshot persisted to the store.
func (c *Collector) RecordSnapshotSaved() {
	c.snapshotsSaved.Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
