// Package metrics exposes window and image cache statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the daybook metrics on a private registry so several
// collectors can coexist in one process (tests, mostly). A nil *Collector is
// valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	WindowExpansions *prometheus.CounterVec
	WindowTrimmed    *prometheus.CounterVec
	WindowLength     prometheus.Gauge

	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheFailures  prometheus.Counter
	CacheEvictions prometheus.Counter
	CacheSize      prometheus.Gauge
}

// NewCollector creates and registers every metric under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		WindowExpansions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_expansions_total",
			Help:      "Window expansions by edge.",
		}, []string{"edge"}),
		WindowTrimmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_trimmed_units_total",
			Help:      "Units trimmed from the window, by the edge they were expanded from.",
		}, []string{"edge"}),
		WindowLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_length",
			Help:      "Units currently in the window.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_hits_total",
			Help:      "Preloads answered from the loaded set.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_misses_total",
			Help:      "Preloads that started a fetch.",
		}),
		CacheFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_failures_total",
			Help:      "Fetches that failed or timed out.",
		}),
		CacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_evictions_total",
			Help:      "URLs evicted from the loaded set.",
		}),
		CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "image_cache_resident",
			Help:      "URLs currently in the loaded set.",
		}),
	}
	c.registry.MustRegister(
		c.WindowExpansions,
		c.WindowTrimmed,
		c.WindowLength,
		c.CacheHits,
		c.CacheMisses,
		c.CacheFailures,
		c.CacheEvictions,
		c.CacheSize,
	)
	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// WindowExpanded implements window.Recorder.
func (c *Collector) WindowExpanded(edge string, added, trimmed, length int) {
	if c == nil {
		return
	}
	if added > 0 {
		c.WindowExpansions.WithLabelValues(edge).Inc()
	}
	if trimmed > 0 {
		c.WindowTrimmed.WithLabelValues(edge).Add(float64(trimmed))
	}
	c.WindowLength.Set(float64(length))
}

// CacheHit implements imagecache.Recorder.
func (c *Collector) CacheHit() {
	if c != nil {
		c.CacheHits.Inc()
	}
}

// CacheMiss implements imagecache.Recorder.
func (c *Collector) CacheMiss() {
	if c != nil {
		c.CacheMisses.Inc()
	}
}

// CacheFailed implements imagecache.Recorder.
func (c *Collector) CacheFailed() {
	if c != nil {
		c.CacheFailures.Inc()
	}
}

// CacheEvicted implements imagecache.Recorder.
func (c *Collector) CacheEvicted(n int) {
	if c != nil {
		c.CacheEvictions.Add(float64(n))
	}
}

// CacheResident implements imagecache.Recorder.
func (c *Collector) CacheResident(n int) {
	if c != nil {
		c.CacheSize.Set(float64(n))
	}
}
