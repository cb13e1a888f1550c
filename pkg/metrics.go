package pincache

// metrics.go is a thin abstraction over Prometheus so that pincache can be
// used with or without metrics, following the teacher's pkg/metrics.go
// metricsSink pattern (no-op vs. Prometheus implementation selected once at
// construction time, never branched on per-call).
//
// © 2025 pincache authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// metricsSink abstracts the concrete metrics backend away from Cache; the
// facade only ever calls these methods.
type metricsSink interface {
	incHit()
	incMiss()
	incEvict()
	incPinRejection()
	setLiveEntries(n int)
	setPinnedEntries(n int)
}

/* ---------------- no-op implementation ---------------- */

type noopMetrics struct{}

func (noopMetrics) incHit()             {}
func (noopMetrics) incMiss()            {}
func (noopMetrics) incEvict()           {}
func (noopMetrics) incPinRejection()    {}
func (noopMetrics) setLiveEntries(int)  {}
func (noopMetrics) setPinnedEntries(int) {}

/* ---------------- Prometheus implementation ---------------- */

type promMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evictions     prometheus.Counter
	pinRejections prometheus.Counter
	liveEntries   prometheus.Gauge
	pinnedEntries prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pincache", Name: "hits_total", Help: "Number of Lookup hits.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pincache", Name: "misses_total", Help: "Number of Lookup misses.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pincache", Name: "evictions_total", Help: "Number of entries evicted to make room in Add.",
		}),
		pinRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pincache", Name: "pin_rejections_total", Help: "Number of Add calls that failed because every live entry was pinned.",
		}),
		liveEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pincache", Name: "live_entries", Help: "Current number of live entries.",
		}),
		pinnedEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pincache", Name: "pinned_entries", Help: "Current number of entries with a non-zero pin count.",
		}),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.evictions, pm.pinRejections, pm.liveEntries, pm.pinnedEntries)
	return pm
}

func (m *promMetrics) incHit()               { m.hits.Inc() }
func (m *promMetrics) incMiss()               { m.misses.Inc() }
func (m *promMetrics) incEvict()              { m.evictions.Inc() }
func (m *promMetrics) incPinRejection()       { m.pinRejections.Inc() }
func (m *promMetrics) setLiveEntries(n int)   { m.liveEntries.Set(float64(n)) }
func (m *promMetrics) setPinnedEntries(n int) { m.pinnedEntries.Set(float64(n)) }

/* ---------------- factory ---------------- */

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
