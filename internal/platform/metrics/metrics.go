package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConverterMetrics contains all prometheus collectors for the conversion path.
// All record methods are nil-safe so callers never need to guard.
type ConverterMetrics struct {
	ConversionsTotal        *prometheus.CounterVec
	CacheHitsTotal          *prometheus.CounterVec
	CacheMissesTotal        *prometheus.CounterVec
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration prometheus.Histogram
	BreakerState            prometheus.Gauge
}

// NewConverterMetrics registers the converter collectors on the given
// registerer. Tests pass a fresh prometheus.NewRegistry to avoid duplicate
// registration across cases.
func NewConverterMetrics(reg prometheus.Registerer) *ConverterMetrics {
	factory := promauto.With(reg)

	return &ConverterMetrics{
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_conversions_total",
				Help: "Total number of conversion requests by outcome status.",
			},
			[]string{"status"},
		),
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_cache_hits_total",
				Help: "Total number of cache hits by namespace.",
			},
			[]string{"namespace"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_cache_misses_total",
				Help: "Total number of cache misses by namespace.",
			},
			[]string{"namespace"},
		),
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_upstream_requests_total",
				Help: "Total number of upstream rate fetches by outcome.",
			},
			[]string{"outcome"},
		),
		UpstreamRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "converter_upstream_request_duration_seconds",
				Help:    "Duration of upstream rate fetches including retries.",
				Buckets: prometheus.DefBuckets,
			},
		),
		BreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "converter_breaker_state",
				Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open.",
			},
		),
	}
}

// RecordConversion counts one conversion request with its outcome status.
func (m *ConverterMetrics) RecordConversion(status string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(status).Inc()
}

// RecordCacheHit counts one cache hit for the given namespace.
func (m *ConverterMetrics) RecordCacheHit(namespace string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(namespace).Inc()
}

// RecordCacheMiss counts one cache miss for the given namespace.
func (m *ConverterMetrics) RecordCacheMiss(namespace string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(namespace).Inc()
}

// RecordUpstreamRequest counts one upstream fetch and its total duration.
func (m *ConverterMetrics) RecordUpstreamRequest(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	m.UpstreamRequestDuration.Observe(seconds)
}

// RecordBreakerState publishes the breaker's current state.
func (m *ConverterMetrics) RecordBreakerState(state float64) {
	if m == nil {
		return
	}
	m.BreakerState.Set(state)
}
