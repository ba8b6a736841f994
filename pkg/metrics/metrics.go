package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stylecast"

// Metrics owns a private Prometheus registry and the collectors used across the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	llmTokens     *prometheus.CounterVec
	blobCleanups  *prometheus.CounterVec
}

// New builds the registry. Each instance is independent so tests never share state.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		}, []string{"method", "route"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "weather_cache",
			Name:      "lookups_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Outbound calls to third-party APIs.",
		}, []string{"target", "outcome"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Tokens reported by the language model.",
		}, []string{"kind"}),
		blobCleanups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "cleanups_total",
			Help:      "Transient blob deletions by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.cacheLookups,
		m.upstreamCalls,
		m.llmTokens,
		m.blobCleanups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterCacheSize exposes the live entry count of a cache as a gauge.
func (m *Metrics) RegisterCacheSize(size func() int) {
	if m == nil || size == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "weather_cache",
		Name:      "entries",
		Help:      "Current number of entries held by the weather cache.",
	}, func() float64 { return float64(size()) }))
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CacheLookup records a weather cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// UpstreamCall records an outbound call outcome for a named target.
func (m *Metrics) UpstreamCall(target string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamCalls.WithLabelValues(target, outcome).Inc()
}

// RecordTokens adds model token usage to the counters.
func (m *Metrics) RecordTokens(usage TokenUsage) {
	if m == nil || usage.IsZero() {
		return
	}
	m.llmTokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	m.llmTokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
	m.llmTokens.WithLabelValues("total").Add(float64(usage.TotalTokens))
}

// BlobCleanup records the outcome of a best-effort transient object delete.
func (m *Metrics) BlobCleanup(err error) {
	if m == nil {
		return
	}
	outcome := "deleted"
	if err != nil {
		outcome = "failed"
	}
	m.blobCleanups.WithLabelValues(outcome).Inc()
}
