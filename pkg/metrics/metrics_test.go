package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCacheSizeGauge(t *testing.T) {
	m := New()
	size := 3
	m.RegisterCacheSize(func() int { return size })

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() == "stylecast_weather_cache_entries" {
			found = true
			require.Equal(t, 3.0, fam.GetMetric()[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestCountersRecordOutcomes(t *testing.T) {
	m := New()
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.UpstreamCall("weatherapi.current", errors.New("boom"))
	m.RecordTokens(TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	m.ObserveHTTP("GET", "/api/health", 200, 10*time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("weatherapi.current", "error")))
	require.Equal(t, 15.0, testutil.ToFloat64(m.llmTokens.WithLabelValues("total")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/health", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.CacheLookup(true)
		m.UpstreamCall("x", nil)
		m.RecordTokens(TokenUsage{TotalTokens: 1})
		m.BlobCleanup(nil)
		m.ObserveHTTP("GET", "", 200, time.Millisecond)
	})
}
