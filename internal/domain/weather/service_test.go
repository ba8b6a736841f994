package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/stylecast/pkg/errors"
	"github.com/yanqian/stylecast/pkg/metrics"
)

func TestServiceCachesWithinWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	provider := &stubProvider{current: Conditions{TempC: 20, Cloud: 80, Text: "Cloudy"}}
	svc := newServiceUnderTest(provider, newClockCache(2*time.Minute, clock), clock)

	first, err := svc.ByCoordinates(context.Background(), 37.5665, 126.978, "en")
	require.NoError(t, err)
	require.Equal(t, int32(1), provider.currentCalls.Load())
	require.Equal(t, int32(1), provider.forecastCalls.Load())

	clock.advance(119 * time.Second)
	second, err := svc.ByCoordinates(context.Background(), 37.5701, 126.9801, "en")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), provider.currentCalls.Load())

	clock.advance(2 * time.Second)
	_, err = svc.ByCoordinates(context.Background(), 37.5665, 126.978, "en")
	require.NoError(t, err)
	require.Equal(t, int32(2), provider.currentCalls.Load())
	require.Equal(t, int32(2), provider.forecastCalls.Load())
}

func TestServiceKeysByLanguage(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	provider := &stubProvider{}
	svc := newServiceUnderTest(provider, newClockCache(2*time.Minute, clock), clock)

	_, err := svc.ByCoordinates(context.Background(), 1, 2, "en")
	require.NoError(t, err)
	_, err = svc.ByCoordinates(context.Background(), 1, 2, "ja")
	require.NoError(t, err)
	require.Equal(t, int32(2), provider.currentCalls.Load())
	require.Equal(t, []string{"en", "ja"}, provider.languages())
}

func TestServiceFailsWhenEitherCallFails(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	cache := newClockCache(2*time.Minute, clock)
	provider := &stubProvider{forecastErr: errors.New("status=503")}
	svc := newServiceUnderTest(provider, cache, clock)

	_, err := svc.ByCoordinates(context.Background(), 1, 2, "ko")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamUnavailable))
	require.Zero(t, cache.Len())
}

func TestServiceMissingKeyIsUpstreamUnavailable(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	provider := &stubProvider{currentErr: ErrMissingAPIKey}
	svc := newServiceUnderTest(provider, newClockCache(time.Minute, clock), clock)

	_, err := svc.ByCity(context.Background(), "Seoul", "ko")
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamUnavailable))
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestServiceValidatesInput(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newServiceUnderTest(&stubProvider{}, newClockCache(time.Minute, clock), clock)

	_, err := svc.ByCoordinates(context.Background(), 91, 0, "ko")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.ByCity(context.Background(), "   ", "ko")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	for _, c := range [][2]float64{{math.NaN(), 0}, {0, math.NaN()}, {math.Inf(1), 0}, {0, math.Inf(-1)}} {
		_, err = svc.ByCoordinates(context.Background(), c[0], c[1], "ko")
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "%v", c)
	}
}

func TestServiceByCityUsesCityQuery(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	provider := &stubProvider{current: Conditions{Text: "Sunny", Location: "Busan"}}
	svc := newServiceUnderTest(provider, newClockCache(time.Minute, clock), clock)

	report, err := svc.ByCity(context.Background(), " Busan ", "xx")
	require.NoError(t, err)
	require.Equal(t, "Busan", report.Current.Location)
	require.Equal(t, "Busan", provider.lastQuery.Load())
	require.Equal(t, []string{"ko"}, provider.languages())
}

func TestCacheKeyRoundsToTwoDecimals(t *testing.T) {
	require.Equal(t, "37.57,126.98,ko", CacheKey(37.5665, 126.978, "ko"))
	require.Equal(t, CacheKey(37.5701, 126.9801, "en"), CacheKey(37.5699, 126.9849, "en"))
	require.Equal(t, "city:new york,en", CityCacheKey("  New York ", "en"))
}

func TestServiceForecastsSevenDaysByDefault(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	provider := &stubProvider{}
	svc := NewService(Config{}, provider, newClockCache(2*time.Minute, clock), metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := svc.ByCoordinates(context.Background(), 1, 2, "en")
	require.NoError(t, err)
	require.Equal(t, int32(DefaultForecastDays), provider.lastDays.Load())
	require.Len(t, report.Forecast.Days, 7)
}

func TestDummyProviderFeedsTransform(t *testing.T) {
	p := NewDummyProvider()
	days, err := p.Forecast(context.Background(), "Seoul", 7, "ko")
	require.NoError(t, err)
	require.Len(t, days, 7)
	cur, err := p.Current(context.Background(), "Seoul", "ko")
	require.NoError(t, err)
	require.Equal(t, "Clear", Transform(cur, "ko", time.Now()).Description)
}

func newServiceUnderTest(provider Provider, cache Cache, clock *fakeClock) *service {
	svc := NewService(Config{ForecastDays: 7}, provider, cache, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = clock.Now
	return svc
}

type stubProvider struct {
	current       Conditions
	currentErr    error
	forecastErr   error
	currentCalls  atomic.Int32
	forecastCalls atomic.Int32
	lastDays      atomic.Int32
	lastQuery     atomic.Value

	mu    sync.Mutex
	langs []string
}

func (s *stubProvider) Current(_ context.Context, query, lang string) (Conditions, error) {
	s.currentCalls.Add(1)
	s.lastQuery.Store(query)
	s.mu.Lock()
	s.langs = append(s.langs, lang)
	s.mu.Unlock()
	if s.currentErr != nil {
		return Conditions{}, s.currentErr
	}
	return s.current, nil
}

func (s *stubProvider) Forecast(_ context.Context, _ string, days int, _ string) ([]DailyConditions, error) {
	s.forecastCalls.Add(1)
	s.lastDays.Store(int32(days))
	if s.forecastErr != nil {
		return nil, s.forecastErr
	}
	out := make([]DailyConditions, days)
	for i := range out {
		out[i] = DailyConditions{Date: "2025-06-01", Text: "Sunny"}
	}
	return out, nil
}

func (s *stubProvider) languages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.langs...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type clockCache struct {
	ttl     time.Duration
	clock   *fakeClock
	mu      sync.Mutex
	entries map[string]clockEntry
}

type clockEntry struct {
	report   Report
	storedAt time.Time
}

func newClockCache(ttl time.Duration, clock *fakeClock) *clockCache {
	return &clockCache{ttl: ttl, clock: clock, entries: make(map[string]clockEntry)}
}

func (c *clockCache) Get(key string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.clock.Now().Sub(e.storedAt) >= c.ttl {
		return Report{}, false
	}
	return e.report, true
}

func (c *clockCache) Put(key string, report Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = clockEntry{report: report, storedAt: c.clock.Now()}
}

func (c *clockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
