package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/stylecast/internal/domain/language"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
	"github.com/yanqian/stylecast/pkg/metrics"
)

// DefaultForecastDays is the forecast length served to clients.
const DefaultForecastDays = 7

// ErrMissingAPIKey is returned by providers that have no credential configured.
var ErrMissingAPIKey = errors.New("weather api key not configured")

// Service exposes cached weather lookups.
type Service interface {
	ByCoordinates(ctx context.Context, lat, lon float64, lang string) (Report, error)
	ByCity(ctx context.Context, city, lang string) (Report, error)
}

type service struct {
	cfg      Config
	provider Provider
	cache    Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the weather domain.
func NewService(cfg Config, provider Provider, cache Cache, m *metrics.Metrics, logger *slog.Logger) Service {
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = DefaultForecastDays
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		metrics:  m,
		logger:   logger.With("component", "weather.service"),
		now:      time.Now,
	}
}

// CacheKey buckets coordinates to two decimals so nearby requests share an entry.
func CacheKey(lat, lon float64, lang string) string {
	return fmt.Sprintf("%.2f,%.2f,%s", lat, lon, lang)
}

// CityCacheKey is the cache key of a free-text location lookup.
func CityCacheKey(city, lang string) string {
	return "city:" + strings.ToLower(strings.TrimSpace(city)) + "," + lang
}

func (s *service) ByCoordinates(ctx context.Context, lat, lon float64, lang string) (Report, error) {
	// written inverted so NaN fails the check
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are out of range", nil)
	}
	lang = language.Normalize(lang)
	query := fmt.Sprintf("%g,%g", lat, lon)
	return s.lookup(ctx, CacheKey(lat, lon, lang), query, lang)
}

func (s *service) ByCity(ctx context.Context, city, lang string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "City name is required", nil)
	}
	lang = language.Normalize(lang)
	return s.lookup(ctx, CityCacheKey(city, lang), city, lang)
}

func (s *service) lookup(ctx context.Context, key, query, lang string) (Report, error) {
	if report, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(true)
		s.logger.Debug("weather cache hit", "key", key)
		return report, nil
	}
	s.metrics.CacheLookup(false)

	report, err := s.fetch(ctx, query, lang)
	if err != nil {
		s.logger.Error("weather fetch failed", "key", key, "error", err)
		return Report{}, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "failed to fetch weather data", err)
	}
	s.cache.Put(key, report)
	s.logger.Info("weather report cached", "key", key, "forecast_days", len(report.Forecast.Days))
	return report, nil
}

// fetch issues the current and forecast calls concurrently; both must succeed.
func (s *service) fetch(ctx context.Context, query, lang string) (Report, error) {
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}

	var (
		current Conditions
		days    []DailyConditions
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.provider.Current(gctx, query, lang)
		s.metrics.UpstreamCall("weather.current", err)
		if err != nil {
			return fmt.Errorf("current weather: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		days, err = s.provider.Forecast(gctx, query, s.cfg.ForecastDays, lang)
		s.metrics.UpstreamCall("weather.forecast", err)
		if err != nil {
			return fmt.Errorf("weather forecast: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{
		Current:  Transform(current, lang, s.now()),
		Forecast: TransformForecast(days, s.cfg.ForecastDays),
	}, nil
}
