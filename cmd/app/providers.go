package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/stylecast/internal/domain/analysis"
	"github.com/yanqian/stylecast/internal/domain/settings"
	"github.com/yanqian/stylecast/internal/domain/share"
	"github.com/yanqian/stylecast/internal/domain/weather"
	"github.com/yanqian/stylecast/internal/infra/config"
	"github.com/yanqian/stylecast/internal/infra/llm/chatgpt"
	"github.com/yanqian/stylecast/internal/infra/objectstore"
	"github.com/yanqian/stylecast/internal/infra/settingsstore"
	"github.com/yanqian/stylecast/internal/infra/sharestore"
	"github.com/yanqian/stylecast/internal/infra/weather/weatherapi"
	"github.com/yanqian/stylecast/internal/infra/weathercache"
	httpiface "github.com/yanqian/stylecast/internal/interface/http"
	"github.com/yanqian/stylecast/pkg/metrics"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		ForecastDays: weather.DefaultForecastDays,
		CallTimeout:  cfg.Weather.Timeout,
	}
}

func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) weather.Provider {
	if cfg.Weather.UseDummy {
		logger.Warn("weather dummy provider enabled")
		return weather.NewDummyProvider()
	}
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set, lookups will fail until WEATHERAPI_KEY is configured")
	}
	return weatherapi.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
}

func provideWeatherCache(cfg *config.Config, m *metrics.Metrics) weather.Cache {
	cache := weathercache.New(cfg.Weather.CacheSize, cfg.Weather.CacheTTL)
	m.RegisterCacheSize(cache.Len)
	return cache
}

func provideAnalysisConfig(cfg *config.Config) analysis.Config {
	return analysis.Config{
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
		MaxTokens:     cfg.LLM.MaxTokens,
		UseDummy:      cfg.Analysis.UseDummy,
		MaxImageBytes: cfg.Analysis.MaxImageBytes,
		SignedURLTTL:  cfg.Analysis.SignedURLTTL,
		KeyPrefix:     cfg.Analysis.KeyPrefix,
	}
}

// provideChatClient returns a nil client without an API key; the analysis
// service then answers from fixtures.
func provideChatClient(cfg *config.Config, logger *slog.Logger) (analysis.ChatClient, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, analysis serves sample results")
		return nil, nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// objectStores pairs the relay storage with the blob route that serves it.
// blobs is nil when the bucket signs its own links.
type objectStores struct {
	storage analysis.ObjectStorage
	blobs   httpiface.BlobOpener
}

func provideObjectStores(cfg *config.Config, logger *slog.Logger) (objectStores, error) {
	if cfg.Storage.Driver == config.StorageR2 {
		r2, err := objectstore.NewR2Storage(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.Region,
			logger,
		)
		if err != nil {
			return objectStores{}, fmt.Errorf("init object storage: %w", err)
		}
		logger.Info("r2 object storage enabled", "bucket", cfg.Storage.Bucket)
		return objectStores{storage: r2}, nil
	}

	baseURL := strings.TrimSpace(cfg.HTTP.PublicBaseURL)
	if baseURL == "" {
		baseURL = "http://localhost" + cfg.HTTP.Address
		logger.Warn("public base url not set, image links are only reachable locally", "base_url", baseURL)
	}
	mem := objectstore.NewMemoryStorage(baseURL, cfg.Storage.SigningSecret)
	return objectStores{storage: mem, blobs: mem}, nil
}

func provideObjectStorage(stores objectStores) analysis.ObjectStorage {
	return stores.storage
}

func provideBlobOpener(stores objectStores) httpiface.BlobOpener {
	return stores.blobs
}

func provideShareRepository(cfg *config.Config, logger *slog.Logger) (share.Repository, func(), error) {
	fallback := sharestore.NewFileRepository(cfg.Share.Dir)
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Share.Postgres.DSN)
	if dsn == "" {
		logger.Info("share postgres dsn not set, using file repository", "dir", cfg.Share.Dir)
		return fallback, noop, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using file repository", "error", err)
		return fallback, noop, nil
	}
	if cfg.Share.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Share.Postgres.MaxConns
	}
	if cfg.Share.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Share.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using file repository", "error", err)
		return fallback, noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using file repository", "error", err)
		pool.Close()
		return fallback, noop, nil
	}
	repo := sharestore.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare share schema: %w", err)
	}
	logger.Info("share postgres repository enabled")
	return repo, pool.Close, nil
}

func provideSettingsStore(cfg *config.Config, logger *slog.Logger) (settings.Store, func()) {
	noop := func() {}
	if !cfg.Settings.Valkey.Enabled {
		return settingsstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Settings.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return settingsstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return settingsstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return settingsstore.NewMemoryStore(), noop
	}
	logger.Info("settings valkey store enabled", "addr", cfg.Settings.Valkey.Addr)
	return settingsstore.NewValkeyStore(client, cfg.Settings.Key), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
