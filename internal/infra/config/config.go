package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Weather  WeatherConfig  `yaml:"weather"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Storage  StorageConfig  `yaml:"storage"`
	Share    ShareConfig    `yaml:"share"`
	Settings SettingsConfig `yaml:"settings"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	PublicBaseURL  string        `yaml:"publicBaseUrl"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// WeatherConfig controls the weatherapi.com client and its cache.
type WeatherConfig struct {
	APIKey    string        `yaml:"apiKey"`
	BaseURL   string        `yaml:"baseUrl"`
	CacheTTL  time.Duration `yaml:"cacheTtl"`
	CacheSize int           `yaml:"cacheSize"`
	Timeout   time.Duration `yaml:"timeout"`
	UseDummy  bool          `yaml:"useDummy"`
}

// AnalysisConfig controls the image analysis relay.
type AnalysisConfig struct {
	UseDummy      bool          `yaml:"useDummy"`
	MaxImageBytes int64         `yaml:"maxImageBytes"`
	SignedURLTTL  time.Duration `yaml:"signedUrlTtl"`
	KeyPrefix     string        `yaml:"keyPrefix"`
}

// StorageConfig selects the transient object store.
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	SigningSecret string `yaml:"signingSecret"`
}

// ShareConfig controls where shared results are persisted.
type ShareConfig struct {
	Dir      string         `yaml:"dir"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SettingsConfig controls ad configuration persistence.
type SettingsConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
	Key    string       `yaml:"key"`
}

// ValkeyConfig contains connection information for key-value storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Storage drivers.
const (
	StorageMemory = "memory"
	StorageR2     = "r2"
)

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	setString(&cfg.HTTP.PublicBaseURL, "HTTP_PUBLIC_BASE_URL")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}

	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setDuration(&cfg.LLM.Timeout, "LLM_TIMEOUT")

	setString(&cfg.Weather.APIKey, "WEATHERAPI_KEY")
	setString(&cfg.Weather.BaseURL, "WEATHER_BASE_URL")
	setDuration(&cfg.Weather.CacheTTL, "WEATHER_CACHE_TTL")
	setInt(&cfg.Weather.CacheSize, "WEATHER_CACHE_SIZE")
	setBool(&cfg.Weather.UseDummy, "WEATHER_USE_DUMMY")

	setBool(&cfg.Analysis.UseDummy, "ANALYSIS_USE_DUMMY")
	if v := os.Getenv("ANALYSIS_MAX_IMAGE_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Analysis.MaxImageBytes = parsed
		}
	}

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.SigningSecret, "STORAGE_SIGNING_SECRET")

	setString(&cfg.Share.Dir, "SHARE_DIR")
	setString(&cfg.Share.Postgres.DSN, "SHARE_POSTGRES_DSN")
	if v := os.Getenv("SHARE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Share.Postgres.MaxConns = int32(parsed)
		}
	}

	setBool(&cfg.Settings.Valkey.Enabled, "SETTINGS_VALKEY_ENABLED")
	setString(&cfg.Settings.Valkey.Addr, "SETTINGS_VALKEY_ADDR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   90 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			MaxTokens:   2000,
			Timeout:     60 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.weatherapi.com/v1",
			CacheTTL:  2 * time.Minute,
			CacheSize: 1024,
			Timeout:   10 * time.Second,
		},
		Analysis: AnalysisConfig{
			MaxImageBytes: 10 << 20,
			SignedURLTTL:  time.Hour,
			KeyPrefix:     "user-photos",
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
			Region: "auto",
		},
		Share: ShareConfig{
			Dir: "data/share-results",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Settings: SettingsConfig{
			Key: "stylecast:settings:ads",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}
	if c.Weather.CacheTTL <= 0 {
		return errors.New("weather.cacheTtl must be positive")
	}
	if c.Weather.CacheSize <= 0 {
		return errors.New("weather.cacheSize must be positive")
	}
	if c.Analysis.MaxImageBytes < 0 {
		return errors.New("analysis.maxImageBytes cannot be negative")
	}
	if c.Analysis.SignedURLTTL <= 0 {
		return errors.New("analysis.signedUrlTtl must be positive")
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageR2:
		if strings.TrimSpace(c.Storage.Endpoint) == "" || strings.TrimSpace(c.Storage.Bucket) == "" {
			return errors.New("storage.endpoint and storage.bucket are required for the r2 driver")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Share.Dir) == "" {
		return errors.New("share.dir cannot be empty")
	}
	if c.Settings.Valkey.Enabled && strings.TrimSpace(c.Settings.Valkey.Addr) == "" {
		return errors.New("settings.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
