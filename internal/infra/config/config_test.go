package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 2*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, StorageMemory, cfg.Storage.Driver)
	require.Equal(t, "data/share-results", cfg.Share.Dir)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://app.example.com"]
weather:
  apiKey: from-file
  cacheTtl: 30s
storage:
  driver: r2
  endpoint: https://abc.r2.cloudflarestorage.com
  bucket: photos
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WEATHERAPI_KEY", "from-env")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ANALYSIS_USE_DUMMY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "from-env", cfg.Weather.APIKey)
	require.Equal(t, 30*time.Second, cfg.Weather.CacheTTL)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Analysis.UseDummy)
	require.Equal(t, StorageR2, cfg.Storage.Driver)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_API_KEY=sk-dotenv\n"), 0o600))
	t.Setenv("LLM_API_KEY", "")
	os.Unsetenv("LLM_API_KEY")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-dotenv", cfg.LLM.APIKey)
	os.Unsetenv("LLM_API_KEY")
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Driver = "gcs"
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Storage.Driver = StorageR2
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Settings.Valkey.Enabled = true
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Weather.CacheSize = 0
	require.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
