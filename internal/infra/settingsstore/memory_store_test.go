package settingsstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/stylecast/internal/domain/settings"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	_, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	cfg := settings.Default()
	cfg.AndroidBannerAd = "banner-2"
	require.NoError(t, store.Save(context.Background(), cfg))

	got, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "banner-2", got.AndroidBannerAd)
}
