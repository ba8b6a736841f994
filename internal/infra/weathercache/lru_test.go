package weathercache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/stylecast/internal/domain/weather"
)

func TestLRUExpiresEntries(t *testing.T) {
	cache := New(8, 50*time.Millisecond)
	cache.Put("37.57,126.98,ko", weather.Report{Current: weather.Weather{Location: "Seoul"}})

	got, ok := cache.Get("37.57,126.98,ko")
	require.True(t, ok)
	require.Equal(t, "Seoul", got.Current.Location)

	require.Eventually(t, func() bool {
		_, ok := cache.Get("37.57,126.98,ko")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestLRUEvictsOldestWhenFull(t *testing.T) {
	cache := New(2, time.Minute)
	cache.Put("a", weather.Report{})
	cache.Put("b", weather.Report{})
	_, _ = cache.Get("a")
	cache.Put("c", weather.Report{})

	require.Equal(t, 2, cache.Len())
	_, ok := cache.Get("b")
	require.False(t, ok)
	_, ok = cache.Get("a")
	require.True(t, ok)
}

func TestLRUDefaults(t *testing.T) {
	cache := New(0, 0)
	cache.Put("k", weather.Report{})
	require.Equal(t, 1, cache.Len())
}
