package objectstore

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorageSignedRoundTrip(t *testing.T) {
	store := NewMemoryStorage("http://localhost:8080/", "secret")
	ctx := context.Background()

	obj, err := store.Put(ctx, "user-photos/face_analysis_1_a b.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, int64(4), obj.Size)

	link, err := store.SignedURL(ctx, obj.Key, time.Hour)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "http://localhost:8080/api/blobs/user-photos/face_analysis_1_a%20b.jpg?token="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	key := strings.TrimPrefix(u.Path, "/api/blobs")
	data, contentType, err := store.Open(ctx, key, u.Query().Get("token"))
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), data)
	require.Equal(t, "image/jpeg", contentType)

	require.NoError(t, store.Delete(ctx, obj.Key))
	_, _, err = store.Open(ctx, key, u.Query().Get("token"))
	require.ErrorIs(t, err, ErrBlobNotFound)
	require.Zero(t, store.Len())
}

func TestMemoryStorageRejectsBadTokens(t *testing.T) {
	store := NewMemoryStorage("", "secret")
	ctx := context.Background()
	_, err := store.Put(ctx, "a", []byte("1"), "image/png")
	require.NoError(t, err)
	_, err = store.Put(ctx, "b", []byte("2"), "image/png")
	require.NoError(t, err)

	linkA, err := store.SignedURL(ctx, "a", time.Minute)
	require.NoError(t, err)
	tokenA := tokenOf(t, linkA)

	_, _, err = store.Open(ctx, "b", tokenA)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = store.Open(ctx, "a", "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewMemoryStorage("", "other-secret")
	_, _, err = other.Open(ctx, "a", tokenA)
	require.ErrorIs(t, err, ErrInvalidToken)

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, err = store.Open(ctx, "a", tokenA)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "abc.r2.cloudflarestorage.com", sanitizeEndpoint("https://abc.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}

func tokenOf(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}
