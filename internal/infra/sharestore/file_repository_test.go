package sharestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/stylecast/internal/domain/share"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "share-results")
	repo := NewFileRepository(dir)
	ctx := context.Background()

	_, ok, err := repo.Find(ctx, "nothing")
	require.NoError(t, err)
	require.False(t, ok)

	result := share.Result{
		ID:             "lwvcjk00abcdefghijk",
		OriginalImage:  "https://example.com/a.jpg",
		AnalysisResult: json.RawMessage(`{"bodyAnalysis":{"height":"tall"},"extra":[1,2]}`),
		CreatedAt:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Language:       "en",
	}
	require.NoError(t, repo.Save(ctx, result))

	raw, err := os.ReadFile(filepath.Join(dir, result.ID+".json"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "\n  \"id\": \"lwvcjk00abcdefghijk\"")

	loaded, ok, err := repo.Find(ctx, result.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, result.ID, loaded.ID)
	require.Equal(t, result.CreatedAt, loaded.CreatedAt)
	require.JSONEq(t, string(result.AnalysisResult), string(loaded.AnalysisResult))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileRepositoryRejectsTraversal(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	err := repo.Save(context.Background(), share.Result{ID: "../escape", AnalysisResult: json.RawMessage(`{}`)})
	require.Error(t, err)

	_, ok, err := repo.Find(context.Background(), "../escape")
	require.NoError(t, err)
	require.False(t, ok)
}
