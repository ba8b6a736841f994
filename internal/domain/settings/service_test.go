package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

func TestGetFallsBackToDefault(t *testing.T) {
	svc := NewService(&stubStore{}, discardLogger())

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Empty(t, cfg.Validate())
}

func TestUpdatePersists(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, discardLogger())

	next := Default()
	next.IOSAd = "ca-app-pub-1/2"
	saved, err := svc.Update(context.Background(), next)
	require.NoError(t, err)
	require.Equal(t, next, saved)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ca-app-pub-1/2", got.IOSAd)
}

func TestUpdateValidates(t *testing.T) {
	svc := NewService(&stubStore{}, discardLogger())
	cfg := Default()
	cfg.Ref.Android.RewardedAd = " "

	_, err := svc.Update(context.Background(), cfg)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Contains(t, err.Error(), "ref.android.rewarded_ad")
}

func TestStoreFailures(t *testing.T) {
	svc := NewService(&stubStore{err: errors.New("connection refused")}, discardLogger())

	_, err := svc.Get(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	_, err = svc.Update(context.Background(), Default())
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubStore struct {
	cfg *AdConfig
	err error
}

func (s *stubStore) Load(context.Context) (AdConfig, bool, error) {
	if s.err != nil {
		return AdConfig{}, false, s.err
	}
	if s.cfg == nil {
		return AdConfig{}, false, nil
	}
	return *s.cfg, true, nil
}

func (s *stubStore) Save(_ context.Context, cfg AdConfig) error {
	if s.err != nil {
		return s.err
	}
	s.cfg = &cfg
	return nil
}
