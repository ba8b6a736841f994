package settings

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

// Service reads and replaces the ad configuration.
type Service interface {
	Get(ctx context.Context) (AdConfig, error)
	Update(ctx context.Context, cfg AdConfig) (AdConfig, error)
}

type service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires the settings domain.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{store: store, logger: logger.With("component", "settings.service")}
}

func (s *service) Get(ctx context.Context) (AdConfig, error) {
	cfg, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load ad config", "error", err)
		return AdConfig{}, apperrors.Wrap(apperrors.CodeStorage, "Failed to fetch ad settings", err)
	}
	if !ok {
		return Default(), nil
	}
	return cfg, nil
}

func (s *service) Update(ctx context.Context, cfg AdConfig) (AdConfig, error) {
	if field := cfg.Validate(); field != "" {
		return AdConfig{}, apperrors.Wrap(apperrors.CodeInvalidInput, field+" is required", nil)
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		s.logger.Error("failed to save ad config", "error", err)
		return AdConfig{}, apperrors.Wrap(apperrors.CodeStorage, "Failed to update ad settings", err)
	}
	s.logger.Info("ad config updated")
	return cfg, nil
}
