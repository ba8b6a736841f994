//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/stylecast/internal/bootstrap"
	"github.com/yanqian/stylecast/internal/domain/analysis"
	"github.com/yanqian/stylecast/internal/domain/settings"
	"github.com/yanqian/stylecast/internal/domain/share"
	"github.com/yanqian/stylecast/internal/domain/weather"
	"github.com/yanqian/stylecast/internal/infra/config"
	httpiface "github.com/yanqian/stylecast/internal/interface/http"
	"github.com/yanqian/stylecast/pkg/logger"
	"github.com/yanqian/stylecast/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideWeatherConfig,
		provideWeatherProvider,
		provideWeatherCache,
		provideAnalysisConfig,
		provideChatClient,
		provideObjectStores,
		provideObjectStorage,
		provideBlobOpener,
		provideShareRepository,
		provideSettingsStore,
		weather.NewService,
		analysis.NewService,
		share.NewService,
		settings.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
