//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/coordinate-advisor/internal/bootstrap"
	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
	"github.com/yanqian/coordinate-advisor/internal/domain/weather"
	"github.com/yanqian/coordinate-advisor/internal/infra/config"
	"github.com/yanqian/coordinate-advisor/internal/infra/weather/openmeteo"
	httpiface "github.com/yanqian/coordinate-advisor/internal/interface/http"
	"github.com/yanqian/coordinate-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCoordinateConfig,
		provideWeatherConfig,
		provideWeatherClient,
		provideGenerator,
		provideInflightGuard,
		weather.NewService,
		coordinate.NewService,
		wire.Bind(new(weather.Fetcher), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
