//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sid/internal"
	"sid/internal/controllers"
	"sid/internal/importer"
	"sid/internal/providers"
	"sid/internal/services"
	"sid/internal/store"
	"sid/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewClockProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		store.NewStoreProvider,
		importer.NewZstdCompressor,
		importer.NewPageArchive,
		importer.NewPageFetcher,
		services.NewImportService,
		provideRunner,
		importer.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
