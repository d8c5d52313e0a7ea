//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/smart-wardrobe/internal/bootstrap"
	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/smart-wardrobe/internal/infra/config"
	"github.com/yanqian/smart-wardrobe/internal/infra/dispatch"
	"github.com/yanqian/smart-wardrobe/internal/infra/wardrobeapi"
	httpiface "github.com/yanqian/smart-wardrobe/internal/interface/http"
	"github.com/yanqian/smart-wardrobe/internal/interface/view"
	"github.com/yanqian/smart-wardrobe/pkg/logger"
	"github.com/yanqian/smart-wardrobe/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		provideLoggerOptions,
		logger.New,
		provideControllerConfig,
		provideGateway,
		provideRenderer,
		provideOutfitStore,
		provideExtensions,
		provideLookbookExporter,
		provideHandlerOptions,
		wardrobe.NewCache,
		wardrobe.NewController,
		view.NewPage,
		metrics.NewActionStats,
		dispatch.NewAsyncDispatcher,
		wire.Bind(new(wardrobe.Gateway), new(*wardrobeapi.Client)),
		wire.Bind(new(wardrobe.View), new(*view.Renderer)),
		wire.Bind(new(dispatch.Dispatcher), new(*dispatch.AsyncDispatcher)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
