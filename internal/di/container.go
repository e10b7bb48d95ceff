// Package di provides dependency injection configuration for the BragBoard server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bragboard/bragboard-server/internal/config"
	"github.com/bragboard/bragboard-server/internal/di/providers"
	"github.com/bragboard/bragboard-server/internal/logger"
	"github.com/bragboard/bragboard-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Business services
	do.Provide(injector, providers.ProvideDirectoryService)
	do.Provide(injector, providers.ProvideFeedService)
	do.Provide(injector, providers.ProvideModerationService)
	do.Provide(injector, providers.ProvideStatsService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)

	// Business services
	_ = do.MustInvoke[*service.DirectoryService](injector)
	_ = do.MustInvoke[*service.FeedService](injector)
	_ = do.MustInvoke[*service.ModerationService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
