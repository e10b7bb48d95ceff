package providers

import (
	"github.com/samber/do/v2"

	"github.com/bragboard/bragboard-server/internal/logger"
	"github.com/bragboard/bragboard-server/internal/service"
)

// ProvideDirectoryService provides the directory service.
func ProvideDirectoryService(i do.Injector) (*service.DirectoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDirectoryService(storeHandle.Store, log.Logger), nil
}

// ProvideFeedService provides the feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedService(storeHandle.Store, log.Logger), nil
}

// ProvideModerationService provides the moderation service.
func ProvideModerationService(i do.Injector) (*service.ModerationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewModerationService(storeHandle.Store, log.Logger), nil
}

// ProvideStatsService provides the stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	moderation := do.MustInvoke[*service.ModerationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, moderation, log.Logger), nil
}
