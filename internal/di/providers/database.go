package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/bragboard/bragboard-server/internal/config"
	"github.com/bragboard/bragboard-server/internal/logger"
	"github.com/bragboard/bragboard-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// Bootstrap marks first-run seeding as done.
type Bootstrap struct {
	Seeded bool
}

// ProvideBootstrap seeds the demo directory and starter shout-out on an
// empty database.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	if err := storeHandle.SeedBaseline(context.Background()); err != nil {
		return nil, err
	}

	return &Bootstrap{Seeded: true}, nil
}
