package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/bragboard/bragboard-server/internal/api"
	"github.com/bragboard/bragboard-server/internal/config"
	"github.com/bragboard/bragboard-server/internal/logger"
	"github.com/bragboard/bragboard-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Seeding must run before the API takes traffic.
	_ = do.MustInvoke[*Bootstrap](i)

	services := &api.Services{
		Directory:  do.MustInvoke[*service.DirectoryService](i),
		Feed:       do.MustInvoke[*service.FeedService](i),
		Moderation: do.MustInvoke[*service.ModerationService](i),
		Stats:      do.MustInvoke[*service.StatsService](i),
	}

	handler := api.NewServer(cfg, storeHandle.Store, services, log.Logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
