package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/smart-wardrobe/internal/infra/config"
	"github.com/yanqian/smart-wardrobe/internal/infra/dispatch"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the console server lifecycle.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	controller wardrobe.Controller
	dispatcher *dispatch.AsyncDispatcher
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, controller wardrobe.Controller, dispatcher *dispatch.AsyncDispatcher) *App {
	return &App{
		cfg:        cfg,
		logger:     logger.With("component", "bootstrap"),
		server:     server,
		controller: controller,
		dispatcher: dispatcher,
	}
}

// Run starts the console, loads the wardrobe and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "service", a.cfg.Service.BaseURL, "user", a.cfg.Service.UserID)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	a.dispatcher.Dispatch("init", a.controller.Init)

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.shutdown()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := a.dispatcher.Wait(shutdownCtx); err != nil {
		a.logger.Warn("actions still running at shutdown", "error", err)
	}
	return nil
}
