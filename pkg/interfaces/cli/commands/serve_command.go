package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/npcunard/herdfeed/pkg/application/services"
	"github.com/npcunard/herdfeed/pkg/interfaces/api"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Port        string
	CatalogFile string
	DefaultMode string
}

// ServeCommand runs the HTTP evaluation API until its context is cancelled
type ServeCommand struct {
	config ServeConfig
	logger *zap.Logger
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig, logger *zap.Logger) *ServeCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServeCommand{config: config, logger: logger}
}

// Handler builds the HTTP handler over the configured feed catalog
func (c *ServeCommand) Handler() (http.Handler, error) {
	catalog, _, err := loadCatalog(c.config.CatalogFile)
	if err != nil {
		return nil, err
	}

	svc := services.NewRationService(catalog, c.logger.Named("svc.ration"))
	handler := api.NewRationHandler(svc, c.config.DefaultMode, c.logger.Named("handlers.ration"))
	return api.NewRouter(handler, c.logger.Named("router")), nil
}

// Execute serves until ctx is done, then shuts down gracefully
func (c *ServeCommand) Execute(ctx context.Context) error {
	handler, err := c.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + c.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("server starting", zap.String("port", c.config.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	c.logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
