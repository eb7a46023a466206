package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/cmd"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{
		FilePath:   configs.LogFilePath,
		Production: configs.Production(),
	})
	defer func() { _ = appLogger.Sync() }()

	if err = run(configs, appLogger); err != nil {
		appLogger.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(configs cmd.Config, appLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(configs.DSN(), appLogger)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, appLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return errors.Join(err, app.Close(context.Background()))
	}

	e, err := app.CreateHTTPServer()
	if err != nil {
		jobManager.StopAll()
		return errors.Join(err, app.Close(context.Background()))
	}

	serverErr := startWebServer(e, configs.HTTPPort, appLogger)

	select {
	case <-ctx.Done():
		appLogger.Info("shutdown signal received")
	case err = <-serverErr:
		appLogger.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", shutdownErr))
	}
	jobManager.StopAll()
	if closeErr := app.Close(shutdownCtx); closeErr != nil {
		errs = append(errs, closeErr)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	appLogger.Info("service stopped")
	return errors.Join(append(errs, err)...)
}

func startWebServer(e *echo.Echo, port string, appLogger *zap.Logger) <-chan error {
	e.Logger.SetLevel(log.WARN)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		appLogger.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}
