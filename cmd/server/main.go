package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"

	"github.com/mcoot/buitransport/internal/api"
	"github.com/mcoot/buitransport/internal/config"
	"github.com/mcoot/buitransport/internal/factory"
	"github.com/mcoot/buitransport/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	displayAppname("BUI Transport")

	app, err := factory.New(cfg.Factory(logger))
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Sessions:     app.Session,
		InitWait:     cfg.SessionInitWait,
		CookieSecure: cfg.CookieSecure,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		Sessions:     app.Session,
		InitWait:     cfg.SessionInitWait,
		CookieSecure: cfg.CookieSecure,
		StaticDir:    cfg.StaticDir,
	})

	// The JSON API lives under /api/v1; everything else is pages
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.HTTPPort
	server := api.NewServer(mux, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("api", cfg.APIBaseURL),
		slog.String("storage", cfg.StorageType),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

func displayAppname(appname string) {
	figure.NewFigure(appname, "cybermedium", true).Print()
	fmt.Println()
}
