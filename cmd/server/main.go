package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/crud-admin/internal/config"
	"github.com/Lixing-Zhang/crud-admin/internal/handlers"
	"github.com/Lixing-Zhang/crud-admin/internal/price"
	"github.com/Lixing-Zhang/crud-admin/internal/repository"
	"github.com/Lixing-Zhang/crud-admin/internal/service"
	"github.com/Lixing-Zhang/crud-admin/internal/theme"
	"github.com/Lixing-Zhang/crud-admin/internal/web"
	"github.com/Lixing-Zhang/crud-admin/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(log)

	log.Info("starting product admin server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"api_url", cfg.API.URL,
		"log_level", cfg.LogLevel,
	)

	formatter, err := price.NewFormatter(cfg.Price.Locale, cfg.Price.Prefix)
	if err != nil {
		log.Error("invalid price configuration", "error", err)
		os.Exit(1)
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Products API client and the snapshot on top of it
	productRepo := repository.NewHTTPProductRepository(cfg.API.URL, time.Duration(cfg.API.Timeout)*time.Second, log)
	catalog := service.NewCatalogService(productRepo, log)

	// Initialize handlers
	r := handlers.NewRouter(handlers.RouterDeps{
		Products:    handlers.NewProductHandler(catalog, formatter, theme.NewStore(cfg.Theme.CookieName), tmpl, log),
		Prices:      handlers.NewPriceHandler(formatter, log),
		Health:      handlers.NewHealthHandler(catalog, log),
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
