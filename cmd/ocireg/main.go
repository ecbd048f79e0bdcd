package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ocireg/ocireg/internal/api"
	v2 "github.com/ocireg/ocireg/internal/api/v2"
	"github.com/ocireg/ocireg/internal/audit"
	"github.com/ocireg/ocireg/internal/config"
	"github.com/ocireg/ocireg/internal/storage"
	"github.com/ocireg/ocireg/internal/users"
)

var version = "0.1.0"

func main() {
	host := flag.String("host", "", "listen address (overrides config)")
	usersFile := flag.String("users-file", "", "users file path (overrides config)")
	configPath := flag.String("config", "", "path to YAML config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	if *host != "" {
		cfg.Server.Addr = *host
	}
	if *usersFile != "" {
		cfg.Server.UsersFile = *usersFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.Storage.Root, 0o755); err != nil {
		return fmt.Errorf("creating storage root: %w", err)
	}

	blobs, err := storage.NewBlobStore(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("initializing blob store: %w", err)
	}
	defer blobs.Close()

	manifests, err := storage.NewManifestStore(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("initializing manifest store: %w", err)
	}

	uploads, err := storage.NewUploadManager(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("initializing upload manager: %w", err)
	}

	index, err := storage.OpenIndex(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("opening catalog index: %w", err)
	}
	defer index.Close()

	store, err := users.Load(cfg.Server.UsersFile)
	if err != nil {
		return fmt.Errorf("loading users file: %w", err)
	}

	auditLog := audit.NewLog(index)

	v2Handler := v2.NewHandler(blobs, manifests, uploads, index, logger)
	adminHandler := api.NewAdminHandler(store, auditLog)
	auth := api.NewBasicAuth(store)
	router := api.NewRouter(v2Handler, adminHandler, auth, store, logger, cfg.Server.Addr)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       0,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("ocireg starting", "version", version, "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
