package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelist/reelist/internal/api"
	"github.com/reelist/reelist/internal/cache"
	"github.com/reelist/reelist/internal/config"
	"github.com/reelist/reelist/internal/domain"
	"github.com/reelist/reelist/internal/log"
	"github.com/reelist/reelist/internal/service"
	"github.com/reelist/reelist/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("reelistd %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	logger.Info("starting reelistd", "version", Version, "addr", cfg.Addr())

	st, err := store.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Catalogue.SeedFile != "" {
		n, err := st.SeedCatalogue(ctx, cfg.Catalogue.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
		logger.Info("catalogue seeded", "entries", n, "file", cfg.Catalogue.SeedFile)
	}

	pages := cache.New[domain.ListPage](cache.Config{
		TTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		MaxItems: cfg.Cache.MaxItems,
	})

	svc := service.NewMyListService(st, st, pages, logger)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewRouter(svc, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
