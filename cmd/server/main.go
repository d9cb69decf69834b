package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/api"
	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/contact"
	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/database"
	"github.com/techskillsthatpay/content-server/internal/feeds"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/publish"
	"github.com/techskillsthatpay/content-server/internal/ratelimit"
	"github.com/techskillsthatpay/content-server/internal/storage"
	"github.com/techskillsthatpay/content-server/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting content server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize content store
	store, cleanup, err := newContentStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize content store")
	}
	defer cleanup()

	// Initialize content repository and locale registry
	repo := content.NewRepository(store, log)
	registry := i18n.NewRegistry(cfg.Domains)
	resolver := i18n.NewResolver(registry)

	// Optional content watcher for development
	if cfg.Content.Watch && cfg.Content.Provider == "fs" {
		watcher, err := storage.NewWatcher(cfg.Content.Dir, repo.Invalidate, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start content watcher")
		}
		go watcher.Run(ctx)
		log.Info().Str("dir", cfg.Content.Dir).Msg("Content watcher started")
	}

	// Initialize publish pipeline
	sink := newPublishSink(cfg, store, log)
	pipeline := publish.NewPipeline(repo, sink, log)

	// Initialize contact provider
	contactProvider, err := contact.NewProvider(cfg.Contact, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize contact provider")
	}

	// Initialize router
	router := api.NewRouter(&api.Dependencies{
		Config:         cfg,
		Repo:           repo,
		Registry:       registry,
		Resolver:       resolver,
		Feeds:          feeds.NewBuilder(repo, registry),
		Pipeline:       pipeline,
		Contact:        contactProvider,
		PublishLimiter: ratelimit.New(cfg.RateLimit.PublishLimit, cfg.RateLimit.Window),
		ContactLimiter: ratelimit.New(cfg.RateLimit.ContactLimit, cfg.RateLimit.Window),
	}, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("content_provider", cfg.Content.Provider).
			Str("publish_provider", cfg.Publish.Provider).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newContentStore builds the configured store, returning a cleanup for
// any held resources
func newContentStore(cfg *config.Config, log zerolog.Logger) (storage.ContentStore, func(), error) {
	switch cfg.Content.Provider {
	case "fs":
		return storage.NewFSStore(cfg.Content.Dir), func() {}, nil
	case "memory":
		return storage.NewMemoryStore(log), func() {}, nil
	case "postgres":
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}
		if err := db.RunMigrations(migrationsPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		return storage.NewPostgresStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown content store provider: %s", cfg.Content.Provider)
	}
}

// newPublishSink selects the configured publish target
func newPublishSink(cfg *config.Config, store storage.ContentStore, log zerolog.Logger) publish.Sink {
	if cfg.Publish.Provider == "github" {
		return publish.NewGithubSink(cfg.Publish, log)
	}
	return publish.NewStoreSink(store)
}
