package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/config"
	"github.com/alhifz/hifz/internal/database"
	"github.com/alhifz/hifz/internal/database/hadiths"
	progressrepo "github.com/alhifz/hifz/internal/database/progress"
	http_controllers "github.com/alhifz/hifz/internal/http"
	"github.com/alhifz/hifz/internal/meili"
	"github.com/alhifz/hifz/internal/progress"
	"github.com/alhifz/hifz/internal/scheduler"
	"github.com/alhifz/hifz/internal/search"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then drain with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the reindex scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Hifz v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	hadithRepo := hadiths.NewRepository(db.DB)
	progressRepo := progressrepo.NewRepository(db.DB)

	engineOpts := []search.Option{
		search.WithPageLimits(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize),
	}
	if cfg.Meilisearch.Enabled {
		log.Printf("Meilisearch backend enabled at %s (index %q)", cfg.Meilisearch.URL, cfg.Meilisearch.Index)
		remote := meili.NewClient(meili.Config{
			URL:     cfg.Meilisearch.URL,
			APIKey:  cfg.Meilisearch.APIKey,
			Index:   cfg.Meilisearch.Index,
			Timeout: cfg.Meilisearch.Timeout,
		})
		engineOpts = append(engineOpts, search.WithRemoteBackend(remote))
	}
	engine := search.NewEngine(hadithRepo, engineOpts...)

	// Rebuild on startup: the index is derived state and cheap to
	// reconstruct from the hadith table.
	if err := engine.RebuildIndex(context.Background()); err != nil {
		log.Printf("WARNING: initial index rebuild failed, search will use the database fallback: %v", err)
	}

	progressService := progress.NewService(progressRepo, hadithRepo)

	var reindexScheduler *scheduler.ReindexScheduler
	if cfg.Reindex.Enabled {
		reindexScheduler = scheduler.NewReindexScheduler(engine, cfg.Reindex.Schedule)
		if err := reindexScheduler.Start(); err != nil {
			log.Fatalf("Failed to start reindex scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database: db,
		Engine:   engine,
		Progress: progressService,
		Version:  version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if reindexScheduler != nil {
			reindexScheduler.Stop()
		}
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	})
}
