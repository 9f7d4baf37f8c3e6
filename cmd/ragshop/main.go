package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liliang-cn/ragshop/internal/api"
	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/liliang-cn/ragshop/internal/logger"
	"github.com/liliang-cn/ragshop/internal/query"
	"github.com/liliang-cn/ragshop/internal/repository"
	"github.com/liliang-cn/ragshop/internal/service"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()
	printBanner()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	// Knowledge history lives in sqlite, everything else in the in-memory store
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		zl.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	versions := repository.NewKnowledgeVersionRepository(db)
	store := repository.NewSeededStore(time.Now())

	services := service.New(cfg, store, versions, zl)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := services.Knowledge.SnapshotAll(ctx); err != nil {
		zl.Warn("Failed to record knowledge baseline", zap.Error(err))
	}

	queries := query.NewClient(query.Options{
		StaleTime:    cfg.Cache.StaleTime,
		GCTime:       cfg.Cache.GCTime,
		FetchTimeout: cfg.Cache.FetchTimeout,
	}, zl.Named("query"))
	go queries.Run(ctx)

	// Setup router
	router := api.SetupRouter(services, queries, zl, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		RequireToken: cfg.Auth.JWTSecret != "",
		AllowOrigins: cfg.CORS.AllowOrigins,
		StaticDir:    cfg.Server.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zl.Info("Starting RAGShop admin server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
			zap.Bool("latency", cfg.Latency.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server...")
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exited")
}

func printBanner() {
	banner := `
    ____  ___   ______   _____ __
   / __ \/   | / ____/  / ___// /_  ____  ____
  / /_/ / /| |/ / __    \__ \/ __ \/ __ \/ __ \
 / _, _/ ___ / /_/ /   ___/ / / / / /_/ / /_/ /
/_/ |_/_/  |_\____/   /____/_/ /_/\____/ .___/
                                      /_/
`

	fmt.Println(banner)
}
