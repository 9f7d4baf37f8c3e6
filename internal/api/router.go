package api

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/admin"
	"github.com/liliang-cn/ragshop/internal/api/auth"
	"github.com/liliang-cn/ragshop/internal/api/channel"
	"github.com/liliang-cn/ragshop/internal/api/middleware"
	"github.com/liliang-cn/ragshop/internal/query"
	"github.com/liliang-cn/ragshop/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	RequireToken bool
	AllowOrigins []string
	StaticDir    string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	services *service.Services,
	queries *query.Client,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Sign-in (public)
	authHandler := auth.NewHandler(services.Auth, queries)
	authHandler.RegisterRoutes(r.Group("/api/auth"))

	// Channel ingest (API key only)
	channelHandler := channel.NewHandler(services.Conversations, queries)
	channelGroup := r.Group("/api/channels")
	channelGroup.Use(middleware.Auth(middleware.AuthConfig{APIKey: cfg.APIKey}))
	channelHandler.RegisterRoutes(channelGroup)

	// Admin API (API key or session token)
	adminHandler := admin.NewHandler(services, queries)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(middleware.AuthConfig{
		APIKey:       cfg.APIKey,
		Tokens:       services.Auth,
		RequireToken: cfg.RequireToken,
	}))
	adminHandler.RegisterRoutes(adminGroup)

	if cfg.StaticDir != "" {
		SetupStaticRoutes(r, os.DirFS(cfg.StaticDir))
	}

	return r
}
