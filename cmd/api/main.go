package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/startupviet/advisor-api/api/swagger"
	"github.com/startupviet/advisor-api/internal/handler"
	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/provider"
	"github.com/startupviet/advisor-api/internal/repository"
	"github.com/startupviet/advisor-api/internal/service"
	"github.com/startupviet/advisor-api/pkg/cache"
	"github.com/startupviet/advisor-api/pkg/config"
	"github.com/startupviet/advisor-api/pkg/database"
	"github.com/startupviet/advisor-api/pkg/logger"
	corsmiddleware "github.com/startupviet/advisor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/startupviet/advisor-api/pkg/middleware/requestid"
	"github.com/startupviet/advisor-api/pkg/storage"
)

// @title Startup Advisor API
// @version 0.1.0
// @description Backend for the Vietnamese startup advisory chatbot
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to ensure schema", zap.Error(err))
	}

	metricsSvc := service.NewMetricsService()
	kv := repository.NewKVStore(db, metricsSvc)
	profileRepo := repository.NewProfileRepository(kv)
	documentRepo := repository.NewDocumentRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)

	// Redis is optional: without it the API runs uncached.
	cacheEnabled := true
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		redisClient = nil
		cacheEnabled = false
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cacheEnabled)

	accounts := provider.NewClient(cfg.Auth, logr)

	authSvc := service.NewAuthService(profileRepo, accounts, nil, logr, cfg.Auth.JWTSecret)
	documentSvc := service.NewDocumentService(documentRepo, profileRepo, nil, logr)
	sessionSvc := service.NewSessionService(sessionRepo, logr)
	chatSvc := service.NewChatService(cfg.Chat.ExcerptLength, logr)
	statsSvc := service.NewStatsService(profileRepo, documentRepo, sessionRepo, cacheSvc, logr)

	if cfg.Bootstrap.Enabled {
		bootstrapSvc := service.NewBootstrapService(documentRepo, profileRepo, accounts, logr)
		if err := bootstrapSvc.Run(ctx); err != nil {
			logr.Fatal("bootstrap failed", zap.Error(err))
		}
	}

	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	authHandler := handler.NewAuthHandler(authSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc, statsSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	adminHandler := handler.NewAdminHandler(statsSvc)
	uploadHandler := handler.NewUploadHandler(signer, cfg.Uploads.BaseURL)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/signup", authHandler.Signup)
		api.GET("/profile", authHandler.Profile)

		api.GET("/documents", middleware.Identity(), documentHandler.List)
		api.GET("/documents/:id", documentHandler.Get)
		api.POST("/documents", middleware.RequireIdentity(), documentHandler.Create)
		api.POST("/documents/:id/review", middleware.RequireIdentity(), documentHandler.Review)

		api.GET("/sessions", middleware.Identity(), sessionHandler.List)
		api.POST("/sessions/:sessionId", middleware.RequireIdentity(), sessionHandler.Save)

		api.POST("/chat", chatHandler.Chat)

		api.GET("/admin/stats", middleware.RequireIdentity(), adminHandler.Stats)
		api.GET("/admin/stats/export", middleware.RequireIdentity(), adminHandler.Export)

		api.POST("/upload", middleware.RequireIdentity(), uploadHandler.Upload)
		api.GET("/files/:token", uploadHandler.Resolve)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
