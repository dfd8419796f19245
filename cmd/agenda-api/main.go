package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/halcyonlab/agenda-api/api/swagger"
	"github.com/halcyonlab/agenda-api/internal/feed"
	"github.com/halcyonlab/agenda-api/internal/handler"
	"github.com/halcyonlab/agenda-api/internal/middleware"
	"github.com/halcyonlab/agenda-api/internal/repository"
	"github.com/halcyonlab/agenda-api/internal/service"
	"github.com/halcyonlab/agenda-api/pkg/cache"
	"github.com/halcyonlab/agenda-api/pkg/config"
	"github.com/halcyonlab/agenda-api/pkg/database"
	"github.com/halcyonlab/agenda-api/pkg/logger"
	corsmiddleware "github.com/halcyonlab/agenda-api/pkg/middleware/cors"
	reqidmiddleware "github.com/halcyonlab/agenda-api/pkg/middleware/requestid"
)

// @title Agenda API
// @version 0.1.0
// @description Event aggregation and scheduling engine for the personal dashboard
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Timeline.CacheTTL, logr, true)
		defer cacheRepo.Close()
	}

	validate := validator.New()
	notifier := repository.NewNotifier()

	eventRepo := repository.NewEventRepository(db, notifier)
	commitmentRepo := repository.NewCommitmentRepository(db, notifier)
	feedSourceRepo := repository.NewFeedSourceRepository(db)

	fetcher := feed.NewHTTPFetcher(cfg.Feed.ProxyPrefix, cfg.Feed.FetchTimeout)
	adapter := feed.NewAdapter(fetcher, logr)

	timelineSvc := service.NewTimelineService(service.TimelineServiceParams{
		Events:   eventRepo,
		Sources:  feedSourceRepo,
		Adapter:  adapter,
		Cache:    cacheSvc,
		Metrics:  metricsSvc,
		Notifier: notifier,
		Logger:   logr,
		CacheTTL: cfg.Timeline.CacheTTL,
	})

	eventSvc := service.NewEventService(eventRepo, commitmentRepo, validate, logr)
	commitmentSvc := service.NewCommitmentService(commitmentRepo, validate, logr)
	feedSvc := service.NewFeedService(feedSourceRepo, logr)
	slotSvc := service.NewSlotService(timelineSvc, validate, metricsSvc, service.SlotSearchDefaults{
		Days:         cfg.Slots.DefaultDays,
		DayStartHour: cfg.Slots.DefaultDayStartHour,
		DayEndHour:   cfg.Slots.DefaultDayEndHour,
	}, logr)
	goalSvc := service.NewGoalService(commitmentRepo, timelineSvc, service.GoalProgressConfig{
		DefaultHorizon:       time.Duration(cfg.Goals.DefaultHorizonDays) * 24 * time.Hour,
		BehindThresholdRatio: cfg.Goals.BehindThresholdRatio,
	}, logr)
	dashboardSvc := service.NewDashboardService(timelineSvc, goalSvc, cacheSvc, service.DashboardServiceConfig{
		CacheTTL: cfg.Timeline.CacheTTL,
	}, logr)
	exportSvc := service.NewExportService(timelineSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	timelineHandler := handler.NewTimelineHandler(timelineSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	commitmentHandler := handler.NewCommitmentHandler(commitmentSvc, goalSvc)
	feedHandler := handler.NewFeedHandler(feedSvc)
	slotHandler := handler.NewSlotHandler(slotSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.GET("/timeline", timelineHandler.List)
		api.POST("/timeline/refresh", timelineHandler.Refresh)

		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:id", eventHandler.Get)
		api.PUT("/events/:id", eventHandler.Update)
		api.DELETE("/events/:id", eventHandler.Delete)

		api.GET("/commitments", commitmentHandler.List)
		api.POST("/commitments", commitmentHandler.Create)
		api.GET("/commitments/:id", commitmentHandler.Get)
		api.PUT("/commitments/:id", commitmentHandler.Update)
		api.DELETE("/commitments/:id", commitmentHandler.Delete)
		api.GET("/commitments/:id/progress", commitmentHandler.Progress)

		api.GET("/feed", feedHandler.Get)
		api.PUT("/feed", feedHandler.Register)
		api.DELETE("/feed", feedHandler.Remove)

		api.POST("/slots/search", slotHandler.Search)
		api.GET("/dashboard", dashboardHandler.Summary)

		if cfg.Export.Enabled {
			api.GET("/agenda/export", exportHandler.Agenda)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
