package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pathshala-edu/pathshala-api/api/swagger"
	"github.com/pathshala-edu/pathshala-api/internal/handler"
	"github.com/pathshala-edu/pathshala-api/internal/middleware"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	"github.com/pathshala-edu/pathshala-api/internal/repository"
	"github.com/pathshala-edu/pathshala-api/internal/service"
	"github.com/pathshala-edu/pathshala-api/pkg/cache"
	"github.com/pathshala-edu/pathshala-api/pkg/config"
	"github.com/pathshala-edu/pathshala-api/pkg/database"
	"github.com/pathshala-edu/pathshala-api/pkg/logger"
	corsmiddleware "github.com/pathshala-edu/pathshala-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pathshala-edu/pathshala-api/pkg/middleware/requestid"
	"github.com/pathshala-edu/pathshala-api/pkg/storage"
)

// @title Pathshala API
// @version 1.0.0
// @description Learning management backend
// @BasePath /api
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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	var cacheSvc *service.CacheService
	metricsSvc := service.NewMetricsService()
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheSvc = service.NewCacheService(redisClient, metricsSvc, logr)
		}
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.BaseDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	lectureRepo := repository.NewLectureRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: "pathshala-api",
	})
	announcementSvc := service.NewAnnouncementService(announcementRepo, cacheSvc, cfg.Cache.AnnouncementTTL, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, userRepo, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, validate, logr)
	uploadCfg := service.UploadConfig{
		PublicPrefix: cfg.Uploads.PublicPrefix,
		MaxFileSize:  cfg.Uploads.MaxFileSizeBytes,
	}
	materialSvc := service.NewMaterialService(materialRepo, store, validate, logr, uploadCfg)
	lectureSvc := service.NewLectureService(lectureRepo, store, validate, logr, uploadCfg)

	authHandler := handler.NewAuthHandler(authSvc, handler.CookieConfig{
		Name:   cfg.JWT.CookieName,
		MaxAge: int(cfg.JWT.Expiration.Seconds()),
		Secure: cfg.Env == config.EnvProduction,
	})
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	materialHandler := handler.NewMaterialHandler(materialSvc)
	lectureHandler := handler.NewLectureHandler(lectureSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Static(cfg.Uploads.PublicPrefix, store.BaseDir())

	requireAuth := middleware.JWT(authSvc, cfg.JWT.CookieName)
	requireAdmin := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.GET("/announcement", announcementHandler.List)
		api.POST("/announcement", requireAuth, requireAdmin, announcementHandler.Create)

		api.GET("/attendance", requireAuth, requireAdmin, attendanceHandler.Get)
		api.POST("/attendance", requireAuth, requireAdmin, attendanceHandler.Mark)
		api.GET("/attendance/export", requireAuth, requireAdmin, attendanceHandler.Export)

		api.POST("/feedback", requireAuth, feedbackHandler.Submit)
		api.GET("/feedback", requireAuth, feedbackHandler.ListOwn)

		api.GET("/lectures", requireAuth, lectureHandler.List)
		api.POST("/lectures/upload", requireAuth, requireAdmin, lectureHandler.Upload)

		api.GET("/material", requireAuth, materialHandler.List)
		api.POST("/material", requireAuth, requireAdmin, materialHandler.Upload)

		admin := api.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/feedback", feedbackHandler.ListAll)
			admin.PATCH("/feedback/:id", feedbackHandler.Respond)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
