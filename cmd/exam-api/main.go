package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/school-exams-api/api/swagger"
	"github.com/noah-isme/school-exams-api/internal/handler"
	"github.com/noah-isme/school-exams-api/internal/middleware"
	"github.com/noah-isme/school-exams-api/internal/repository"
	"github.com/noah-isme/school-exams-api/internal/service"
	"github.com/noah-isme/school-exams-api/pkg/cache"
	"github.com/noah-isme/school-exams-api/pkg/config"
	"github.com/noah-isme/school-exams-api/pkg/database"
	"github.com/noah-isme/school-exams-api/pkg/jobs"
	"github.com/noah-isme/school-exams-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-exams-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-exams-api/pkg/middleware/requestid"
)

// @title School Exams API
// @version 1.0.0
// @description Enrolment, score entry and norm-referenced grading with ranked broadsheets.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database unavailable", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis unavailable", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	studentRepo := repository.NewStudentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Exams.CacheTTL, logr, cfg.Exams.CacheEnabled && redisClient != nil)
	settingsSvc := service.NewSettingsService(settingsRepo, cacheSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, scoreRepo, cacheSvc, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, cacheSvc, validate, logr)
	examSvc := service.NewExamService(studentRepo, scoreRepo, staffRepo, settingsSvc, cacheSvc, metricsSvc, cfg.Exams.CacheTTL, validate, logr)
	scoreSvc := service.NewScoreService(scoreRepo, studentRepo, settingsSvc, cacheSvc, metricsSvc, validate, logr)

	if cacheSvc.Enabled() && cfg.Exams.WarmWorkers > 0 {
		warmer := service.NewBroadsheetWarmer(examSvc, studentRepo, jobs.QueueConfig{Workers: cfg.Exams.WarmWorkers, MaxRetries: 1, Logger: logr})
		warmer.Start(ctx)
		defer warmer.Stop()
		scoreSvc.WithWarmer(warmer)
		studentSvc.WithWarmer(warmer)
		staffSvc.WithWarmer(warmer)
		settingsSvc.WithWarmer(warmer)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["cache"] = handler.PingFunc(cacheRepo.Ping)
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	studentHandler := handler.NewStudentHandler(studentSvc, scoreSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	examHandler := handler.NewExamHandler(examSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/metrics/summary", metricsHandler.Summary)

		students := api.Group("/students")
		students.GET("", studentHandler.List)
		students.POST("", studentHandler.Create)
		students.GET("/:id", studentHandler.Get)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)
		students.PUT("/:id/scores/:subject", studentHandler.RecordScore)

		staff := api.Group("/staff")
		staff.GET("", staffHandler.List)
		staff.POST("", staffHandler.Create)
		staff.PUT("/:id", staffHandler.Update)
		staff.DELETE("/:id", staffHandler.Delete)

		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", settingsHandler.Update)

		exams := api.Group("/exams")
		exams.GET("/broadsheet", examHandler.Broadsheet)
		exams.GET("/report-cards/:studentId", examHandler.ReportCard)
		exams.GET("/facilitators", examHandler.Facilitators)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "broadsheet_cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
