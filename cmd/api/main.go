package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campushub/ams-api/api/swagger"
	"github.com/campushub/ams-api/internal/database"
	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/handler"
	"github.com/campushub/ams-api/internal/identity"
	"github.com/campushub/ams-api/internal/middleware"
	"github.com/campushub/ams-api/internal/models"
	"github.com/campushub/ams-api/internal/repository"
	"github.com/campushub/ams-api/internal/service"
	"github.com/campushub/ams-api/pkg/cache"
	"github.com/campushub/ams-api/pkg/config"
	pgdatabase "github.com/campushub/ams-api/pkg/database"
	"github.com/campushub/ams-api/pkg/logger"
	corsmiddleware "github.com/campushub/ams-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/ams-api/pkg/middleware/requestid"
	"github.com/campushub/ams-api/pkg/storage"
)

// @title Achievement Management System API
// @version 1.0.0
// @description REST backend for recording and reporting student achievements
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	for _, warning := range cfg.Warnings() {
		logr.Warn("configuration warning", zap.String("detail", warning))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := pgdatabase.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		logr.Fatal("failed to run migrations", zap.Error(err))
	}
	cancelMigrate()

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unreachable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient)
			defer cacheRepo.Close() //nolint:errcheck
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	certificateStore, err := storage.NewCertificateStore(cfg.Uploads.Dir, cfg.Uploads.MaxFileSizeBytes, cfg.Uploads.AllowedExtensions)
	if err != nil {
		logr.Fatal("failed to init certificate storage", zap.Error(err))
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	verifier := identity.NewVerifier(cfg.Firebase.ProjectID, logr)
	if !verifier.Enabled() {
		logr.Warn("federated token verification disabled; claimed emails are trusted")
	}

	authService := service.NewAuthService(studentRepo, teacherRepo, verifier, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	registrationService := service.NewRegistrationService(studentRepo, teacherRepo, validate, logr, service.RegistrationConfig{
		TeacherCode: cfg.Registration.TeacherCode,
	})
	achievementService := service.NewAchievementService(achievementRepo, studentRepo, certificateStore, cacheService, metricsService, validate, logr)

	firebaseClient := dto.FirebaseClientConfigFrom(cfg.Firebase)
	authHandler := handler.NewAuthHandler(authService, firebaseClient)
	registrationHandler := handler.NewRegistrationHandler(registrationService, firebaseClient)
	achievementHandler := handler.NewAchievementHandler(achievementService)
	metricsHandler := handler.NewMetricsHandler(metricsService, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/student/login", authHandler.StudentLogin)
	auth.POST("/teacher/login", authHandler.TeacherLogin)
	auth.POST("/google-login", authHandler.GoogleLogin)
	auth.POST("/logout", middleware.OptionalJWT(authService), authHandler.Logout)
	auth.GET("/firebase-config", authHandler.FirebaseConfig)
	auth.GET("/me", middleware.JWT(authService), authHandler.Me)

	register := api.Group("/register")
	register.GET("/student", registrationHandler.StudentForm)
	register.POST("/student", registrationHandler.RegisterStudent)
	register.GET("/teacher", registrationHandler.TeacherForm)
	register.POST("/teacher", registrationHandler.RegisterTeacher)

	achievements := api.Group("/achievements", middleware.JWT(authService), middleware.RequireRoles(models.RoleTeacher))
	achievements.POST("", achievementHandler.Submit)
	achievements.GET("", achievementHandler.All)
	achievements.GET("/recent", achievementHandler.Recent)
	achievements.GET("/stats", achievementHandler.Stats)
	achievements.GET("/export", achievementHandler.Export)

	api.GET("/certificates/:name", middleware.JWT(authService), achievementHandler.Certificate)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	case sig := <-quit:
		logr.Sugar().Infow("shutdown signal received", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
