package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/studypulse-backend/internal/db"
	"github.com/yungbote/studypulse-backend/internal/handlers"
	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/middleware"
	"github.com/yungbote/studypulse-backend/internal/observability"
	"github.com/yungbote/studypulse-backend/internal/repos"
	"github.com/yungbote/studypulse-backend/internal/server"
	"github.com/yungbote/studypulse-backend/internal/services"
	"github.com/yungbote/studypulse-backend/internal/utils"
)

const serviceName = "studypulse-backend"

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	analysisConcurrency := utils.GetEnvAsInt("ANALYSIS_MAX_CONCURRENCY", 4, log)

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	pg := postgresService.DB()

	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(pg, log)
	userTokenRepo := repos.NewUserTokenRepo(pg, log)
	courseRepo := repos.NewCourseRepo(pg, log)
	sessionRepo := repos.NewStudySessionRepo(pg, log)
	aiCallLogRepo := repos.NewAICallLogRepo(pg, log)

	log.Info("Setting up services from main...")
	geminiClient, err := services.NewGeminiClient(ctx, log)
	if err != nil {
		log.Error("Could not init GeminiClient", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(pg, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(pg, log, userRepo)
	courseService := services.NewCourseService(pg, log, courseRepo, sessionRepo)
	sessionService := services.NewStudySessionService(pg, log, courseRepo, sessionRepo)
	analysisService := services.NewAnalysisService(pg, log, courseRepo, sessionRepo, aiCallLogRepo, geminiClient, analysisConcurrency)

	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	sessionHandler := handlers.NewSessionHandler(log, sessionService)
	dashboardHandler := handlers.NewDashboardHandler(log, analysisService)

	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:      serviceName,
		AllowedOrigins:   utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log),
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UserHandler:      userHandler,
		CourseHandler:    courseHandler,
		SessionHandler:   sessionHandler,
		DashboardHandler: dashboardHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
