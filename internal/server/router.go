package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/studypulse-backend/internal/handlers"
	"github.com/yungbote/studypulse-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName      string
	AllowedOrigins   string
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	CourseHandler    *handlers.CourseHandler
	SessionHandler   *handlers.SessionHandler
	DashboardHandler *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)

	protected.GET("/user", cfg.UserHandler.GetMe)

	protected.GET("/courses", cfg.CourseHandler.ListCourses)
	protected.POST("/courses", cfg.CourseHandler.CreateCourse)
	protected.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)

	protected.GET("/sessions", cfg.SessionHandler.ListSessions)
	protected.POST("/sessions", cfg.SessionHandler.LogSession)

	protected.GET("/dashboard", cfg.DashboardHandler.GetDashboard)

	return router
}
