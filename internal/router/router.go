package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/enrollment-backend/internal/config"
	"github.com/stemsi/enrollment-backend/internal/handler"
	"github.com/stemsi/enrollment-backend/internal/middleware"
	"github.com/stemsi/enrollment-backend/internal/response"
	"github.com/stemsi/enrollment-backend/internal/validator"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course    *handler.CourseHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	validator.Setup()

	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))

	if cfg.EnableBrotli {
		router.Use(middleware.Brotli())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Mutations share one per-IP budget.
	mutate := []gin.HandlerFunc{}
	if cfg.RateLimitPerMinute > 0 {
		mutate = append(mutate, middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute).Middleware())
	}
	withLimit := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutate...), h)
	}

	// ─── Courses & Enrollments ─────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	{
		api.GET("/courses", handlers.Course.ListCourses)
		api.POST("/courses", withLimit(handlers.Course.CreateCourse)...)
		api.GET("/courses/:code", handlers.Course.GetCourse)
		api.DELETE("/courses/:code", withLimit(handlers.Course.DeleteCourse)...)

		api.POST("/courses/:code/enrollments", withLimit(handlers.Course.Enroll)...)
		api.GET("/courses/:code/enrollments/front", handlers.Course.PeekFront)
		api.DELETE("/courses/:code/enrollments/front", withLimit(handlers.Course.Unenroll)...)

		api.GET("/dashboard", handlers.Dashboard.GetDashboardData)
	}

	// ─── Event Stream ──────────────────────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	{
		wsGroup.GET("/events", handlers.WS.EventStream)
	}

	return router
}
