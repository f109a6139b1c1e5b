package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"academy-backend/internal/shared/middleware"
	"academy-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupCategoryRoutes(router, c)
	setupCourseRoutes(router, c)
	setupCartRoutes(router, c)
	setupNotificationRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/categories", c.CategoryHandler.List)
}

// ========================================
// COURSE ROUTES
// ========================================
// Reads are public. Writes resolve the actor from an optional token and
// the gate inside the handler decides.
func setupCourseRoutes(r *gin.Engine, c *container.Container) {
	courses := r.Group("/courses", middleware.OptionalAuthMiddleware(c.JWTManager))
	{
		courses.GET("", c.CourseHandler.List)

		// static paths before /:id
		courses.GET("/create", c.CourseHandler.CreateForm)
		courses.GET("/export-excel", c.CourseHandler.ExportExcel)
		courses.GET("/export-pdf", c.CourseHandler.ExportPDF)

		courses.GET("/:id", c.CourseHandler.Show)
		courses.GET("/:id/edit", c.CourseHandler.EditForm)

		courses.POST("", c.CourseHandler.Create)
		courses.PUT("/:id", c.CourseHandler.Update)
		courses.DELETE("/:id", c.CourseHandler.Delete)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(r *gin.Engine, c *container.Container) {
	sessionConfig := middleware.DefaultSessionConfig(c.Config.App.Environment == "production")

	cart := r.Group("/cart",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.StoreOpen(c.Config.Store.Open, c.Config.Store.ClosedMessage),
		middleware.SessionMiddleware(sessionConfig),
	)
	{
		cart.GET("", c.CartHandler.View)
		cart.POST("/add/:courseId", c.CartHandler.Add)
		cart.DELETE("/remove/:id", c.CartHandler.Remove)
		cart.POST("/clear", c.CartHandler.Clear)
	}
}

// ========================================
// NOTIFICATION ROUTES
// ========================================
func setupNotificationRoutes(r *gin.Engine, c *container.Container) {
	notifications := r.Group("/notifications", middleware.AuthMiddleware(c.JWTManager))
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.PATCH("/:id/read", c.NotificationHandler.MarkRead)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis. The API keeps serving from memory without it.
		redisStatus := "ok"
		if !appCtx.RedisUp {
			redisStatus = "disconnected (in-memory fallback)"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.RedisClient.Ping(ctx).Err(); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  appCtx.Config.Storage.Driver,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
