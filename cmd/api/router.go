package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/pkg/container"
)

const (
	homeMessage     = "Esta es la home de nuestra API."
	notFoundMessage = "Lo sentimos :( No hemos encontrado la página solicitada."
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.ErrorReporter(),
	)

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, homeMessage)
	})
	router.GET("/health", healthCheckHandler(c))

	if c.LocalUploads != nil {
		router.Static(c.LocalUploads.PublicPath(), c.LocalUploads.Dir())
	}

	setupAuthorRoutes(router, c)
	setupBookRoutes(router, c)

	router.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusNotFound, notFoundMessage)
	})

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	guard := []gin.HandlerFunc{middleware.AuthMiddleware(c.JWTManager)}
	if c.Config.Auth.EnforceOwnership {
		guard = append(guard, middleware.RequireOwnership("id"))
	}

	authors := router.Group("/author")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", c.AuthorHandler.Create)
		authors.POST("/login", c.AuthorHandler.Login)
		authors.POST("/image-upload", c.AuthorHandler.UploadImage)
	}

	protected := router.Group("/author", guard...)
	{
		protected.PUT("/:id", c.AuthorHandler.Update)
		protected.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/book")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)
		books.GET("/title/:title", c.BookHandler.GetByTitle)
	}

	var guard []gin.HandlerFunc
	if c.Config.Auth.ProtectBooks {
		guard = append(guard, middleware.AuthMiddleware(c.JWTManager))
	}

	mutations := router.Group("/book", guard...)
	{
		mutations.POST("", c.BookHandler.Create)
		mutations.PUT("/:id", c.BookHandler.Update)
		mutations.DELETE("/:id", c.BookHandler.Delete)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			}
		}
		if dbStatus != "ok" {
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}
		c.JSON(status, health)
	}
}
