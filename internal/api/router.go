// Package api wires the gin router and HTTP server lifecycle.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/config"
	"github.com/gazetadovale/newsdesk/internal/handlers"
	"github.com/gazetadovale/newsdesk/internal/logger"
)

const corsMaxAge = 12 * time.Hour

// Handlers groups everything the router mounts.
type Handlers struct {
	Feed   *handlers.FeedHandler
	Auth   *handlers.AuthHandler
	Form   *handlers.NewsFormHandler
	Admin  *handlers.AdminHandler
	Create *handlers.CreateHandler
	Tools  *handlers.ToolsHandler
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg *config.Config, h Handlers, log logger.Logger) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/feed", h.Feed.Feed)
	v1.GET("/news/:id", h.Feed.Article)
	v1.GET("/regions", h.Feed.Regions)
	v1.GET("/cities", h.Feed.Cities)
	v1.GET("/ads", h.Feed.Ads)
	v1.GET("/partners", h.Feed.Partners)
	v1.POST("/login", h.Auth.Login)
	v1.POST("/logout", h.Auth.Logout)

	admin := router.Group("/admin")
	admin.Use(h.Auth.Middleware())

	form := admin.Group("/news/form")
	form.GET("", h.Form.FormState)
	form.POST("/open", h.Form.OpenCreate)
	form.POST("/open/:id", h.Form.OpenEdit)
	form.POST("/images", h.Form.StageImages)
	form.GET("/previews/:token", h.Form.Preview)
	form.DELETE("/images/:index", h.Form.RemoveExistingImage)
	form.POST("/submit", h.Form.Submit)
	form.POST("/cancel", h.Form.Cancel)

	admin.POST("/regions", h.Create.CreateRegion)
	admin.POST("/cities", h.Create.CreateCity)
	admin.POST("/users", h.Create.CreateUser)
	admin.POST("/ads", h.Create.CreateAd)
	admin.PUT("/ads/:id", h.Create.UpdateAd)
	admin.POST("/partners", h.Create.CreatePartner)

	admin.GET("/link-preview", h.Tools.LinkPreview)
	admin.POST("/geo/import", h.Tools.GeoImport)

	admin.GET("/:kind", h.Admin.List)
	admin.POST("/:kind/:id/delete", h.Admin.RequestDelete)
	admin.POST("/:kind/delete/confirm", h.Admin.ConfirmDelete)
	admin.POST("/:kind/delete/cancel", h.Admin.CancelDelete)

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
