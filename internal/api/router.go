// Package api wires the HTTP surface: crawl artifacts (robots, feeds,
// sitemaps), the admin publish endpoints and the contact form.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/contact"
	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/feeds"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/metrics"
	"github.com/techskillsthatpay/content-server/internal/publish"
	"github.com/techskillsthatpay/content-server/internal/ratelimit"
)

// Dependencies bundles everything the HTTP layer needs
type Dependencies struct {
	Config   *config.Config
	Repo     *content.Repository
	Registry *i18n.Registry
	Resolver *i18n.Resolver
	Feeds    *feeds.Builder
	Pipeline *publish.Pipeline
	Contact  contact.Provider

	PublishLimiter *ratelimit.Limiter
	ContactLimiter *ratelimit.Limiter
}

// NewRouter creates and configures the Gin router
func NewRouter(deps *Dependencies, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(metrics.Middleware())

	seoHandler := NewSeoHandler(deps, log)
	adminHandler := NewAdminHandler(deps, log)
	contactHandler := NewContactHandler(deps, log)
	localeHandler := NewLocaleHandler(deps)

	router.GET("/healthz", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/locale", localeHandler.Detect)

	router.GET("/robots.txt", seoHandler.Robots)
	router.GET("/sitemap.xml", seoHandler.Sitemap)
	router.GET("/sitemap-index.xml", seoHandler.SitemapIndex)
	router.GET("/:lang/rss.xml", seoHandler.RSS)

	admin := router.Group("/api/admin", adminHandler.Guard)
	{
		admin.POST("/publish", adminHandler.Publish)
		admin.GET("/content-index", adminHandler.ContentIndex)
	}

	router.POST("/api/contact", contactHandler.Submit)

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "content-server",
	})
}
