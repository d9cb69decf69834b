package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/seo"
)

// cacheControl lets CDNs serve crawl artifacts for an hour and revalidate
// in the background for a day
const cacheControl = "public, max-age=0, s-maxage=3600, stale-while-revalidate=86400"

// SeoHandler serves robots.txt, the per-locale RSS feed and sitemaps
type SeoHandler struct {
	deps *Dependencies
	log  zerolog.Logger
}

// NewSeoHandler creates a handler for crawl artifacts
func NewSeoHandler(deps *Dependencies, log zerolog.Logger) *SeoHandler {
	return &SeoHandler{deps: deps, log: log}
}

// Robots serves the robots policy for the requested domain. Preview
// deployments disallow everything.
func (h *SeoHandler) Robots(c *gin.Context) {
	locale := h.hostLocale(c)
	body := seo.RobotsTxt(h.deps.Registry, locale, h.deps.Config.Server.IsPreview())
	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// RSS serves the feed for the locale in the path
func (h *SeoHandler) RSS(c *gin.Context) {
	lang := c.Param("lang")
	if !i18n.IsLocale(lang) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown locale"})
		return
	}

	body, err := h.deps.Feeds.RSS(c.Request.Context(), i18n.Locale(lang))
	if err != nil {
		h.log.Error().Err(err).Str("locale", lang).Msg("Failed to build RSS feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build feed"})
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(body))
}

// Sitemap serves the sitemap for the locale matching the request host
func (h *SeoHandler) Sitemap(c *gin.Context) {
	locale := h.hostLocale(c)
	body, err := h.deps.Feeds.LocaleSitemap(c.Request.Context(), locale)
	if err != nil {
		h.log.Error().Err(err).Str("locale", string(locale)).Msg("Failed to build sitemap")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap"})
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
}

// SitemapIndex serves the cross-locale sitemap index
func (h *SeoHandler) SitemapIndex(c *gin.Context) {
	body, err := h.deps.Feeds.SitemapIndex(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build sitemap index")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap index"})
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
}

func (h *SeoHandler) hostLocale(c *gin.Context) i18n.Locale {
	if locale, ok := h.deps.Registry.LocaleForHost(c.Request.Host); ok {
		return locale
	}
	return i18n.DefaultLocale
}
