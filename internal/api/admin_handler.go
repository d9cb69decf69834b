package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/publish"
)

// AdminHandler serves the authoring endpoints. When the admin area is
// disabled every route answers 404 so the surface is indistinguishable
// from a site without one.
type AdminHandler struct {
	deps *Dependencies
	log  zerolog.Logger
}

// NewAdminHandler creates a handler for the admin endpoints
func NewAdminHandler(deps *Dependencies, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{deps: deps, log: log}
}

// Guard hides the admin area when disabled and enforces the API token
// when one is configured
func (h *AdminHandler) Guard(c *gin.Context) {
	if !h.deps.Config.Admin.Enabled {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	token := h.deps.Config.Admin.APIToken
	if token != "" && !h.authorized(c, token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Next()
}

func (h *AdminHandler) authorized(c *gin.Context, token string) bool {
	if c.GetHeader("X-Admin-Token") == token {
		return true
	}
	auth := c.GetHeader("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == token
}

// Publish accepts the multi-locale authoring payload and runs it through
// the publish pipeline
func (h *AdminHandler) Publish(c *gin.Context) {
	if !h.deps.PublishLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many publish requests, try again later"})
		return
	}

	var req models.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "errors": []string{err.Error()}})
		return
	}

	result, warnings, err := h.deps.Pipeline.Publish(c.Request.Context(), &req)
	if err != nil {
		var validationErr *publish.ValidationError
		var conflictErr *publish.ConflictError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": validationErr.Errors})
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Slug conflict", "errors": conflictErr.Errors})
		case errors.Is(err, publish.ErrStoreNotWritable):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Content store is read-only"})
		default:
			h.log.Error().Err(err).Str("translation_key", req.Global.TranslationKey).Msg("Publish failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Publish failed"})
		}
		return
	}

	response := gin.H{"message": "Published", "warnings": warnings}
	if result != nil && (result.CommitSHA != "" || result.PRURL != "") {
		response["result"] = result
	}
	c.JSON(http.StatusOK, response)
}

type postIndexItem struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	URL            string   `json:"url"`
	TranslationKey string   `json:"translationKey"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
}

type categoryIndexItem struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// ContentIndex lists the published posts or categories of one locale,
// used by the authoring UI for internal-link pickers
func (h *AdminHandler) ContentIndex(c *gin.Context) {
	lang := c.DefaultQuery("lang", string(i18n.DefaultLocale))
	if !i18n.IsLocale(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lang parameter"})
		return
	}
	locale := i18n.Locale(lang)
	baseURL := h.deps.Registry.BaseURL(locale)

	switch c.DefaultQuery("type", "posts") {
	case "posts":
		posts, err := h.deps.Repo.All(c.Request.Context(), locale)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to load content index")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load content"})
			return
		}
		items := make([]postIndexItem, 0, len(posts))
		for _, post := range posts {
			items = append(items, postIndexItem{
				Title:          post.Title,
				Slug:           post.Slug,
				URL:            baseURL + "/posts/" + post.Slug,
				TranslationKey: post.TranslationKey,
				Category:       post.Category,
				Tags:           post.Tags,
			})
		}
		c.JSON(http.StatusOK, gin.H{"lang": lang, "type": "posts", "items": items})

	case "categories":
		posts, err := h.deps.Repo.All(c.Request.Context(), locale)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to load content index")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load content"})
			return
		}
		categories, err := h.deps.Repo.Categories(c.Request.Context(), locale)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to load categories")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load content"})
			return
		}
		counts := make(map[string]int)
		for _, post := range posts {
			counts[post.CategorySlug]++
		}
		items := make([]categoryIndexItem, 0, len(categories))
		for _, category := range categories {
			items = append(items, categoryIndexItem{
				Name:  category.Label,
				Slug:  category.Slug,
				URL:   baseURL + "/category/" + category.Slug,
				Count: counts[category.Slug],
			})
		}
		c.JSON(http.StatusOK, gin.H{"lang": lang, "type": "categories", "items": items})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid type parameter, expected posts or categories"})
	}
}
