package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// localeCookie stores the visitor's resolved language preference
const (
	localeCookie       = "locale"
	localeCookieMaxAge = 60 * 60 * 24 * 365
)

// LocaleHandler resolves the effective locale for a request
type LocaleHandler struct {
	deps *Dependencies
}

// NewLocaleHandler creates a handler for locale detection
func NewLocaleHandler(deps *Dependencies) *LocaleHandler {
	return &LocaleHandler{deps: deps}
}

// Detect resolves the locale from the request attributes and refreshes
// the preference cookie. The frontend calls this once per session to
// decide which language to render.
func (h *LocaleHandler) Detect(c *gin.Context) {
	cookie, _ := c.Cookie(localeCookie)
	locale := h.deps.Resolver.Resolve(i18n.Request{
		Override:       c.Query("lang"),
		Host:           c.Request.Host,
		Cookie:         cookie,
		AcceptLanguage: c.GetHeader("Accept-Language"),
		UserAgent:      c.GetHeader("User-Agent"),
	})

	info := h.deps.Registry.Info(locale)
	c.SetCookie(localeCookie, string(locale), localeCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"locale":   locale,
		"domain":   info.Domain,
		"htmlLang": info.HTMLLang,
		"ogLocale": info.OGLocale,
		"label":    info.Label,
		"baseUrl":  h.deps.Registry.BaseURL(locale),
	})
}
