package seo

import (
	"strings"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// RobotsTxt builds the robots directive for a locale's domain. Public
// routes are crawlable and admin/API routes are blocked; a preview
// deployment blocks everything so unfinished content never gets indexed.
func RobotsTxt(registry *i18n.Registry, locale i18n.Locale, preview bool) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")

	if preview {
		b.WriteString("Disallow: /\n")
		return b.String()
	}

	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Sitemap: " + registry.BaseURL(locale) + "/sitemap.xml\n")
	b.WriteString("Host: " + registry.Domain(locale) + "\n")
	return b.String()
}
