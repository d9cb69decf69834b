// Package seo holds the indexing policies and per-locale site metadata
// that keep sitemap, feed and robots output consistent.
package seo

import (
	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// SiteName is the brand shown in feeds and structured data
const SiteName = "TechSkillsThatPay"

// MinPostsForIndex is the minimum post count before a generated
// collection page is eligible for search-engine indexing
const MinPostsForIndex = 3

var siteTitles = map[i18n.Locale]string{
	i18n.LocaleEN: "TechSkillsThatPay | Evidence-based career skills",
	i18n.LocalePT: "TechSkillsThatPay | Habilidades com ROI comprovado",
	i18n.LocaleES: "TechSkillsThatPay | Habilidades con ROI comprobado",
	i18n.LocaleIT: "TechSkillsThatPay | Competenze con ROI comprovato",
}

var siteDescriptions = map[i18n.Locale]string{
	i18n.LocaleEN: "Practical guidance for tech careers that actually pay - roadmaps, course picks, and playbooks.",
	i18n.LocalePT: "Guias praticos para carreiras de tecnologia com bom retorno - roadmaps, cursos e playbooks.",
	i18n.LocaleES: "Guias practicas para carreras tech con buen ROI - roadmaps, cursos y playbooks.",
	i18n.LocaleIT: "Guide pratiche per carriere tech ad alto ROI - roadmap, corsi e playbook.",
}

// SiteTitle returns the site title for a locale
func SiteTitle(locale i18n.Locale) string {
	if title, ok := siteTitles[locale]; ok {
		return title
	}
	return siteTitles[i18n.DefaultLocale]
}

// SiteDescription returns the site description for a locale
func SiteDescription(locale i18n.Locale) string {
	if desc, ok := siteDescriptions[locale]; ok {
		return desc
	}
	return siteDescriptions[i18n.DefaultLocale]
}

// ShouldIndexCollection reports whether a category or tag listing with
// the given post count is eligible for indexing
func ShouldIndexCollection(count int) bool {
	return count >= MinPostsForIndex
}

// IndexableCollectionPage reports whether a specific listing page should
// be indexed: the collection must meet the threshold and only the first
// page is ever indexable.
func IndexableCollectionPage(count, page int) bool {
	return ShouldIndexCollection(count) && page <= 1
}
