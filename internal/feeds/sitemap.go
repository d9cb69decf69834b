package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/seo"
)

// staticRoutes are the fixed public pages included in every locale's
// sitemap ("" is the home page)
var staticRoutes = []string{"", "courses", "about", "privacy", "disclosure", "contact", "categories"}

type alternateLink struct {
	hreflang string
	href     string
}

type urlEntry struct {
	loc        string
	lastmod    time.Time
	images     []string
	alternates []alternateLink
}

// LocaleSitemap builds the sitemap for one locale: static routes, every
// post (with image and hreflang alternates), and each category/tag
// collection that meets the indexability threshold.
func (b *Builder) LocaleSitemap(ctx context.Context, locale i18n.Locale) (string, error) {
	baseURL := b.registry.BaseURL(locale)

	posts, err := b.repo.All(ctx, locale)
	if err != nil {
		return "", fmt.Errorf("failed to load posts for sitemap: %w", err)
	}
	index, err := b.repo.TranslationIndex(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build translation index: %w", err)
	}

	latest := parseOrDefault(defaultLastmod)
	for _, post := range posts {
		if t := post.UpdatedTime(); t.After(latest) {
			latest = t
		}
	}

	var entries []urlEntry

	for _, route := range staticRoutes {
		loc := baseURL
		if route != "" {
			loc += "/" + route
		}
		entries = append(entries, urlEntry{loc: loc, lastmod: latest})
	}

	for _, post := range posts {
		entry := urlEntry{
			loc:        baseURL + "/posts/" + post.Slug,
			lastmod:    post.UpdatedTime(),
			alternates: b.alternatesFor(post, index[post.TranslationKey]),
		}
		if post.CoverImage != "" {
			entry.images = []string{post.CoverImage}
		}
		entries = append(entries, entry)
	}

	entries = append(entries, b.collectionEntries(ctx, locale, posts, latest)...)

	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	out.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:image="http://www.google.com/schemas/sitemap-image/1.1" xmlns:xhtml="http://www.w3.org/1999/xhtml">` + "\n")
	for _, entry := range entries {
		writeURLEntry(&out, entry)
	}
	out.WriteString("</urlset>\n")
	return out.String(), nil
}

// alternatesFor lists the equivalent URLs in the other locales of the
// post's translation group, plus an x-default entry pointing at the
// default-locale translation when one exists
func (b *Builder) alternatesFor(post *models.Post, set models.TranslationSet) []alternateLink {
	var links []alternateLink
	for _, locale := range i18n.Locales {
		slug, ok := set[locale]
		if !ok || locale == post.Locale {
			continue
		}
		links = append(links, alternateLink{
			hreflang: b.registry.HTMLLang(locale),
			href:     b.registry.BaseURL(locale) + "/posts/" + slug,
		})
	}
	if slug, ok := set[i18n.DefaultLocale]; ok {
		links = append(links, alternateLink{
			hreflang: "x-default",
			href:     b.registry.BaseURL(i18n.DefaultLocale) + "/posts/" + slug,
		})
	}
	return links
}

// collectionEntries emits category and tag pages that pass the
// indexability threshold, lastmod = latest member update
func (b *Builder) collectionEntries(ctx context.Context, locale i18n.Locale, posts []*models.Post, fallback time.Time) []urlEntry {
	baseURL := b.registry.BaseURL(locale)
	var entries []urlEntry

	categories, err := b.repo.Categories(ctx, locale)
	if err == nil {
		for _, category := range categories {
			count, lastmod := collectionStats(posts, func(p *models.Post) bool { return p.CategorySlug == category.Slug })
			if !seo.ShouldIndexCollection(count) {
				continue
			}
			if lastmod.IsZero() {
				lastmod = fallback
			}
			entries = append(entries, urlEntry{loc: baseURL + "/category/" + category.Slug, lastmod: lastmod})
		}
	}

	tags, err := b.repo.Tags(ctx, locale)
	if err == nil {
		for _, tag := range tags {
			count, lastmod := collectionStats(posts, func(p *models.Post) bool { return hasSlug(p.TagSlugs, tag.Slug) })
			if !seo.ShouldIndexCollection(count) {
				continue
			}
			if lastmod.IsZero() {
				lastmod = fallback
			}
			entries = append(entries, urlEntry{loc: baseURL + "/tag/" + tag.Slug, lastmod: lastmod})
		}
	}

	return entries
}

func collectionStats(posts []*models.Post, match func(*models.Post) bool) (count int, lastmod time.Time) {
	for _, post := range posts {
		if !match(post) {
			continue
		}
		count++
		if t := post.UpdatedTime(); t.After(lastmod) {
			lastmod = t
		}
	}
	return count, lastmod
}

func hasSlug(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}

func writeURLEntry(out *strings.Builder, entry urlEntry) {
	out.WriteString("  <url>\n")
	fmt.Fprintf(out, "    <loc>%s</loc>\n", escapeXML(entry.loc))
	if date := isoDate(entry.lastmod); date != "" {
		fmt.Fprintf(out, "    <lastmod>%s</lastmod>\n", date)
	}
	for _, alt := range entry.alternates {
		fmt.Fprintf(out, "    <xhtml:link rel=\"alternate\" hreflang=\"%s\" href=\"%s\"/>\n", escapeXML(alt.hreflang), escapeXML(alt.href))
	}
	for _, img := range entry.images {
		fmt.Fprintf(out, "    <image:image><image:loc>%s</image:loc></image:image>\n", escapeXML(img))
	}
	out.WriteString("  </url>\n")
}

// SitemapIndex aggregates all locales, lastmod = the most recently
// updated post in each locale (or the fixed epoch when empty)
func (b *Builder) SitemapIndex(ctx context.Context) (string, error) {
	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	out.WriteString(`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, locale := range i18n.Locales {
		posts, err := b.repo.All(ctx, locale)
		if err != nil {
			return "", fmt.Errorf("failed to load posts for sitemap index: %w", err)
		}
		latest := parseOrDefault(defaultLastmod)
		for _, post := range posts {
			if t := post.UpdatedTime(); t.After(latest) {
				latest = t
			}
		}

		out.WriteString("  <sitemap>\n")
		fmt.Fprintf(&out, "    <loc>%s</loc>\n", escapeXML(b.registry.BaseURL(locale)+"/sitemap.xml"))
		fmt.Fprintf(&out, "    <lastmod>%s</lastmod>\n", isoDate(latest))
		out.WriteString("  </sitemap>\n")
	}

	out.WriteString("</sitemapindex>\n")
	return out.String(), nil
}
