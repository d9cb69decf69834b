// Package feeds builds the RSS and sitemap documents. Every builder is
// a pure function of the current content set and the locale registry,
// so repeated calls with unchanged input are byte-identical.
package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/seo"
)

// rssMaxItems caps the per-locale feed length
const rssMaxItems = 50

// Builder renders feeds and sitemaps from the content repository
type Builder struct {
	repo     *content.Repository
	registry *i18n.Registry
}

// NewBuilder creates a feed builder
func NewBuilder(repo *content.Repository, registry *i18n.Registry) *Builder {
	return &Builder{repo: repo, registry: registry}
}

// RSS builds the per-locale feed, newest first, capped at 50 items
func (b *Builder) RSS(ctx context.Context, locale i18n.Locale) (string, error) {
	baseURL := b.registry.BaseURL(locale)
	posts, err := b.repo.All(ctx, locale)
	if err != nil {
		return "", fmt.Errorf("failed to load posts for feed: %w", err)
	}

	lastBuild := parseOrDefault(defaultLastmod)
	if len(posts) > 0 {
		lastBuild = posts[0].UpdatedTime()
	}

	var items strings.Builder
	capped := posts
	if len(capped) > rssMaxItems {
		capped = capped[:rssMaxItems]
	}
	for _, post := range capped {
		url := baseURL + "/posts/" + post.Slug
		items.WriteString("    <item>\n")
		fmt.Fprintf(&items, "      <title>%s</title>\n", escapeXML(post.Title))
		fmt.Fprintf(&items, "      <link>%s</link>\n", escapeXML(url))
		fmt.Fprintf(&items, "      <guid>%s</guid>\n", escapeXML(url))
		fmt.Fprintf(&items, "      <pubDate>%s</pubDate>\n", rfc1123Date(post.PublishedTime()))
		fmt.Fprintf(&items, "      <description>%s</description>\n", escapeXML(post.Description))
		fmt.Fprintf(&items, "      <category>%s</category>\n", escapeXML(post.Category))
		if post.Author != "" {
			fmt.Fprintf(&items, "      <author>%s</author>\n", escapeXML(post.Author))
		}
		items.WriteString("    </item>\n")
	}

	var b2 strings.Builder
	b2.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b2.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b2.WriteString("  <channel>\n")
	fmt.Fprintf(&b2, "    <title>%s</title>\n", escapeXML(seo.SiteTitle(locale)))
	fmt.Fprintf(&b2, "    <link>%s</link>\n", escapeXML(baseURL))
	fmt.Fprintf(&b2, "    <description>%s</description>\n", escapeXML(seo.SiteDescription(locale)))
	fmt.Fprintf(&b2, "    <language>%s</language>\n", escapeXML(b.registry.HTMLLang(locale)))
	fmt.Fprintf(&b2, "    <lastBuildDate>%s</lastBuildDate>\n", rfc1123Date(lastBuild))
	fmt.Fprintf(&b2, "    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n", escapeXML(baseURL+"/rss.xml"))
	b2.WriteString(items.String())
	b2.WriteString("  </channel>\n")
	b2.WriteString("</rss>\n")
	return b2.String(), nil
}

func parseOrDefault(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
