package seo_test

import (
	"strings"
	"testing"

	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/seo"
)

func TestShouldIndexCollection(t *testing.T) {
	tests := []struct {
		count int
		want  bool
	}{
		{0, false},
		{2, false},
		{3, true},
		{100, true},
	}
	for _, tt := range tests {
		if got := seo.ShouldIndexCollection(tt.count); got != tt.want {
			t.Errorf("ShouldIndexCollection(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestIndexableCollectionPage(t *testing.T) {
	tests := []struct {
		count, page int
		want        bool
	}{
		{5, 1, true},
		{5, 0, true},
		{5, 2, false},
		{2, 1, false},
	}
	for _, tt := range tests {
		if got := seo.IndexableCollectionPage(tt.count, tt.page); got != tt.want {
			t.Errorf("IndexableCollectionPage(%d, %d) = %v, want %v", tt.count, tt.page, got, tt.want)
		}
	}
}

func TestSiteTitleFallback(t *testing.T) {
	if seo.SiteTitle(i18n.LocalePT) == seo.SiteTitle("unknown") {
		t.Error("pt title should differ from the default fallback")
	}
	if seo.SiteTitle("unknown") != seo.SiteTitle(i18n.DefaultLocale) {
		t.Error("unknown locale should fall back to the default title")
	}
}

func TestRobotsTxt(t *testing.T) {
	registry := i18n.NewRegistry(config.DomainConfig{
		EN: "techskillsthatpay.com",
		PT: "techskillsthatpay.com.br",
		ES: "techskillsthatpay.es",
		IT: "techskillsthatpay.it",
	})

	normal := seo.RobotsTxt(registry, i18n.LocalePT, false)
	for _, want := range []string{
		"Allow: /",
		"Disallow: /admin",
		"Disallow: /api/",
		"Sitemap: https://techskillsthatpay.com.br/sitemap.xml",
		"Host: techskillsthatpay.com.br",
	} {
		if !strings.Contains(normal, want) {
			t.Errorf("robots.txt missing %q:\n%s", want, normal)
		}
	}

	preview := seo.RobotsTxt(registry, i18n.LocalePT, true)
	if !strings.Contains(preview, "Disallow: /\n") {
		t.Errorf("preview robots.txt should block everything:\n%s", preview)
	}
	if strings.Contains(preview, "Sitemap:") {
		t.Error("preview robots.txt should not advertise a sitemap")
	}
}
