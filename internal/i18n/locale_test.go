package i18n_test

import (
	"testing"

	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/i18n"
)

func testDomains() config.DomainConfig {
	return config.DomainConfig{
		EN: "techskillsthatpay.com",
		PT: "techskillsthatpay.com.br",
		ES: "techskillsthatpay.es",
		IT: "techskillsthatpay.it",
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  i18n.Locale
		ok    bool
	}{
		{"exact match", "en", i18n.LocaleEN, true},
		{"uppercase", "PT", i18n.LocalePT, true},
		{"region qualified", "pt-BR", i18n.LocalePT, true},
		{"region qualified uppercase", "ES-MX", i18n.LocaleES, true},
		{"whitespace", "  it  ", i18n.LocaleIT, true},
		{"unsupported", "fr", "", false},
		{"unsupported region", "fr-CA", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := i18n.Match(tt.input)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := i18n.Normalize("pt-BR"); got != i18n.LocalePT {
		t.Errorf("Normalize(pt-BR) = %q, want pt", got)
	}
	if got := i18n.Normalize("de"); got != i18n.DefaultLocale {
		t.Errorf("Normalize(de) = %q, want default locale", got)
	}
	if got := i18n.Normalize(""); got != i18n.DefaultLocale {
		t.Errorf("Normalize(empty) = %q, want default locale", got)
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Example.COM", "example.com"},
		{"example.com:8080", "example.com"},
		{"  example.com ", "example.com"},
	}
	for _, tt := range tests {
		if got := i18n.NormalizeHost(tt.input); got != tt.want {
			t.Errorf("NormalizeHost(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLocaleForHost(t *testing.T) {
	registry := i18n.NewRegistry(testDomains())

	tests := []struct {
		host string
		want i18n.Locale
		ok   bool
	}{
		{"techskillsthatpay.com", i18n.LocaleEN, true},
		{"techskillsthatpay.com.br", i18n.LocalePT, true},
		{"TechSkillsThatPay.ES:443", i18n.LocaleES, true},
		{"techskillsthatpay.it", i18n.LocaleIT, true},
		{"localhost:8080", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := registry.LocaleForHost(tt.host)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LocaleForHost(%q) = (%q, %v), want (%q, %v)", tt.host, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistryAttributes(t *testing.T) {
	registry := i18n.NewRegistry(testDomains())

	if got := registry.BaseURL(i18n.LocalePT); got != "https://techskillsthatpay.com.br" {
		t.Errorf("BaseURL(pt) = %q", got)
	}
	if got := registry.HTMLLang(i18n.LocalePT); got != "pt-BR" {
		t.Errorf("HTMLLang(pt) = %q", got)
	}
	if got := registry.OGLocale(i18n.LocaleIT); got != "it_IT" {
		t.Errorf("OGLocale(it) = %q", got)
	}

	// Unknown locales fall back to the default's attributes
	if got := registry.Domain("xx"); got != "techskillsthatpay.com" {
		t.Errorf("Domain(unknown) = %q", got)
	}
}
