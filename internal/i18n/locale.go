package i18n

import (
	"strings"

	"github.com/techskillsthatpay/content-server/internal/config"
)

// Locale is one of the fixed set of supported language codes
type Locale string

// Supported locales
const (
	LocaleEN Locale = "en"
	LocalePT Locale = "pt"
	LocaleES Locale = "es"
	LocaleIT Locale = "it"
)

// DefaultLocale is the fallback of last resort
const DefaultLocale = LocaleEN

// Locales lists all supported locales in registration order
var Locales = []Locale{LocaleEN, LocalePT, LocaleES, LocaleIT}

// Info carries the per-locale presentation attributes
type Info struct {
	Domain   string
	HTMLLang string
	OGLocale string
	Label    string
}

// Registry is the total mapping table for all supported locales.
// It is immutable after construction.
type Registry struct {
	infos    map[Locale]Info
	byDomain map[string]Locale
}

// NewRegistry builds a registry from the configured per-locale domains
func NewRegistry(domains config.DomainConfig) *Registry {
	infos := map[Locale]Info{
		LocaleEN: {Domain: domains.EN, HTMLLang: "en", OGLocale: "en_US", Label: "English"},
		LocalePT: {Domain: domains.PT, HTMLLang: "pt-BR", OGLocale: "pt_BR", Label: "Português"},
		LocaleES: {Domain: domains.ES, HTMLLang: "es", OGLocale: "es_ES", Label: "Español"},
		LocaleIT: {Domain: domains.IT, HTMLLang: "it", OGLocale: "it_IT", Label: "Italiano"},
	}

	byDomain := make(map[string]Locale, len(infos))
	for locale, info := range infos {
		byDomain[strings.ToLower(info.Domain)] = locale
	}

	return &Registry{infos: infos, byDomain: byDomain}
}

// IsLocale reports whether value is a supported locale code
func IsLocale(value string) bool {
	for _, locale := range Locales {
		if string(locale) == value {
			return true
		}
	}
	return false
}

// Match resolves a language tag to a supported locale. Region-qualified
// tags like "pt-BR" match via their primary subtag.
func Match(value string) (Locale, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return "", false
	}
	if IsLocale(lower) {
		return Locale(lower), true
	}
	prefix := strings.SplitN(lower, "-", 2)[0]
	if IsLocale(prefix) {
		return Locale(prefix), true
	}
	return "", false
}

// Normalize resolves a language tag to a supported locale, falling back
// to the default locale for unknown or empty input
func Normalize(value string) Locale {
	if locale, ok := Match(value); ok {
		return locale
	}
	return DefaultLocale
}

// Info returns the presentation attributes for a locale
func (r *Registry) Info(locale Locale) Info {
	if info, ok := r.infos[locale]; ok {
		return info
	}
	return r.infos[DefaultLocale]
}

// Domain returns the domain mapped to a locale
func (r *Registry) Domain(locale Locale) string {
	return r.Info(locale).Domain
}

// HTMLLang returns the html lang attribute value for a locale
func (r *Registry) HTMLLang(locale Locale) string {
	return r.Info(locale).HTMLLang
}

// OGLocale returns the Open Graph locale tag for a locale
func (r *Registry) OGLocale(locale Locale) string {
	return r.Info(locale).OGLocale
}

// BaseURL returns the canonical https base URL for a locale
func (r *Registry) BaseURL(locale Locale) string {
	return "https://" + r.Domain(locale)
}

// NormalizeHost strips the port and lowercases a request host
func NormalizeHost(host string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(host, ":", 2)[0]))
}

// LocaleForHost matches a request host against the domain table
func (r *Registry) LocaleForHost(host string) (Locale, bool) {
	locale, ok := r.byDomain[NormalizeHost(host)]
	return locale, ok
}
