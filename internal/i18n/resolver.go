package i18n

import (
	"regexp"
	"strings"
)

// botPattern matches the crawler user agents that should always see the
// default locale, keeping crawl output deterministic across domains.
var botPattern = regexp.MustCompile(`(?i)(googlebot|bingbot|yandex|duckduckbot|baiduspider|facebookexternalhit|twitterbot|slurp|linkedinbot)`)

// Request carries the raw request attributes the resolver inspects
type Request struct {
	// Override is an already-resolved locale hint (e.g. a path segment)
	Override string
	// Host is the effective request host, possibly with a port
	Host string
	// Cookie is the stored locale preference, empty if absent
	Cookie string
	// AcceptLanguage is the raw Accept-Language header
	AcceptLanguage string
	// UserAgent is the raw User-Agent header
	UserAgent string
}

// Resolver maps an inbound request to exactly one supported locale
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver backed by the given registry
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve applies the precedence order: explicit override, host domain
// mapping, cookie preference, Accept-Language header, default locale.
// Bot user agents skip cookie and header detection. Resolve never fails;
// malformed input at any step falls through to the next.
func (r *Resolver) Resolve(req Request) Locale {
	if req.Override != "" && IsLocale(strings.ToLower(req.Override)) {
		return Locale(strings.ToLower(req.Override))
	}

	if locale, ok := r.registry.LocaleForHost(req.Host); ok {
		return locale
	}

	if IsBot(req.UserAgent) {
		return DefaultLocale
	}

	if req.Cookie != "" && IsLocale(req.Cookie) {
		return Locale(req.Cookie)
	}

	if locale, ok := Match(firstLanguageTag(req.AcceptLanguage)); ok {
		return locale
	}

	return DefaultLocale
}

// IsBot reports whether the user agent looks like a known crawler
func IsBot(userAgent string) bool {
	return userAgent != "" && botPattern.MatchString(userAgent)
}

// firstLanguageTag extracts the first tag of an Accept-Language header,
// dropping any quality parameter
func firstLanguageTag(header string) string {
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	return strings.TrimSpace(first)
}
