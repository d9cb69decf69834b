package publish

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
)

// accentPattern matches the accented characters common in the non-English
// locales; a high ratio in the default-locale column suggests the author
// pasted content into the wrong language field
var accentPattern = regexp.MustCompile(`(?i)[áàâãäéèêëíìîïóòôõöúùûüçñ]`)

// accentRatioThreshold is the accented-character ratio above which the
// default-locale column draws a warning
const accentRatioThreshold = 0.02

// ValidationResult enumerates every failed constraint plus any soft
// warnings. Warnings never block a publish.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the payload passed validation
func (r *ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// ValidatePayload checks the whole multi-locale payload. Every supported
// locale must be present and complete; all constraint failures are
// collected rather than stopping at the first.
func ValidatePayload(req *models.PublishRequest) ValidationResult {
	var result ValidationResult

	global := req.Global
	if strings.TrimSpace(global.TranslationKey) == "" {
		result.Errors = append(result.Errors, "translationKey is required")
	}
	if strings.TrimSpace(global.Author) == "" {
		result.Errors = append(result.Errors, "author is required")
	}
	if strings.TrimSpace(global.Date) == "" {
		result.Errors = append(result.Errors, "date is required")
	}
	if strings.TrimSpace(global.CoverImage) == "" {
		result.Errors = append(result.Errors, "coverImage is required")
	} else if !isHTTPURL(global.CoverImage) {
		result.Errors = append(result.Errors, "coverImage must be a valid http(s) URL")
	}

	for _, locale := range i18n.Locales {
		data, ok := req.Localized[string(locale)]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: missing locale data", locale))
			continue
		}

		if strings.TrimSpace(data.Title) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: title is required", locale))
		}
		if strings.TrimSpace(data.Description) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: description is required", locale))
		}
		if strings.TrimSpace(data.Slug) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: slug is required", locale))
		} else if !content.IsValidSlug(data.Slug) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: slug must be kebab-case", locale))
		}
		if strings.TrimSpace(data.Category) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: category is required", locale))
		}
		if len(data.Tags) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: tags are required", locale))
		}
		if strings.TrimSpace(data.Content) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: content is required", locale))
		}

		if locale == i18n.DefaultLocale && suspiciousAccentRatio(data.Content) {
			result.Warnings = append(result.Warnings,
				"default-language column appears to contain accented characters, double-check language")
		}
	}

	return result
}

func isHTTPURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func suspiciousAccentRatio(body string) bool {
	if body == "" {
		return false
	}
	accents := len(accentPattern.FindAllString(body, -1))
	return float64(accents)/float64(len([]rune(body))) > accentRatioThreshold
}
