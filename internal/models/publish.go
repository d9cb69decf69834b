package models

import (
	"encoding/json"
	"strings"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string, as the admin form submits both shapes
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = trimNonEmpty(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = trimNonEmpty(strings.Split(single, ","))
	return nil
}

func trimNonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GlobalInput carries the fields shared by all locales of one publish
type GlobalInput struct {
	TranslationKey      string `json:"translationKey"`
	Author              string `json:"author"`
	CoverImage          string `json:"coverImage"`
	Date                string `json:"date"`
	AffiliateDisclosure bool   `json:"affiliateDisclosure"`
}

// LocalizedInput carries the per-locale fields of one publish
type LocalizedInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Tags        StringList `json:"tags"`
	Keywords    StringList `json:"keywords,omitempty"`
	Content     string     `json:"content"`
}

// PublishRequest is the multi-locale authoring payload
type PublishRequest struct {
	Global    GlobalInput               `json:"global"`
	Localized map[string]LocalizedInput `json:"localized"`
}

// PublishResult reports where a publish landed for the github sink
type PublishResult struct {
	CommitSHA string `json:"commitSha,omitempty"`
	CommitURL string `json:"commitUrl,omitempty"`
	PRURL     string `json:"prUrl,omitempty"`
}

// PublishFile is one serialized content document ready for a sink
type PublishFile struct {
	Locale  i18n.Locale
	Slug    string
	Path    string
	Content string
}
