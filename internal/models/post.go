package models

import (
	"time"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// Frontmatter is the structured header block of a content file.
// Field names match the keys used in the stored documents.
type Frontmatter struct {
	Title               string   `yaml:"title" json:"title"`
	Description         string   `yaml:"description" json:"description"`
	Date                string   `yaml:"date" json:"date"`
	Updated             string   `yaml:"updated" json:"updated"`
	Tags                []string `yaml:"tags" json:"tags"`
	Category            string   `yaml:"category" json:"category"`
	Slug                string   `yaml:"slug" json:"slug"`
	CoverImage          string   `yaml:"coverImage,omitempty" json:"coverImage,omitempty"`
	Keywords            []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Author              string   `yaml:"author" json:"author"`
	TranslationKey      string   `yaml:"translationKey" json:"translationKey"`
	AffiliateDisclosure bool     `yaml:"affiliateDisclosure" json:"affiliateDisclosure"`

	// Optional SEO overrides
	SeoTitle          string   `yaml:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SeoDescription    string   `yaml:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	OgImage           string   `yaml:"ogImage,omitempty" json:"ogImage,omitempty"`
	CanonicalOverride string   `yaml:"canonicalOverride,omitempty" json:"canonicalOverride,omitempty"`
	Noindex           bool     `yaml:"noindex,omitempty" json:"noindex,omitempty"`
	PrimaryKeyword    string   `yaml:"primaryKeyword,omitempty" json:"primaryKeyword,omitempty"`
	SecondaryKeywords []string `yaml:"secondaryKeywords,omitempty" json:"secondaryKeywords,omitempty"`
}

// Post represents one article in one locale. (locale, slug) is unique
// within the repository; TranslationKey groups equivalent articles
// across locales.
type Post struct {
	Frontmatter

	Locale  i18n.Locale `json:"locale"`
	Content string      `json:"-"`

	// Derived at load time
	CategorySlug    string   `json:"categorySlug"`
	TagSlugs        []string `json:"tagSlugs"`
	ReadingMinutes  int      `json:"readingMinutes"`
	ReadingTimeText string   `json:"readingTimeText"`
}

// PublishedTime parses the post's publish date. A zero time is returned
// for unparseable dates so sorting stays total.
func (p *Post) PublishedTime() time.Time {
	return parseDate(p.Date)
}

// UpdatedTime parses the post's last-modified date, falling back to the
// publish date
func (p *Post) UpdatedTime() time.Time {
	if t := parseDate(p.Updated); !t.IsZero() {
		return t
	}
	return parseDate(p.Date)
}

func parseDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Collection is a derived {slug, label} pair for a category or tag
type Collection struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// TranslationSet maps locale to slug for one translation key
type TranslationSet map[i18n.Locale]string
