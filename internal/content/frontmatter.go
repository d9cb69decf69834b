package content

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/techskillsthatpay/content-server/internal/models"
)

const frontmatterDelimiter = "---"

// requiredKeys are the front-matter keys a record must carry to be
// accepted at load time. "updated" is absent on purpose: it defaults to
// the publish date.
var requiredKeys = []string{
	"title",
	"description",
	"date",
	"tags",
	"category",
	"slug",
	"author",
	"translationKey",
	"affiliateDisclosure",
}

// ParseDocument splits a stored document into its front-matter block and
// body and decodes the block. It returns an error for a malformed block,
// a missing required key, or an empty tag list; callers treat that as a
// recoverable per-record failure.
func ParseDocument(text string) (models.Frontmatter, string, error) {
	var fm models.Frontmatter

	block, body, err := splitDocument(text)
	if err != nil {
		return fm, "", err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return fm, "", fmt.Errorf("invalid frontmatter: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return fm, "", fmt.Errorf("missing %q in frontmatter", key)
		}
	}

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return fm, "", fmt.Errorf("invalid frontmatter: %w", err)
	}
	if len(fm.Tags) == 0 {
		return fm, "", fmt.Errorf("tags must be a non-empty list")
	}
	if fm.Updated == "" {
		fm.Updated = fm.Date
	}

	return fm, body, nil
}

// splitDocument separates the delimited front-matter block from the body
func splitDocument(text string) (block, body string, err error) {
	trimmed := strings.TrimLeft(text, "\ufeff\n\r ")
	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") {
		return "", "", fmt.Errorf("document has no frontmatter block")
	}
	rest := trimmed[len(frontmatterDelimiter)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter block")
	}
	block = rest[:end]
	body = rest[end+len(frontmatterDelimiter)+1:]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	return block, body, nil
}

// ComposeDocument serializes a front-matter block plus body into the
// stored document form. The key order is fixed so that repeated
// serialization of the same record is byte-identical.
func ComposeDocument(fm models.Frontmatter, body string) string {
	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	writeString(&b, "title", fm.Title)
	writeString(&b, "description", fm.Description)
	writeString(&b, "date", fm.Date)
	writeString(&b, "updated", fm.Updated)
	writeList(&b, "tags", fm.Tags)
	if len(fm.Keywords) > 0 {
		writeList(&b, "keywords", fm.Keywords)
	}
	if fm.CoverImage != "" {
		writeString(&b, "coverImage", fm.CoverImage)
	}
	writeString(&b, "category", fm.Category)
	writeString(&b, "slug", fm.Slug)
	writeString(&b, "author", fm.Author)
	writeString(&b, "translationKey", fm.TranslationKey)
	if fm.SeoTitle != "" {
		writeString(&b, "seoTitle", fm.SeoTitle)
	}
	if fm.SeoDescription != "" {
		writeString(&b, "seoDescription", fm.SeoDescription)
	}
	if fm.OgImage != "" {
		writeString(&b, "ogImage", fm.OgImage)
	}
	if fm.CanonicalOverride != "" {
		writeString(&b, "canonicalOverride", fm.CanonicalOverride)
	}
	if fm.Noindex {
		fmt.Fprintf(&b, "noindex: true\n")
	}
	if fm.PrimaryKeyword != "" {
		writeString(&b, "primaryKeyword", fm.PrimaryKeyword)
	}
	if len(fm.SecondaryKeywords) > 0 {
		writeList(&b, "secondaryKeywords", fm.SecondaryKeywords)
	}
	fmt.Fprintf(&b, "affiliateDisclosure: %t\n", fm.AffiliateDisclosure)
	b.WriteString(frontmatterDelimiter + "\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func writeString(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, strconv.Quote(value))
}

func writeList(b *strings.Builder, key string, values []string) {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	fmt.Fprintf(b, "%s: [%s]\n", key, strings.Join(quoted, ", "))
}
