package content

import (
	"strings"

	"github.com/techskillsthatpay/content-server/internal/models"
)

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matchesQuery(post *models.Post, term string) bool {
	haystack := strings.ToLower(post.Title + " " + post.Description + " " + strings.Join(post.Tags, " "))
	return strings.Contains(haystack, term)
}
