package content

import "github.com/techskillsthatpay/content-server/internal/models"

// PageSize is the fixed number of posts per listing page
const PageSize = 10

// Paginate slices a post list for one page. Page numbers below 1 are
// clamped to 1; pages past the end yield an empty slice.
func Paginate(posts []*models.Post, page int) []*models.Post {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(posts) {
		return nil
	}
	end := start + PageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}
