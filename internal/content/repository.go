package content

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/metrics"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/storage"
)

// Repository produces the full, validated set of content records,
// cached in memory until invalidated.
//
// The cache is a memoized pure computation, not a locked critical
// section: two requests racing to populate an empty cache may both run
// a load pass, and whichever assignment lands last wins. Loads are pure
// functions of the backing store, so both results are equivalent and
// readers always observe either the pre-load or post-load state.
type Repository struct {
	store storage.ContentStore
	log   zerolog.Logger

	mu     sync.RWMutex
	cached []*models.Post
}

// NewRepository creates a content repository over the given store
func NewRepository(store storage.ContentStore, log zerolog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With().Str("component", "content").Logger(),
	}
}

// Invalidate clears the cache; the next read reloads from the store.
// This is the only way the cached set changes.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}

// all returns the cached set, loading it first if absent
func (r *Repository) all(ctx context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cached = posts
	r.mu.Unlock()
	return posts, nil
}

// load runs one full pass over every locale directory. A malformed
// record is logged and skipped; an unreachable store fails the load.
func (r *Repository) load(ctx context.Context) ([]*models.Post, error) {
	// Non-nil even when empty: all() treats nil as "not loaded yet"
	posts := make([]*models.Post, 0)
	for _, locale := range i18n.Locales {
		stored, err := r.store.ListPosts(ctx, locale)
		if err != nil {
			metrics.ContentCacheLoads.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to list posts for locale %s: %w", locale, err)
		}
		for _, entry := range stored {
			post, err := r.loadOne(ctx, entry)
			if err != nil {
				r.log.Error().
					Err(err).
					Str("locale", string(entry.Locale)).
					Str("slug", entry.Slug).
					Msg("Skipping malformed content record")
				continue
			}
			posts = append(posts, post)
		}
	}

	// Newest first; stable keeps encounter order for equal dates
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedTime().After(posts[j].PublishedTime())
	})

	metrics.ContentCacheLoads.WithLabelValues("success").Inc()
	r.log.Info().Int("count", len(posts)).Str("provider", r.store.Provider()).Msg("Content set loaded")
	return posts, nil
}

func (r *Repository) loadOne(ctx context.Context, entry storage.StoredPost) (*models.Post, error) {
	text, ok, err := r.store.ReadPost(ctx, entry.Locale, entry.Slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("document vanished during load")
	}

	fm, body, err := ParseDocument(text)
	if err != nil {
		return nil, err
	}
	if fm.Slug == "" {
		fm.Slug = entry.Slug
	}

	minutes, readingText := ReadingTime(body)
	tagSlugs := make([]string, len(fm.Tags))
	for i, tag := range fm.Tags {
		tagSlugs[i] = Slugify(tag)
	}

	return &models.Post{
		Frontmatter:     fm,
		Locale:          entry.Locale,
		Content:         body,
		CategorySlug:    Slugify(fm.Category),
		TagSlugs:        tagSlugs,
		ReadingMinutes:  minutes,
		ReadingTimeText: readingText,
	}, nil
}

// All returns the full sorted set, optionally filtered to one locale
// (empty locale means all locales)
func (r *Repository) All(ctx context.Context, locale i18n.Locale) ([]*models.Post, error) {
	posts, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	if locale == "" {
		return posts, nil
	}
	filtered := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if post.Locale == locale {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}

// BySlug returns the post at (locale, slug), or nil when absent
func (r *Repository) BySlug(ctx context.Context, locale i18n.Locale, slug string) (*models.Post, error) {
	posts, err := r.All(ctx, locale)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, nil
}

// Categories returns the deduplicated {slug, label} list discovered by
// scanning records once. When two records slugify to the same value
// with different labels, the first-encountered label wins.
func (r *Repository) Categories(ctx context.Context, locale i18n.Locale) ([]models.Collection, error) {
	posts, err := r.All(ctx, locale)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []models.Collection
	for _, post := range posts {
		if seen[post.CategorySlug] {
			continue
		}
		seen[post.CategorySlug] = true
		categories = append(categories, models.Collection{Slug: post.CategorySlug, Label: post.Category})
	}
	return categories, nil
}

// Tags returns the deduplicated {slug, label} tag list, first-encountered
// label winning on slug collisions
func (r *Repository) Tags(ctx context.Context, locale i18n.Locale) ([]models.Collection, error) {
	posts, err := r.All(ctx, locale)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tags []models.Collection
	for _, post := range posts {
		for i, slug := range post.TagSlugs {
			if seen[slug] {
				continue
			}
			seen[slug] = true
			tags = append(tags, models.Collection{Slug: slug, Label: post.Tags[i]})
		}
	}
	return tags, nil
}

// Search filters posts by a case-insensitive substring match over
// title, description and tag labels. An empty query returns the
// unfiltered set.
func (r *Repository) Search(ctx context.Context, query string, locale i18n.Locale) ([]*models.Post, error) {
	posts, err := r.All(ctx, locale)
	if err != nil {
		return nil, err
	}

	term := normalizeQuery(query)
	if term == "" {
		return posts, nil
	}

	var matched []*models.Post
	for _, post := range posts {
		if matchesQuery(post, term) {
			matched = append(matched, post)
		}
	}
	return matched, nil
}
