package content

import (
	"context"

	"github.com/techskillsthatpay/content-server/internal/models"
)

// TranslationsFor returns the locale→slug map for one translation key.
// A key maps to at most one slug per locale.
func (r *Repository) TranslationsFor(ctx context.Context, translationKey string) (models.TranslationSet, error) {
	posts, err := r.All(ctx, "")
	if err != nil {
		return nil, err
	}

	set := models.TranslationSet{}
	for _, post := range posts {
		if post.TranslationKey != translationKey {
			continue
		}
		if _, ok := set[post.Locale]; !ok {
			set[post.Locale] = post.Slug
		}
	}
	return set, nil
}

// TranslationIndex groups the full cached set by translation key
func (r *Repository) TranslationIndex(ctx context.Context) (map[string]models.TranslationSet, error) {
	posts, err := r.All(ctx, "")
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.TranslationSet)
	for _, post := range posts {
		set, ok := index[post.TranslationKey]
		if !ok {
			set = models.TranslationSet{}
			index[post.TranslationKey] = set
		}
		if _, ok := set[post.Locale]; !ok {
			set[post.Locale] = post.Slug
		}
	}
	return index, nil
}
