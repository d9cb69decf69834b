package storage

import (
	"context"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// StoredPost identifies one document in a content store
type StoredPost struct {
	Locale i18n.Locale
	Slug   string
}

// ContentStore is the pluggable backing store for content documents.
// File identity is one document per (locale, slug).
type ContentStore interface {
	// Provider names the store implementation
	Provider() string
	// WritePost stores the raw document for (locale, slug)
	WritePost(ctx context.Context, locale i18n.Locale, slug, text string) error
	// ReadPost returns the raw document, or ok=false when absent
	ReadPost(ctx context.Context, locale i18n.Locale, slug string) (text string, ok bool, err error)
	// ListPosts enumerates documents, optionally filtered to one locale
	// (empty locale means all). A missing locale directory is zero
	// posts, not an error; an unreachable store is an error.
	ListPosts(ctx context.Context, locale i18n.Locale) ([]StoredPost, error)
	// Writable reports whether WritePost persists durably
	Writable() bool
}
