package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// MemoryStore keeps documents in process memory. Writes are accepted but
// not persisted, which is logged as a warning.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string // key: "<locale>:<slug>"
	log  zerolog.Logger
}

// NewMemoryStore creates an in-memory content store
func NewMemoryStore(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]string),
		log:  log.With().Str("component", "memory_store").Logger(),
	}
}

// Provider names the store implementation
func (s *MemoryStore) Provider() string { return "memory" }

// WritePost stores the raw document for (locale, slug)
func (s *MemoryStore) WritePost(ctx context.Context, locale i18n.Locale, slug, text string) error {
	s.mu.Lock()
	s.docs[key(locale, slug)] = text
	s.mu.Unlock()

	s.log.Warn().
		Str("locale", string(locale)).
		Str("slug", slug).
		Msg("Writing to memory content store (not persisted)")
	return nil
}

// ReadPost returns the raw document, or ok=false when absent
func (s *MemoryStore) ReadPost(ctx context.Context, locale i18n.Locale, slug string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[key(locale, slug)]
	return text, ok, nil
}

// ListPosts enumerates documents, optionally filtered to one locale
func (s *MemoryStore) ListPosts(ctx context.Context, locale i18n.Locale) ([]StoredPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []StoredPost
	for k := range s.docs {
		parts := strings.SplitN(k, ":", 2)
		loc := i18n.Locale(parts[0])
		if locale != "" && loc != locale {
			continue
		}
		posts = append(posts, StoredPost{Locale: loc, Slug: parts[1]})
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Locale != posts[j].Locale {
			return posts[i].Locale < posts[j].Locale
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// Writable reports whether WritePost persists durably
func (s *MemoryStore) Writable() bool { return true }

func key(locale i18n.Locale, slug string) string {
	return string(locale) + ":" + slug
}
