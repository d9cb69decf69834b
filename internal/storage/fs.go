package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

const documentExt = ".mdx"

// FSStore stores one document per file under <baseDir>/<locale>/<slug>.mdx
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem-backed content store
func NewFSStore(baseDir string) *FSStore {
	return &FSStore{baseDir: baseDir}
}

// Provider names the store implementation
func (s *FSStore) Provider() string { return "fs" }

// WritePost stores the raw document for (locale, slug)
func (s *FSStore) WritePost(ctx context.Context, locale i18n.Locale, slug, text string) error {
	localeDir := filepath.Join(s.baseDir, string(locale))
	if err := os.MkdirAll(localeDir, 0o755); err != nil {
		return fmt.Errorf("failed to create locale directory: %w", err)
	}
	path := filepath.Join(localeDir, slug+documentExt)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadPost returns the raw document, or ok=false when absent
func (s *FSStore) ReadPost(ctx context.Context, locale i18n.Locale, slug string) (string, bool, error) {
	path := filepath.Join(s.baseDir, string(locale), slug+documentExt)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// ListPosts enumerates documents. A missing locale directory yields zero
// posts for that locale; a missing base directory is a fatal store error.
func (s *FSStore) ListPosts(ctx context.Context, locale i18n.Locale) ([]StoredPost, error) {
	if _, err := os.Stat(s.baseDir); err != nil {
		return nil, fmt.Errorf("content store unreachable: %w", err)
	}

	locales := i18n.Locales
	if locale != "" {
		locales = []i18n.Locale{locale}
	}

	var posts []StoredPost
	for _, loc := range locales {
		entries, err := os.ReadDir(filepath.Join(s.baseDir, string(loc)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list locale %s: %w", loc, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, documentExt) {
				continue
			}
			posts = append(posts, StoredPost{Locale: loc, Slug: strings.TrimSuffix(name, documentExt)})
		}
	}
	return posts, nil
}

// Writable reports whether WritePost persists durably
func (s *FSStore) Writable() bool { return true }
