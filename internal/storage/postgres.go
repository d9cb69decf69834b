package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/techskillsthatpay/content-server/internal/database"
	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// PostgresStore keeps raw content documents in a posts table keyed by
// (locale, slug). The document text is stored verbatim, so the storage
// format contract is the same as the filesystem provider's.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed content store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Provider names the store implementation
func (s *PostgresStore) Provider() string { return "postgres" }

// WritePost upserts the raw document for (locale, slug)
func (s *PostgresStore) WritePost(ctx context.Context, locale i18n.Locale, slug, text string) error {
	query := `
		INSERT INTO posts (locale, slug, content, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (locale, slug) DO UPDATE
		SET content = EXCLUDED.content, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, string(locale), slug, text); err != nil {
		return fmt.Errorf("failed to write post %s/%s: %w", locale, slug, err)
	}
	return nil
}

// ReadPost returns the raw document, or ok=false when absent
func (s *PostgresStore) ReadPost(ctx context.Context, locale i18n.Locale, slug string) (string, bool, error) {
	var text string
	query := `SELECT content FROM posts WHERE locale = $1 AND slug = $2`
	err := s.db.QueryRowContext(ctx, query, string(locale), slug).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read post %s/%s: %w", locale, slug, err)
	}
	return text, true, nil
}

// ListPosts enumerates documents, optionally filtered to one locale
func (s *PostgresStore) ListPosts(ctx context.Context, locale i18n.Locale) ([]StoredPost, error) {
	query := `SELECT locale, slug FROM posts ORDER BY locale, slug`
	args := []interface{}{}
	if locale != "" {
		query = `SELECT locale, slug FROM posts WHERE locale = $1 ORDER BY slug`
		args = append(args, string(locale))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []StoredPost
	for rows.Next() {
		var loc, slug string
		if err := rows.Scan(&loc, &slug); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, StoredPost{Locale: i18n.Locale(loc), Slug: slug})
	}
	return posts, rows.Err()
}

// Writable reports whether WritePost persists durably
func (s *PostgresStore) Writable() bool { return true }
