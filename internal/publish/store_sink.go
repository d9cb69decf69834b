package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/storage"
)

// ErrStoreNotWritable is returned when the configured content store
// cannot accept writes
var ErrStoreNotWritable = errors.New("content store is not writable")

// StoreSink writes each document directly through the content store
type StoreSink struct {
	store storage.ContentStore
}

// NewStoreSink creates a sink backed by a content store
func NewStoreSink(store storage.ContentStore) *StoreSink {
	return &StoreSink{store: store}
}

// Name identifies the sink in logs and responses
func (s *StoreSink) Name() string {
	return "store:" + s.store.Provider()
}

// Publish writes every file in the set through the store
func (s *StoreSink) Publish(ctx context.Context, files []models.PublishFile, message string) (*models.PublishResult, error) {
	if !s.store.Writable() {
		return nil, ErrStoreNotWritable
	}
	for _, file := range files {
		if err := s.store.WritePost(ctx, file.Locale, file.Slug, file.Content); err != nil {
			return nil, fmt.Errorf("failed to write %s/%s: %w", file.Locale, file.Slug, err)
		}
	}
	return &models.PublishResult{}, nil
}
