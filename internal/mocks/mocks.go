// Package mocks provides hand-written test doubles for the storage and
// publish interfaces.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/storage"
)

// MockContentStore is a mock implementation of storage.ContentStore
type MockContentStore struct {
	mu sync.Mutex

	Documents    map[i18n.Locale]map[string]string
	ListError    error
	ReadError    error
	WriteError   error
	NotWritable  bool
	WriteCalls   int
	WrittenSlugs []string
}

func NewMockContentStore() *MockContentStore {
	return &MockContentStore{
		Documents: make(map[i18n.Locale]map[string]string),
	}
}

// Seed stores a document without counting it as a write
func (m *MockContentStore) Seed(locale i18n.Locale, slug, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Documents[locale] == nil {
		m.Documents[locale] = make(map[string]string)
	}
	m.Documents[locale][slug] = text
}

func (m *MockContentStore) Provider() string { return "mock" }

func (m *MockContentStore) Writable() bool { return !m.NotWritable }

func (m *MockContentStore) WritePost(ctx context.Context, locale i18n.Locale, slug, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	if m.Documents[locale] == nil {
		m.Documents[locale] = make(map[string]string)
	}
	m.Documents[locale][slug] = text
	m.WrittenSlugs = append(m.WrittenSlugs, string(locale)+":"+slug)
	return nil
}

func (m *MockContentStore) ReadPost(ctx context.Context, locale i18n.Locale, slug string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadError != nil {
		return "", false, m.ReadError
	}
	text, ok := m.Documents[locale][slug]
	return text, ok, nil
}

func (m *MockContentStore) ListPosts(ctx context.Context, locale i18n.Locale) ([]storage.StoredPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}

	locales := []i18n.Locale{locale}
	if locale == "" {
		locales = i18n.Locales
	}

	var stored []storage.StoredPost
	for _, loc := range locales {
		slugs := make([]string, 0, len(m.Documents[loc]))
		for slug := range m.Documents[loc] {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)
		for _, slug := range slugs {
			stored = append(stored, storage.StoredPost{Locale: loc, Slug: slug})
		}
	}
	return stored, nil
}

// MockSink is a mock implementation of publish.Sink
type MockSink struct {
	PublishError error
	Result       *models.PublishResult
	Calls        int
	LastFiles    []models.PublishFile
	LastMessage  string
}

func NewMockSink() *MockSink {
	return &MockSink{Result: &models.PublishResult{}}
}

func (m *MockSink) Name() string { return "mock" }

func (m *MockSink) Publish(ctx context.Context, files []models.PublishFile, message string) (*models.PublishResult, error) {
	m.Calls++
	m.LastFiles = files
	m.LastMessage = message
	if m.PublishError != nil {
		return nil, m.PublishError
	}
	return m.Result, nil
}
