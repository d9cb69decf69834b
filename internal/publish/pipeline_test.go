package publish_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/mocks"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/publish"
)

func TestPipelinePublish(t *testing.T) {
	store := mocks.NewMockContentStore()
	repo := content.NewRepository(store, zerolog.Nop())
	sink := mocks.NewMockSink()
	pipeline := publish.NewPipeline(repo, sink, zerolog.Nop())

	result, warnings, err := pipeline.Publish(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if sink.Calls != 1 {
		t.Fatalf("sink called %d times, want 1", sink.Calls)
	}
	if len(sink.LastFiles) != len(i18n.Locales) {
		t.Fatalf("expected %d files, got %d", len(i18n.Locales), len(sink.LastFiles))
	}
	if sink.LastMessage != "Publish post learn-sql (en/pt/es/it)" {
		t.Errorf("commit message = %q", sink.LastMessage)
	}

	for _, file := range sink.LastFiles {
		wantPath := "content/posts/" + string(file.Locale) + "/" + file.Slug + ".mdx"
		if file.Path != wantPath {
			t.Errorf("path = %q, want %q", file.Path, wantPath)
		}
		fm, _, err := content.ParseDocument(file.Content)
		if err != nil {
			t.Fatalf("serialized document does not parse: %v", err)
		}
		if fm.TranslationKey != "learn-sql" {
			t.Errorf("translationKey = %q", fm.TranslationKey)
		}
		if fm.Updated == "" || fm.Updated == fm.Date {
			t.Errorf("updated should be stamped with today, got %q", fm.Updated)
		}
	}
}

func TestPipelineValidationFailureSkipsSink(t *testing.T) {
	sink := mocks.NewMockSink()
	repo := content.NewRepository(mocks.NewMockContentStore(), zerolog.Nop())
	pipeline := publish.NewPipeline(repo, sink, zerolog.Nop())

	req := validRequest()
	req.Global.Author = ""

	_, _, err := pipeline.Publish(context.Background(), req)
	var validationErr *publish.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if sink.Calls != 0 {
		t.Errorf("sink should not be called on validation failure, got %d calls", sink.Calls)
	}
}

func TestPipelineSlugConflict(t *testing.T) {
	store := mocks.NewMockContentStore()
	// An unrelated article already owns the en slug
	fm := models.Frontmatter{
		Title:          "Occupied",
		Description:    "d",
		Date:           "2025-01-01",
		Tags:           []string{"x"},
		Category:       "Data",
		Slug:           "learn-sql",
		Author:         "Someone Else",
		TranslationKey: "different-key",
	}
	store.Seed(i18n.LocaleEN, "learn-sql", content.ComposeDocument(fm, "body"))

	sink := mocks.NewMockSink()
	repo := content.NewRepository(store, zerolog.Nop())
	pipeline := publish.NewPipeline(repo, sink, zerolog.Nop())

	_, _, err := pipeline.Publish(context.Background(), validRequest())
	var conflictErr *publish.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(conflictErr.Error(), "different-key") {
		t.Errorf("conflict should name the owning translation key: %v", conflictErr)
	}
	if sink.Calls != 0 {
		t.Errorf("sink should not be called on conflict, got %d calls", sink.Calls)
	}
}

func TestPipelineRepublishSameKey(t *testing.T) {
	store := mocks.NewMockContentStore()
	repo := content.NewRepository(store, zerolog.Nop())
	sink := publish.NewStoreSink(store)
	pipeline := publish.NewPipeline(repo, sink, zerolog.Nop())

	if _, _, err := pipeline.Publish(context.Background(), validRequest()); err != nil {
		t.Fatalf("first publish failed: %v", err)
	}

	// The same translation key may overwrite its own slugs
	if _, _, err := pipeline.Publish(context.Background(), validRequest()); err != nil {
		t.Fatalf("republish failed: %v", err)
	}
}

func TestPipelineStoreSinkRoundTrip(t *testing.T) {
	store := mocks.NewMockContentStore()
	repo := content.NewRepository(store, zerolog.Nop())
	pipeline := publish.NewPipeline(repo, publish.NewStoreSink(store), zerolog.Nop())

	// Prime the cache so the test proves invalidation happens
	if posts, err := repo.All(context.Background(), ""); err != nil || len(posts) != 0 {
		t.Fatalf("unexpected initial state: %v, %d posts", err, len(posts))
	}

	if _, _, err := pipeline.Publish(context.Background(), validRequest()); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	post, err := repo.BySlug(context.Background(), i18n.LocalePT, "aprenda-sql")
	if err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
	if post == nil {
		t.Fatal("published post should be readable after cache invalidation")
	}
	if post.Title != "Aprenda SQL" {
		t.Errorf("title = %q", post.Title)
	}
	if post.TranslationKey != "learn-sql" {
		t.Errorf("translationKey = %q", post.TranslationKey)
	}
}

func TestStoreSinkNotWritable(t *testing.T) {
	store := mocks.NewMockContentStore()
	store.NotWritable = true

	sink := publish.NewStoreSink(store)
	_, err := sink.Publish(context.Background(), []models.PublishFile{{Locale: i18n.LocaleEN, Slug: "x", Content: "c"}}, "msg")
	if !errors.Is(err, publish.ErrStoreNotWritable) {
		t.Fatalf("expected ErrStoreNotWritable, got %v", err)
	}
	if store.WriteCalls != 0 {
		t.Errorf("no writes should happen, got %d", store.WriteCalls)
	}
}
