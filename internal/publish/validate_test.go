package publish_test

import (
	"strings"
	"testing"

	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
	"github.com/techskillsthatpay/content-server/internal/publish"
)

func validRequest() *models.PublishRequest {
	localized := make(map[string]models.LocalizedInput)
	for _, entry := range []struct {
		locale, title, slug string
	}{
		{"en", "Learn SQL", "learn-sql"},
		{"pt", "Aprenda SQL", "aprenda-sql"},
		{"es", "Aprende SQL", "aprende-sql"},
		{"it", "Impara SQL", "impara-sql"},
	} {
		localized[entry.locale] = models.LocalizedInput{
			Title:       entry.title,
			Description: "Description for " + entry.locale,
			Slug:        entry.slug,
			Category:    "Data Skills",
			Tags:        models.StringList{"sql", "databases"},
			Content:     "Body for " + entry.locale + " readers.",
		}
	}
	return &models.PublishRequest{
		Global: models.GlobalInput{
			TranslationKey:      "learn-sql",
			Author:              "Ana Costa",
			CoverImage:          "https://cdn.example.com/sql.jpg",
			Date:                "2025-03-01",
			AffiliateDisclosure: true,
		},
		Localized: localized,
	}
}

func TestValidatePayloadOK(t *testing.T) {
	result := publish.ValidatePayload(validRequest())
	if !result.OK() {
		t.Fatalf("expected valid payload, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidatePayloadErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.PublishRequest)
		wantErr string
	}{
		{
			name:    "missing translation key",
			mutate:  func(r *models.PublishRequest) { r.Global.TranslationKey = "  " },
			wantErr: "translationKey is required",
		},
		{
			name:    "missing author",
			mutate:  func(r *models.PublishRequest) { r.Global.Author = "" },
			wantErr: "author is required",
		},
		{
			name:    "missing date",
			mutate:  func(r *models.PublishRequest) { r.Global.Date = "" },
			wantErr: "date is required",
		},
		{
			name:    "missing cover image",
			mutate:  func(r *models.PublishRequest) { r.Global.CoverImage = "" },
			wantErr: "coverImage is required",
		},
		{
			name:    "cover image not a url",
			mutate:  func(r *models.PublishRequest) { r.Global.CoverImage = "not a url" },
			wantErr: "coverImage must be a valid http(s) URL",
		},
		{
			name:    "missing locale block",
			mutate:  func(r *models.PublishRequest) { delete(r.Localized, "it") },
			wantErr: "it: missing locale data",
		},
		{
			name: "empty title",
			mutate: func(r *models.PublishRequest) {
				data := r.Localized["es"]
				data.Title = ""
				r.Localized["es"] = data
			},
			wantErr: "es: title is required",
		},
		{
			name: "bad slug",
			mutate: func(r *models.PublishRequest) {
				data := r.Localized["pt"]
				data.Slug = "Aprenda SQL"
				r.Localized["pt"] = data
			},
			wantErr: "pt: slug must be kebab-case",
		},
		{
			name: "empty tags",
			mutate: func(r *models.PublishRequest) {
				data := r.Localized["en"]
				data.Tags = nil
				r.Localized["en"] = data
			},
			wantErr: "en: tags are required",
		},
		{
			name: "empty content",
			mutate: func(r *models.PublishRequest) {
				data := r.Localized["en"]
				data.Content = "   "
				r.Localized["en"] = data
			},
			wantErr: "en: content is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			result := publish.ValidatePayload(req)
			if result.OK() {
				t.Fatal("expected validation to fail")
			}
			found := false
			for _, err := range result.Errors {
				if err == tt.wantErr {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not include %q", result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidatePayloadCollectsAllErrors(t *testing.T) {
	req := validRequest()
	req.Global.TranslationKey = ""
	req.Global.Author = ""
	delete(req.Localized, "it")

	result := publish.ValidatePayload(req)
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidatePayloadAccentWarning(t *testing.T) {
	req := validRequest()
	data := req.Localized[string(i18n.DefaultLocale)]
	data.Content = strings.Repeat("conteúdo em português já publicado ", 10)
	req.Localized[string(i18n.DefaultLocale)] = data

	result := publish.ValidatePayload(req)
	if !result.OK() {
		t.Fatalf("warnings must not block publishing: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}

	// Accented content in a non-default locale is expected
	req = validRequest()
	data = req.Localized["pt"]
	data.Content = strings.Repeat("conteúdo em português já publicado ", 10)
	req.Localized["pt"] = data
	if result := publish.ValidatePayload(req); len(result.Warnings) != 0 {
		t.Errorf("pt content should not warn: %v", result.Warnings)
	}
}
