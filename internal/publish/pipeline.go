// Package publish implements the multi-locale publish pipeline:
// holistic validation, slug conflict checking, front-matter
// serialization, and the write-through to a pluggable sink.
package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/content"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/metrics"
	"github.com/techskillsthatpay/content-server/internal/models"
)

// Sink receives the full serialized file set of one publish. All files
// belong together: a sink must either persist all of them or fail
// without partial effect (for the commit sink the ref update is the
// only irreversible step and happens last).
type Sink interface {
	Name() string
	Publish(ctx context.Context, files []models.PublishFile, message string) (*models.PublishResult, error)
}

// ValidationError reports field-level constraint failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, " ")
}

// ConflictError reports slug collisions across translation keys. It is
// distinct from ValidationError so the authoring UI can explain it.
type ConflictError struct {
	Errors []string
}

func (e *ConflictError) Error() string {
	return strings.Join(e.Errors, " ")
}

// Pipeline validates authoring payloads and writes them through a sink
type Pipeline struct {
	repo *content.Repository
	sink Sink
	log  zerolog.Logger
	now  func() time.Time
}

// NewPipeline creates a publish pipeline
func NewPipeline(repo *content.Repository, sink Sink, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		repo: repo,
		sink: sink,
		log:  log.With().Str("component", "publish").Logger(),
		now:  time.Now,
	}
}

// Publish validates the payload, rejects slug conflicts, serializes one
// document per locale with a shared updated date, writes the whole set
// through the sink and invalidates the content cache. No writes happen
// unless every check passes.
func (p *Pipeline) Publish(ctx context.Context, req *models.PublishRequest) (*models.PublishResult, []string, error) {
	validation := ValidatePayload(req)
	if !validation.OK() {
		metrics.PublishesTotal.WithLabelValues("validation_failed").Inc()
		return nil, validation.Warnings, &ValidationError{Errors: validation.Errors}
	}

	if err := p.checkConflicts(ctx, req); err != nil {
		metrics.PublishesTotal.WithLabelValues("conflict").Inc()
		return nil, validation.Warnings, err
	}

	updated := p.now().UTC().Format("2006-01-02")
	files := p.buildFiles(req, updated)

	message := fmt.Sprintf("Publish post %s (%s)", req.Global.TranslationKey, localeList())
	result, err := p.sink.Publish(ctx, files, message)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("sink_error").Inc()
		return nil, validation.Warnings, fmt.Errorf("publish sink failed: %w", err)
	}

	metrics.PublishesTotal.WithLabelValues("success").Inc()
	p.repo.Invalidate()
	p.log.Info().
		Str("translation_key", req.Global.TranslationKey).
		Str("sink", p.sink.Name()).
		Str("updated", updated).
		Msg("Published post set")

	return result, validation.Warnings, nil
}

// checkConflicts rejects the publish when any (locale, slug) already
// belongs to a different translation key, preventing a silent overwrite
// of an unrelated article
func (p *Pipeline) checkConflicts(ctx context.Context, req *models.PublishRequest) error {
	var conflicts []string
	for _, locale := range i18n.Locales {
		slug := req.Localized[string(locale)].Slug
		existing, err := p.repo.BySlug(ctx, locale, slug)
		if err != nil {
			return fmt.Errorf("failed to check slug availability: %w", err)
		}
		if existing != nil && existing.TranslationKey != req.Global.TranslationKey {
			conflicts = append(conflicts, fmt.Sprintf("%s: slug already used by %s", locale, existing.TranslationKey))
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Errors: conflicts}
	}
	return nil
}

func (p *Pipeline) buildFiles(req *models.PublishRequest, updated string) []models.PublishFile {
	files := make([]models.PublishFile, 0, len(i18n.Locales))
	for _, locale := range i18n.Locales {
		data := req.Localized[string(locale)]
		fm := models.Frontmatter{
			Title:               data.Title,
			Description:         data.Description,
			Date:                req.Global.Date,
			Updated:             updated,
			Tags:                data.Tags,
			Keywords:            data.Keywords,
			CoverImage:          req.Global.CoverImage,
			Category:            data.Category,
			Slug:                data.Slug,
			Author:              req.Global.Author,
			TranslationKey:      req.Global.TranslationKey,
			AffiliateDisclosure: req.Global.AffiliateDisclosure,
		}
		files = append(files, models.PublishFile{
			Locale:  locale,
			Slug:    data.Slug,
			Path:    fmt.Sprintf("content/posts/%s/%s.mdx", locale, data.Slug),
			Content: content.ComposeDocument(fm, data.Content),
		})
	}
	return files
}

func localeList() string {
	codes := make([]string, len(i18n.Locales))
	for i, locale := range i18n.Locales {
		codes[i] = string(locale)
	}
	return strings.Join(codes, "/")
}
