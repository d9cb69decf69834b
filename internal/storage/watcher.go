package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/i18n"
)

// Watcher invalidates the content cache when files under the fs store's
// locale directories change. It is a development convenience: published
// changes already invalidate the cache explicitly.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	log      zerolog.Logger
}

// NewWatcher watches baseDir and every existing locale subdirectory,
// calling onChange for any file event
func NewWatcher(baseDir string, onChange func(), log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(baseDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", baseDir, err)
	}
	for _, locale := range i18n.Locales {
		dir := filepath.Join(baseDir, string(locale))
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		watcher:  fsw,
		onChange: onChange,
		log:      log.With().Str("component", "content_watcher").Logger(),
	}, nil
}

// Run processes events until the context is cancelled
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Content change detected")
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("Watcher error")
		}
	}
}
