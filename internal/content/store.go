package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/folio-dev/folio/pkg/logger"
)

//go:embed default.yaml
var defaultContent []byte

const defaultDebounce = 200 * time.Millisecond

// Default returns the built-in content.
func Default() *Content {
	c, err := Parse(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return c
}

// Store holds the current content. Reads never block reloads.
type Store struct {
	current  atomic.Pointer[Content]
	logger   *slog.Logger
	path     string
	debounce time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for reloads.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce sets how long Watch waits for writes to settle.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewStore loads content from path, or the built-in default when path is "".
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		logger:   logger.NewNope(),
		path:     path,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		s.current.Store(Default())
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the latest successfully loaded content.
func (s *Store) Current() *Content {
	return s.current.Load()
}

// Reload reads the file again. On error the previous content is kept.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", s.path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Healthcheck fails when no content has been loaded.
func (s *Store) Healthcheck(context.Context) error {
	if s.current.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}

// Watch reloads the content file whenever it changes until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are handled. It returns nil for a Store without a file.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("content: watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.InfoContext(ctx, "watching content", slog.String("path", target))

	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(s.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.WarnContext(ctx, "content watcher error", slog.Any("error", err))

		case <-timer.C:
			if err := s.Reload(); err != nil {
				level := slog.LevelError
				if errors.Is(err, os.ErrNotExist) {
					level = slog.LevelWarn
				}
				s.logger.Log(ctx, level, "content reload failed, keeping previous version",
					slog.Any("error", err))
				continue
			}
			s.logger.InfoContext(ctx, "content reloaded", slog.String("path", target))
		}
	}
}
