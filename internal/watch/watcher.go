// Package watch re-runs work when schema files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDelay is how long the watcher waits for a burst of writes to settle
const DefaultDelay = 100 * time.Millisecond

// FileWatcher monitors a set of files and triggers a callback when they change.
// Editors often replace a file instead of writing it in place, so the
// watcher observes the parent directories and filters events by path.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]bool
	dirs      []string
	logger    *zap.Logger
	onChange  func([]string) error
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithLogger sets the logger used to report changes and errors
func WithLogger(logger *zap.Logger) Option {
	return func(fw *FileWatcher) {
		if logger != nil {
			fw.logger = logger
		}
	}
}

// WithDelay sets the debounce delay
func WithDelay(d time.Duration) Option {
	return func(fw *FileWatcher) {
		fw.debouncer.duration = d
	}
}

// NewFileWatcher creates a watcher for files. onChange receives the changed
// paths, cleaned and absolute.
func NewFileWatcher(files []string, onChange func([]string) error, opts ...Option) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(DefaultDelay),
		files:     make(map[string]bool),
		logger:    zap.NewNop(),
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(fw)
	}

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		fw.files[abs] = true
		if dir := filepath.Dir(abs); !slices.Contains(fw.dirs, dir) {
			fw.dirs = append(fw.dirs, dir)
		}
	}

	fw.debouncer.SetCallback(func(changed []string) {
		if err := fw.onChange(changed); err != nil {
			fw.logger.Error("Error handling file changes", zap.Error(err))
		}
	})

	return fw, nil
}

// Start begins watching the file system
func (fw *FileWatcher) Start() error {
	for _, dir := range fw.dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.logger.Debug("Watching directory", zap.String("dir", dir))
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher. Calling it more than once is harmless.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if fw.relevant(event) {
				fw.logger.Info(fmt.Sprintf("File changed: %s", event.Name))
				fw.debouncer.Add(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("Watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// relevant reports whether an event modifies one of the watched files
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}

// Run watches files until ctx is cancelled, calling onChange after each
// settled burst of changes.
func Run(ctx context.Context, files []string, onChange func([]string) error, opts ...Option) error {
	fw, err := NewFileWatcher(files, onChange, opts...)
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		fw.Stop()
		return err
	}
	<-ctx.Done()
	return fw.Stop()
}
