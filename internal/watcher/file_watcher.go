package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"bigocheck/internal/config"
	"bigocheck/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// ignoredDirs are never watched, whatever the exclude patterns say.
var ignoredDirs = []string{
	"vendor", ".git", "node_modules", ".vscode", ".idea", "build", "dist", "target", "tmp", "temp",
}

// editorSuffixes mark swap and backup files written by editors.
var editorSuffixes = []string{".tmp", "~", ".swp", ".swo"}

// FileWatcher reports batches of changed source files under a set of roots.
// Directories created while watching are picked up as well.
type FileWatcher struct {
	watcher    *fsnotify.Watcher
	config     *config.Config
	extensions []string
	debouncer  *debouncer

	mu          sync.Mutex
	watchedDirs map[string]bool
}

type FileChangeEvent struct {
	Path      string
	Operation string
	Timestamp time.Time
}

type FileChangeHandler func([]string) error

// NewFileWatcher watches for changes to files with the given extensions,
// e.g. ".go" and ".java".
func NewFileWatcher(cfg *config.Config, extensions []string) (*FileWatcher, error) {
	return newFileWatcher(cfg, extensions, 500*time.Millisecond)
}

func newFileWatcher(cfg *config.Config, extensions []string, delay time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &FileWatcher{
		watcher:     w,
		config:      cfg,
		extensions:  extensions,
		debouncer:   newDebouncer(delay),
		watchedDirs: make(map[string]bool),
	}, nil
}

// Watch registers every directory under paths and starts delivering
// debounced batches to handler. It returns once registration is done.
func (fw *FileWatcher) Watch(paths []string, handler FileChangeHandler) error {
	for _, root := range paths {
		if err := fw.watchTree(root); err != nil {
			return fmt.Errorf("failed to watch path %s: %w", root, err)
		}
	}
	go fw.run(handler)
	return nil
}

func (fw *FileWatcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && fw.shouldSkipDir(path) {
			return filepath.SkipDir
		}
		return fw.watchDir(path)
	})
}

func (fw *FileWatcher) watchDir(dir string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.watchedDirs[dir] {
		return nil
	}
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	fw.watchedDirs[dir] = true
	return nil
}

func (fw *FileWatcher) run(handler FileChangeHandler) {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.dispatch(event, handler)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "err", err)
		}
	}
}

func (fw *FileWatcher) dispatch(event fsnotify.Event, handler FileChangeHandler) {
	if event.Has(fsnotify.Create) && isDir(event.Name) && !fw.shouldSkipDir(event.Name) {
		if err := fw.watchTree(event.Name); err != nil {
			logger.Warn("failed to watch new directory", "dir", event.Name, "err", err)
		}
		return
	}
	if !fw.isSourceFile(event.Name) || fw.shouldSkipFile(event.Name) {
		return
	}

	logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
	fw.debouncer.add(FileChangeEvent{
		Path:      event.Name,
		Operation: event.Op.String(),
		Timestamp: time.Now(),
	}, handler)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isSourceFile reports whether path has a watched extension; test sources
// count only when the config includes tests.
func (fw *FileWatcher) isSourceFile(path string) bool {
	if !slices.Contains(fw.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	return !config.IsTestFile(path) || fw.config.Files.IncludeTests
}

func (fw *FileWatcher) shouldSkipDir(path string) bool {
	return slices.Contains(ignoredDirs, filepath.Base(path)) || fw.config.Excluded(path)
}

func (fw *FileWatcher) shouldSkipFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, suffix := range editorSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return fw.config.Excluded(path)
}

func (fw *FileWatcher) Close() error {
	fw.debouncer.stop()
	return fw.watcher.Close()
}

// GetWatchedPaths returns the watched directories, sorted.
func (fw *FileWatcher) GetWatchedPaths() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	paths := make([]string, 0, len(fw.watchedDirs))
	for path := range fw.watchedDirs {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
