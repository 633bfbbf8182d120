package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports debounced changes to individual files. It watches the
// parent directory of each file so that editors replacing a file by rename are
// still observed.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	events    chan ChangeEvent
	errors    chan error
	debouncer *eventDebouncer
	mu        sync.RWMutex
	files     map[string]bool
	dirs      map[string]int
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

type eventDebouncer struct {
	delay   time.Duration
	pending map[string]*time.Timer
	mu      sync.Mutex
}

// NewFileWatcher creates a new file watcher with the specified debounce delay.
func NewFileWatcher(debounceDelay time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if debounceDelay <= 0 {
		debounceDelay = 100 * time.Millisecond
	}

	return &FileWatcher{
		watcher: watcher,
		events:  make(chan ChangeEvent, 64),
		errors:  make(chan error, 16),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		done:    make(chan struct{}),
		debouncer: &eventDebouncer{
			delay:   debounceDelay,
			pending: make(map[string]*time.Timer),
		},
	}, nil
}

// Start begins monitoring file system events.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return fmt.Errorf("watcher is already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	fw.cancel = cancel
	fw.running = true

	go fw.eventLoop(loopCtx)

	return nil
}

// Stop stops monitoring and releases the underlying watcher. The Events and
// Errors channels are not closed; receivers should also watch their context.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return fmt.Errorf("watcher is not running")
	}

	fw.running = false
	fw.cancel()
	close(fw.done)

	fw.debouncer.stopAll()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// Add starts reporting changes to the file at path.
func (fw *FileWatcher) Add(path string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	if fw.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	fw.dirs[dir]++
	fw.files[absPath] = true

	return nil
}

// Remove stops reporting changes to the file at path.
func (fw *FileWatcher) Remove(path string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	if !fw.files[absPath] {
		return nil
	}

	delete(fw.files, absPath)

	dir := filepath.Dir(absPath)

	fw.dirs[dir]--
	if fw.dirs[dir] > 0 {
		return nil
	}

	delete(fw.dirs, dir)

	if err := fw.watcher.Remove(dir); err != nil {
		return fmt.Errorf("failed to stop watching directory %s: %w", dir, err)
	}

	return nil
}

// Events returns the channel for receiving file change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Errors returns the channel for receiving watcher errors.
func (fw *FileWatcher) Errors() <-chan error {
	return fw.errors
}

func (fw *FileWatcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

			select {
			case fw.errors <- err:
			default:
			}
		}
	}
}

func (fw *FileWatcher) isWatched(path string) bool {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	return fw.files[filepath.Clean(path)]
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !fw.isWatched(event.Name) {
		return
	}

	changeEvent := ChangeEvent{
		Type: mapEventType(event.Op),
		Path: filepath.Clean(event.Name),
	}

	fw.debouncer.debounce(changeEvent.Path, func() {
		changeEvent.Timestamp = time.Now()

		select {
		case fw.events <- changeEvent:
		case <-fw.done:
		}
	})
}

func mapEventType(op fsnotify.Op) ChangeType {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return ChangeCreate
	case op&fsnotify.Write == fsnotify.Write:
		return ChangeModify
	case op&fsnotify.Remove == fsnotify.Remove:
		return ChangeDelete
	case op&fsnotify.Rename == fsnotify.Rename:
		return ChangeRename
	default:
		return ChangeModify
	}
}

func (d *eventDebouncer) debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[key]; exists {
		timer.Stop()
	}

	d.pending[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
	})
}

func (d *eventDebouncer) stopAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, timer := range d.pending {
		timer.Stop()
	}

	d.pending = make(map[string]*time.Timer)
}

// Follow copies src to dst once and then again after every debounced change
// to src, until ctx is done. Each copy outcome is passed to report when it is
// non-nil. The watcher is started and stopped by Follow.
func (fc *FileCopier) Follow(ctx context.Context, watcher *FileWatcher, src, dst string, report func(JobResult)) error {
	if report == nil {
		report = func(JobResult) {}
	}

	job := Job{Source: src, Destination: dst}
	copyOnce := func() {
		start := time.Now()
		written, err := fc.CopyFile(src, dst)
		report(JobResult{Job: job, Bytes: written, Err: err, Duration: time.Since(start)})
	}

	if err := watcher.Add(src); err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	copyOnce()

	for {
		select {
		case <-ctx.Done():
			return watcher.Stop()

		case event := <-watcher.Events():
			switch event.Type {
			case ChangeCreate, ChangeModify:
				copyOnce()
			case ChangeDelete, ChangeRename:
				fc.sink.Debugf(logTag, "source %s went away (%s), waiting for it to return", event.Path, event.Type)
			}

		case err := <-watcher.Errors():
			fc.sink.Errorf(logTag, "watcher error: %v", err)
		}
	}
}
