package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type watcher struct {
	mu *sync.Mutex

	fs      *fsnotify.Watcher
	shaders []Shader
	dirs    map[string]bool
	dirty   map[string]struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watcher reloads shaders when their source files or includes change on disk.
//
// File events arrive on a background goroutine and only mark paths dirty. Reloading touches the GPU, so
// it happens in Poll, which must be called from the thread that owns the graphics context.
type Watcher interface {
	// Add starts watching every dependency of s.
	//
	// Parameters:
	//   - s: the shader to watch
	//
	// Returns:
	//   - error: if a directory could not be watched
	Add(s Shader) error

	// Remove stops reloading s.
	//
	// Parameters:
	//   - s: the shader to forget
	Remove(s Shader)

	// Poll reloads every watched shader with a changed dependency.
	//
	// Returns:
	//   - int: the number of shaders reloaded successfully
	//   - error: the joined reload errors; failed shaders keep their previous program
	Poll() (int, error)

	// Close stops the watcher.
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher creates a Watcher and starts its event goroutine.
//
// Returns:
//   - Watcher: the watcher
//   - error: if the platform file watcher could not be created
func NewWatcher() (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}
	w := &watcher{
		mu:    &sync.Mutex{},
		fs:    fw,
		dirs:  make(map[string]bool),
		dirty: make(map[string]struct{}),
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// watch records changed paths. Directories are watched rather than files so editors that save by
// renaming a temp file over the original are still seen.
func (w *watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.markDirty(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("shader watcher error", "error", err)
		}
	}
}

// markDirty flags path as changed.
//
// Parameters:
//   - path: the changed file
func (w *watcher) markDirty(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty[abs] = struct{}{}
}

func (w *watcher) Add(s Shader) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.shaders {
		if existing == s {
			return nil
		}
	}
	if err := w.watchDirs(s.Dependencies()); err != nil {
		return err
	}
	w.shaders = append(w.shaders, s)
	return nil
}

func (w *watcher) Remove(s Shader) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.shaders {
		if existing == s {
			w.shaders = append(w.shaders[:i], w.shaders[i+1:]...)
			return
		}
	}
}

func (w *watcher) Poll() (int, error) {
	w.mu.Lock()
	if len(w.dirty) == 0 {
		w.mu.Unlock()
		return 0, nil
	}
	dirty := w.dirty
	w.dirty = make(map[string]struct{})
	var stale []Shader
	for _, s := range w.shaders {
		for _, dep := range s.Dependencies() {
			if _, ok := dirty[dep]; ok {
				stale = append(stale, s)
				break
			}
		}
	}
	w.mu.Unlock()

	var errs []error
	reloaded := 0
	for _, s := range stale {
		if err := s.Reload(); err != nil {
			slog.Error("shader reload failed, keeping previous program", "shader", s.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		reloaded++

		// Includes may have changed, so pick up any new directories.
		w.mu.Lock()
		err := w.watchDirs(s.Dependencies())
		w.mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return reloaded, errors.Join(errs...)
}

func (w *watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// watchDirs adds the parent directory of every path. Callers hold w.mu.
func (w *watcher) watchDirs(paths []string) error {
	for _, p := range paths {
		dir := filepath.Dir(p)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}
