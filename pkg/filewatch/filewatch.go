// Package filewatch notifies when the content of a single file changes.
package filewatch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kazz187/agentstudio/pkg/panicerr"
)

// DebounceInterval is the delay after an fsnotify event before checking the checksum.
const DebounceInterval = 100 * time.Millisecond

// Watcher calls OnChange whenever the watched file's SHA256 changes.
type Watcher struct {
	path     string
	onChange func() error

	mu       sync.Mutex
	lastHash [sha256.Size]byte
}

func New(path string, onChange func() error) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	h, err := HashFile(abs)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: abs, onChange: onChange, lastHash: h}, nil
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file itself so editors that save via rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	name := filepath.Base(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, w.check)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("fsnotify error", "path", w.path, "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) check() {
	h, err := HashFile(w.path)
	if err != nil {
		slog.Warn("failed to hash watched file", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	changed := h != w.lastHash
	w.lastHash = h
	w.mu.Unlock()
	if !changed {
		return
	}
	if err := panicerr.Safe(w.onChange)(); err != nil {
		slog.Warn("file change handler failed", "path", w.path, "error", err)
	}
}

// HashFile computes the SHA256 hash of the file at the given path.
func HashFile(path string) ([sha256.Size]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [sha256.Size]byte{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [sha256.Size]byte{}, fmt.Errorf("hash %s: %w", path, err)
	}

	var result [sha256.Size]byte
	copy(result[:], h.Sum(nil))
	return result, nil
}
