package gesture

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Labeler maps a classifier category name to the label shown to callers.
type Labeler interface {
	Display(name string) string
}

// LabelMap translates raw category names into display labels.
// Names without an entry are returned unchanged. A nil LabelMap is the
// identity mapping.
type LabelMap struct {
	labels map[string]string
}

// NewLabelMap copies m into a LabelMap.
func NewLabelMap(m map[string]string) *LabelMap {
	labels := make(map[string]string, len(m))
	for k, v := range m {
		labels[k] = v
	}
	return &LabelMap{labels: labels}
}

// LoadLabelMap reads a JSON object of category name to display label.
func LoadLabelMap(path string) (*LabelMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label map: %w", err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse label map %s: %w", path, err)
	}

	return NewLabelMap(m), nil
}

// Display implements Labeler.
func (m *LabelMap) Display(name string) string {
	if m == nil {
		return name
	}
	if label, ok := m.labels[name]; ok {
		return label
	}
	return name
}

// Len returns the number of mapped names.
func (m *LabelMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.labels)
}

// LiveLabels is a label map that follows changes to its file.
// Each reload replaces the whole map; readers never see a partial update.
type LiveLabels struct {
	path    string
	current atomic.Pointer[LabelMap]
	reloads atomic.Uint32
}

const reloadDebounce = 500 * time.Millisecond

// WatchLabels loads the label file and reloads it whenever it is written,
// until ctx is done. A failed reload keeps the previous map.
func WatchLabels(ctx context.Context, path string) (*LiveLabels, error) {
	m, err := LoadLabelMap(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create label watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch label directory: %w", err)
	}

	l := &LiveLabels{path: path}
	l.current.Store(m)

	go l.watch(ctx, watcher)

	return l, nil
}

func (l *LiveLabels) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	target := filepath.Clean(l.path)
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, l.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Label watcher error", "error", err)
		}
	}
}

func (l *LiveLabels) reload() {
	count := l.reloads.Add(1)

	m, err := LoadLabelMap(l.path)
	if err != nil {
		slog.Error("Failed to reload label map", "path", l.path, "error", err)
		return
	}

	l.current.Store(m)
	slog.Info("Label map reloaded", "path", l.path, "labels", m.Len(), "count", count)
}

// Display implements Labeler using the latest loaded map.
func (l *LiveLabels) Display(name string) string {
	return l.current.Load().Display(name)
}

// Snapshot returns the current map.
func (l *LiveLabels) Snapshot() *LabelMap {
	return l.current.Load()
}

// ReloadCount returns how many reloads have been attempted.
func (l *LiveLabels) ReloadCount() uint32 {
	return l.reloads.Load()
}
