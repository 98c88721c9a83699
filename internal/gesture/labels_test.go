package gesture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabels(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLabelMap_Display(t *testing.T) {
	m := NewLabelMap(map[string]string{"letter_a": "A", "thumbs_up": "👍"})

	assert.Equal(t, "A", m.Display("letter_a"))
	assert.Equal(t, "👍", m.Display("thumbs_up"))
	assert.Equal(t, "letter_b", m.Display("letter_b"), "unmapped names pass through")
	assert.Equal(t, Unknown, m.Display(Unknown))
	assert.Equal(t, 2, m.Len())
}

func TestLabelMap_Nil(t *testing.T) {
	var m *LabelMap

	assert.Equal(t, "anything", m.Display("anything"))
	assert.Equal(t, 0, m.Len())
}

func TestNewLabelMap_Copies(t *testing.T) {
	src := map[string]string{"a": "A"}
	m := NewLabelMap(src)
	src["a"] = "changed"

	assert.Equal(t, "A", m.Display("a"))
}

func TestLoadLabelMap(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "labels.json")
		writeLabels(t, path, `{"letter_a": "A", "letter_b": "B"}`)

		m, err := LoadLabelMap(path)
		require.NoError(t, err)
		assert.Equal(t, "B", m.Display("letter_b"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLabelMap(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("non string values", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		writeLabels(t, path, `{"letter_a": 1}`)

		_, err := LoadLabelMap(path)
		assert.Error(t, err)
	})
}

func TestWatchLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	writeLabels(t, path, `{"letter_a": "A"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live, err := WatchLabels(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "A", live.Display("letter_a"))

	var _ Labeler = live

	writeLabels(t, path, `{"letter_a": "Alpha"}`)

	assert.Eventually(t, func() bool {
		return live.Display("letter_a") == "Alpha"
	}, 5*time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, live.ReloadCount(), uint32(1))

	// A broken file keeps the previous map.
	writeLabels(t, path, `{not json`)
	assert.Eventually(t, func() bool {
		return live.ReloadCount() >= 2
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "Alpha", live.Snapshot().Display("letter_a"))
}

func TestWatchLabels_MissingFile(t *testing.T) {
	_, err := WatchLabels(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
