package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/landmark"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSamples(t *testing.T, dir string, frames [][]float64) string {
	t.Helper()

	data, err := json.Marshal(map[string]any{"landmarks": frames})
	require.NoError(t, err)
	path := filepath.Join(dir, "samples.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGesturesWorkflow(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mudra.yaml")
	model := filepath.Join(dir, "model.db")
	samples := writeSamples(t, dir, [][]float64{
		landmark.ThumbsUpSet().Flatten(),
		landmark.ThumbsUpSet().Flatten(),
	})

	out, err := run(t, "gestures", "train", "--config", cfg, "--model", model,
		"--name", "thumbs_up", "--samples", samples)
	require.NoError(t, err)
	assert.Equal(t, "Trained 'thumbs_up' from 2 samples (tolerance 3.00)\n", out)

	out, err = run(t, "gestures", "train", "--config", cfg, "--model", model,
		"--name", "open_palm", "--samples", writeSamples(t, dir, [][]float64{landmark.OpenPalmSet().Flatten()}),
		"--tolerance", "4.5")
	require.NoError(t, err)
	assert.Contains(t, out, "tolerance 4.50")

	out, err = run(t, "gestures", "list", "--config", cfg, "--model", model)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "open_palm"))
	assert.True(t, strings.HasPrefix(lines[3], "thumbs_up"))

	out, err = run(t, "gestures", "delete", "--config", cfg, "--model", model, "open_palm")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 'open_palm'\n", out)

	_, err = run(t, "gestures", "delete", "--config", cfg, "--model", model, "open_palm")
	assert.ErrorContains(t, err, `gesture "open_palm" not found`)

	out, err = run(t, "gestures", "list", "--config", cfg, "--model", model)
	require.NoError(t, err)
	assert.NotContains(t, out, "open_palm")
}

func TestTrain_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mudra.yaml")
	model := filepath.Join(dir, "model.db")

	t.Run("requires flags", func(t *testing.T) {
		_, err := run(t, "gestures", "train", "--config", cfg, "--model", model)
		assert.Error(t, err)
	})

	t.Run("empty samples", func(t *testing.T) {
		samples := writeSamples(t, dir, [][]float64{})
		_, err := run(t, "gestures", "train", "--config", cfg, "--model", model,
			"--name", "x", "--samples", samples)
		assert.ErrorContains(t, err, "no samples")
	})

	t.Run("short frame", func(t *testing.T) {
		samples := writeSamples(t, dir, [][]float64{make([]float64, 10)})
		_, err := run(t, "gestures", "train", "--config", cfg, "--model", model,
			"--name", "x", "--samples", samples)
		assert.ErrorIs(t, err, landmark.ErrFrameLength)
	})

	_, statErr := os.Stat(model)
	assert.True(t, os.IsNotExist(statErr), "failed training must not create the model")
}

func TestMissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mudra.yaml")
	model := filepath.Join(dir, "absent.db")

	for _, args := range [][]string{
		{"gestures", "list"},
		{"serve", "--addr", "127.0.0.1:0"},
	} {
		_, err := run(t, append(args, "--config", cfg, "--model", model)...)
		assert.ErrorContains(t, err, "not found", args)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mudra.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: loud\n"), 0o644))

	_, err := run(t, "gestures", "list", "--config", cfg)
	assert.ErrorContains(t, err, "validation failed")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--config", "/nonexistent/dir/mudra.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mudra "+Version))
}
