package gesture

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "model.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndLoadTemplates(t *testing.T) {
	s := newTestStore(t)
	trainer := NewTrainer()

	frames := [][]float64{landmark.ThumbsUpSet().Flatten(), landmark.ThumbsUpSet().Flatten()}
	set, err := trainer.Train(frames)
	require.NoError(t, err)

	g, err := SaveTemplate(s, "thumbs_up", set, 2.5, frames)
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 2, g.Samples)

	templates, err := LoadTemplates(s)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	assert.Equal(t, "thumbs_up", templates[0].Name)
	assert.Equal(t, g.ID, templates[0].ID)
	assert.Equal(t, 2.5, templates[0].Tolerance)
	assert.Equal(t, set, templates[0].Landmarks)

	c := NewTemplateClassifier(templates)
	categories, err := c.Classify(context.Background(), landmark.ThumbsUpSet(), 0)
	require.NoError(t, err)
	assert.Equal(t, "thumbs_up", TopLabel(categories))
}

func TestSaveTemplate_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)

	first, err := SaveTemplate(s, "wave", landmark.ThumbsUpSet().Normalize(), 1, [][]float64{landmark.ThumbsUpSet().Flatten()})
	require.NoError(t, err)

	frames := [][]float64{landmark.OpenPalmSet().Flatten(), landmark.OpenPalmSet().Flatten(), landmark.OpenPalmSet().Flatten()}
	second, err := SaveTemplate(s, "wave", landmark.OpenPalmSet().Normalize(), 0, frames)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, DefaultTolerance, second.Tolerance)

	templates, err := LoadTemplates(s)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, landmark.OpenPalmSet().Normalize(), templates[0].Landmarks)

	samples, err := s.Samples().GetByGestureID(first.ID)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestSaveTemplate_RequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := SaveTemplate(s, "", landmark.Set{}, 1, nil)
	assert.Error(t, err)
}

func TestLoadTemplates_SkipsIncomplete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Gestures().Create(&store.Gesture{ID: "partial", Name: "partial", Tolerance: 1}))
	require.NoError(t, s.Gestures().SetLandmarks("partial", []store.Landmark{{X: 1}}))

	_, err := SaveTemplate(s, "fist", landmark.ThumbsUpSet().Normalize(), 1, nil)
	require.NoError(t, err)

	templates, err := LoadTemplates(s)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "fist", templates[0].Name)
}

func TestSaveTemplate_FailureKeepsPreviousTemplate(t *testing.T) {
	s := newTestStore(t)

	first, err := SaveTemplate(s, "wave", landmark.ThumbsUpSet().Normalize(), 1.5, [][]float64{landmark.ThumbsUpSet().Flatten()})
	require.NoError(t, err)

	_, err = s.DB().Exec(`CREATE TRIGGER fail_samples BEFORE INSERT ON gesture_samples
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	require.NoError(t, err)

	_, err = SaveTemplate(s, "wave", landmark.OpenPalmSet().Normalize(), 4, [][]float64{landmark.OpenPalmSet().Flatten()})
	require.Error(t, err)

	stored, err := s.Gestures().GetByName("wave")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 1.5, stored.Tolerance)
	assert.Equal(t, 1, stored.Samples)

	landmarks, err := s.Gestures().GetLandmarks(first.ID)
	require.NoError(t, err)
	assert.Equal(t, SetToStoreLandmarks(landmark.ThumbsUpSet().Normalize()), landmarks)
}
