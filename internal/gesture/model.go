package gesture

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/store"
)

// LoadTemplates reads every gesture template from the store.
// Gestures without a complete landmark set are skipped.
func LoadTemplates(s *store.Store) ([]*Template, error) {
	gestures, err := s.Gestures().List()
	if err != nil {
		return nil, fmt.Errorf("list gestures: %w", err)
	}

	templates := make([]*Template, 0, len(gestures))
	for _, g := range gestures {
		stored, err := s.Gestures().GetLandmarks(g.ID)
		if err != nil {
			return nil, fmt.Errorf("load landmarks for %s: %w", g.Name, err)
		}
		if len(stored) != landmark.SetPoints {
			slog.Warn("Skipping gesture without a complete template",
				"gesture", g.Name, "landmarks", len(stored))
			continue
		}

		templates = append(templates, &Template{
			ID:        g.ID,
			Name:      g.Name,
			Landmarks: storeLandmarksToSet(stored),
			Tolerance: g.Tolerance,
		})
	}

	slog.Info("Loaded gesture templates", "count", len(templates))
	return templates, nil
}

// SetToStoreLandmarks converts a landmark set to its stored form.
func SetToStoreLandmarks(set landmark.Set) []store.Landmark {
	out := make([]store.Landmark, len(set))
	for i, p := range set {
		out[i] = store.Landmark{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

func storeLandmarksToSet(stored []store.Landmark) landmark.Set {
	var set landmark.Set
	for i, l := range stored {
		set[i] = landmark.Point3D{X: l.X, Y: l.Y, Z: l.Z}
	}
	return set
}

// SaveTemplate stores a trained template under name, replacing the landmarks,
// tolerance and samples of an existing gesture with the same name. The
// gesture, landmarks and samples are written in one transaction.
func SaveTemplate(s *store.Store, name string, set landmark.Set, tolerance float64, frames [][]float64) (*store.Gesture, error) {
	if name == "" {
		return nil, errors.New("gesture name is required")
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	samples := make([]json.RawMessage, len(frames))
	for i, frame := range frames {
		data, err := json.Marshal(frame)
		if err != nil {
			return nil, fmt.Errorf("encode sample %d: %w", i, err)
		}
		samples[i] = data
	}

	g, err := s.SaveTemplate(name, tolerance, SetToStoreLandmarks(set), samples)
	if err != nil {
		return nil, fmt.Errorf("save template %s: %w", name, err)
	}
	return g, nil
}
