package gesture

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/mudra/internal/landmark"
)

// ErrNoSamples is returned when training is attempted without frames.
var ErrNoSamples = errors.New("no samples provided")

// Trainer turns recorded frames into gesture templates.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Train normalizes every frame and averages them into a single template set.
func (t *Trainer) Train(frames [][]float64) (landmark.Set, error) {
	var avg landmark.Set

	sets, err := t.normalizeAll(frames)
	if err != nil {
		return avg, err
	}

	sum := make([]float64, landmark.FrameValues)
	for _, s := range sets {
		floats.Add(sum, s.Flatten())
	}
	floats.Scale(1/float64(len(sets)), sum)

	// sum has exactly FrameValues entries
	avg, _ = landmark.FromFrame(sum)
	return avg, nil
}

// Spread returns the largest distance between any training frame and the
// template. It is a lower bound for a tolerance that accepts every sample.
func (t *Trainer) Spread(frames [][]float64, template landmark.Set) (float64, error) {
	sets, err := t.normalizeAll(frames)
	if err != nil {
		return 0, err
	}

	var spread float64
	for _, s := range sets {
		spread = math.Max(spread, Distance(s, template))
	}
	return spread, nil
}

// SuggestTolerance returns a tolerance that accepts all training frames with
// some headroom, never below DefaultTolerance.
func (t *Trainer) SuggestTolerance(frames [][]float64, template landmark.Set) (float64, error) {
	spread, err := t.Spread(frames, template)
	if err != nil {
		return 0, err
	}
	return math.Max(DefaultTolerance, 1.5*spread), nil
}

func (t *Trainer) normalizeAll(frames [][]float64) ([]landmark.Set, error) {
	if len(frames) == 0 {
		return nil, ErrNoSamples
	}

	sets := make([]landmark.Set, len(frames))
	for i, frame := range frames {
		s, err := landmark.FromFrame(frame)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		sets[i] = s.Normalize()
	}
	return sets, nil
}
