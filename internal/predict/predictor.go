package predict

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
)

// frameTimestampMs is passed to the classifier for every frame; the batch is
// voted on as a whole, not as a stream.
const frameTimestampMs = 0

// Predictor validates a frame batch, classifies every frame and returns the
// majority label. It holds no per-request state and is safe for concurrent use
// when its classifier is.
type Predictor struct {
	classifier gesture.Classifier
	labels     gesture.Labeler
	logger     *slog.Logger
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithLabels maps winning category names to display labels.
func WithLabels(l gesture.Labeler) Option {
	return func(p *Predictor) {
		p.labels = l
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Predictor) {
		p.logger = l
	}
}

// New creates a Predictor around an initialized classifier.
func New(classifier gesture.Classifier, opts ...Option) *Predictor {
	p := &Predictor{
		classifier: classifier,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.labels == nil {
		p.labels = (*gesture.LabelMap)(nil)
	}
	return p
}

// Predict returns the label of the batch. It fails with *ValidationError for a
// malformed batch, or with the classifier's error; there is no partial result.
func (p *Predictor) Predict(ctx context.Context, frames [][]float64) (string, error) {
	if err := Validate(frames); err != nil {
		return "", err
	}

	labels := make([]string, len(frames))
	for i, frame := range frames {
		set, err := landmark.FromFrame(frame)
		if err != nil {
			return "", fmt.Errorf("frame %d: %w", i, err)
		}

		categories, err := p.classifier.Classify(ctx, set, frameTimestampMs)
		if err != nil {
			return "", fmt.Errorf("classify frame %d: %w", i, err)
		}
		labels[i] = gesture.TopLabel(categories)
	}

	winner, votes := gesture.Vote(labels)
	display := p.labels.Display(winner)

	p.logger.DebugContext(ctx, "Prediction",
		"frames", len(frames),
		"category", winner,
		"label", display,
		"votes", votes,
	)

	return display, nil
}
