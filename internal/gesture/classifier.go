// Package gesture provides gesture classification, training, and the
// majority vote used to turn per-frame labels into a prediction.
package gesture

import (
	"context"

	"github.com/ayusman/mudra/internal/landmark"
)

// Unknown is the label used when the classifier has no candidate for a frame.
const Unknown = "unknown"

// Category is one ranked classifier candidate.
type Category struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Classifier recognizes a gesture from one landmark set.
//
// Classify returns candidates ranked best first. An empty result means the
// set matched nothing. timestampMs mirrors streaming recognizers; callers that
// classify unordered batches pass a constant.
type Classifier interface {
	Classify(ctx context.Context, set landmark.Set, timestampMs int64) ([]Category, error)
}

// TopLabel returns the name of the best candidate, or Unknown when there is none.
func TopLabel(categories []Category) string {
	if len(categories) == 0 {
		return Unknown
	}
	return categories[0].Name
}
