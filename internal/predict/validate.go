// Package predict turns a batch of landmark frames into one gesture label.
package predict

import "github.com/ayusman/mudra/internal/landmark"

// BatchFrames is the number of frames in a prediction request.
const BatchFrames = 30

// Validate checks the batch shape: exactly BatchFrames frames of
// landmark.FrameValues numbers each. The frame count is checked first.
func Validate(frames [][]float64) error {
	if len(frames) != BatchFrames {
		return &ValidationError{
			Reason:  ReasonFrameCount,
			Message: MsgWrongFrameCount,
			Frame:   -1,
		}
	}

	for i, frame := range frames {
		if len(frame) != landmark.FrameValues {
			return &ValidationError{
				Reason:  ReasonValueCount,
				Message: MsgWrongValueCount,
				Frame:   i,
			}
		}
	}

	return nil
}
