// Package landmark provides the hand landmark types shared by the gesture
// classifier and the prediction pipeline.
package landmark

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20

	// HandPoints is the number of landmarks describing one hand.
	HandPoints = 21
	// SetPoints is the number of landmarks in a two-hand set.
	SetPoints = 2 * HandPoints
	// FrameValues is the length of a flattened set (x, y, z per landmark).
	FrameValues = 3 * SetPoints
)

// ErrFrameLength is returned when a flattened frame does not hold exactly FrameValues numbers.
var ErrFrameLength = errors.New("frame must have 126 values")

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is the 21 landmarks of a single hand.
type Hand [HandPoints]Point3D

// Set is the 42 landmarks of one frame: the first hand followed by the second.
type Set [SetPoints]Point3D

// FromFrame groups a flattened frame into landmarks, three values at a time,
// preserving order.
func FromFrame(frame []float64) (Set, error) {
	var s Set
	if len(frame) != FrameValues {
		return s, fmt.Errorf("%w: got %d", ErrFrameLength, len(frame))
	}

	for i := 0; i < SetPoints; i++ {
		s[i] = Point3D{
			X: frame[3*i],
			Y: frame[3*i+1],
			Z: frame[3*i+2],
		}
	}

	return s, nil
}

// Flatten is the inverse of FromFrame.
func (s Set) Flatten() []float64 {
	out := make([]float64, 0, FrameValues)
	for _, p := range s {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// Hands splits the set into its two hands.
func (s Set) Hands() (Hand, Hand) {
	var a, b Hand
	copy(a[:], s[:HandPoints])
	copy(b[:], s[HandPoints:])
	return a, b
}

// SetFromHands joins two hands into a set.
func SetFromHands(a, b Hand) Set {
	var s Set
	copy(s[:HandPoints], a[:])
	copy(s[HandPoints:], b[:])
	return s
}

// Normalize normalizes each hand of the set independently.
func (s Set) Normalize() Set {
	a, b := s.Hands()
	return SetFromHands(a.Normalize(), b.Normalize())
}

// IsZero reports whether every landmark of the hand is at the origin.
// Upstream extractors send an all-zero hand when only one hand is visible.
func (h Hand) IsZero() bool {
	for _, p := range h {
		if p != (Point3D{}) {
			return false
		}
	}
	return true
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	return floats.Distance([]float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z}, 2)
}

// Normalize normalizes the hand relative to wrist position and hand size.
// The result has the wrist at origin (0,0,0) and is scaled so that the
// distance from wrist to middle finger MCP is 1.0. An absent (all-zero) hand
// is returned unchanged.
func (h Hand) Normalize() Hand {
	var normalized Hand
	if h.IsZero() {
		return normalized
	}

	wrist := h[Wrist]
	for i := 0; i < HandPoints; i++ {
		normalized[i] = Point3D{
			X: h[i].X - wrist.X,
			Y: h[i].Y - wrist.Y,
			Z: h[i].Z - wrist.Z,
		}
	}

	scale := distance3D(Point3D{}, normalized[MiddleMCP])

	// Avoid division by zero
	if scale < 1e-10 {
		return normalized
	}

	for i := 0; i < HandPoints; i++ {
		normalized[i].X /= scale
		normalized[i].Y /= scale
		normalized[i].Z /= scale
	}

	return normalized
}
