package landmark

// Preset poses in normalized image coordinates. They stand in for real
// extractor output in tests and in the bundled demo model.

// ThumbsUpHand returns a right hand with the thumb extended upward and the
// other fingers curled.
func ThumbsUpHand() Hand {
	var h Hand

	h[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (Y decreases going up)
	h[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	h[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	h[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	h[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	h[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	h[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	h[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	h[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	h[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	h[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	h[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	h[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	h[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	h[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	h[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	h[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	h[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	h[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	h[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return h
}

// OpenPalmHand returns a right hand with all fingers extended.
func OpenPalmHand() Hand {
	var h Hand

	h[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	h[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	h[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	h[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	h[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	h[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	h[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	h[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	h[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	h[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	h[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	h[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	h[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	h[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return h
}

// ThumbsUpSet returns a set with a thumbs up first hand and no second hand.
func ThumbsUpSet() Set {
	return SetFromHands(ThumbsUpHand(), Hand{})
}

// OpenPalmSet returns a set with an open palm first hand and no second hand.
func OpenPalmSet() Set {
	return SetFromHands(OpenPalmHand(), Hand{})
}
