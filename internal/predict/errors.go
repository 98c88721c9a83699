package predict

import "fmt"

// Validation messages returned to callers.
const (
	MsgWrongFrameCount = "Expected 30 frames of landmarks"
	MsgWrongValueCount = "Each frame must have 126 values"
)

// Reason classifies a validation failure.
type Reason string

// Validation failure reasons.
const (
	ReasonFrameCount Reason = "wrong frame count"
	ReasonValueCount Reason = "wrong value count"
	ReasonMalformed  Reason = "malformed request"
)

// ValidationError reports a request whose shape is wrong. It is the caller's
// fault and is never retried.
type ValidationError struct {
	Reason  Reason
	Message string
	// Frame is the offending frame index for ReasonValueCount, otherwise -1.
	Frame int
}

func (e *ValidationError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("%s (frame %d): %s", e.Reason, e.Frame, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Malformed returns a ValidationError for a body that could not be decoded.
func Malformed(err error) *ValidationError {
	return &ValidationError{
		Reason:  ReasonMalformed,
		Message: "Invalid JSON: " + err.Error(),
		Frame:   -1,
	}
}
