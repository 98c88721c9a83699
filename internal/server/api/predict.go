package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ayusman/mudra/internal/predict"
)

// Predictor turns a batch of landmark frames into a single label.
type Predictor interface {
	Predict(ctx context.Context, frames [][]float64) (string, error)
}

// DefaultMaxBodyBytes bounds a prediction request body when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

type predictRequest struct {
	Landmarks [][]float64 `json:"landmarks"`
}

type predictResponse struct {
	Prediction string `json:"prediction"`
}

// Result is the outcome of one prediction request. Exactly one of Prediction
// and Error is set.
type Result struct {
	Status     int    `json:"status"`
	Prediction string `json:"prediction,omitempty"`
	Error      string `json:"error,omitempty"`
}

// PredictHandler serves POST /predict.
type PredictHandler struct {
	predictor    Predictor
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewPredictHandler creates a PredictHandler. A non-positive maxBodyBytes
// selects DefaultMaxBodyBytes; a nil logger selects slog.Default().
func NewPredictHandler(p Predictor, maxBodyBytes int64, logger *slog.Logger) *PredictHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictHandler{
		predictor:    p,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// MaxBodyBytes returns the request body limit.
func (h *PredictHandler) MaxBodyBytes() int64 {
	return h.maxBodyBytes
}

// ServeHTTP implements the http.Handler interface.
func (h *PredictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	res := h.Evaluate(r.Context(), http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if res.Error != "" {
		WriteError(w, res.Status, res.Error)
		return
	}
	WriteJSON(w, res.Status, predictResponse{Prediction: res.Prediction})
}

// EvaluateMessage runs a prediction on an in-memory request body.
func (h *PredictHandler) EvaluateMessage(ctx context.Context, msg []byte) Result {
	return h.Evaluate(ctx, bytes.NewReader(msg))
}

// Evaluate decodes a request body and runs a prediction on it. Errors are
// reported in the Result, never returned.
func (h *PredictHandler) Evaluate(ctx context.Context, body io.Reader) Result {
	req, err := decodeRequest(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return h.fail(ctx, &predict.ValidationError{
				Reason:  predict.ReasonMalformed,
				Message: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
				Frame:   -1,
			})
		}
		return h.fail(ctx, predict.Malformed(err))
	}

	label, err := h.predictor.Predict(ctx, req.Landmarks)
	if err != nil {
		return h.fail(ctx, err)
	}

	return Result{Status: http.StatusOK, Prediction: label}
}

// decodeRequest decodes exactly one JSON value; anything but whitespace after
// it is an error.
func decodeRequest(body io.Reader) (predictRequest, error) {
	var req predictRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return req, err
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return req, nil
	case err != nil:
		return req, err
	default:
		return req, errors.New("unexpected data after JSON value")
	}
}

func (h *PredictHandler) fail(ctx context.Context, err error) Result {
	var verr *predict.ValidationError
	if errors.As(err, &verr) {
		h.logger.DebugContext(ctx, "Rejected prediction request", "reason", verr.Reason, "frame", verr.Frame)
		return Result{Status: http.StatusBadRequest, Error: verr.Message}
	}

	h.logger.ErrorContext(ctx, "Prediction failed", "error", err)
	return Result{Status: http.StatusInternalServerError, Error: err.Error()}
}
