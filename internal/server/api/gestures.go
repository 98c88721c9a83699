// Package api provides HTTP API handlers for the mudra prediction gateway.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// GestureHandler serves the read-only listing of the loaded template model.
type GestureHandler struct {
	store *store.Store
}

// NewGestureHandler creates a new GestureHandler with the given store.
func NewGestureHandler(s *store.Store) *GestureHandler {
	return &GestureHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Expected paths: /api/gestures or /api/gestures/{name}
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, path)
}

type gestureResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Tolerance float64 `json:"tolerance"`
	Samples   int     `json:"samples"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Gesture to a gestureResponse.
func toResponse(g *store.Gesture) gestureResponse {
	return gestureResponse{
		ID:        g.ID,
		Name:      g.Name,
		Tolerance: g.Tolerance,
		Samples:   g.Samples,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	gestures, err := h.store.Gestures().List()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list gestures")
		return
	}

	response := listGesturesResponse{
		Gestures: make([]gestureResponse, 0, len(gestures)),
	}
	for _, g := range gestures {
		response.Gestures = append(response.Gestures, toResponse(g))
	}

	WriteJSON(w, http.StatusOK, response)
}

// get handles GET /api/gestures/{name}.
func (h *GestureHandler) get(w http.ResponseWriter, r *http.Request, name string) {
	gesture, err := h.store.Gestures().GetByName(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Gesture not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to get gesture")
		return
	}

	WriteJSON(w, http.StatusOK, toResponse(gesture))
}
