// Package api provides HTTP API handlers for the affect engine.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/abhinaya/internal/affect"
	"github.com/ayusman/abhinaya/internal/expression"
	"github.com/ayusman/abhinaya/internal/session"
)

// StateSource is the slice of the session the state handlers need.
type StateSource interface {
	Current() (session.State, bool)
	CurrentLabel() affect.Label
	Reset()
}

// StateHandler serves the current emotional state and handles resets.
type StateHandler struct {
	session StateSource
}

// NewStateHandler creates a new StateHandler over the given session.
func NewStateHandler(s StateSource) *StateHandler {
	return &StateHandler{session: s}
}

type stateResponse struct {
	Active bool           `json:"active"`
	Label  affect.Label   `json:"label"`
	State  *session.State `json:"state,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes state requests.
// Expected paths: /api/state and /api/state/reset.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/state")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.get(w, r)
	case "reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reset(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// get handles GET /api/state.
func (h *StateHandler) get(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{Label: h.session.CurrentLabel()}

	if state, ok := h.session.Current(); ok {
		resp.Active = true
		resp.State = &state
	}

	writeJSON(w, http.StatusOK, resp)
}

// reset handles POST /api/state/reset.
func (h *StateHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// ExpressionHandler serves the expression command for the current state.
type ExpressionHandler struct {
	session StateSource
}

// NewExpressionHandler creates a new ExpressionHandler over the given
// session.
func NewExpressionHandler(s StateSource) *ExpressionHandler {
	return &ExpressionHandler{session: s}
}

// ServeHTTP handles GET /api/expression. Before the first observation the
// command derives from the resting state.
func (h *ExpressionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v := affect.Resting()
	if state, ok := h.session.Current(); ok {
		v = state.Vector
	}

	writeJSON(w, http.StatusOK, expression.Derive(v))
}
