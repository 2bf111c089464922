package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/abhinaya/internal/store"
)

// DetectionsHandler handles HTTP requests for the detection history.
type DetectionsHandler struct {
	store *store.Store
}

// NewDetectionsHandler creates a new DetectionsHandler with the given store.
func NewDetectionsHandler(s *store.Store) *DetectionsHandler {
	return &DetectionsHandler{store: s}
}

type detectionResponse struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Valence    float64         `json:"valence"`
	Arousal    float64         `json:"arousal"`
	Dominance  float64         `json:"dominance"`
	DetectedAt string          `json:"detected_at"`
	Scores     []scoreResponse `json:"scores,omitempty"`
}

type scoreResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type listDetectionsResponse struct {
	Detections []detectionResponse `json:"detections"`
}

// toDetectionResponse converts a store.Detection to its API shape.
func toDetectionResponse(d *store.Detection) detectionResponse {
	resp := detectionResponse{
		ID:         d.ID,
		Source:     d.Source,
		Label:      d.Label,
		Confidence: d.Confidence,
		Valence:    d.Valence,
		Arousal:    d.Arousal,
		Dominance:  d.Dominance,
		DetectedAt: d.DetectedAt.Format(time.RFC3339),
	}
	for _, s := range d.Scores {
		resp.Scores = append(resp.Scores, scoreResponse{Label: s.Label, Score: s.Score})
	}
	return resp
}

// ServeHTTP routes detection requests.
// Expected paths: /api/detections, /api/detections/stats,
// /api/detections/{id}.
func (h *DetectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/detections")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		h.list(w, r)
	case "stats":
		h.stats(w, r)
	default:
		h.get(w, r, path)
	}
}

// list handles GET /api/detections?limit=N.
func (h *DetectionsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	detections, err := h.store.Detections().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list detections")
		return
	}

	response := listDetectionsResponse{
		Detections: make([]detectionResponse, 0, len(detections)),
	}
	for _, d := range detections {
		response.Detections = append(response.Detections, toDetectionResponse(d))
	}

	writeJSON(w, http.StatusOK, response)
}

// stats handles GET /api/detections/stats.
func (h *DetectionsHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Detections().Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":          stats.Total,
		"by_label":       stats.ByLabel,
		"by_source":      stats.BySource,
		"avg_confidence": stats.AvgConfidence,
		"avg_valence":    stats.AvgValence,
		"avg_arousal":    stats.AvgArousal,
		"avg_dominance":  stats.AvgDominance,
	})
}

// get handles GET /api/detections/{id}.
func (h *DetectionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	detection, err := h.store.Detections().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Detection not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get detection")
		return
	}

	writeJSON(w, http.StatusOK, toDetectionResponse(detection))
}
