package affect

import "time"

// Source identifies the perception modality that produced a percept.
type Source string

const (
	// SourceFace is the facial expression modality.
	SourceFace Source = "face"
	// SourceGesture is the hand gesture modality.
	SourceGesture Source = "gesture"
)

// Percept is one modality's affect observation for a single perception
// tick. Percepts are ephemeral: they are produced by a modality adapter,
// consumed by fusion in the same tick, and never retained by the engine.
type Percept struct {
	Source     Source    `json:"source"`
	Vector     Vector    `json:"vector"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPercept builds a Percept, clamping confidence into [0,1].
func NewPercept(source Source, v Vector, confidence float64, ts time.Time) Percept {
	return Percept{
		Source:     source,
		Vector:     v,
		Confidence: clamp(confidence, 0, 1),
		Timestamp:  ts,
	}
}
