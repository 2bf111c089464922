// Package perception converts modality-specific model output into affect
// percepts. Adapters are pure: no state, no side effects, deterministic
// for a fixed input.
package perception

import (
	"time"

	"github.com/ayusman/abhinaya/internal/affect"
)

// FaceAdapter maps per-frame facial expression scores onto VAD space.
type FaceAdapter struct {
	emotions affect.Table
}

// NewFaceAdapter creates a FaceAdapter using the given emotion reference
// table (typically affect.EmotionTable(), possibly with personality
// overrides applied).
func NewFaceAdapter(emotions affect.Table) *FaceAdapter {
	return &FaceAdapter{emotions: emotions}
}

// Adapt converts a map of expression scores into a face percept. Multiple
// expressions may co-occur, so the scores need not sum to 1; the vector is
// the score-weighted blend of the reference table and the confidence is
// the strongest individual score, reflecting how decisively one expression
// stood out.
//
// An unknown score label or an all-zero score map propagates the table
// error: both indicate a misbehaving perception source or a configuration
// bug, not a transient condition.
func (a *FaceAdapter) Adapt(scores map[affect.Label]float64, ts time.Time) (affect.Percept, error) {
	blended, err := a.emotions.Blend(scores)
	if err != nil {
		return affect.Percept{}, err
	}

	var confidence float64
	for _, score := range scores {
		if score > confidence {
			confidence = score
		}
	}

	return affect.NewPercept(affect.SourceFace, blended, confidence, ts), nil
}
