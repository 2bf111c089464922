package perception

import (
	"time"

	"github.com/ayusman/abhinaya/internal/affect"
)

// GestureAdapter maps a classified hand gesture onto VAD space.
type GestureAdapter struct {
	gestures affect.Table
}

// NewGestureAdapter creates a GestureAdapter using the given gesture
// reference table.
func NewGestureAdapter(gestures affect.Table) *GestureAdapter {
	return &GestureAdapter{gestures: gestures}
}

// Adapt converts a gesture classification into a gesture percept. Gestures
// are discrete and non-overlapping, so the vector is a direct table lookup
// and the classifier confidence passes through unchanged. An unknown or
// absent gesture maps to the neutral "none" vector with confidence 0
// rather than failing: gesture classifiers emit open-set labels and a
// label this engine does not model is simply no evidence.
func (a *GestureAdapter) Adapt(label affect.Label, confidence float64, ts time.Time) affect.Percept {
	v, err := a.gestures.Vector(label)
	if err != nil {
		none, noneErr := a.gestures.Vector(affect.NoGesture)
		if noneErr != nil {
			// Table without a "none" entry: fall back to the resting state.
			none = affect.Resting()
		}
		return affect.NewPercept(affect.SourceGesture, none, 0, ts)
	}
	return affect.NewPercept(affect.SourceGesture, v, confidence, ts)
}
