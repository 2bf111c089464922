// Package affect implements the VAD affect model used by the Abhinaya
// perception pipeline: the three-dimensional affect vector, the discrete
// label reference tables, multi-source fusion, and temporal smoothing.
package affect

import "math"

// Axis ranges for the VAD model. Valence and dominance are signed,
// arousal is not.
const (
	MinValence   = -1.0
	MaxValence   = 1.0
	MinArousal   = 0.0
	MaxArousal   = 1.0
	MinDominance = -1.0
	MaxDominance = 1.0
)

// Vector is a point in VAD space: valence (negative to positive),
// arousal (calm to activated) and dominance (passive to controlling).
// It is an immutable value type; operations return a new Vector.
type Vector struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// New constructs a Vector, clamping each component into its legal range.
// Out-of-range inputs are clamped rather than rejected: perception sources
// routinely emit slightly out-of-range scores.
func New(valence, arousal, dominance float64) Vector {
	return Vector{
		Valence:   clamp(valence, MinValence, MaxValence),
		Arousal:   clamp(arousal, MinArousal, MaxArousal),
		Dominance: clamp(dominance, MinDominance, MaxDominance),
	}
}

// Resting returns the neutral resting-state vector.
func Resting() Vector {
	return New(0, 0.4, 0)
}

// DistanceTo returns the Euclidean distance between the two vectors.
// The result is unnormalized: given the axis spans it ranges from 0 to
// roughly 3.46.
func (v Vector) DistanceTo(other Vector) float64 {
	dv := v.Valence - other.Valence
	da := v.Arousal - other.Arousal
	dd := v.Dominance - other.Dominance
	return math.Sqrt(dv*dv + da*da + dd*dd)
}

// Interpolate moves component-wise from v toward target by factor t:
// v + (target-v)*t. t is not clamped, so t=0 returns v, t=1 returns target,
// and values outside [0,1] extrapolate linearly. The result is clamped back
// into the legal VAD ranges, as every constructed vector is.
func (v Vector) Interpolate(target Vector, t float64) Vector {
	return New(
		v.Valence+(target.Valence-v.Valence)*t,
		v.Arousal+(target.Arousal-v.Arousal)*t,
		v.Dominance+(target.Dominance-v.Dominance)*t,
	)
}

// Intensity returns the overall affect magnitude, the vector norm divided
// by sqrt(3). The value is nominally in [0,1] but can slightly exceed 1.0
// at extreme corners (valence and dominance span two units each); it is
// deliberately not re-clamped.
func (v Vector) Intensity() float64 {
	return math.Sqrt(v.Valence*v.Valence+v.Arousal*v.Arousal+v.Dominance*v.Dominance) / math.Sqrt(3)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
