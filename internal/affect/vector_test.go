package affect

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func vectorsAlmostEqual(a, b Vector) bool {
	return almostEqual(a.Valence, b.Valence) &&
		almostEqual(a.Arousal, b.Arousal) &&
		almostEqual(a.Dominance, b.Dominance)
}

func TestNew_ClampsComponents(t *testing.T) {
	tests := []struct {
		name    string
		v, a, d float64
		want    Vector
	}{
		{"in range", 0.5, 0.5, -0.5, Vector{0.5, 0.5, -0.5}},
		{"valence too high", 2.0, 0.5, 0.0, Vector{1.0, 0.5, 0.0}},
		{"valence too low", -3.0, 0.5, 0.0, Vector{-1.0, 0.5, 0.0}},
		{"arousal negative", 0.0, -0.2, 0.0, Vector{0.0, 0.0, 0.0}},
		{"arousal too high", 0.0, 1.7, 0.0, Vector{0.0, 1.0, 0.0}},
		{"dominance too high", 0.0, 0.5, 1.5, Vector{0.0, 0.5, 1.0}},
		{"dominance too low", 0.0, 0.5, -9.0, Vector{0.0, 0.5, -1.0}},
		{"boundary values", 1.0, 1.0, -1.0, Vector{1.0, 1.0, -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.v, tt.a, tt.d)
			if got != tt.want {
				t.Errorf("New(%v, %v, %v) = %+v, want %+v", tt.v, tt.a, tt.d, got, tt.want)
			}
		})
	}
}

func TestDistanceTo_Symmetric(t *testing.T) {
	a := New(0.8, 0.7, 0.5)
	b := New(-0.7, 0.3, -0.4)

	if d := a.DistanceTo(a); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}

	ab := a.DistanceTo(b)
	ba := b.DistanceTo(a)
	if ab != ba {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
	if ab == 0 {
		t.Error("distance between distinct vectors should be nonzero")
	}

	// Hand-computed: sqrt(1.5^2 + 0.4^2 + 0.9^2)
	want := math.Sqrt(1.5*1.5 + 0.4*0.4 + 0.9*0.9)
	if !almostEqual(ab, want) {
		t.Errorf("distance = %v, want %v", ab, want)
	}
}

func TestDistanceTo_TriangleInequality(t *testing.T) {
	a := New(0.8, 0.7, 0.5)
	b := New(-0.7, 0.3, -0.3)
	c := New(0.0, 0.4, 0.0)

	if a.DistanceTo(b) > a.DistanceTo(c)+c.DistanceTo(b)+epsilon {
		t.Error("triangle inequality violated")
	}
}

func TestInterpolate_Endpoints(t *testing.T) {
	start := New(-0.5, 0.2, 0.3)
	target := New(0.75, 0.9, -0.25)

	if got := start.Interpolate(target, 0); got != start {
		t.Errorf("Interpolate(target, 0) = %+v, want start %+v", got, start)
	}
	if got := start.Interpolate(target, 1); !vectorsAlmostEqual(got, target) {
		t.Errorf("Interpolate(target, 1) = %+v, want target %+v", got, target)
	}
}

func TestInterpolate_Midpoint(t *testing.T) {
	start := New(0.0, 0.0, 0.0)
	target := New(1.0, 1.0, 1.0)

	got := start.Interpolate(target, 0.5)
	want := Vector{0.5, 0.5, 0.5}
	if !vectorsAlmostEqual(got, want) {
		t.Errorf("midpoint = %+v, want %+v", got, want)
	}
}

func TestInterpolate_ExtrapolatesUnclampedT(t *testing.T) {
	start := New(0.0, 0.4, 0.0)
	target := New(0.2, 0.5, 0.1)

	// t=2 overshoots past the target; t is not clamped.
	got := start.Interpolate(target, 2)
	want := Vector{0.4, 0.6, 0.2}
	if !vectorsAlmostEqual(got, want) {
		t.Errorf("Interpolate(target, 2) = %+v, want %+v", got, want)
	}

	// Extreme extrapolation still lands inside the legal VAD box.
	far := start.Interpolate(target, 100)
	if far.Valence > MaxValence || far.Arousal > MaxArousal || far.Dominance > MaxDominance {
		t.Errorf("extrapolated vector escaped the legal range: %+v", far)
	}

	// Negative t extrapolates backwards.
	back := start.Interpolate(target, -1)
	wantBack := Vector{-0.2, 0.3, -0.1}
	if !vectorsAlmostEqual(back, wantBack) {
		t.Errorf("Interpolate(target, -1) = %+v, want %+v", back, wantBack)
	}
}

func TestIntensity(t *testing.T) {
	if got := New(0, 0, 0).Intensity(); got != 0 {
		t.Errorf("intensity of zero vector = %v, want 0", got)
	}

	if got := New(1, 1, 1).Intensity(); !almostEqual(got, 1.0) {
		t.Errorf("intensity of unit corner = %v, want 1.0", got)
	}

	// The extreme corner (-1, 1, -1) has magnitude sqrt(3) as well; corners
	// with negative valence/dominance may not exceed sqrt(3) but the measure
	// is allowed to slightly exceed 1.0 and must not be re-clamped.
	got := New(-1, 1, -1).Intensity()
	if !almostEqual(got, 1.0) {
		t.Errorf("intensity of extreme corner = %v, want 1.0", got)
	}

	// Monotonic in magnitude.
	lo := New(0.1, 0.1, 0.1).Intensity()
	hi := New(0.9, 0.9, 0.9).Intensity()
	if lo >= hi {
		t.Errorf("intensity not monotonic: %v >= %v", lo, hi)
	}
}
