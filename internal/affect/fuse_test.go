package affect

import (
	"testing"
	"time"
)

func TestFuse_NoPercepts(t *testing.T) {
	_, _, ok := Fuse(nil)
	if ok {
		t.Error("Fuse(nil) should report no candidate")
	}

	_, _, ok = Fuse([]Percept{})
	if ok {
		t.Error("Fuse of empty slice should report no candidate")
	}
}

func TestFuse_SinglePercept(t *testing.T) {
	p := NewPercept(SourceFace, New(0.8, 0.7, 0.5), 0.9, time.Now())

	fused, conf, ok := Fuse([]Percept{p})
	if !ok {
		t.Fatal("expected a candidate from a single percept")
	}
	if fused != p.Vector {
		t.Errorf("fused = %+v, want %+v", fused, p.Vector)
	}
	if conf != 0.9 {
		t.Errorf("confidence = %v, want 0.9", conf)
	}
}

func TestFuse_EqualConfidenceMidpoint(t *testing.T) {
	now := time.Now()
	a := NewPercept(SourceFace, New(0.8, 0.7, 0.5), 0.5, now)
	b := NewPercept(SourceGesture, New(-0.7, 0.5, 0.3), 0.5, now)

	fused, _, ok := Fuse([]Percept{a, b})
	if !ok {
		t.Fatal("expected a fused candidate")
	}

	want := New(
		(a.Vector.Valence+b.Vector.Valence)/2,
		(a.Vector.Arousal+b.Vector.Arousal)/2,
		(a.Vector.Dominance+b.Vector.Dominance)/2,
	)
	if !vectorsAlmostEqual(fused, want) {
		t.Errorf("fused = %+v, want midpoint %+v", fused, want)
	}
}

func TestFuse_FullConfidenceWins(t *testing.T) {
	now := time.Now()
	a := NewPercept(SourceFace, New(0.8, 0.7, 0.5), 1.0, now)
	b := NewPercept(SourceGesture, New(-0.7, 0.5, 0.3), 0.0, now)

	fused, conf, ok := Fuse([]Percept{a, b})
	if !ok {
		t.Fatal("expected a fused candidate")
	}
	if fused != a.Vector {
		t.Errorf("fused = %+v, want the fully confident source %+v", fused, a.Vector)
	}
	if conf != 1.0 {
		t.Errorf("confidence = %v, want 1.0", conf)
	}
}

func TestFuse_ZeroConfidenceFallsBackToEqualWeight(t *testing.T) {
	now := time.Now()
	a := NewPercept(SourceFace, New(1.0, 1.0, 1.0), 0, now)
	b := NewPercept(SourceGesture, New(0.0, 0.0, 0.0), 0, now)

	fused, conf, ok := Fuse([]Percept{a, b})
	if !ok {
		t.Fatal("zero-confidence percepts should still fuse")
	}

	want := Vector{0.5, 0.5, 0.5}
	if !vectorsAlmostEqual(fused, want) {
		t.Errorf("fused = %+v, want equal-weight midpoint %+v", fused, want)
	}
	if conf != 0 {
		t.Errorf("confidence = %v, want 0", conf)
	}
}

func TestFuse_WeightedTowardConfidentSource(t *testing.T) {
	now := time.Now()
	a := NewPercept(SourceFace, New(1.0, 1.0, 1.0), 0.75, now)
	b := NewPercept(SourceGesture, New(0.0, 0.0, 0.0), 0.25, now)

	fused, conf, ok := Fuse([]Percept{a, b})
	if !ok {
		t.Fatal("expected a fused candidate")
	}

	want := Vector{0.75, 0.75, 0.75}
	if !vectorsAlmostEqual(fused, want) {
		t.Errorf("fused = %+v, want %+v", fused, want)
	}
	if conf != 0.75 {
		t.Errorf("fused confidence = %v, want max source confidence 0.75", conf)
	}
}
