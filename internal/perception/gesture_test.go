package perception

import (
	"testing"
	"time"

	"github.com/ayusman/abhinaya/internal/affect"
)

func TestGestureAdapter_KnownGesture(t *testing.T) {
	adapter := NewGestureAdapter(affect.GestureTable())
	now := time.Now()

	p := adapter.Adapt(affect.ThumbsUp, 0.87, now)

	want, _ := affect.GestureTable().Vector(affect.ThumbsUp)
	if p.Vector != want {
		t.Errorf("vector = %+v, want %+v", p.Vector, want)
	}
	if p.Confidence != 0.87 {
		t.Errorf("confidence = %v, want pass-through 0.87", p.Confidence)
	}
	if p.Source != affect.SourceGesture {
		t.Errorf("source = %s, want gesture", p.Source)
	}
}

func TestGestureAdapter_UnknownGestureMapsToNone(t *testing.T) {
	adapter := NewGestureAdapter(affect.GestureTable())

	p := adapter.Adapt("jazz-hands", 0.99, time.Now())

	none, _ := affect.GestureTable().Vector(affect.NoGesture)
	if p.Vector != none {
		t.Errorf("vector = %+v, want the none vector %+v", p.Vector, none)
	}
	if p.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 for unknown gesture", p.Confidence)
	}
}

func TestGestureAdapter_EmptyLabelMapsToNone(t *testing.T) {
	adapter := NewGestureAdapter(affect.GestureTable())

	p := adapter.Adapt("", 0.5, time.Now())
	if p.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 for absent gesture", p.Confidence)
	}
}

func TestGestureAdapter_ConfidenceClamped(t *testing.T) {
	adapter := NewGestureAdapter(affect.GestureTable())

	p := adapter.Adapt(affect.Victory, 1.7, time.Now())
	if p.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", p.Confidence)
	}
}
