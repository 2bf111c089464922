package affect

import (
	"errors"
	"testing"
)

func TestEmotionTable_Vector(t *testing.T) {
	table := EmotionTable()

	got, err := table.Vector(Happy)
	if err != nil {
		t.Fatalf("Vector(happy) error = %v", err)
	}
	want := Vector{0.8, 0.7, 0.5}
	if got != want {
		t.Errorf("Vector(happy) = %+v, want %+v", got, want)
	}
}

func TestTable_Vector_UnknownLabel(t *testing.T) {
	table := EmotionTable()

	_, err := table.Vector("bored")
	if err == nil {
		t.Fatal("expected error for unknown label")
	}

	var unknownErr *UnknownLabelError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error type = %T, want *UnknownLabelError", err)
	}
	if unknownErr.Label != "bored" {
		t.Errorf("error label = %q, want %q", unknownErr.Label, "bored")
	}
}

func TestTable_Nearest_RoundTrip(t *testing.T) {
	// Every reference vector must classify back to its own label.
	for _, table := range []Table{EmotionTable(), GestureTable()} {
		for _, label := range table.Labels() {
			ref, err := table.Vector(label)
			if err != nil {
				t.Fatalf("Vector(%s) error = %v", label, err)
			}
			if got := table.Nearest(ref); got != label {
				t.Errorf("Nearest(Vector(%s)) = %s, want %s", label, got, label)
			}
		}
	}
}

func TestTable_Nearest_TieBreaksByOrder(t *testing.T) {
	// Two entries at the same position: the first one in table order wins.
	table := NewTable([]Entry{
		{"first", New(0.5, 0.5, 0.5)},
		{"second", New(0.5, 0.5, 0.5)},
	})

	if got := table.Nearest(New(0.5, 0.5, 0.5)); got != "first" {
		t.Errorf("Nearest on tie = %s, want first", got)
	}
}

func TestTable_Nearest_OffsetVector(t *testing.T) {
	table := EmotionTable()

	// A vector near the happy reference should classify as happy.
	near := New(0.75, 0.65, 0.45)
	if got := table.Nearest(near); got != Happy {
		t.Errorf("Nearest(%+v) = %s, want happy", near, got)
	}
}

func TestTable_Blend_SingleLabel(t *testing.T) {
	table := EmotionTable()

	got, err := table.Blend(map[Label]float64{Happy: 1.0})
	if err != nil {
		t.Fatalf("Blend error = %v", err)
	}
	want, _ := table.Vector(Happy)
	if got != want {
		t.Errorf("Blend({happy: 1.0}) = %+v, want %+v", got, want)
	}
}

func TestTable_Blend_Midpoint(t *testing.T) {
	table := EmotionTable()

	got, err := table.Blend(map[Label]float64{Happy: 0.5, Sad: 0.5})
	if err != nil {
		t.Fatalf("Blend error = %v", err)
	}

	happy, _ := table.Vector(Happy)
	sad, _ := table.Vector(Sad)
	want := New(
		(happy.Valence+sad.Valence)/2,
		(happy.Arousal+sad.Arousal)/2,
		(happy.Dominance+sad.Dominance)/2,
	)
	if !vectorsAlmostEqual(got, want) {
		t.Errorf("Blend(happy/sad midpoint) = %+v, want %+v", got, want)
	}
}

func TestTable_Blend_WeightsNeedNotSumToOne(t *testing.T) {
	table := EmotionTable()

	// Doubling every weight must not change the result.
	a, err := table.Blend(map[Label]float64{Happy: 0.3, Surprise: 0.1})
	if err != nil {
		t.Fatalf("Blend error = %v", err)
	}
	b, err := table.Blend(map[Label]float64{Happy: 0.6, Surprise: 0.2})
	if err != nil {
		t.Fatalf("Blend error = %v", err)
	}
	if !vectorsAlmostEqual(a, b) {
		t.Errorf("blend not scale invariant: %+v vs %+v", a, b)
	}
}

func TestTable_Blend_ZeroWeight(t *testing.T) {
	table := EmotionTable()

	_, err := table.Blend(map[Label]float64{Happy: 0, Sad: 0})
	if !errors.Is(err, ErrZeroWeight) {
		t.Errorf("error = %v, want ErrZeroWeight", err)
	}

	_, err = table.Blend(map[Label]float64{})
	if !errors.Is(err, ErrZeroWeight) {
		t.Errorf("error for empty weights = %v, want ErrZeroWeight", err)
	}
}

func TestTable_Blend_UnknownLabel(t *testing.T) {
	table := EmotionTable()

	_, err := table.Blend(map[Label]float64{"confused": 1.0})
	var unknownErr *UnknownLabelError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want *UnknownLabelError", err)
	}
}

func TestGestureTable_IndependentFromEmotionTable(t *testing.T) {
	gestures := GestureTable()
	emotions := EmotionTable()

	if _, err := gestures.Vector(ThumbsUp); err != nil {
		t.Errorf("gesture table should contain thumbs-up: %v", err)
	}
	if emotions.Contains(ThumbsUp) {
		t.Error("emotion table should not contain gesture labels")
	}
	if gestures.Contains(Happy) {
		t.Error("gesture table should not contain emotion labels")
	}
}

func TestTable_Override(t *testing.T) {
	table := EmotionTable()

	custom, err := table.Override(Happy, New(0.9, 0.9, 0.9))
	if err != nil {
		t.Fatalf("Override error = %v", err)
	}

	got, _ := custom.Vector(Happy)
	if got != (Vector{0.9, 0.9, 0.9}) {
		t.Errorf("overridden vector = %+v, want {0.9 0.9 0.9}", got)
	}

	// The original table is unchanged.
	orig, _ := table.Vector(Happy)
	if orig != (Vector{0.8, 0.7, 0.5}) {
		t.Errorf("original table mutated: %+v", orig)
	}

	// Overriding an unknown label fails loudly.
	if _, err := table.Override("bored", Resting()); err == nil {
		t.Error("expected error overriding unknown label")
	}
}
