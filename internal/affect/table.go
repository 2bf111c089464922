package affect

import (
	"errors"
	"fmt"
)

// Label is a discrete emotion or gesture category name.
type Label string

// Canonical emotion labels. The first seven match the categories produced
// by facial expression recognition models.
const (
	Neutral  Label = "neutral"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Surprise Label = "surprise"
	Disgust  Label = "disgust"
	Excited  Label = "excited"
	Calm     Label = "calm"
	Anxious  Label = "anxious"
)

// Canonical gesture labels, following the MediaPipe gesture recognizer
// categories.
const (
	ThumbsUp   Label = "thumbs-up"
	ThumbsDown Label = "thumbs-down"
	Victory    Label = "victory"
	OpenPalm   Label = "open-palm"
	ClosedFist Label = "closed-fist"
	PointingUp Label = "pointing-up"
	Love       Label = "love"
	NoGesture  Label = "none"
)

// ErrZeroWeight is returned by Blend when the supplied weights sum to zero.
var ErrZeroWeight = errors.New("total blend weight is zero")

// UnknownLabelError is returned when a label is looked up in a table that
// does not contain it. It indicates a caller or configuration bug and is
// never recovered locally.
type UnknownLabelError struct {
	Label Label
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown affect label %q", e.Label)
}

// Entry associates a label with its reference vector.
type Entry struct {
	Label  Label
	Vector Vector
}

// Table is an ordered, immutable mapping from discrete labels to reference
// vectors. Order matters: Nearest breaks ties by table order, so a fixed
// entry ordering makes classification deterministic.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from the given entries. Entry vectors are passed
// through New so the range invariant holds even for hand-written overrides.
func NewTable(entries []Entry) Table {
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		copied[i] = Entry{Label: e.Label, Vector: New(e.Vector.Valence, e.Vector.Arousal, e.Vector.Dominance)}
	}
	return Table{entries: copied}
}

// EmotionTable returns the default emotion reference table, based on the
// circumplex model positions of the seven canonical expression categories
// plus three extended mood labels.
func EmotionTable() Table {
	return NewTable([]Entry{
		{Neutral, New(0.0, 0.4, 0.0)},
		{Happy, New(0.8, 0.7, 0.5)},
		{Sad, New(-0.7, 0.3, -0.3)},
		{Angry, New(-0.8, 0.9, 0.7)},
		{Fear, New(-0.6, 0.8, -0.5)},
		{Surprise, New(0.4, 0.9, -0.2)},
		{Disgust, New(-0.6, 0.5, 0.2)},
		{Excited, New(0.7, 0.9, 0.4)},
		{Calm, New(0.4, 0.2, 0.1)},
		{Anxious, New(-0.5, 0.7, -0.4)},
	})
}

// GestureTable returns the default gesture reference table. It is kept
// separate from the emotion table: gestures come from a different semantic
// source and are never used for emotion classification.
func GestureTable() Table {
	return NewTable([]Entry{
		{NoGesture, New(0.0, 0.4, 0.0)},
		{ThumbsUp, New(0.8, 0.5, 0.4)},
		{ThumbsDown, New(-0.7, 0.5, 0.3)},
		{Victory, New(0.7, 0.6, 0.3)},
		{OpenPalm, New(0.1, 0.3, -0.1)},
		{ClosedFist, New(-0.3, 0.7, 0.5)},
		{PointingUp, New(0.1, 0.5, 0.2)},
		{Love, New(0.9, 0.6, 0.2)},
	})
}

// Vector returns the reference vector for the given label, or an
// UnknownLabelError if the table has no entry for it.
func (t Table) Vector(label Label) (Vector, error) {
	for _, e := range t.entries {
		if e.Label == label {
			return e.Vector, nil
		}
	}
	return Vector{}, &UnknownLabelError{Label: label}
}

// Len returns the number of entries in the table.
func (t Table) Len() int {
	return len(t.entries)
}

// Contains reports whether the table has an entry for the given label.
func (t Table) Contains(label Label) bool {
	_, err := t.Vector(label)
	return err == nil
}

// Nearest classifies a vector to the label of the closest reference entry.
// Ties are broken by table order: the first minimum wins.
func (t Table) Nearest(v Vector) Label {
	best := Label("")
	bestDist := 0.0
	for i, e := range t.entries {
		d := v.DistanceTo(e.Vector)
		if i == 0 || d < bestDist {
			best = e.Label
			bestDist = d
		}
	}
	return best
}

// Blend computes the weighted average of the reference vectors for the
// given label weights. Weights must be non-negative but need not sum to 1;
// they are normalized by their total. A zero total yields ErrZeroWeight,
// an unknown label an UnknownLabelError.
func (t Table) Blend(weights map[Label]float64) (Vector, error) {
	var total float64
	for label, w := range weights {
		if !t.Contains(label) {
			return Vector{}, &UnknownLabelError{Label: label}
		}
		total += w
	}
	if total == 0 {
		return Vector{}, ErrZeroWeight
	}

	var v, a, d float64
	for label, w := range weights {
		ref, err := t.Vector(label)
		if err != nil {
			return Vector{}, err
		}
		v += ref.Valence * w / total
		a += ref.Arousal * w / total
		d += ref.Dominance * w / total
	}
	return New(v, a, d), nil
}

// Labels returns the table's labels in entry order.
func (t Table) Labels() []Label {
	labels := make([]Label, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}

// Override returns a copy of the table with the given label's reference
// vector replaced. Unknown labels yield an UnknownLabelError rather than
// silently extending the table.
func (t Table) Override(label Label, v Vector) (Table, error) {
	if !t.Contains(label) {
		return Table{}, &UnknownLabelError{Label: label}
	}
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	for i := range entries {
		if entries[i].Label == label {
			entries[i].Vector = New(v.Valence, v.Arousal, v.Dominance)
		}
	}
	return Table{entries: entries}, nil
}
