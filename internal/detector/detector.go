// Package detector wraps the external perception models behind typed
// interfaces. The models themselves (facial expression scoring, hand
// gesture classification) run outside this process; this package only
// ships frames to them and converts their raw output into observations.
package detector

import "gocv.io/x/gocv"

// Box is a detection bounding box in pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FaceObservation is the raw output of the facial expression model for one
// detected face: a score per expression category plus optional blendshape
// coefficients for visualization.
type FaceObservation struct {
	// Scores maps expression category names (happy, sad, ...) to weights
	// in [0,1]. Multiple expressions may score simultaneously.
	Scores map[string]float64 `json:"scores"`

	// Blendshapes holds facial blendshape coefficients when the model
	// provides them. May be nil.
	Blendshapes map[string]float64 `json:"blendshapes,omitempty"`

	Box Box `json:"box"`
}

// Dominant returns the highest-scoring expression category and its score.
// Returns "" and 0 when no scores are present.
func (o FaceObservation) Dominant() (string, float64) {
	var label string
	var best float64
	for name, score := range o.Scores {
		if label == "" || score > best {
			label = name
			best = score
		}
	}
	return label, best
}

// GestureObservation is the raw output of the gesture classifier for one
// detected hand.
type GestureObservation struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Handedness string  `json:"handedness"`
}

// FaceDetector produces facial expression observations from video frames.
type FaceDetector interface {
	// DetectFace analyzes a frame and returns the primary face's expression
	// scores. ok is false when no face meets the confidence floor.
	DetectFace(frame *gocv.Mat) (obs FaceObservation, ok bool, err error)

	// Close releases any resources held by the detector.
	Close() error
}

// GestureDetector produces hand gesture observations from video frames.
type GestureDetector interface {
	// DetectGesture analyzes a frame and returns the primary hand's gesture
	// classification. ok is false when no hand meets the confidence floor.
	DetectGesture(frame *gocv.Mat) (obs GestureObservation, ok bool, err error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for the perception models.
type Config struct {
	// MinFaceConfidence is the minimum dominant expression score for a
	// face observation to be reported (0.0-1.0).
	MinFaceConfidence float64

	// MinGestureConfidence is the minimum classifier confidence for a
	// gesture observation to be reported (0.0-1.0).
	MinGestureConfidence float64

	// MaxFaces is the maximum number of faces the model should track.
	MaxFaces int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinFaceConfidence:    0.3,
		MinGestureConfidence: 0.5,
		MaxFaces:             1,
	}
}
