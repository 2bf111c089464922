package detector

import (
	"gocv.io/x/gocv"
)

// MockFaceDetector is a test implementation of the FaceDetector interface.
// It allows tests to control the detection results.
type MockFaceDetector struct {
	obs FaceObservation
	ok  bool
	err error
}

// NewMockFaceDetector creates a new MockFaceDetector instance.
func NewMockFaceDetector() *MockFaceDetector {
	return &MockFaceDetector{}
}

// SetObservation sets the observation that will be returned by DetectFace.
func (m *MockFaceDetector) SetObservation(obs FaceObservation) {
	m.obs = obs
	m.ok = true
}

// SetNoFace makes DetectFace report that no face was found.
func (m *MockFaceDetector) SetNoFace() {
	m.obs = FaceObservation{}
	m.ok = false
}

// SetError sets the error that will be returned by DetectFace.
func (m *MockFaceDetector) SetError(err error) {
	m.err = err
}

// DetectFace returns the pre-configured observation or error.
func (m *MockFaceDetector) DetectFace(frame *gocv.Mat) (FaceObservation, bool, error) {
	if m.err != nil {
		return FaceObservation{}, false, m.err
	}
	return m.obs, m.ok, nil
}

// Close is a no-op for the mock detector.
func (m *MockFaceDetector) Close() error {
	return nil
}

// MockGestureDetector is a test implementation of the GestureDetector
// interface.
type MockGestureDetector struct {
	obs GestureObservation
	ok  bool
	err error
}

// NewMockGestureDetector creates a new MockGestureDetector instance.
func NewMockGestureDetector() *MockGestureDetector {
	return &MockGestureDetector{}
}

// SetObservation sets the observation that will be returned by DetectGesture.
func (m *MockGestureDetector) SetObservation(obs GestureObservation) {
	m.obs = obs
	m.ok = true
}

// SetNoGesture makes DetectGesture report that no hand was found.
func (m *MockGestureDetector) SetNoGesture() {
	m.obs = GestureObservation{}
	m.ok = false
}

// SetError sets the error that will be returned by DetectGesture.
func (m *MockGestureDetector) SetError(err error) {
	m.err = err
}

// DetectGesture returns the pre-configured observation or error.
func (m *MockGestureDetector) DetectGesture(frame *gocv.Mat) (GestureObservation, bool, error) {
	if m.err != nil {
		return GestureObservation{}, false, m.err
	}
	return m.obs, m.ok, nil
}

// Close is a no-op for the mock detector.
func (m *MockGestureDetector) Close() error {
	return nil
}

// HappyFaceObservation returns a preset observation of a clearly happy face.
func HappyFaceObservation() FaceObservation {
	return FaceObservation{
		Scores: map[string]float64{
			"happy":   0.91,
			"neutral": 0.06,
		},
		Box: Box{X: 180, Y: 90, Width: 220, Height: 220},
	}
}

// SadFaceObservation returns a preset observation of a sad face.
func SadFaceObservation() FaceObservation {
	return FaceObservation{
		Scores: map[string]float64{
			"sad":     0.78,
			"neutral": 0.15,
		},
		Box: Box{X: 200, Y: 110, Width: 200, Height: 210},
	}
}

// AmbiguousFaceObservation returns a preset observation where happy and
// surprise score equally, for exercising blend paths.
func AmbiguousFaceObservation() FaceObservation {
	return FaceObservation{
		Scores: map[string]float64{
			"happy":    0.55,
			"surprise": 0.55,
		},
		Box: Box{X: 160, Y: 80, Width: 240, Height: 240},
	}
}

// ThumbsUpObservation returns a preset observation of a thumbs up gesture.
func ThumbsUpObservation() GestureObservation {
	return GestureObservation{
		Label:      "thumbs-up",
		Confidence: 0.95,
		Handedness: "Right",
	}
}

// VictoryObservation returns a preset observation of a victory sign.
func VictoryObservation() GestureObservation {
	return GestureObservation{
		Label:      "victory",
		Confidence: 0.88,
		Handedness: "Left",
	}
}
