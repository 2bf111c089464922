// Package session orchestrates the affect pipeline: camera frames flow
// through motion gating and the perception models, get fused into a single
// affect candidate, and settle into a smoothed emotional state.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/abhinaya/internal/affect"
	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/perception"
	"github.com/ayusman/abhinaya/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active perception.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching
	// back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the session.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64

	// Alpha is the smoothing factor for the emotional state. Out-of-range
	// values fall back to affect.DefaultAlpha.
	Alpha float64

	// Emotions and Gestures are the reference tables. Zero-value tables
	// fall back to the built-in defaults.
	Emotions affect.Table
	Gestures affect.Table
}

// State is a snapshot of the smoothed emotional state.
type State struct {
	Vector     affect.Vector `json:"vector"`
	Label      affect.Label  `json:"label"`
	Intensity  float64       `json:"intensity"`
	Confidence float64       `json:"confidence"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Updates    uint64        `json:"updates"`
}

// Session runs the perception loop and maintains the emotional state.
type Session struct {
	config          Config
	camera          capture.Camera
	motion          *capture.MotionDetector
	faceDetector    detector.FaceDetector
	gestureDetector detector.GestureDetector
	faceAdapter     *perception.FaceAdapter
	gestureAdapter  *perception.GestureAdapter
	smoother        *affect.Smoother
	emotions        affect.Table

	// OnUpdate, when set, is invoked after every smoothed state change
	// with the new state. Called from the pipeline goroutine.
	OnUpdate func(State)

	enabled    bool
	confidence float64
	updatedAt  time.Time
	lastScores map[affect.Label]float64
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new Session with the given configuration.
func New(config Config) *Session {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	emotions := config.Emotions
	if emotions.Len() == 0 {
		emotions = affect.EmotionTable()
	}
	gestures := config.Gestures
	if gestures.Len() == 0 {
		gestures = affect.GestureTable()
	}

	s := &Session{
		config:         config,
		camera:         capture.NewCamera(config.CameraID),
		motion:         capture.NewMotionDetector(motionThreshold),
		faceAdapter:    perception.NewFaceAdapter(emotions),
		gestureAdapter: perception.NewGestureAdapter(gestures),
		smoother:       affect.NewSmoother(config.Alpha),
		emotions:       emotions,
	}

	// Try MediaPipe first, fall back to mock detectors
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		s.faceDetector = mp
		s.gestureDetector = mp
		log.Println("Using MediaPipe perception")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detectors", err)
		s.faceDetector = detector.NewMockFaceDetector()
		s.gestureDetector = detector.NewMockGestureDetector()
	}

	return s
}

// SetEnabled enables or disables perception.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// IsEnabled returns whether perception is currently enabled.
func (s *Session) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetFaceDetector sets the face detector implementation to use.
func (s *Session) SetFaceDetector(d detector.FaceDetector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faceDetector = d
}

// SetGestureDetector sets the gesture detector implementation to use.
func (s *Session) SetGestureDetector(d detector.GestureDetector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestureDetector = d
}

// SetCamera sets the camera implementation to use. Intended for tests.
func (s *Session) SetCamera(c capture.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = c
}

// Current returns a snapshot of the smoothed emotional state. ok is false
// before the first observation and after Reset.
func (s *Session) Current() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.smoother.Current()
	if !ok {
		return State{}, false
	}
	return s.snapshotLocked(v), true
}

// CurrentLabel returns the emotion label nearest to the current state, or
// the resting label before the first observation.
func (s *Session) CurrentLabel() affect.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.smoother.Current()
	if !ok {
		v = affect.Resting()
	}
	return s.emotions.Nearest(v)
}

// Reset clears the emotional state. The next observation is adopted
// verbatim, as if the session had just started.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.smoother.Reset()
	s.confidence = 0
	s.updatedAt = time.Time{}
	s.lastScores = nil
}

// Start begins the perception pipeline.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Don't start if already running
	if s.stopCh != nil {
		return nil
	}

	if err := s.camera.Open(); err != nil {
		return err
	}

	s.camera.SetFPS(IdleFPS)

	s.stopCh = make(chan struct{})
	go s.runPipeline(s.stopCh)

	log.Println("Perception pipeline started")
	return nil
}

// Stop halts the perception pipeline and releases resources.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}

	if err := s.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	s.motion.Close()

	if s.faceDetector != nil {
		if err := s.faceDetector.Close(); err != nil {
			log.Printf("Error closing face detector: %v", err)
		}
	}
	// The MediaPipe detector serves both interfaces; avoid closing twice
	if s.gestureDetector != nil && !s.sharedDetector() {
		if err := s.gestureDetector.Close(); err != nil {
			log.Printf("Error closing gesture detector: %v", err)
		}
	}

	log.Println("Perception pipeline stopped")
}

func (s *Session) sharedDetector() bool {
	f, ok := s.faceDetector.(*detector.MediaPipeDetector)
	if !ok {
		return false
	}
	g, ok := s.gestureDetector.(*detector.MediaPipeDetector)
	return ok && f == g
}

// Camera returns the camera instance.
func (s *Session) Camera() capture.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// MotionDetector returns the motion detector instance.
func (s *Session) MotionDetector() *capture.MotionDetector {
	return s.motion
}

// EmotionTable returns the emotion reference table in use.
func (s *Session) EmotionTable() affect.Table {
	return s.emotions
}

// snapshotLocked builds a State from the current smoother value.
// Callers must hold at least a read lock.
func (s *Session) snapshotLocked(v affect.Vector) State {
	return State{
		Vector:     v,
		Label:      s.emotions.Nearest(v),
		Intensity:  v.Intensity(),
		Confidence: s.confidence,
		UpdatedAt:  s.updatedAt,
		Updates:    s.smoother.Updates(),
	}
}
