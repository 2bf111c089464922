package session

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/affect"
	"github.com/ayusman/abhinaya/internal/store"
)

// runPipeline is the main perception loop. It manages the transitions
// between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run face and gesture perception on the frame
// 4. Adapt observations to percepts and fuse them
// 5. Fold the fused candidate into the smoothed state
// 6. After 2s without motion, switch back to idle mode
func (s *Session) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !s.IsEnabled() {
				continue
			}

			frame, err := s.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := s.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					s.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					s.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// The expensive models only run while the scene is live
			if !activeMode {
				frame.Close()
				continue
			}

			s.ProcessFrame(frame, time.Now())
			frame.Close()
		}
	}
}

// ProcessFrame runs one perception step over a frame: detect, adapt, fuse,
// smooth, persist. Exported so tests and offline tooling can drive the
// pipeline without the camera loop.
func (s *Session) ProcessFrame(frame *gocv.Mat, now time.Time) {
	s.mu.RLock()
	faceDet := s.faceDetector
	gestureDet := s.gestureDetector
	s.mu.RUnlock()

	var percepts []affect.Percept
	var rawScores map[affect.Label]float64

	if faceDet != nil {
		obs, ok, err := faceDet.DetectFace(frame)
		if err != nil {
			log.Printf("Error detecting face: %v", err)
		} else if ok {
			scores := make(map[affect.Label]float64, len(obs.Scores))
			for name, score := range obs.Scores {
				scores[affect.Label(name)] = score
			}
			p, err := s.faceAdapter.Adapt(scores, now)
			if err != nil {
				log.Printf("Error adapting face scores: %v", err)
			} else {
				percepts = append(percepts, p)
				rawScores = scores
			}
		}
	}

	if gestureDet != nil {
		obs, ok, err := gestureDet.DetectGesture(frame)
		if err != nil {
			log.Printf("Error detecting gesture: %v", err)
		} else if ok {
			percepts = append(percepts, s.gestureAdapter.Adapt(affect.Label(obs.Label), obs.Confidence, now))
		}
	}

	fused, confidence, ok := affect.Fuse(percepts)
	if !ok {
		return
	}

	s.mu.Lock()
	state := s.smoother.Observe(fused)
	s.confidence = confidence
	s.updatedAt = now
	s.lastScores = rawScores
	snapshot := s.snapshotLocked(state)
	s.mu.Unlock()

	s.persist(snapshot, rawScores)

	if s.OnUpdate != nil {
		s.OnUpdate(snapshot)
	}
}

// persist records a smoothed state update in the detection history.
func (s *Session) persist(snapshot State, rawScores map[affect.Label]float64) {
	if s.config.Store == nil {
		return
	}

	d := &store.Detection{
		ID:         uuid.New().String(),
		Source:     "fused",
		Label:      string(snapshot.Label),
		Confidence: snapshot.Confidence,
		Valence:    snapshot.Vector.Valence,
		Arousal:    snapshot.Vector.Arousal,
		Dominance:  snapshot.Vector.Dominance,
		DetectedAt: snapshot.UpdatedAt,
	}
	for label, score := range rawScores {
		d.Scores = append(d.Scores, store.EmotionScore{Label: string(label), Score: score})
	}

	if err := s.config.Store.Detections().Create(d); err != nil {
		log.Printf("Error recording detection: %v", err)
	}
}
