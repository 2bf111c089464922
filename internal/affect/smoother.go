package affect

// DefaultAlpha is the smoothing coefficient used when none is configured.
const DefaultAlpha = 0.35

// Smoother maintains the running affect estimate for one perception
// session. Each fused candidate is blended into the running state with a
// fixed coefficient: higher alpha tracks new evidence faster, lower alpha
// is more inertial.
//
// A Smoother is not safe for concurrent use; the session loop serializes
// all access so each tick performs exactly one update.
type Smoother struct {
	alpha   float64
	state   Vector
	primed  bool
	updates uint64
}

// NewSmoother creates a Smoother with the given coefficient. Alpha must be
// in (0,1]; values outside that range fall back to DefaultAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Smoother{alpha: alpha}
}

// Alpha returns the smoothing coefficient.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}

// Observe feeds a fused candidate into the running state. The first
// candidate is adopted verbatim: there is no meaningful prior to blend
// against. Observing never fails.
func (s *Smoother) Observe(candidate Vector) Vector {
	if !s.primed {
		s.state = candidate
		s.primed = true
	} else {
		s.state = s.state.Interpolate(candidate, s.alpha)
	}
	s.updates++
	return s.state
}

// Current returns the running affect state, with ok=false while the
// smoother has not yet observed a candidate.
func (s *Smoother) Current() (Vector, bool) {
	return s.state, s.primed
}

// Updates returns the number of candidates observed since the last reset.
func (s *Smoother) Updates() uint64 {
	return s.updates
}

// Reset clears the running state back to uninitialized. The next observed
// candidate will again be adopted verbatim.
func (s *Smoother) Reset() {
	s.state = Vector{}
	s.primed = false
	s.updates = 0
}
