package affect

// Fuse combines the percepts collected in one perception tick into a single
// candidate vector for the smoother.
//
// With no percepts it reports ok=false and the tick produces no candidate.
// A single percept passes through with its own confidence. Two or more are
// combined by confidence-weighted average; when every confidence is zero
// the sources are averaged with equal weight instead of being discarded,
// so simultaneous low-confidence evidence still counts.
//
// The fused confidence is the maximum of the source confidences: fusion
// is only as decisive as its most decisive source.
//
// Fusion is purely numeric. The modalities are treated as independent and
// no source overrides another.
func Fuse(percepts []Percept) (fused Vector, confidence float64, ok bool) {
	switch len(percepts) {
	case 0:
		return Vector{}, 0, false
	case 1:
		return percepts[0].Vector, percepts[0].Confidence, true
	}

	var total float64
	for _, p := range percepts {
		total += p.Confidence
		if p.Confidence > confidence {
			confidence = p.Confidence
		}
	}

	var v, a, d float64
	if total == 0 {
		// Equal-weight fallback: all sources reported zero confidence.
		n := float64(len(percepts))
		for _, p := range percepts {
			v += p.Vector.Valence / n
			a += p.Vector.Arousal / n
			d += p.Vector.Dominance / n
		}
	} else {
		for _, p := range percepts {
			w := p.Confidence / total
			v += p.Vector.Valence * w
			a += p.Vector.Arousal * w
			d += p.Vector.Dominance * w
		}
	}

	return New(v, a, d), confidence, true
}
