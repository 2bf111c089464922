// Package expression derives robot expression commands from the emotional
// state. Downstream actuators (voice, motion) consume the command; this
// package only decides the style parameters.
package expression

import "github.com/ayusman/abhinaya/internal/affect"

// Style thresholds on the valence and arousal axes.
const (
	warmValence   = 0.3
	softValence   = -0.3
	animatedLevel = 0.65
	calmLevel     = 0.35
)

// Command describes how the robot should carry itself while the current
// emotional state holds.
type Command struct {
	SpeechStyle string  `json:"speech_style"`
	MotionStyle string  `json:"motion_style"`
	EnergyLevel float64 `json:"energy_level"`

	// InterruptionAllowed reports whether ongoing expression output may be
	// preempted by new input. Agitated negative states finish their
	// expression before yielding.
	InterruptionAllowed bool `json:"interruption_allowed"`
}

// Derive maps an affect vector onto an expression command.
//
// Speech style follows valence: positive states speak warmly, negative
// states softly. Motion style and energy follow arousal. Interruption is
// blocked only for highly aroused negative states, so distress and anger
// play out fully instead of being cut mid-expression.
func Derive(v affect.Vector) Command {
	cmd := Command{
		SpeechStyle:         "neutral",
		MotionStyle:         "fluid",
		EnergyLevel:         v.Arousal,
		InterruptionAllowed: true,
	}

	switch {
	case v.Valence >= warmValence:
		cmd.SpeechStyle = "warm"
	case v.Valence <= softValence:
		cmd.SpeechStyle = "soft"
	}

	switch {
	case v.Arousal >= animatedLevel:
		cmd.MotionStyle = "animated"
	case v.Arousal <= calmLevel:
		cmd.MotionStyle = "calm"
	}

	if v.Arousal >= 0.75 && v.Valence <= softValence {
		cmd.InterruptionAllowed = false
	}

	return cmd
}
