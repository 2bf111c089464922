package expression

import (
	"testing"

	"github.com/ayusman/abhinaya/internal/affect"
)

func vectorFor(t *testing.T, label affect.Label) affect.Vector {
	t.Helper()
	v, err := affect.EmotionTable().Vector(label)
	if err != nil {
		t.Fatalf("no reference vector for %s: %v", label, err)
	}
	return v
}

func TestDerive_Happy(t *testing.T) {
	cmd := Derive(vectorFor(t, affect.Happy))

	if cmd.SpeechStyle != "warm" {
		t.Errorf("speech style = %s, want warm", cmd.SpeechStyle)
	}
	if cmd.MotionStyle != "animated" {
		t.Errorf("motion style = %s, want animated", cmd.MotionStyle)
	}
	if !cmd.InterruptionAllowed {
		t.Error("happy expression should be interruptible")
	}
}

func TestDerive_Sad(t *testing.T) {
	cmd := Derive(vectorFor(t, affect.Sad))

	if cmd.SpeechStyle != "soft" {
		t.Errorf("speech style = %s, want soft", cmd.SpeechStyle)
	}
	if cmd.MotionStyle != "calm" {
		t.Errorf("motion style = %s, want calm", cmd.MotionStyle)
	}
	if !cmd.InterruptionAllowed {
		t.Error("sad expression should be interruptible, only agitated states block")
	}
}

func TestDerive_AngryBlocksInterruption(t *testing.T) {
	cmd := Derive(vectorFor(t, affect.Angry))

	if cmd.InterruptionAllowed {
		t.Error("angry expression should not be interruptible")
	}
	if cmd.MotionStyle != "animated" {
		t.Errorf("motion style = %s, want animated", cmd.MotionStyle)
	}
}

func TestDerive_NeutralDefaults(t *testing.T) {
	cmd := Derive(vectorFor(t, affect.Neutral))

	if cmd.SpeechStyle != "neutral" {
		t.Errorf("speech style = %s, want neutral", cmd.SpeechStyle)
	}
	if cmd.MotionStyle != "fluid" {
		t.Errorf("motion style = %s, want fluid", cmd.MotionStyle)
	}
}

func TestDerive_EnergyTracksArousal(t *testing.T) {
	v := affect.New(0, 0.62, 0)
	cmd := Derive(v)

	if cmd.EnergyLevel != 0.62 {
		t.Errorf("energy = %v, want 0.62", cmd.EnergyLevel)
	}
}
