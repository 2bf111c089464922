// Package personality loads per-robot personality profiles. A profile
// tunes how the affect engine reacts: the smoothing factor and optional
// overrides of the reference tables.
package personality

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ayusman/abhinaya/internal/affect"
)

// VectorOverride is one reference-table override in a profile file.
type VectorOverride struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// Personality is a loaded profile.
type Personality struct {
	// Name identifies the profile, for logs and the API.
	Name string `json:"name"`

	// Alpha is the smoothing factor. Zero means "use the default".
	Alpha float64 `json:"alpha"`

	// EmotionOverrides and GestureOverrides replace individual reference
	// vectors. Labels must already exist in the respective table.
	EmotionOverrides map[affect.Label]VectorOverride `json:"emotion_overrides"`
	GestureOverrides map[affect.Label]VectorOverride `json:"gesture_overrides"`
}

// Default returns the stock personality: default smoothing, untouched
// reference tables.
func Default() Personality {
	return Personality{Name: "default"}
}

// Load reads a profile from a JSON file.
func Load(path string) (Personality, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Personality{}, fmt.Errorf("read personality file: %w", err)
	}

	var p Personality
	if err := json.Unmarshal(data, &p); err != nil {
		return Personality{}, fmt.Errorf("parse personality file %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = "unnamed"
	}

	return p, nil
}

// EmotionTable returns the default emotion table with this profile's
// overrides applied.
func (p Personality) EmotionTable() (affect.Table, error) {
	return applyOverrides(affect.EmotionTable(), p.EmotionOverrides)
}

// GestureTable returns the default gesture table with this profile's
// overrides applied.
func (p Personality) GestureTable() (affect.Table, error) {
	return applyOverrides(affect.GestureTable(), p.GestureOverrides)
}

func applyOverrides(table affect.Table, overrides map[affect.Label]VectorOverride) (affect.Table, error) {
	for label, o := range overrides {
		t, err := table.Override(label, affect.New(o.Valence, o.Arousal, o.Dominance))
		if err != nil {
			return affect.Table{}, fmt.Errorf("apply override: %w", err)
		}
		table = t
	}
	return table, nil
}
