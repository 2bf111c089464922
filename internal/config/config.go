// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration, populated from ABHINAYA_*
// environment variables.
type Config struct {
	// ListenAddr is the HTTP API listen address.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8874"`

	// DBPath is the SQLite database path.
	DBPath string `env:"DB_PATH" envDefault:"abhinaya.db"`

	// CameraID selects the capture device.
	CameraID int `env:"CAMERA_ID" envDefault:"0"`

	// MotionThreshold is the percentage of changed pixels that counts as
	// motion. Zero falls back to the session default.
	MotionThreshold float64 `env:"MOTION_THRESHOLD" envDefault:"1.0"`

	// PersonalityPath points to a personality profile JSON file. Empty
	// means the stock personality.
	PersonalityPath string `env:"PERSONALITY_PATH"`

	// RetentionDays is how long detection history is kept. Zero disables
	// pruning.
	RetentionDays int `env:"RETENTION_DAYS" envDefault:"30"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ABHINAYA_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
