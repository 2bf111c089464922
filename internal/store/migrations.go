package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Detections table - one row per smoothed affect update
		`CREATE TABLE IF NOT EXISTS detections (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL CHECK(source IN ('face', 'gesture', 'fused')),
			label TEXT NOT NULL,
			confidence REAL NOT NULL,
			valence REAL NOT NULL,
			arousal REAL NOT NULL,
			dominance REAL NOT NULL,
			detected_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Emotion scores table - raw per-category model scores behind a detection
		`CREATE TABLE IF NOT EXISTS emotion_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			detection_id TEXT NOT NULL REFERENCES detections(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			score REAL NOT NULL
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_detections_detected_at ON detections(detected_at)`,
		`CREATE INDEX IF NOT EXISTS idx_detections_label ON detections(label)`,
		`CREATE INDEX IF NOT EXISTS idx_emotion_scores_detection_id ON emotion_scores(detection_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
