package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Detection represents one recorded affect update.
type Detection struct {
	ID         string
	Source     string
	Label      string
	Confidence float64
	Valence    float64
	Arousal    float64
	Dominance  float64
	DetectedAt time.Time
	CreatedAt  time.Time

	// Scores holds the raw per-category model scores behind this
	// detection. Populated by GetByID, left nil by Recent.
	Scores []EmotionScore
}

// EmotionScore is one raw per-category score attached to a detection.
type EmotionScore struct {
	Label string
	Score float64
}

// Stats summarizes the detection history. The averages are zero when the
// history is empty.
type Stats struct {
	Total         int64
	ByLabel       map[string]int64
	BySource      map[string]int64
	AvgConfidence float64
	AvgValence    float64
	AvgArousal    float64
	AvgDominance  float64
}

// DetectionRepository provides persistence operations for detections.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// Create inserts a detection and its per-category scores in a single
// transaction.
func (r *DetectionRepository) Create(d *Detection) error {
	d.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO detections (id, source, label, confidence, valence, arousal, dominance, detected_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Source, d.Label, d.Confidence, d.Valence, d.Arousal, d.Dominance, d.DetectedAt, d.CreatedAt,
	)
	if err != nil {
		return err
	}

	if len(d.Scores) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO emotion_scores (detection_id, label, score) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range d.Scores {
			if _, err := stmt.Exec(d.ID, s.Label, s.Score); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetByID retrieves a detection by its ID, including its raw scores.
func (r *DetectionRepository) GetByID(id string) (*Detection, error) {
	d := &Detection{}

	err := r.db.QueryRow(
		`SELECT id, source, label, confidence, valence, arousal, dominance, detected_at, created_at
		 FROM detections WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.Source, &d.Label, &d.Confidence, &d.Valence, &d.Arousal, &d.Dominance, &d.DetectedAt, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT label, score FROM emotion_scores WHERE detection_id = ? ORDER BY score DESC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s EmotionScore
		if err := rows.Scan(&s.Label, &s.Score); err != nil {
			return nil, err
		}
		d.Scores = append(d.Scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return d, nil
}

// Recent retrieves the most recent detections, newest first.
// A limit of 0 or less defaults to 50.
func (r *DetectionRepository) Recent(limit int) ([]*Detection, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, source, label, confidence, valence, arousal, dominance, detected_at, created_at
		 FROM detections ORDER BY detected_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []*Detection
	for rows.Next() {
		d := &Detection{}
		err := rows.Scan(&d.ID, &d.Source, &d.Label, &d.Confidence, &d.Valence, &d.Arousal, &d.Dominance, &d.DetectedAt, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		detections = append(detections, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return detections, nil
}

// Stats returns aggregate counts over the detection history.
func (r *DetectionRepository) Stats() (*Stats, error) {
	stats := &Stats{
		ByLabel:  make(map[string]int64),
		BySource: make(map[string]int64),
	}

	err := r.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(AVG(confidence), 0),
		        COALESCE(AVG(valence), 0),
		        COALESCE(AVG(arousal), 0),
		        COALESCE(AVG(dominance), 0)
		 FROM detections`,
	).Scan(&stats.Total, &stats.AvgConfidence, &stats.AvgValence, &stats.AvgArousal, &stats.AvgDominance)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM detections GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int64
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		stats.ByLabel[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srcRows, err := r.db.Query(`SELECT source, COUNT(*) FROM detections GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer srcRows.Close()

	for srcRows.Next() {
		var source string
		var count int64
		if err := srcRows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.BySource[source] = count
	}
	if err := srcRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// PruneOlderThan deletes detections recorded before the cutoff and returns
// the number of rows removed. Child scores cascade.
func (r *DetectionRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM detections WHERE detected_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
