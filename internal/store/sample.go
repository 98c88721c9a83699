package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Sample is one raw 126-value frame a template was averaged from.
type Sample struct {
	ID          int64           `json:"id"`
	GestureID   string          `json:"gesture_id"`
	SampleIndex int             `json:"sample_index"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SampleRepository reads and replaces the training frames of a template.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the training-frame repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Replace swaps the training frames of a gesture in a single transaction and
// updates its sample count.
func (r *SampleRepository) Replace(gestureID string, samples []json.RawMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceSamples(tx, gestureID, samples); err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE gestures SET samples = ?, updated_at = ? WHERE id = ?`,
		len(samples), time.Now(), gestureID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func replaceSamples(tx *sql.Tx, gestureID string, samples []json.RawMessage) error {
	if _, err := tx.Exec(`DELETE FROM gesture_samples WHERE gesture_id = ?`, gestureID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO gesture_samples (gesture_id, sample_index, data) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, data := range samples {
		if _, err := stmt.Exec(gestureID, i, string(data)); err != nil {
			return fmt.Errorf("insert sample %d: %w", i, err)
		}
	}
	return nil
}

// GetByGestureID returns the training frames of a gesture in recording order.
func (r *SampleRepository) GetByGestureID(gestureID string) ([]Sample, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture_id, sample_index, data, created_at
		 FROM gesture_samples
		 WHERE gesture_id = ?
		 ORDER BY sample_index`,
		gestureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var data string
		if err := rows.Scan(&s.ID, &s.GestureID, &s.SampleIndex, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Data = json.RawMessage(data)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
