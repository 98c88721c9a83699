package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveTemplate upserts the gesture called name together with its landmarks
// and training samples in one transaction. On error nothing is changed.
func (s *Store) SaveTemplate(name string, tolerance float64, landmarks []Landmark, samples []json.RawMessage) (*Gesture, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	g := &Gesture{}
	err = tx.QueryRow(`SELECT `+gestureColumns+` FROM gestures WHERE name = ?`, name).
		Scan(&g.ID, &g.Name, &g.Tolerance, &g.Samples, &g.CreatedAt, &g.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		g = &Gesture{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
		}
		_, err = tx.Exec(
			`INSERT INTO gestures (id, name, tolerance, samples, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, tolerance, len(samples), now, now,
		)
		if err != nil {
			return nil, fmt.Errorf("create gesture: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("look up gesture: %w", err)
	default:
		_, err = tx.Exec(`UPDATE gestures SET tolerance = ?, samples = ?, updated_at = ? WHERE id = ?`,
			tolerance, len(samples), now, g.ID)
		if err != nil {
			return nil, fmt.Errorf("update gesture: %w", err)
		}
	}

	if err := replaceLandmarks(tx, g.ID, landmarks); err != nil {
		return nil, fmt.Errorf("store landmarks: %w", err)
	}
	if err := replaceSamples(tx, g.ID, samples); err != nil {
		return nil, fmt.Errorf("store samples: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	g.Tolerance = tolerance
	g.Samples = len(samples)
	g.UpdatedAt = now
	return g, nil
}
