package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Gesture represents a gesture template definition stored in the database.
type Gesture struct {
	ID        string
	Name      string
	Tolerance float64
	Samples   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Landmark is one stored template landmark.
type Landmark struct {
	X, Y, Z float64
}

// GestureRepository provides CRUD operations for gestures.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the gesture repository for this store.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

const gestureColumns = `id, name, tolerance, samples, created_at, updated_at`

// Create inserts a new gesture into the database.
func (r *GestureRepository) Create(g *Gesture) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO gestures (id, name, tolerance, samples, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Tolerance, g.Samples, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

// GetByID retrieves a gesture by its ID.
func (r *GestureRepository) GetByID(id string) (*Gesture, error) {
	return r.getOne(`SELECT `+gestureColumns+` FROM gestures WHERE id = ?`, id)
}

// GetByName retrieves a gesture by its name.
func (r *GestureRepository) GetByName(name string) (*Gesture, error) {
	return r.getOne(`SELECT `+gestureColumns+` FROM gestures WHERE name = ?`, name)
}

func (r *GestureRepository) getOne(query string, arg string) (*Gesture, error) {
	g := &Gesture{}
	err := r.db.QueryRow(query, arg).
		Scan(&g.ID, &g.Name, &g.Tolerance, &g.Samples, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// List retrieves all gestures ordered by name.
func (r *GestureRepository) List() ([]*Gesture, error) {
	rows, err := r.db.Query(`SELECT ` + gestureColumns + ` FROM gestures ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*Gesture
	for rows.Next() {
		g := &Gesture{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Tolerance, &g.Samples, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gestures, nil
}

// Update updates an existing gesture in the database.
func (r *GestureRepository) Update(g *Gesture) error {
	g.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE gestures SET name = ?, tolerance = ?, samples = ?, updated_at = ?
		 WHERE id = ?`,
		g.Name, g.Tolerance, g.Samples, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return err
	}

	return expectRow(result)
}

// Delete removes a gesture and its landmarks and samples.
func (r *GestureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM gestures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return expectRow(result)
}

// SetLandmarks replaces the template landmarks of a gesture.
func (r *GestureRepository) SetLandmarks(gestureID string, landmarks []Landmark) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceLandmarks(tx, gestureID, landmarks); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceLandmarks(tx *sql.Tx, gestureID string, landmarks []Landmark) error {
	if _, err := tx.Exec(`DELETE FROM gesture_landmarks WHERE gesture_id = ?`, gestureID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO gesture_landmarks (gesture_id, landmark_index, x, y, z) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range landmarks {
		if _, err := stmt.Exec(gestureID, i, l.X, l.Y, l.Z); err != nil {
			return fmt.Errorf("insert landmark %d: %w", i, err)
		}
	}
	return nil
}

// GetLandmarks returns the template landmarks of a gesture in index order.
func (r *GestureRepository) GetLandmarks(gestureID string) ([]Landmark, error) {
	rows, err := r.db.Query(
		`SELECT x, y, z FROM gesture_landmarks WHERE gesture_id = ? ORDER BY landmark_index`,
		gestureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var landmarks []Landmark
	for rows.Next() {
		var l Landmark
		if err := rows.Scan(&l.X, &l.Y, &l.Z); err != nil {
			return nil, err
		}
		landmarks = append(landmarks, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return landmarks, nil
}

func expectRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
