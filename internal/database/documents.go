package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"climb-performance-lab/internal/models"
)

// SaveDocument replaces the locally persisted state for a user with the
// contents of doc. The write is transactional: either the whole document is
// stored or nothing changes.
func (db *DB) SaveDocument(userID string, doc *models.Document) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()

	if doc.Profile != nil {
		_, err = tx.Exec(`
			INSERT INTO rider_profiles (user_id, height_m, weight_kg, ftp_watts, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				height_m = excluded.height_m,
				weight_kg = excluded.weight_kg,
				ftp_watts = excluded.ftp_watts,
				updated_at = excluded.updated_at
		`, userID, doc.Profile.HeightM, doc.Profile.WeightKg, doc.Profile.FTPWatts, now)
		if err != nil {
			return fmt.Errorf("failed to save rider profile: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM activities WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	for _, a := range doc.Activities {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to marshal activity %s: %w", a.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO activities (id, user_id, date, name, duration_seconds, data_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, a.ID, userID, a.Date, a.Name, a.DurationSeconds, string(data), now)
		if err != nil {
			return fmt.Errorf("failed to save activity %s: %w", a.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM user_climbs WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear user climbs: %w", err)
	}
	for _, c := range doc.UserClimbs {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal climb %s: %w", c.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO user_climbs (id, user_id, name, data_json, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, c.ID, userID, c.Name, string(data), now)
		if err != nil {
			return fmt.Errorf("failed to save climb %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}
	return nil
}

// LoadDocument reads the locally persisted state for a user. Returns nil if
// nothing has ever been saved for that user.
func (db *DB) LoadDocument(userID string) (*models.Document, error) {
	doc := &models.Document{}
	found := false

	var p models.RiderProfile
	err := db.conn.QueryRow(`
		SELECT height_m, weight_kg, ftp_watts FROM rider_profiles WHERE user_id = ?
	`, userID).Scan(&p.HeightM, &p.WeightKg, &p.FTPWatts)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to load rider profile: %w", err)
	default:
		doc.Profile = &p
		found = true
	}

	rows, err := db.conn.Query(`SELECT data_json FROM activities WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		var a models.Activity
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity: %w", err)
		}
		doc.Activities = append(doc.Activities, a)
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	climbRows, err := db.conn.Query(`SELECT data_json FROM user_climbs WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user climbs: %w", err)
	}
	defer climbRows.Close()
	for climbRows.Next() {
		var data string
		if err := climbRows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan climb: %w", err)
		}
		var c models.Climb
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal climb: %w", err)
		}
		doc.UserClimbs = append(doc.UserClimbs, c)
		found = true
	}
	if err := climbRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user climbs: %w", err)
	}

	if !found {
		return nil, nil
	}
	return doc, nil
}
