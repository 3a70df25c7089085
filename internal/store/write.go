package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// CreateUser ensures a user exists in the database.
func (s *Store) CreateUser(user string) error {
	row := s.db.QueryRow("SELECT name FROM User WHERE name = ?", user)
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		_, err := s.db.Exec("INSERT INTO User (name) VALUES (?)", user)
		if err != nil {
			return fmt.Errorf("inserting user %q: %w", user, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking user %q: %w", user, err)
	}
	return nil
}

func (s *Store) SetLastUpdated(user string, updated time.Time) error {
	_, err := s.db.Exec("UPDATE User SET last_updated = ? WHERE name = ?", updated, user)
	if err != nil {
		return fmt.Errorf("updating last_updated for %q: %w", user, err)
	}
	return nil
}

// SaveSnapshot stores a user's snapshot, replacing any previous one.
func (s *Store) SaveSnapshot(user string, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot for %q: %w", user, err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO Snapshot (user, fetched_at, data) VALUES (?, ?, ?)",
		user, snap.FetchedAt, string(data))
	if err != nil {
		return fmt.Errorf("saving snapshot for %q: %w", user, err)
	}
	return nil
}

// SaveFeatures stores a computed feature set keyed by user and schema
// version.
func (s *Store) SaveFeatures(user string, f features.FeatureSet) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding features for %q: %w", user, err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO Features (user, version, computed_at, data) VALUES (?, ?, ?, ?)",
		user, f.Version, time.Now(), string(data))
	if err != nil {
		return fmt.Errorf("saving features for %q: %w", user, err)
	}
	return nil
}
