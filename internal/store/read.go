package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

func (s *Store) GetLastUpdated(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM User WHERE name = ?", user)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}

// LoadSnapshot returns the stored snapshot for a user, or ErrNotFound.
func (s *Store) LoadSnapshot(user string) (*snapshot.Snapshot, error) {
	row := s.db.QueryRow("SELECT data FROM Snapshot WHERE user = ?", user)
	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot for %q: %w", user, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot for %q: %w", user, err)
	}
	return &snap, nil
}

// SnapshotFetchedAt returns when the stored snapshot was taken, or
// ErrNotFound.
func (s *Store) SnapshotFetchedAt(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT fetched_at FROM Snapshot WHERE user = ?", user)
	var t time.Time
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting snapshot age for %q: %w", user, err)
	}
	return t, nil
}

// LoadFeatures returns the stored feature set for a user at a schema
// version, or ErrNotFound.
func (s *Store) LoadFeatures(user, version string) (features.FeatureSet, error) {
	row := s.db.QueryRow("SELECT data FROM Features WHERE user = ? AND version = ?", user, version)
	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return features.FeatureSet{}, ErrNotFound
	}
	if err != nil {
		return features.FeatureSet{}, fmt.Errorf("loading features for %q: %w", user, err)
	}

	var f features.FeatureSet
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return features.FeatureSet{}, fmt.Errorf("decoding features for %q: %w", user, err)
	}
	return f, nil
}
