/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package store

import (
	"errors"
	"testing"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUserIsIdempotent(t *testing.T) {
	s := testStore(t)

	if err := s.CreateUser("alice"); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	if err := s.CreateUser("alice"); err != nil {
		t.Fatalf("second CreateUser: %v", err)
	}
}

func TestLastUpdatedRoundTrip(t *testing.T) {
	s := testStore(t)

	if err := s.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetLastUpdated("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("GetLastUpdated before set = %v, want zero", got)
	}

	updated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastUpdated("alice", updated); err != nil {
		t.Fatal(err)
	}

	got, err = s.GetLastUpdated("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(updated) {
		t.Errorf("GetLastUpdated = %v, want %v", got, updated)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testStore(t)
	if err := s.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}

	snap := &snapshot.Snapshot{
		TopTracksMedium: []snapshot.Track{
			{ID: "t1", Name: "Song", Popularity: 70},
		},
		Artists: []snapshot.Artist{
			{ID: "a1", Name: "Artist", Genres: []string{"pop"}},
		},
		TotalLikedTracks: 42,
		FetchedAt:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveSnapshot("alice", snap); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadSnapshot("alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.TopTracksMedium[0].ID != "t1" {
		t.Errorf("track id = %q, want t1", got.TopTracksMedium[0].ID)
	}
	if got.TotalLikedTracks != 42 {
		t.Errorf("TotalLikedTracks = %d, want 42", got.TotalLikedTracks)
	}
	if got.Artists[0].Genres[0] != "pop" {
		t.Errorf("genre = %q, want pop", got.Artists[0].Genres[0])
	}
}

func TestSaveSnapshotReplaces(t *testing.T) {
	s := testStore(t)
	if err := s.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}

	first := &snapshot.Snapshot{TotalLikedTracks: 1, FetchedAt: time.Now()}
	second := &snapshot.Snapshot{TotalLikedTracks: 2, FetchedAt: time.Now()}
	if err := s.SaveSnapshot("alice", first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot("alice", second); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadSnapshot("alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalLikedTracks != 2 {
		t.Errorf("TotalLikedTracks = %d, want the replacement snapshot", got.TotalLikedTracks)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.LoadSnapshot("nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSnapshot for missing user = %v, want ErrNotFound", err)
	}
}

func TestFeaturesRoundTrip(t *testing.T) {
	s := testStore(t)
	if err := s.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}

	f := features.FeatureSet{
		Version:    features.SchemaVersion,
		Behavioral: features.Behavioral{RepeatRate: 0.25},
		Genre:      features.Genre{TopGenres: []string{"pop"}},
	}
	if err := s.SaveFeatures("alice", f); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadFeatures("alice", features.SchemaVersion)
	if err != nil {
		t.Fatal(err)
	}
	if got.Behavioral.RepeatRate != 0.25 {
		t.Errorf("RepeatRate = %v, want 0.25", got.Behavioral.RepeatRate)
	}

	// A schema bump should miss.
	_, err = s.LoadFeatures("alice", "v999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFeatures at wrong version = %v, want ErrNotFound", err)
	}
}
