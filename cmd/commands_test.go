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
package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/insights"
	"github.com/ademuri/spotify-taste-tools/internal/recommend"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

func TestFeaturesAnalysisRendering(t *testing.T) {
	f := features.FeatureSet{
		Version:    features.SchemaVersion,
		Behavioral: features.Behavioral{RepeatRate: 0.5},
		Genre:      features.Genre{TopGenres: []string{"pop", "rock"}},
		TrackMetadata: features.TrackMetadata{
			TrackAgePreference: features.AgeMixed,
		},
	}

	out := featuresAnalysis(f, "Indie Explorers").String()
	if !strings.Contains(out, "Archetype") {
		t.Errorf("table missing archetype row:\n%s", out)
	}
	if !strings.Contains(out, "Indie Explorers") {
		t.Errorf("table missing archetype label:\n%s", out)
	}
	if !strings.Contains(out, "pop, rock") {
		t.Errorf("table missing top genres:\n%s", out)
	}
}

func TestRecommendAnalysisRendering(t *testing.T) {
	result := &recommend.Result{
		Cluster: "Indie Explorers",
		Tracks: []recommend.Candidate{
			{
				ID:          "t1",
				Name:        "Some Song",
				Artists:     []snapshot.ArtistRef{{ID: "a1", Name: "Some Artist"}},
				AlbumName:   "Some Album",
				Popularity:  55,
				Explanation: "moderately known",
			},
		},
	}

	out := recommendAnalysis(result).String()
	if !strings.Contains(out, "Some Song") {
		t.Errorf("table missing track name:\n%s", out)
	}
	if !strings.Contains(out, "1 recommendations") {
		t.Errorf("table missing summary:\n%s", out)
	}
}

func TestLoadSnapshotMissingUserHint(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = loadSnapshot(db, "nobody")
	if err == nil || !strings.Contains(err.Error(), "run update first") {
		t.Errorf("loadSnapshot = %v, want hint to run update", err)
	}
}

func TestLoadOrComputeFeaturesComputesAndPersists(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}
	snap := &snapshot.Snapshot{}
	if err := db.SaveSnapshot("alice", snap); err != nil {
		t.Fatal(err)
	}

	f, err := loadOrComputeFeatures(db, "alice", snap)
	if err != nil {
		t.Fatal(err)
	}
	if f.Version != features.SchemaVersion {
		t.Errorf("Version = %q, want %q", f.Version, features.SchemaVersion)
	}

	// The computed set should now be stored.
	stored, err := db.LoadFeatures("alice", features.SchemaVersion)
	if err != nil {
		t.Fatalf("features not persisted: %v", err)
	}
	if stored.Version != features.SchemaVersion {
		t.Errorf("stored Version = %q, want %q", stored.Version, features.SchemaVersion)
	}
}

func TestEvaluateRejectsNonPositiveK(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("k", -1)
	err := runEvaluate()
	if err == nil || !strings.Contains(err.Error(), "--k must be at least 1") {
		t.Errorf("runEvaluate with k=-1 = %v, want flag error", err)
	}

	viper.Set("k", 0)
	err = runEvaluate()
	if err == nil || !strings.Contains(err.Error(), "--k must be at least 1") {
		t.Errorf("runEvaluate with k=0 = %v, want flag error", err)
	}
}

func testInsightsReport() insights.Report {
	return insights.Report{
		ClusterLabel: "Indie Explorers",
		EntropyScore: 2.5,
		Mood:         insights.MoodProfile{Label: insights.MoodEnergeticHappy},
		Evolution: insights.Evolution{
			RisingGenres:   []insights.GenreChange{{Genre: "shoegaze", Change: 0.2}},
			FallingGenres:  []insights.GenreChange{{Genre: "pop", Change: -0.1}},
			StabilityScore: 0.85,
		},
	}
}

func TestInsightsHTMLMentionsArchetype(t *testing.T) {
	report := testInsightsReport()
	report.AudioMeasured = true
	html := insightsHTML(report)
	if !strings.Contains(html, "Indie Explorers") {
		t.Errorf("html missing archetype:\n%s", html)
	}
	if !strings.Contains(html, "New Interests") {
		t.Errorf("html missing rising genres:\n%s", html)
	}
	if strings.Contains(html, "No audio features") {
		t.Errorf("unexpected audio note with measured data:\n%s", html)
	}

	report.AudioMeasured = false
	html = insightsHTML(report)
	if !strings.Contains(html, "No audio features") {
		t.Errorf("html missing audio note:\n%s", html)
	}
}

func TestRunInsightsWritesYAML(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CreateUser("alice"); err != nil {
		t.Fatal(err)
	}
	snap := &snapshot.Snapshot{
		TopTracksMedium: []snapshot.Track{
			{ID: "m", Artists: []snapshot.ArtistRef{{ID: "a"}}},
		},
		Artists: []snapshot.Artist{{ID: "a", Genres: []string{"pop"}}},
	}
	if err := db.SaveSnapshot("alice", snap); err != nil {
		t.Fatal(err)
	}
	db.Close()

	viper.Set("database", dbPath)
	viper.Set("user", "alice")

	var out strings.Builder
	if err := runInsights(&out); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "cluster_label:") {
		t.Errorf("output missing cluster label:\n%s", got)
	}
	if !strings.Contains(got, "audio_measured: false") {
		t.Errorf("output missing audio flag:\n%s", got)
	}
}
