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
package features

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

func track(id string, artistIDs ...string) snapshot.Track {
	t := snapshot.Track{ID: id, Name: id}
	for _, a := range artistIDs {
		t.Artists = append(t.Artists, snapshot.ArtistRef{ID: a, Name: a})
	}
	return t
}

func play(id, playedAt string) snapshot.PlayItem {
	return snapshot.PlayItem{Track: track(id, "artist"), PlayedAt: playedAt}
}

func TestExtractEmptySnapshotUsesDefaults(t *testing.T) {
	f := Extract(&snapshot.Snapshot{})

	if f.Version != SchemaVersion {
		t.Errorf("Version = %q, want %q", f.Version, SchemaVersion)
	}
	if f.Behavioral.RepeatRate != 0 {
		t.Errorf("RepeatRate = %v, want 0", f.Behavioral.RepeatRate)
	}
	if f.Behavioral.ExplorationScore != 0.5 {
		t.Errorf("ExplorationScore = %v, want 0.5", f.Behavioral.ExplorationScore)
	}
	if f.Behavioral.ListeningConsistency != 0.5 {
		t.Errorf("ListeningConsistency = %v, want 0.5", f.Behavioral.ListeningConsistency)
	}
	if f.Temporal.PeakListeningHour != 12 {
		t.Errorf("PeakListeningHour = %v, want 12", f.Temporal.PeakListeningHour)
	}
	if f.Temporal.WeekendRatio != 0.5 {
		t.Errorf("WeekendRatio = %v, want 0.5", f.Temporal.WeekendRatio)
	}
	if f.Temporal.ListeningTimeVariance != 0.5 {
		t.Errorf("ListeningTimeVariance = %v, want 0.5", f.Temporal.ListeningTimeVariance)
	}
	if f.TrackMetadata.AvgPopularity != 50 {
		t.Errorf("AvgPopularity = %v, want 50", f.TrackMetadata.AvgPopularity)
	}
	if f.TrackMetadata.AvgDurationMinutes != 3.5 {
		t.Errorf("AvgDurationMinutes = %v, want 3.5", f.TrackMetadata.AvgDurationMinutes)
	}
	if f.TrackMetadata.TrackAgePreference != AgeMixed {
		t.Errorf("TrackAgePreference = %q, want %q", f.TrackMetadata.TrackAgePreference, AgeMixed)
	}
	if f.Genre.Uniqueness != 0.5 {
		t.Errorf("Genre.Uniqueness = %v, want 0.5", f.Genre.Uniqueness)
	}
	if f.Audio.Valence != 0.5 || f.Audio.Energy != 0.5 {
		t.Errorf("Audio = %+v, want all 0.5", f.Audio)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	snap := &snapshot.Snapshot{
		TopTracksShort:  []snapshot.Track{track("a", "x"), track("b", "y")},
		TopTracksMedium: []snapshot.Track{track("a", "x"), track("c", "z")},
		TopTracksLong:   []snapshot.Track{track("c", "z")},
		RecentlyPlayed:  []snapshot.PlayItem{play("a", "2026-03-02T08:00:00Z")},
		Artists: []snapshot.Artist{
			{ID: "x", Name: "x", Genres: []string{"pop", "rock"}},
			{ID: "y", Name: "y", Genres: []string{"pop"}},
		},
	}

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	first := extractAt(snap, now)
	second := extractAt(snap, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRepeatRate(t *testing.T) {
	recent := []snapshot.PlayItem{
		play("a", ""), play("a", ""), play("a", ""), play("b", ""),
	}
	// 2 unique out of 4 plays.
	if got := repeatRate(recent); got != 0.5 {
		t.Errorf("repeatRate = %v, want 0.5", got)
	}
}

func TestExplorationScore(t *testing.T) {
	short := []snapshot.Track{track("a"), track("b"), track("c"), track("d")}
	long := []snapshot.Track{track("a"), track("z")}
	// 3 of 4 short-term tracks are absent from the long-term window.
	if got := explorationScore(short, long); got != 0.75 {
		t.Errorf("explorationScore = %v, want 0.75", got)
	}
}

func TestTrackLoyaltyCountsTop10Only(t *testing.T) {
	var medium []snapshot.Track
	for i := 0; i < 15; i++ {
		medium = append(medium, track(string(rune('a'+i))))
	}
	recent := []snapshot.PlayItem{
		play("a", ""), // rank 1, counts
		play("l", ""), // rank 12, does not count
	}
	if got := trackLoyalty(medium, recent); got != 0.5 {
		t.Errorf("trackLoyalty = %v, want 0.5", got)
	}
}

func TestPeakListeningHourPrefersEarliestOnTie(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 6, 21, 0, 0, 0, time.UTC),
	}
	if got := peakListeningHour(times); got != 9 {
		t.Errorf("peakListeningHour = %v, want 9", got)
	}
}

func TestWeekendRatio(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), // Saturday
		time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), // Sunday
		time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), // Monday
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),  // Tuesday
	}
	if got := weekendRatio(times); got != 0.5 {
		t.Errorf("weekendRatio = %v, want 0.5", got)
	}
}

func TestExtractTemporalSkipsMalformedTimestamps(t *testing.T) {
	snap := &snapshot.Snapshot{
		RecentlyPlayed: []snapshot.PlayItem{
			play("a", "not-a-timestamp"),
			play("b", "2026-03-02T08:00:00Z"),
			play("c", "2026-03-03T08:00:00Z"),
		},
	}
	got := extractTemporal(snap)
	if got.PeakListeningHour != 8 {
		t.Errorf("PeakListeningHour = %v, want 8", got.PeakListeningHour)
	}
}

func TestTrackAgePreference(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		releases []string
		want     string
	}{
		{"new", []string{"2026-01-10", "2025"}, AgeNew},
		{"mixed", []string{"2020-05", "2019"}, AgeMixed},
		{"classic", []string{"1975", "1982-11-30"}, AgeClassic},
		{"unparseable", []string{"", "unknown"}, AgeMixed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tracks []snapshot.Track
			for i, r := range tc.releases {
				tr := track(string(rune('a' + i)))
				tr.Album.ReleaseDate = r
				tracks = append(tracks, tr)
			}
			if got := trackAgePreference(tracks, now); got != tc.want {
				t.Errorf("trackAgePreference = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenreDistributionSumsToOne(t *testing.T) {
	snap := &snapshot.Snapshot{
		Artists: []snapshot.Artist{
			{ID: "a", Genres: []string{"pop", "dance pop", "rock"}},
			{ID: "b", Genres: []string{"pop", "indie rock"}},
			{ID: "c", Genres: []string{"pop", "rock", "jazz", "blues", "soul", "funk", "house", "techno", "ambient"}},
		},
	}
	g := extractGenre(snap)

	sum := 0.0
	for _, share := range g.Distribution {
		sum += share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("distribution sums to %v, want 1", sum)
	}
	if len(g.Distribution) > 10 {
		t.Errorf("distribution has %d genres, want at most 10", len(g.Distribution))
	}
	if g.TopGenres[0] != "pop" {
		t.Errorf("top genre = %q, want pop", g.TopGenres[0])
	}
	if g.TotalUniqueGenres != 11 {
		t.Errorf("TotalUniqueGenres = %d, want 11", g.TotalUniqueGenres)
	}
}

func TestGenreDiversityUniformIsMaximal(t *testing.T) {
	snap := &snapshot.Snapshot{
		Artists: []snapshot.Artist{
			{ID: "a", Genres: []string{"pop"}},
			{ID: "b", Genres: []string{"rock"}},
			{ID: "c", Genres: []string{"jazz"}},
			{ID: "d", Genres: []string{"blues"}},
		},
	}
	g := extractGenre(snap)
	if g.Diversity != 1 {
		t.Errorf("Diversity = %v, want 1 for a uniform distribution", g.Diversity)
	}
}

func TestSummarizeListsTopGenres(t *testing.T) {
	f := FeatureSet{
		Behavioral: Behavioral{RepeatRate: 0.8},
		Temporal:   Temporal{PeakListeningHour: 23},
		Genre:      Genre{TopGenres: []string{"pop", "rock"}, Diversity: 0.9},
	}
	s := Summarize(f)
	if len(s.TopGenres) != 2 {
		t.Errorf("TopGenres = %v, want 2 entries", s.TopGenres)
	}
	if s.ListeningStyle == "" || s.PeakTime == "" || s.DiversityLevel == "" {
		t.Errorf("summary has empty fields: %+v", s)
	}
}
