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
package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

func TestShannonEntropy(t *testing.T) {
	uniform := map[string]float64{"pop": 0.25, "rock": 0.25, "jazz": 0.25, "blues": 0.25}
	assert.Equal(t, 2.0, ShannonEntropy(uniform))

	single := map[string]float64{"pop": 1.0}
	assert.Equal(t, 0.0, ShannonEntropy(single))

	assert.Equal(t, 0.0, ShannonEntropy(nil))
}

func TestShannonEntropyNormalizesCounts(t *testing.T) {
	counts := map[string]float64{"pop": 5, "rock": 5, "jazz": 5, "blues": 5}
	assert.Equal(t, 2.0, ShannonEntropy(counts))
}

func TestAnalyzeEvolution(t *testing.T) {
	shortTerm := map[string]float64{"pop": 0.6, "rock": 0.1}
	longTerm := map[string]float64{"pop": 0.3, "rock": 0.3}

	evo := AnalyzeEvolution(shortTerm, longTerm)

	assert.Equal(t, []GenreChange{{Genre: "pop", Change: 0.3}}, evo.RisingGenres)
	assert.Equal(t, []GenreChange{{Genre: "rock", Change: -0.2}}, evo.FallingGenres)
	assert.Equal(t, 0.75, evo.StabilityScore)
}

func TestAnalyzeEvolutionIgnoresSmallChanges(t *testing.T) {
	shortTerm := map[string]float64{"pop": 0.52}
	longTerm := map[string]float64{"pop": 0.5}

	evo := AnalyzeEvolution(shortTerm, longTerm)
	assert.Empty(t, evo.RisingGenres)
	assert.Empty(t, evo.FallingGenres)
	assert.Equal(t, 0.99, evo.StabilityScore)
}

func TestAnalyzeEvolutionStable(t *testing.T) {
	dist := map[string]float64{"pop": 0.5, "rock": 0.5}
	evo := AnalyzeEvolution(dist, dist)
	assert.Equal(t, 1.0, evo.StabilityScore)
}

func TestMoodQuadrants(t *testing.T) {
	cases := []struct {
		valence, energy float64
		want            string
	}{
		{0.8, 0.8, MoodEnergeticHappy},
		{0.8, 0.3, MoodCalmContent},
		{0.3, 0.8, MoodIntense},
		{0.3, 0.3, MoodMelancholic},
		{0.6, 0.6, MoodMelancholic}, // boundary is exclusive
	}
	for _, tc := range cases {
		got := Mood(snapshot.AudioFeatures{Valence: tc.valence, Energy: tc.energy})
		assert.Equal(t, tc.want, got.Label, "valence=%v energy=%v", tc.valence, tc.energy)
	}
}

func TestClusterDeviationAtBaseline(t *testing.T) {
	baseline := clusterBaselines["Indie Explorers"]
	dev := ClusterDeviation(baseline, "Indie Explorers")

	for metric, d := range dev.PerMetric {
		assert.Equal(t, 0.0, d, metric)
	}
	assert.Equal(t, 0.0, dev.UniqueScore)
}

func TestClusterDeviationSigned(t *testing.T) {
	audio := clusterBaselines["Indie Explorers"]
	audio.Energy += 0.3
	dev := ClusterDeviation(audio, "Indie Explorers")

	assert.InDelta(t, 0.3, dev.PerMetric["energy"], 1e-9)
	assert.Greater(t, dev.UniqueScore, 0.0)
}

func TestGenreDistributionWeightsByTrackArtists(t *testing.T) {
	artists := map[string]snapshot.Artist{
		"a": {ID: "a", Genres: []string{"pop"}},
		"b": {ID: "b", Genres: []string{"rock"}},
	}
	tracks := []snapshot.Track{
		{ID: "t1", Artists: []snapshot.ArtistRef{{ID: "a"}}},
		{ID: "t2", Artists: []snapshot.ArtistRef{{ID: "a"}}},
		{ID: "t3", Artists: []snapshot.ArtistRef{{ID: "b"}}},
	}

	dist := GenreDistribution(tracks, artists)
	assert.InDelta(t, 2.0/3.0, dist["pop"], 1e-9)
	assert.InDelta(t, 1.0/3.0, dist["rock"], 1e-9)
}

func TestBuildReport(t *testing.T) {
	snap := &snapshot.Snapshot{
		TopTracksShort:  []snapshot.Track{{ID: "s", Artists: []snapshot.ArtistRef{{ID: "a"}}}},
		TopTracksMedium: []snapshot.Track{{ID: "m", Artists: []snapshot.ArtistRef{{ID: "a"}}}},
		TopTracksLong:   []snapshot.Track{{ID: "l", Artists: []snapshot.ArtistRef{{ID: "b"}}}},
		Artists: []snapshot.Artist{
			{ID: "a", Genres: []string{"pop"}},
			{ID: "b", Genres: []string{"rock"}},
		},
	}
	f := features.FeatureSet{
		Audio: snapshot.AudioFeatures{Valence: 0.8, Energy: 0.8},
	}

	report := Build(snap, f, "Indie Explorers")
	assert.Equal(t, "Indie Explorers", report.ClusterLabel)
	assert.Equal(t, MoodEnergeticHappy, report.Mood.Label)
	// Full swap from rock to pop.
	assert.Equal(t, 0.0, report.Evolution.StabilityScore)
	assert.Len(t, report.Evolution.RisingGenres, 1)
	assert.Len(t, report.Evolution.FallingGenres, 1)
	// No track carries audio data, so the mood section is defaults.
	assert.False(t, report.AudioMeasured)
}

func TestBuildReportMarksMeasuredAudio(t *testing.T) {
	snap := &snapshot.Snapshot{
		TopTracksMedium: []snapshot.Track{
			{ID: "m", Audio: &snapshot.AudioFeatures{Valence: 0.7, Energy: 0.7}},
		},
	}

	report := Build(snap, features.FeatureSet{}, "Indie Explorers")
	assert.True(t, report.AudioMeasured)
}
