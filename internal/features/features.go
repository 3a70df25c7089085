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

// Package features turns a listening snapshot into the structured taste
// profile used by clustering, recommendation, and insights. Extraction is
// pure and deterministic: the same snapshot always yields the same
// FeatureSet, and missing data resolves to documented defaults.
package features

import (
	"fmt"
	"math"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Extract computes the full FeatureSet for a snapshot. It never fails: an
// all-empty snapshot produces the documented neutral defaults.
func Extract(s *snapshot.Snapshot) FeatureSet {
	return extractAt(s, time.Now())
}

func extractAt(s *snapshot.Snapshot, now time.Time) FeatureSet {
	return FeatureSet{
		Version:       SchemaVersion,
		Behavioral:    extractBehavioral(s),
		Temporal:      extractTemporal(s),
		TrackMetadata: extractTrackMetadata(s, now),
		Genre:         extractGenre(s),
		Audio:         extractAudio(s),
	}
}

// extractAudio averages the per-track audio features over the medium-term
// window. Tracks without audio data are skipped; if none have it, every axis
// defaults to the neutral 0.5.
func extractAudio(s *snapshot.Snapshot) snapshot.AudioFeatures {
	var sum snapshot.AudioFeatures
	n := 0
	for _, t := range s.TopTracksMedium {
		if t.Audio == nil {
			continue
		}
		sum.Valence += t.Audio.Valence
		sum.Energy += t.Audio.Energy
		sum.Danceability += t.Audio.Danceability
		sum.Acousticness += t.Audio.Acousticness
		sum.Instrumentalness += t.Audio.Instrumentalness
		n++
	}
	if n == 0 {
		return snapshot.AudioFeatures{
			Valence:          0.5,
			Energy:           0.5,
			Danceability:     0.5,
			Acousticness:     0.5,
			Instrumentalness: 0.5,
		}
	}
	d := float64(n)
	return snapshot.AudioFeatures{
		Valence:          round3(sum.Valence / d),
		Energy:           round3(sum.Energy / d),
		Danceability:     round3(sum.Danceability / d),
		Acousticness:     round3(sum.Acousticness / d),
		Instrumentalness: round3(sum.Instrumentalness / d),
	}
}

// Summarize produces the human-readable profile gloss.
func Summarize(f FeatureSet) Summary {
	top := f.Genre.TopGenres
	if len(top) > 5 {
		top = top[:5]
	}
	return Summary{
		ListeningStyle: listeningStyle(f.Behavioral),
		PeakTime:       peakTimeDescription(f.Temporal.PeakListeningHour),
		MusicTaste:     tasteDescription(f.TrackMetadata),
		TopGenres:      top,
		DiversityLevel: diversityLevel(f.Genre.Diversity),
	}
}

func listeningStyle(b Behavioral) string {
	switch {
	case b.ExplorationScore > 0.7:
		return "Explorer - Always discovering new music"
	case b.TrackLoyalty > 0.5:
		return "Loyalist - Sticks to favorites"
	case b.RepeatRate > 0.5:
		return "Repeater - Loves replaying tracks"
	default:
		return "Balanced - Mix of old and new"
	}
}

func peakTimeDescription(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return fmt.Sprintf("Morning listener (%d:00)", hour)
	case hour >= 12 && hour < 17:
		return fmt.Sprintf("Afternoon listener (%d:00)", hour)
	case hour >= 17 && hour < 22:
		return fmt.Sprintf("Evening listener (%d:00)", hour)
	default:
		return fmt.Sprintf("Night owl (%d:00)", hour)
	}
}

func tasteDescription(m TrackMetadata) string {
	switch {
	case m.TrackAgePreference == AgeNew && m.AvgPopularity > 70:
		return "Trendsetter - Loves current hits"
	case m.TrackAgePreference == AgeClassic && m.AvgPopularity < 50:
		return "Vintage connoisseur - Prefers classics"
	case m.AvgPopularity > 70:
		return "Mainstream - Follows popular music"
	default:
		return "Indie explorer - Discovers hidden gems"
	}
}

func diversityLevel(diversity float64) string {
	switch {
	case diversity > 0.8:
		return "Very diverse"
	case diversity > 0.6:
		return "Moderately diverse"
	default:
		return "Focused taste"
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
