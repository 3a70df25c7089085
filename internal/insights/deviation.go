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
	"math"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Deviation measures how far a user's audio profile sits from their
// archetype's baseline. Positive values mean the user exceeds the baseline
// on that axis.
type Deviation struct {
	PerMetric   map[string]float64 `json:"deviations" yaml:"deviations"`
	UniqueScore float64            `json:"unique_score" yaml:"unique_score"`
}

// clusterBaselines are fixed per-archetype audio profiles. A fitted
// population would normally supply these; with no population available they
// are editorial constants.
var clusterBaselines = map[string]snapshot.AudioFeatures{
	"Mainstream Pop Lovers": {
		Acousticness: 0.2, Danceability: 0.7, Energy: 0.7, Instrumentalness: 0.0, Valence: 0.6,
	},
	"Indie Explorers": {
		Acousticness: 0.5, Danceability: 0.5, Energy: 0.5, Instrumentalness: 0.2, Valence: 0.4,
	},
	"Niche Music Enthusiasts": {
		Acousticness: 0.4, Danceability: 0.4, Energy: 0.4, Instrumentalness: 0.3, Valence: 0.3,
	},
	"Classic Music Fans": {
		Acousticness: 0.8, Danceability: 0.3, Energy: 0.3, Instrumentalness: 0.6, Valence: 0.2,
	},
	"Genre Diverse Listeners": {
		Acousticness: 0.5, Danceability: 0.6, Energy: 0.6, Instrumentalness: 0.1, Valence: 0.5,
	},
}

// ClusterDeviation compares a user's audio features against their
// archetype's baseline. An unknown label compares against a zero baseline.
func ClusterDeviation(audio snapshot.AudioFeatures, clusterLabel string) Deviation {
	baseline := clusterBaselines[clusterLabel]

	per := map[string]float64{
		"acousticness":     audio.Acousticness - baseline.Acousticness,
		"danceability":     audio.Danceability - baseline.Danceability,
		"energy":           audio.Energy - baseline.Energy,
		"instrumentalness": audio.Instrumentalness - baseline.Instrumentalness,
		"valence":          audio.Valence - baseline.Valence,
	}

	total := 0.0
	for _, d := range per {
		total += math.Abs(d)
	}
	unique := math.Min(1.0, total/float64(len(per))) * 2

	return Deviation{
		PerMetric:   per,
		UniqueScore: math.Round(unique*100) / 100,
	}
}
