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

// Package insights computes the analytical reports over a taste profile:
// genre entropy, mood classification, deviation from the archetype
// baseline, and short-vs-long-term genre evolution.
package insights

import (
	"math"
	"sort"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Report is the full insight output for one user.
type Report struct {
	ClusterLabel string      `json:"cluster_label" yaml:"cluster_label"`
	EntropyScore float64     `json:"entropy_score" yaml:"entropy_score"`
	Mood         MoodProfile `json:"mood" yaml:"mood"`
	Deviation    Deviation   `json:"deviation" yaml:"deviation"`
	Evolution    Evolution   `json:"evolution" yaml:"evolution"`

	// AudioMeasured is false when the catalog served no audio features, in
	// which case the mood and deviation sections are built from the neutral
	// defaults rather than measurements.
	AudioMeasured bool `json:"audio_measured" yaml:"audio_measured"`
}

// GenreDistribution weights genres by how often they appear across a track
// window's artists, a track-relevance-weighted variant of the global
// artist-list distribution used during feature extraction. Shares sum to 1
// when non-empty.
func GenreDistribution(tracks []snapshot.Track, artists map[string]snapshot.Artist) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, t := range tracks {
		for _, ref := range t.Artists {
			artist, ok := artists[ref.ID]
			if !ok {
				continue
			}
			for _, g := range artist.Genres {
				counts[g]++
				total++
			}
		}
	}
	if total == 0 {
		return map[string]float64{}
	}
	dist := make(map[string]float64, len(counts))
	for g, c := range counts {
		dist[g] = float64(c) / float64(total)
	}
	return dist
}

// ShannonEntropy is -Σ p·log2(p) over a genre distribution. Accepts either
// shares (summing to 1) or raw counts, normalizing the latter. Higher means
// a more complex taste; typical values run 0-4.
func ShannonEntropy(distribution map[string]float64) float64 {
	if len(distribution) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range distribution {
		total += v
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, v := range distribution {
		p := v
		if total > 1.01 {
			p = v / total
		}
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	return math.Round(entropy*100) / 100
}

// GenreChange is one genre's share delta between two windows.
type GenreChange struct {
	Genre  string  `json:"genre" yaml:"genre"`
	Change float64 `json:"change" yaml:"change"`
}

// Evolution describes how taste shifted from the long-term window to the
// short-term one.
type Evolution struct {
	RisingGenres   []GenreChange `json:"rising_genres" yaml:"rising_genres"`
	FallingGenres  []GenreChange `json:"falling_genres" yaml:"falling_genres"`
	StabilityScore float64       `json:"stability_score" yaml:"stability_score"`
	TotalChange    float64       `json:"total_change_magnitude" yaml:"total_change_magnitude"`
}

// evolutionThreshold is the minimum share change that counts as a rise or
// fall.
const evolutionThreshold = 0.05

// AnalyzeEvolution compares the short-term genre distribution against the
// long-term one. Stability is 1 at no change and 0 at a complete swap
// (total absolute change of 2).
func AnalyzeEvolution(shortTerm, longTerm map[string]float64) Evolution {
	all := make(map[string]struct{})
	for g := range shortTerm {
		all[g] = struct{}{}
	}
	for g := range longTerm {
		all[g] = struct{}{}
	}

	var rising, falling []GenreChange
	totalChange := 0.0
	for g := range all {
		diff := shortTerm[g] - longTerm[g]
		totalChange += math.Abs(diff)
		if diff > evolutionThreshold {
			rising = append(rising, GenreChange{Genre: g, Change: math.Round(diff*1000) / 1000})
		} else if diff < -evolutionThreshold {
			falling = append(falling, GenreChange{Genre: g, Change: math.Round(diff*1000) / 1000})
		}
	}

	sort.Slice(rising, func(i, j int) bool {
		if rising[i].Change != rising[j].Change {
			return rising[i].Change > rising[j].Change
		}
		return rising[i].Genre < rising[j].Genre
	})
	sort.Slice(falling, func(i, j int) bool {
		if falling[i].Change != falling[j].Change {
			return falling[i].Change < falling[j].Change
		}
		return falling[i].Genre < falling[j].Genre
	})
	if len(rising) > 3 {
		rising = rising[:3]
	}
	if len(falling) > 3 {
		falling = falling[:3]
	}

	return Evolution{
		RisingGenres:   rising,
		FallingGenres:  falling,
		StabilityScore: math.Round(math.Max(0, 1-totalChange/2)*100) / 100,
		TotalChange:    math.Round(totalChange*100) / 100,
	}
}
