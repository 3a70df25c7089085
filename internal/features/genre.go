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
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

const (
	// Distribution and diversity consider at most this many genres.
	maxDistributionGenres = 10
	topGenreCount         = 5

	// 20+ distinct genres counts as maximally niche.
	uniquenessCeiling = 20
)

// extractGenre derives the genre profile from the genre tags of every known
// artist in the snapshot. Track-relevance weighting is a separate concern
// handled by the insights package.
func extractGenre(s *snapshot.Snapshot) Genre {
	counts := make(map[string]int)
	total := 0
	for _, artist := range s.Artists {
		for _, g := range artist.Genres {
			counts[g]++
			total++
		}
	}

	if total == 0 {
		return Genre{
			Distribution: map[string]float64{},
			Diversity:    0,
			TopGenres:    nil,
			Uniqueness:   0.5,
		}
	}

	ranked := rankGenres(counts)

	return Genre{
		Distribution:      genreDistribution(ranked, counts),
		Diversity:         genreDiversity(counts, total),
		TopGenres:         topGenres(ranked),
		Uniqueness:        round3(math.Min(float64(len(counts))/uniquenessCeiling, 1.0)),
		TotalUniqueGenres: len(counts),
	}
}

// rankGenres orders genres by count descending, name ascending on ties, so
// extraction is deterministic.
func rankGenres(counts map[string]int) []string {
	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	return genres
}

// genreDistribution keeps the top 10 genres and normalizes their counts so
// the returned shares sum to 1.
func genreDistribution(ranked []string, counts map[string]int) map[string]float64 {
	kept := ranked
	if len(kept) > maxDistributionGenres {
		kept = kept[:maxDistributionGenres]
	}

	total := 0
	for _, g := range kept {
		total += counts[g]
	}

	dist := make(map[string]float64, len(kept))
	for _, g := range kept {
		dist[g] = float64(counts[g]) / float64(total)
	}
	return dist
}

// genreDiversity is the Shannon entropy of the genre frequencies, normalized
// by the maximum entropy of min(distinct, 10) genres.
func genreDiversity(counts map[string]int, total int) float64 {
	probs := make([]float64, 0, len(counts))
	for _, c := range counts {
		probs = append(probs, float64(c)/float64(total))
	}

	maxEntropy := math.Log(math.Min(float64(len(counts)), maxDistributionGenres))
	if maxEntropy == 0 {
		return 0
	}
	return round3(clamp01(stat.Entropy(probs) / maxEntropy))
}

func topGenres(ranked []string) []string {
	if len(ranked) > topGenreCount {
		ranked = ranked[:topGenreCount]
	}
	return ranked
}
