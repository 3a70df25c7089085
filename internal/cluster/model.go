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

// Package cluster assigns a feature set to one of five named taste
// archetypes. No multi-user corpus exists at bootstrap, so the model is fit
// once on a synthetic prior: 50 noisy points per archetype mean, k-means
// over the union. A fitted Model is immutable and safe for concurrent use.
package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/spotify-taste-tools/internal/features"
)

const (
	vectorDim         = 12
	pointsPerArchtype = 50
	syntheticNoise    = 0.1
	syntheticSeed     = 42
	maxIterations     = 100
)

// Model is a fitted centroid model. Construct with New; do not mutate after.
type Model struct {
	// Standardization parameters, fit on the synthetic prior.
	means, stds [vectorDim]float64

	// Scaled centroids and the archetype id each one maps to. Centroids are
	// labeled by their nearest synthetic archetype mean rather than by raw
	// k-means index, so label alignment does not depend on iteration order.
	centroids [NumArchetypes][vectorDim]float64
	labels    [NumArchetypes]int
}

// New fits the model on the synthetic archetype prior. The prior generation
// is seeded, so every process fits the identical model.
func New() *Model {
	rng := rand.New(rand.NewSource(syntheticSeed))

	points := make([][vectorDim]float64, 0, NumArchetypes*pointsPerArchtype)
	for a := 0; a < NumArchetypes; a++ {
		for i := 0; i < pointsPerArchtype; i++ {
			var p [vectorDim]float64
			for d := 0; d < vectorDim; d++ {
				p[d] = archetypeMeans[a][d] + rng.NormFloat64()*syntheticNoise
			}
			points = append(points, p)
		}
	}

	m := &Model{}
	m.fitScaler(points)

	scaled := make([][vectorDim]float64, len(points))
	for i, p := range points {
		scaled[i] = m.scale(p)
	}
	m.fitCentroids(scaled, rng)
	m.labelCentroids()
	return m
}

// Predict returns the archetype id and name for a feature set.
func (m *Model) Predict(f features.FeatureSet) (int, string) {
	v := m.scale(Project(f))

	best := 0
	bestDist := math.Inf(1)
	for i := range m.centroids {
		d := floats.Distance(v[:], m.centroids[i][:], 2)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	id := m.labels[best]
	return id, Name(id)
}

// Describe returns the static description for an archetype id.
func (m *Model) Describe(id int) string {
	if id < 0 || id >= NumArchetypes {
		return "Your music taste is unique!"
	}
	return archetypeDescriptions[id]
}

// Project flattens a FeatureSet into the 12-dimensional vector the model
// operates on. Hour, popularity, and duration are normalized to roughly
// [0, 1]; the remaining fields already are.
func Project(f features.FeatureSet) [vectorDim]float64 {
	return [vectorDim]float64{
		f.Behavioral.RepeatRate,
		f.Behavioral.ExplorationScore,
		f.Behavioral.ArtistDiversity,
		f.Behavioral.TrackLoyalty,
		f.Behavioral.ListeningConsistency,
		float64(f.Temporal.PeakListeningHour) / 24.0,
		f.Temporal.WeekendRatio,
		f.Temporal.ListeningTimeVariance,
		f.TrackMetadata.AvgPopularity / 100.0,
		f.TrackMetadata.AvgDurationMinutes / 10.0,
		f.Genre.Diversity,
		f.Genre.Uniqueness,
	}
}

func (m *Model) fitScaler(points [][vectorDim]float64) {
	col := make([]float64, len(points))
	for d := 0; d < vectorDim; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		m.means[d] = stat.Mean(col, nil)
		m.stds[d] = stat.PopStdDev(col, nil)
		if m.stds[d] == 0 {
			m.stds[d] = 1
		}
	}
}

func (m *Model) scale(p [vectorDim]float64) [vectorDim]float64 {
	var out [vectorDim]float64
	for d := 0; d < vectorDim; d++ {
		out[d] = (p[d] - m.means[d]) / m.stds[d]
	}
	return out
}

// fitCentroids runs Lloyd's algorithm, starting from the scaled archetype
// means so the fit converges in a handful of iterations.
func (m *Model) fitCentroids(points [][vectorDim]float64, rng *rand.Rand) {
	for i := range m.centroids {
		m.centroids[i] = m.scale(archetypeMeans[i])
	}

	assignments := make([]int, len(points))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for c := range m.centroids {
				d := floats.Distance(p[:], m.centroids[c][:], 2)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		var sums [NumArchetypes][vectorDim]float64
		var counts [NumArchetypes]int
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			for d := 0; d < vectorDim; d++ {
				sums[c][d] += p[d]
			}
		}
		for c := range m.centroids {
			if counts[c] == 0 {
				// Re-seed an empty cluster at a random point.
				m.centroids[c] = points[rng.Intn(len(points))]
				continue
			}
			for d := 0; d < vectorDim; d++ {
				m.centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}
}

// labelCentroids maps each centroid to the archetype whose scaled synthetic
// mean is nearest.
func (m *Model) labelCentroids() {
	for c := range m.centroids {
		best := 0
		bestDist := math.Inf(1)
		for a := 0; a < NumArchetypes; a++ {
			scaledMean := m.scale(archetypeMeans[a])
			d := floats.Distance(m.centroids[c][:], scaledMean[:], 2)
			if d < bestDist {
				bestDist = d
				best = a
			}
		}
		m.labels[c] = best
	}
}
