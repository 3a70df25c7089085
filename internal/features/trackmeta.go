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
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// extractTrackMetadata summarizes popularity, duration, and release-year
// preference over the medium-term window.
func extractTrackMetadata(s *snapshot.Snapshot, now time.Time) TrackMetadata {
	medium := s.TopTracksMedium
	return TrackMetadata{
		AvgPopularity:      avgPopularity(medium),
		AvgDurationMinutes: avgDurationMinutes(medium),
		TrackAgePreference: trackAgePreference(medium, now),
	}
}

// avgPopularity defaults to 50 when the window is empty.
func avgPopularity(tracks []snapshot.Track) float64 {
	if len(tracks) == 0 {
		return 50
	}
	pops := make([]float64, len(tracks))
	for i, t := range tracks {
		pops[i] = float64(t.Popularity)
	}
	return round2(stat.Mean(pops, nil))
}

// avgDurationMinutes defaults to 3.5 when the window is empty.
func avgDurationMinutes(tracks []snapshot.Track) float64 {
	if len(tracks) == 0 {
		return 3.5
	}
	minutes := make([]float64, len(tracks))
	for i, t := range tracks {
		minutes[i] = float64(t.DurationMs) / 60000.0
	}
	return round2(stat.Mean(minutes, nil))
}

// trackAgePreference buckets the mean release year: within 2 years of now is
// "new", within 10 is "mixed", older is "classic". Release dates may be
// year-only, year-month, or a full date; only the leading year matters.
// Defaults to "mixed" when no release years parse.
func trackAgePreference(tracks []snapshot.Track, now time.Time) string {
	var years []float64
	for _, t := range tracks {
		year, ok := releaseYear(t.Album.ReleaseDate)
		if !ok {
			continue
		}
		years = append(years, float64(year))
	}
	if len(years) == 0 {
		return AgeMixed
	}

	avgYear := stat.Mean(years, nil)
	currentYear := float64(now.Year())
	switch {
	case avgYear >= currentYear-2:
		return AgeNew
	case avgYear >= currentYear-10:
		return AgeMixed
	default:
		return AgeClassic
	}
}

func releaseYear(releaseDate string) (int, bool) {
	if releaseDate == "" {
		return 0, false
	}
	leading, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(leading)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
