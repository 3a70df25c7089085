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
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// extractTemporal computes time-of-day and weekday patterns from the
// recently-played timestamps. Malformed timestamps are skipped, not fatal.
func extractTemporal(s *snapshot.Snapshot) Temporal {
	var playTimes []time.Time
	for _, item := range s.RecentlyPlayed {
		if item.PlayedAt == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, item.PlayedAt)
		if err != nil {
			continue
		}
		playTimes = append(playTimes, t)
	}

	return Temporal{
		PeakListeningHour:     peakListeningHour(playTimes),
		WeekendRatio:          weekendRatio(playTimes),
		ListeningTimeVariance: listeningTimeVariance(playTimes),
	}
}

// peakListeningHour is the mode of the hour-of-day. Defaults to noon when no
// timestamps parse. Ties resolve to the earliest hour so extraction stays
// deterministic.
func peakListeningHour(playTimes []time.Time) int {
	if len(playTimes) == 0 {
		return 12
	}
	var counts [24]int
	for _, t := range playTimes {
		counts[t.Hour()]++
	}
	peak := 0
	for hour, count := range counts {
		if count > counts[peak] {
			peak = hour
		}
	}
	return peak
}

// weekendRatio counts Saturday and Sunday plays against the total. 0.5 when
// there are no plays.
func weekendRatio(playTimes []time.Time) float64 {
	if len(playTimes) == 0 {
		return 0.5
	}
	weekend := 0
	for _, t := range playTimes {
		switch t.Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		}
	}
	return round3(clamp01(float64(weekend) / float64(len(playTimes))))
}

// listeningTimeVariance is the population standard deviation of play hours
// normalized by 7.0 (roughly the max for a 24-hour spread) and capped at 1.
// 0.5 when fewer than two samples exist.
func listeningTimeVariance(playTimes []time.Time) float64 {
	if len(playTimes) < 2 {
		return 0.5
	}
	hours := make([]float64, len(playTimes))
	for i, t := range playTimes {
		hours[i] = float64(t.Hour())
	}
	stdDev := stat.PopStdDev(hours, nil)
	return round3(clamp01(stdDev / 7.0))
}
