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

import "github.com/ademuri/spotify-taste-tools/internal/snapshot"

// extractBehavioral computes the five behavioral ratios. Each tolerates
// empty input and returns its documented default instead of failing.
func extractBehavioral(s *snapshot.Snapshot) Behavioral {
	return Behavioral{
		RepeatRate:           repeatRate(s.RecentlyPlayed),
		ExplorationScore:     explorationScore(s.TopTracksShort, s.TopTracksLong),
		ArtistDiversity:      artistDiversity(s.TopTracksMedium),
		TrackLoyalty:         trackLoyalty(s.TopTracksMedium, s.RecentlyPlayed),
		ListeningConsistency: listeningConsistency(s.TopTracksShort, s.TopTracksMedium, s.TopTracksLong),
	}
}

// repeatRate is 1 - unique/total over recent plays. 0 when there are no
// recent plays.
func repeatRate(recent []snapshot.PlayItem) float64 {
	ids := recentTrackIDs(recent)
	if len(ids) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	return round3(clamp01(1 - float64(len(unique))/float64(len(ids))))
}

// explorationScore is the fraction of short-term favorites absent from the
// long-term window. 0.5 when either window is empty.
func explorationScore(short, long []snapshot.Track) float64 {
	shortIDs := trackIDSet(short)
	longIDs := trackIDSet(long)
	if len(shortIDs) == 0 || len(longIDs) == 0 {
		return 0.5
	}
	newTracks := 0
	for id := range shortIDs {
		if _, ok := longIDs[id]; !ok {
			newTracks++
		}
	}
	return round3(clamp01(float64(newTracks) / float64(len(shortIDs))))
}

// artistDiversity is the unique ratio over artist mentions in the
// medium-term window. 0 when there are no mentions.
func artistDiversity(medium []snapshot.Track) float64 {
	total := 0
	unique := make(map[string]struct{})
	for _, t := range medium {
		for _, a := range t.Artists {
			if a.ID == "" {
				continue
			}
			total++
			unique[a.ID] = struct{}{}
		}
	}
	if total == 0 {
		return 0
	}
	return round3(clamp01(float64(len(unique)) / float64(total)))
}

// trackLoyalty is the fraction of recent plays that land in the user's
// top-10 medium-term tracks. 0 when there are no recent plays.
func trackLoyalty(medium []snapshot.Track, recent []snapshot.PlayItem) float64 {
	top := medium
	if len(top) > 10 {
		top = top[:10]
	}
	topIDs := trackIDSet(top)

	recentIDs := recentTrackIDs(recent)
	if len(recentIDs) == 0 {
		return 0
	}
	hits := 0
	for _, id := range recentIDs {
		if _, ok := topIDs[id]; ok {
			hits++
		}
	}
	return round3(clamp01(float64(hits) / float64(len(recentIDs))))
}

// listeningConsistency averages the short→medium and medium→long overlap
// ratios. 0.5 when any window is empty.
func listeningConsistency(short, medium, long []snapshot.Track) float64 {
	shortIDs := trackIDSet(short)
	mediumIDs := trackIDSet(medium)
	longIDs := trackIDSet(long)
	if len(shortIDs) == 0 || len(mediumIDs) == 0 || len(longIDs) == 0 {
		return 0.5
	}

	shortMedium := float64(intersectionSize(shortIDs, mediumIDs)) / float64(len(shortIDs))
	mediumLong := float64(intersectionSize(mediumIDs, longIDs)) / float64(len(mediumIDs))
	return round3(clamp01((shortMedium + mediumLong) / 2))
}

func trackIDSet(tracks []snapshot.Track) map[string]struct{} {
	ids := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		if t.ID != "" {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

func recentTrackIDs(recent []snapshot.PlayItem) []string {
	var ids []string
	for _, item := range recent {
		if item.Track.ID != "" {
			ids = append(ids, item.Track.ID)
		}
	}
	return ids
}

func intersectionSize(a, b map[string]struct{}) int {
	n := 0
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}
