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
package recommend

import (
	"sort"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Catalog artist ids are always 22 characters; anything else is a local or
// malformed id and useless as a seed.
const seedIDLength = 22

const maxSeeds = 10

// ExtractSeedArtists picks up to 10 seed artist ids from the medium-term
// window, most frequently mentioned first. Ties keep first-mention order so
// seed extraction is deterministic.
func ExtractSeedArtists(medium []snapshot.Track) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for _, t := range medium {
		for _, a := range t.Artists {
			if len(a.ID) != seedIDLength {
				continue
			}
			if _, ok := counts[a.ID]; !ok {
				firstSeen[a.ID] = len(order)
				order = append(order, a.ID)
			}
			counts[a.ID]++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxSeeds {
		order = order[:maxSeeds]
	}
	return order
}
