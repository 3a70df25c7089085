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
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

const windowLimit = 50

// FetchSnapshot assembles a complete listening snapshot for the
// authenticated user: the three top-track windows, recent play history, the
// full artist records behind all of them, and the library counts. The count
// lookups are best-effort; a failure there logs and defaults to zero rather
// than failing the whole fetch.
func (c *Client) FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	fmt.Println("Fetching listening data from catalog...")

	short, err := c.TopTracks(ctx, RangeShort, windowLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching short-term tracks: %w", err)
	}
	medium, err := c.TopTracks(ctx, RangeMedium, windowLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching medium-term tracks: %w", err)
	}
	long, err := c.TopTracks(ctx, RangeLong, windowLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching long-term tracks: %w", err)
	}
	recent, err := c.RecentlyPlayed(ctx, windowLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching recent plays: %w", err)
	}

	liked, err := c.SavedTrackCount(ctx)
	if err != nil {
		fmt.Printf("Could not fetch saved track count: %v\n", err)
	}
	followed, err := c.FollowedArtistCount(ctx)
	if err != nil {
		fmt.Printf("Could not fetch followed artist count: %v\n", err)
	}

	artistIDs := collectArtistIDs(short, medium, long, recent)
	fmt.Printf("Fetching %d artist records...\n", len(artistIDs))
	artists, err := c.Artists(ctx, artistIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching artists: %w", err)
	}

	return &snapshot.Snapshot{
		TopTracksShort:       short,
		TopTracksMedium:      medium,
		TopTracksLong:        long,
		RecentlyPlayed:       recent,
		Artists:              artists,
		TotalLikedTracks:     liked,
		TotalFollowedArtists: followed,
		FetchedAt:            time.Now().UTC(),
	}, nil
}

// collectArtistIDs gathers the distinct artist ids mentioned across all
// track windows, in first-seen order.
func collectArtistIDs(short, medium, long []snapshot.Track, recent []snapshot.PlayItem) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(tracks []snapshot.Track) {
		for _, t := range tracks {
			for _, a := range t.Artists {
				if a.ID == "" {
					continue
				}
				if _, ok := seen[a.ID]; ok {
					continue
				}
				seen[a.ID] = struct{}{}
				ids = append(ids, a.ID)
			}
		}
	}
	add(short)
	add(medium)
	add(long)
	for _, item := range recent {
		add([]snapshot.Track{item.Track})
	}
	return ids
}
