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

// Package catalog talks to the upstream music catalog (the Spotify Web
// API). All calls are idempotent reads. Callers are expected to treat
// per-item failures as skippable; the recommendation engine in particular
// degrades gracefully when individual lookups fail.
package catalog

import (
	"context"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Catalog is the read surface the recommendation and update paths need.
// Implementations must be safe for sequential reuse within a run.
type Catalog interface {
	// ArtistTopTracks returns an artist's top tracks scoped to a country.
	ArtistTopTracks(ctx context.Context, artistID, country string) ([]snapshot.Track, error)

	// ArtistAlbums lists up to limit of an artist's albums.
	ArtistAlbums(ctx context.Context, artistID string, limit int) ([]snapshot.Album, error)

	// AlbumTracks lists up to limit tracks of an album. The returned tracks
	// are simplified (no popularity); use Track for the full record.
	AlbumTracks(ctx context.Context, albumID string, limit int) ([]snapshot.Track, error)

	// Track fetches a single full track record.
	Track(ctx context.Context, trackID string) (snapshot.Track, error)

	// Artist fetches a single artist record, including genre tags.
	Artist(ctx context.Context, artistID string) (snapshot.Artist, error)
}

// Time ranges for top-track windows.
const (
	RangeShort  = "short_term"
	RangeMedium = "medium_term"
	RangeLong   = "long_term"
)
