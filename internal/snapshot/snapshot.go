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

// Package snapshot defines the immutable listening-history snapshot that the
// feature, recommendation, and insight code reads. A snapshot is assembled
// once per update from the catalog and never mutated afterwards.
package snapshot

import "time"

// Snapshot is one user's listening history at one point in time.
type Snapshot struct {
	TopTracksShort  []Track    `json:"top_tracks_short"`
	TopTracksMedium []Track    `json:"top_tracks_medium"`
	TopTracksLong   []Track    `json:"top_tracks_long"`
	RecentlyPlayed  []PlayItem `json:"recently_played"`
	Artists         []Artist   `json:"artists"`

	TotalLikedTracks     int `json:"total_liked_songs"`
	TotalFollowedArtists int `json:"total_followed_artists"`

	FetchedAt time.Time `json:"fetched_at"`
}

// PlayItem is a single recently-played entry.
type PlayItem struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	Album       Album       `json:"album"`
	DurationMs  int         `json:"duration_ms"`
	Popularity  int         `json:"popularity"`
	PreviewURL  string      `json:"preview_url,omitempty"`
	URI         string      `json:"uri,omitempty"`
	ExternalURL string      `json:"external_url,omitempty"`

	// Audio is only present when the catalog still serves audio features
	// for the track.
	Audio *AudioFeatures `json:"audio_features,omitempty"`
}

// ArtistRef is the short artist reference embedded in track objects. Full
// artist records (with genres) live in Snapshot.Artists.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Images []Image  `json:"images,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// AudioFeatures are the five audio dimensions used by the mood and
// cluster-deviation insights. All values are in [0, 1].
type AudioFeatures struct {
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

// ArtistMap indexes the snapshot's full artist records by id.
func (s *Snapshot) ArtistMap() map[string]Artist {
	m := make(map[string]Artist, len(s.Artists))
	for _, a := range s.Artists {
		m[a.ID] = a
	}
	return m
}

// FirstImageURL returns the URL of the first image, or "" if there are none.
func FirstImageURL(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
