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

// Package recommend generates candidate tracks from seed artists. The seed
// artists' own catalogs are the discovery pool; candidates get re-ranked by
// genre overlap with the user's taste, deduplicated, shuffled for variety,
// and truncated. Per-artist catalog failures degrade to an album-walk
// fallback and are never fatal.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/ademuri/spotify-taste-tools/internal/catalog"
	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// ErrNoSeeds means no seed artists were supplied; the caller should treat
// this as "not enough data", not as a system fault.
var ErrNoSeeds = errors.New("no artist seeds available")

const (
	tracksPerSeed     = 3
	fallbackAlbums    = 2
	fallbackPerAlbum  = 1
	albumTrackLimit   = 2
	defaultResultSize = 20
)

// Candidate wraps a recommended track with its genre-match score and a
// human-readable explanation. The score is scratch state for one run; it is
// never persisted.
type Candidate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Artists     []snapshot.ArtistRef `json:"artists"`
	AlbumName   string              `json:"album_name"`
	AlbumImage  string              `json:"album_image,omitempty"`
	Popularity  int                 `json:"popularity"`
	PreviewURL  string              `json:"preview_url,omitempty"`
	URI         string              `json:"uri,omitempty"`
	ExternalURL string              `json:"external_url,omitempty"`

	GenreScore  float64 `json:"genre_score"`
	Explanation string  `json:"explanation,omitempty"`
}

// SeedsUsed reports how many signals seeded a run.
type SeedsUsed struct {
	Artists int `json:"artists"`
	Genres  int `json:"genres"`
}

// Result is one recommendation run.
type Result struct {
	Cluster   string      `json:"cluster"`
	SeedsUsed SeedsUsed   `json:"seeds_used"`
	Strategy  string      `json:"strategy"`
	Tracks    []Candidate `json:"tracks"`
}

// Engine generates recommendations against a catalog. The random source is
// injectable so tests can fix the shuffle.
type Engine struct {
	Catalog catalog.Catalog
	Country string
	Rand    *rand.Rand

	// ClusterFilter enables popularity gating per archetype. The gate always
	// degrades to a no-op rather than emptying the candidate pool.
	ClusterFilter bool
}

// NewEngine returns an engine with an unseeded shuffle, the production
// configuration.
func NewEngine(cat catalog.Catalog, country string) *Engine {
	return &Engine{
		Catalog: cat,
		Country: country,
		Rand:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// Generate runs the full pipeline for the given seeds. It returns ErrNoSeeds
// when the seed list is empty; every other upstream failure is handled by
// degrading to whatever candidates were gathered.
func (e *Engine) Generate(ctx context.Context, seeds []string, f features.FeatureSet, clusterLabel string, limit int) (*Result, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if limit <= 0 {
		limit = defaultResultSize
	}
	if len(seeds) > maxSeeds {
		seeds = seeds[:maxSeeds]
	}

	fmt.Printf("Generating recommendations for cluster: %s\n", clusterLabel)
	candidates := e.gatherCandidates(ctx, seeds)
	fmt.Printf("Found %d candidate tracks from %d seed artists\n", len(candidates), len(seeds))

	if e.ClusterFilter {
		candidates = filterByCluster(candidates, clusterLabel)
	}

	scored := e.applyGenreBoost(ctx, candidates, f.Genre.Distribution)
	scored = dedupe(scored)

	e.Rand.Shuffle(len(scored), func(i, j int) {
		scored[i], scored[j] = scored[j], scored[i]
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	tracks := make([]Candidate, len(scored))
	for i, sc := range scored {
		tracks[i] = newCandidate(sc.track, sc.score, clusterLabel)
	}

	return &Result{
		Cluster: clusterLabel,
		SeedsUsed: SeedsUsed{
			Artists: len(seeds),
			Genres:  len(f.Genre.Distribution),
		},
		Strategy: fmt.Sprintf("Seed artist catalogs + genre boost for %s", clusterLabel),
		Tracks:   tracks,
	}, nil
}

type scoredTrack struct {
	track snapshot.Track
	score float64
}

// gatherCandidates walks the seed artists' top tracks, falling back to an
// album walk when the top-tracks lookup fails. Failures at any rung log and
// skip; a run only comes back empty if every lookup failed.
func (e *Engine) gatherCandidates(ctx context.Context, seeds []string) []snapshot.Track {
	var candidates []snapshot.Track
	for _, artistID := range seeds {
		top, err := e.Catalog.ArtistTopTracks(ctx, artistID, e.Country)
		if err == nil {
			if len(top) > tracksPerSeed {
				top = top[:tracksPerSeed]
			}
			candidates = append(candidates, top...)
			continue
		}
		fmt.Printf("Couldn't get top tracks for artist %s: %v\n", artistID, err)

		albums, err := e.Catalog.ArtistAlbums(ctx, artistID, fallbackAlbums)
		if err != nil {
			fmt.Printf("Album fallback failed for artist %s: %v\n", artistID, err)
			continue
		}
		for _, album := range albums {
			albumTracks, err := e.Catalog.AlbumTracks(ctx, album.ID, albumTrackLimit)
			if err != nil {
				fmt.Printf("Couldn't list tracks for album %s: %v\n", album.ID, err)
				continue
			}
			taken := 0
			for _, t := range albumTracks {
				if taken >= fallbackPerAlbum {
					break
				}
				// Album listings are simplified records; fetch the full
				// track for popularity and album art.
				full, err := e.Catalog.Track(ctx, t.ID)
				if err != nil {
					fmt.Printf("Couldn't fetch track %s: %v\n", t.ID, err)
					continue
				}
				candidates = append(candidates, full)
				taken++
			}
		}
	}
	return candidates
}

// applyGenreBoost scores every candidate by Jaccard similarity between the
// user's genre set and the candidate's artist genres, then sorts descending.
// With no user genre data the original order is kept (all scores zero).
func (e *Engine) applyGenreBoost(ctx context.Context, candidates []snapshot.Track, userGenres map[string]float64) []scoredTrack {
	scored := make([]scoredTrack, len(candidates))
	for i, t := range candidates {
		scored[i] = scoredTrack{track: t}
	}
	if len(userGenres) == 0 {
		return scored
	}

	userSet := make(map[string]struct{}, len(userGenres))
	for g := range userGenres {
		userSet[g] = struct{}{}
	}

	genreCache := make(map[string][]string)
	for i := range scored {
		trackGenres := make(map[string]struct{})
		for _, ref := range scored[i].track.Artists {
			genres, ok := genreCache[ref.ID]
			if !ok {
				artist, err := e.Catalog.Artist(ctx, ref.ID)
				if err != nil {
					genreCache[ref.ID] = nil
					continue
				}
				genres = artist.Genres
				genreCache[ref.ID] = genres
			}
			for _, g := range genres {
				trackGenres[g] = struct{}{}
			}
		}
		scored[i].score = jaccard(userSet, trackGenres)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// jaccard is |A ∩ B| / |A ∪ B|, 0 when either set is empty.
func jaccard(a map[string]struct{}, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for g := range a {
		if _, ok := b[g]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// dedupe drops repeated track ids, keeping the first (highest-scored after
// the boost sort) occurrence.
func dedupe(scored []scoredTrack) []scoredTrack {
	seen := make(map[string]struct{}, len(scored))
	out := scored[:0]
	for _, sc := range scored {
		if _, ok := seen[sc.track.ID]; ok {
			continue
		}
		seen[sc.track.ID] = struct{}{}
		out = append(out, sc)
	}
	return out
}

// filterByCluster gates candidates by the popularity range an archetype
// prefers. If the gate would remove everything, the unfiltered list is
// returned so filtering can never produce zero results.
func filterByCluster(candidates []snapshot.Track, clusterLabel string) []snapshot.Track {
	var keep func(popularity int) bool
	switch clusterLabel {
	case "Mainstream Pop Lovers":
		keep = func(p int) bool { return p >= 40 }
	case "Indie Explorers":
		keep = func(p int) bool { return p <= 80 }
	case "Niche Music Enthusiasts":
		keep = func(p int) bool { return p <= 60 }
	case "Classic Music Fans":
		keep = func(p int) bool { return p >= 20 }
	default:
		return candidates
	}

	var filtered []snapshot.Track
	for _, t := range candidates {
		if keep(t.Popularity) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 && len(candidates) > 0 {
		fmt.Printf("Cluster filter for %s removed all tracks, keeping unfiltered list\n", clusterLabel)
		return candidates
	}
	return filtered
}

func newCandidate(t snapshot.Track, score float64, clusterLabel string) Candidate {
	c := Candidate{
		ID:          t.ID,
		Name:        t.Name,
		Artists:     t.Artists,
		AlbumName:   t.Album.Name,
		AlbumImage:  snapshot.FirstImageURL(t.Album.Images),
		Popularity:  t.Popularity,
		PreviewURL:  t.PreviewURL,
		URI:         t.URI,
		ExternalURL: t.ExternalURL,
		GenreScore:  score,
	}
	c.Explanation = explain(c)
	return c
}
