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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// artistBatchSize is the API's maximum for the batched artist lookup.
const artistBatchSize = 50

// Client is an HTTP client for the Spotify Web API, authenticated with a
// user access token. Requests are rate limited and 5xx responses retried.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client using the given bearer token.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// apiError carries the HTTP status so retry logic can distinguish server
// errors from client errors.
type apiError struct {
	Status int
	Path   string
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("catalog: %s returned %d: %s", e.Path, e.Status, e.Body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}

			u := c.baseURL + path
			if len(query) > 0 {
				u += "?" + query.Encode()
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+c.token)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response for %s: %w", path, err)
			}
			if resp.StatusCode != http.StatusOK {
				return &apiError{Status: resp.StatusCode, Path: path, Body: string(body)}
			}
			return json.Unmarshal(body, out)
		},
		retry.RetryIf(func(err error) bool {
			if aerr, ok := err.(*apiError); ok {
				if aerr.Status/100 == 5 {
					fmt.Printf("catalog errored, retrying: %v\n", aerr)
					return true
				}
			}
			return false
		}),
		retry.Attempts(3),
	)
}

func (c *Client) ArtistTopTracks(ctx context.Context, artistID, country string) ([]snapshot.Track, error) {
	var resp struct {
		Tracks []wireTrack `json:"tracks"`
	}
	q := url.Values{"market": {country}}
	if err := c.get(ctx, "/artists/"+artistID+"/top-tracks", q, &resp); err != nil {
		return nil, fmt.Errorf("artist top tracks %q: %w", artistID, err)
	}
	return convertTracks(resp.Tracks), nil
}

func (c *Client) ArtistAlbums(ctx context.Context, artistID string, limit int) ([]snapshot.Album, error) {
	var resp struct {
		Items []wireAlbum `json:"items"`
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/artists/"+artistID+"/albums", q, &resp); err != nil {
		return nil, fmt.Errorf("artist albums %q: %w", artistID, err)
	}
	albums := make([]snapshot.Album, len(resp.Items))
	for i, a := range resp.Items {
		albums[i] = a.convert()
	}
	return albums, nil
}

func (c *Client) AlbumTracks(ctx context.Context, albumID string, limit int) ([]snapshot.Track, error) {
	var resp struct {
		Items []wireTrack `json:"items"`
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/albums/"+albumID+"/tracks", q, &resp); err != nil {
		return nil, fmt.Errorf("album tracks %q: %w", albumID, err)
	}
	return convertTracks(resp.Items), nil
}

func (c *Client) Track(ctx context.Context, trackID string) (snapshot.Track, error) {
	var resp wireTrack
	if err := c.get(ctx, "/tracks/"+trackID, nil, &resp); err != nil {
		return snapshot.Track{}, fmt.Errorf("track %q: %w", trackID, err)
	}
	return resp.convert(), nil
}

func (c *Client) Artist(ctx context.Context, artistID string) (snapshot.Artist, error) {
	var resp wireArtist
	if err := c.get(ctx, "/artists/"+artistID, nil, &resp); err != nil {
		return snapshot.Artist{}, fmt.Errorf("artist %q: %w", artistID, err)
	}
	return resp.convert(), nil
}

// Artists fetches full artist records in batches of 50.
func (c *Client) Artists(ctx context.Context, artistIDs []string) ([]snapshot.Artist, error) {
	var artists []snapshot.Artist
	for start := 0; start < len(artistIDs); start += artistBatchSize {
		end := start + artistBatchSize
		if end > len(artistIDs) {
			end = len(artistIDs)
		}

		var resp struct {
			Artists []wireArtist `json:"artists"`
		}
		q := url.Values{"ids": {strings.Join(artistIDs[start:end], ",")}}
		if err := c.get(ctx, "/artists", q, &resp); err != nil {
			return nil, fmt.Errorf("artist batch: %w", err)
		}
		for _, a := range resp.Artists {
			artists = append(artists, a.convert())
		}
	}
	return artists, nil
}

// TopTracks returns the user's top tracks for a time range (RangeShort,
// RangeMedium, or RangeLong).
func (c *Client) TopTracks(ctx context.Context, timeRange string, limit int) ([]snapshot.Track, error) {
	var resp struct {
		Items []wireTrack `json:"items"`
	}
	q := url.Values{"time_range": {timeRange}, "limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/me/top/tracks", q, &resp); err != nil {
		return nil, fmt.Errorf("top tracks (%s): %w", timeRange, err)
	}
	return convertTracks(resp.Items), nil
}

// RecentlyPlayed returns the user's recent play history.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]snapshot.PlayItem, error) {
	var resp struct {
		Items []struct {
			Track    wireTrack `json:"track"`
			PlayedAt string    `json:"played_at"`
		} `json:"items"`
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/me/player/recently-played", q, &resp); err != nil {
		return nil, fmt.Errorf("recently played: %w", err)
	}
	items := make([]snapshot.PlayItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = snapshot.PlayItem{Track: item.Track.convert(), PlayedAt: item.PlayedAt}
	}
	return items, nil
}

// SavedTrackCount returns the size of the user's liked-track library.
func (c *Client) SavedTrackCount(ctx context.Context) (int, error) {
	var resp struct {
		Total int `json:"total"`
	}
	q := url.Values{"limit": {"1"}}
	if err := c.get(ctx, "/me/tracks", q, &resp); err != nil {
		return 0, fmt.Errorf("saved track count: %w", err)
	}
	return resp.Total, nil
}

// FollowedArtistCount returns how many artists the user follows.
func (c *Client) FollowedArtistCount(ctx context.Context) (int, error) {
	var resp struct {
		Artists struct {
			Total int `json:"total"`
		} `json:"artists"`
	}
	q := url.Values{"type": {"artist"}, "limit": {"1"}}
	if err := c.get(ctx, "/me/following", q, &resp); err != nil {
		return 0, fmt.Errorf("followed artist count: %w", err)
	}
	return resp.Artists.Total, nil
}
