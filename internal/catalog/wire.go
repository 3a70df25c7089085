package catalog

import "github.com/ademuri/spotify-taste-tools/internal/snapshot"

// Wire shapes for the catalog API. Kept separate from the snapshot types so
// the rest of the code never sees API-specific nesting like external_urls.

type wireTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []wireArtistRef   `json:"artists"`
	Album        wireAlbum         `json:"album"`
	DurationMs   int               `json:"duration_ms"`
	Popularity   int               `json:"popularity"`
	PreviewURL   string            `json:"preview_url"`
	URI          string            `json:"uri"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type wireArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireAlbum struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ReleaseDate string      `json:"release_date"`
	Images      []wireImage `json:"images"`
}

type wireArtist struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Genres []string    `json:"genres"`
	Images []wireImage `json:"images"`
}

type wireImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (t wireTrack) convert() snapshot.Track {
	artists := make([]snapshot.ArtistRef, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = snapshot.ArtistRef{ID: a.ID, Name: a.Name}
	}
	return snapshot.Track{
		ID:          t.ID,
		Name:        t.Name,
		Artists:     artists,
		Album:       t.Album.convert(),
		DurationMs:  t.DurationMs,
		Popularity:  t.Popularity,
		PreviewURL:  t.PreviewURL,
		URI:         t.URI,
		ExternalURL: t.ExternalURLs["spotify"],
	}
}

func (a wireAlbum) convert() snapshot.Album {
	return snapshot.Album{
		ID:          a.ID,
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		Images:      convertImages(a.Images),
	}
}

func (a wireArtist) convert() snapshot.Artist {
	return snapshot.Artist{
		ID:     a.ID,
		Name:   a.Name,
		Genres: a.Genres,
		Images: convertImages(a.Images),
	}
}

func convertImages(images []wireImage) []snapshot.Image {
	if len(images) == 0 {
		return nil
	}
	out := make([]snapshot.Image, len(images))
	for i, img := range images {
		out[i] = snapshot.Image{URL: img.URL, Width: img.Width, Height: img.Height}
	}
	return out
}

func convertTracks(tracks []wireTrack) []snapshot.Track {
	out := make([]snapshot.Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.convert()
	}
	return out
}
