package recommend

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// seedID pads a label to the 22-character id length.
func seedID(label string) string {
	return label + strings.Repeat("x", seedIDLength-len(label))
}

func seedTrack(artistIDs ...string) snapshot.Track {
	t := snapshot.Track{ID: "t", Name: "t"}
	for _, a := range artistIDs {
		t.Artists = append(t.Artists, snapshot.ArtistRef{ID: a, Name: a})
	}
	return t
}

func TestExtractSeedArtistsOrdersByFrequency(t *testing.T) {
	frequent := seedID("frequent")
	rare := seedID("rare")
	medium := []snapshot.Track{
		seedTrack(rare, frequent),
		seedTrack(frequent),
		seedTrack(frequent),
	}

	got := ExtractSeedArtists(medium)
	want := []string{frequent, rare}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSeedArtists = %v, want %v", got, want)
	}
}

func TestExtractSeedArtistsSkipsMalformedIDs(t *testing.T) {
	medium := []snapshot.Track{
		seedTrack("short-id"),
		seedTrack(seedID("good")),
	}

	got := ExtractSeedArtists(medium)
	if len(got) != 1 || got[0] != seedID("good") {
		t.Errorf("ExtractSeedArtists = %v, want only the 22-char id", got)
	}
}

func TestExtractSeedArtistsCapsAtTen(t *testing.T) {
	var medium []snapshot.Track
	for i := 0; i < 15; i++ {
		medium = append(medium, seedTrack(seedID(fmt.Sprintf("artist%02d", i))))
	}

	got := ExtractSeedArtists(medium)
	if len(got) != 10 {
		t.Errorf("got %d seeds, want 10", len(got))
	}
	// Equal counts keep first-mention order.
	if got[0] != seedID("artist00") {
		t.Errorf("first seed = %v, want artist00", got[0])
	}
}

func TestExtractSeedArtistsEmpty(t *testing.T) {
	if got := ExtractSeedArtists(nil); len(got) != 0 {
		t.Errorf("ExtractSeedArtists(nil) = %v, want empty", got)
	}
}
