package insights

import (
	"math"

	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// MoodProfile classifies the user's averaged audio features into one of
// four valence/energy quadrants, with the five raw axes alongside for a
// radar rendering.
type MoodProfile struct {
	Label string                 `json:"mood_label" yaml:"mood_label"`
	Radar snapshot.AudioFeatures `json:"radar_data" yaml:"radar_data"`
}

// Mood quadrant labels.
const (
	MoodEnergeticHappy = "Energetic & Happy"
	MoodCalmContent    = "Calm & Content"
	MoodIntense        = "Intense & Passionate"
	MoodMelancholic    = "Melancholic & Reflective"
)

// Mood classifies audio features by the valence/energy quadrant, split
// at 0.6.
func Mood(audio snapshot.AudioFeatures) MoodProfile {
	var label string
	switch {
	case audio.Valence > 0.6 && audio.Energy > 0.6:
		label = MoodEnergeticHappy
	case audio.Valence > 0.6:
		label = MoodCalmContent
	case audio.Energy > 0.6:
		label = MoodIntense
	default:
		label = MoodMelancholic
	}

	return MoodProfile{
		Label: label,
		Radar: snapshot.AudioFeatures{
			Valence:          round2(audio.Valence),
			Energy:           round2(audio.Energy),
			Danceability:     round2(audio.Danceability),
			Acousticness:     round2(audio.Acousticness),
			Instrumentalness: round2(audio.Instrumentalness),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
