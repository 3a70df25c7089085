package features

import "github.com/ademuri/spotify-taste-tools/internal/snapshot"

// SchemaVersion identifies the feature document layout. Stored features are
// keyed by user and version so a schema change forces recomputation.
const SchemaVersion = "v1"

// FeatureSet is the derived numeric+categorical profile of one snapshot.
// Every ratio field is clamped to [0, 1]; empty source data produces the
// documented defaults rather than an error.
type FeatureSet struct {
	Version       string                 `json:"version" yaml:"version"`
	Behavioral    Behavioral             `json:"behavioral" yaml:"behavioral"`
	Temporal      Temporal               `json:"temporal" yaml:"temporal"`
	TrackMetadata TrackMetadata          `json:"track_metadata" yaml:"track_metadata"`
	Genre         Genre                  `json:"genre" yaml:"genre"`
	Audio         snapshot.AudioFeatures `json:"audio" yaml:"audio"`
}

type Behavioral struct {
	RepeatRate           float64 `json:"repeat_rate" yaml:"repeat_rate"`
	ExplorationScore     float64 `json:"exploration_score" yaml:"exploration_score"`
	ArtistDiversity      float64 `json:"artist_diversity" yaml:"artist_diversity"`
	TrackLoyalty         float64 `json:"track_loyalty" yaml:"track_loyalty"`
	ListeningConsistency float64 `json:"listening_consistency" yaml:"listening_consistency"`
}

type Temporal struct {
	PeakListeningHour     int     `json:"peak_listening_hour" yaml:"peak_listening_hour"`
	WeekendRatio          float64 `json:"weekend_ratio" yaml:"weekend_ratio"`
	ListeningTimeVariance float64 `json:"listening_time_variance" yaml:"listening_time_variance"`
}

// Track age preference buckets.
const (
	AgeNew     = "new"
	AgeMixed   = "mixed"
	AgeClassic = "classic"
)

type TrackMetadata struct {
	AvgPopularity      float64 `json:"avg_popularity" yaml:"avg_popularity"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes" yaml:"avg_duration_minutes"`
	TrackAgePreference string  `json:"track_age_preference" yaml:"track_age_preference"`
}

type Genre struct {
	Distribution      map[string]float64 `json:"genre_distribution" yaml:"genre_distribution"`
	Diversity         float64            `json:"genre_diversity" yaml:"genre_diversity"`
	TopGenres         []string           `json:"top_genres" yaml:"top_genres"`
	Uniqueness        float64            `json:"genre_uniqueness" yaml:"genre_uniqueness"`
	TotalUniqueGenres int                `json:"total_unique_genres" yaml:"total_unique_genres"`
}

// Summary is a human-readable gloss over a FeatureSet, used by the features
// command and the emailed report.
type Summary struct {
	ListeningStyle string   `json:"listening_style" yaml:"listening_style"`
	PeakTime       string   `json:"peak_time" yaml:"peak_time"`
	MusicTaste     string   `json:"music_taste" yaml:"music_taste"`
	TopGenres      []string `json:"top_genres" yaml:"top_genres"`
	DiversityLevel string   `json:"diversity_level" yaml:"diversity_level"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
