package insights

import (
	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
)

// Build assembles the complete insight report for a user. Entropy comes
// from the medium-term window (overall taste); evolution compares the
// short-term window against the long-term one.
func Build(s *snapshot.Snapshot, f features.FeatureSet, clusterLabel string) Report {
	artists := s.ArtistMap()

	overall := GenreDistribution(s.TopTracksMedium, artists)
	shortTerm := GenreDistribution(s.TopTracksShort, artists)
	longTerm := GenreDistribution(s.TopTracksLong, artists)

	return Report{
		ClusterLabel:  clusterLabel,
		EntropyScore:  ShannonEntropy(overall),
		Mood:          Mood(f.Audio),
		Deviation:     ClusterDeviation(f.Audio, clusterLabel),
		Evolution:     AnalyzeEvolution(shortTerm, longTerm),
		AudioMeasured: audioMeasured(s.TopTracksMedium),
	}
}

func audioMeasured(medium []snapshot.Track) bool {
	for _, t := range medium {
		if t.Audio != nil {
			return true
		}
	}
	return false
}
