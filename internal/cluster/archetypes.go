package cluster

// The five taste archetypes. Archetype ids are stable: they double as the
// cluster ids reported to callers and as keys for the insight baselines.
const (
	MainstreamPopLovers = iota
	IndieExplorers
	GenreDiverseListeners
	ClassicMusicFans
	NicheMusicEnthusiasts

	NumArchetypes
)

var archetypeNames = [NumArchetypes]string{
	MainstreamPopLovers:   "Mainstream Pop Lovers",
	IndieExplorers:        "Indie Explorers",
	GenreDiverseListeners: "Genre Diverse Listeners",
	ClassicMusicFans:      "Classic Music Fans",
	NicheMusicEnthusiasts: "Niche Music Enthusiasts",
}

var archetypeDescriptions = [NumArchetypes]string{
	MainstreamPopLovers:   "You love mainstream hits and popular tracks. Your taste aligns with current trends.",
	IndieExplorers:        "You're an indie explorer who discovers hidden gems and underground artists.",
	GenreDiverseListeners: "You have incredibly diverse taste, enjoying music across many genres.",
	ClassicMusicFans:      "You appreciate classic and timeless music, preferring established artists.",
	NicheMusicEnthusiasts: "You have unique, niche taste in music that sets you apart from the mainstream.",
}

// archetypeMeans are the synthetic prior for each archetype, in projection
// order: repeat, explore, artist diversity, loyalty, consistency, peak hour,
// weekend ratio, time variance, popularity, duration, genre diversity,
// genre uniqueness (all normalized to roughly [0, 1]).
var archetypeMeans = [NumArchetypes][vectorDim]float64{
	MainstreamPopLovers:   {0.8, 0.2, 0.3, 0.8, 0.9, 0.5, 0.5, 0.2, 0.9, 0.3, 0.3, 0.1},
	IndieExplorers:        {0.3, 0.9, 0.8, 0.4, 0.6, 0.9, 0.7, 0.6, 0.3, 0.4, 0.8, 0.9},
	GenreDiverseListeners: {0.4, 0.7, 0.9, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 1.0, 0.6},
	ClassicMusicFans:      {0.7, 0.3, 0.4, 0.9, 0.9, 0.4, 0.8, 0.1, 0.6, 0.6, 0.4, 0.4},
	NicheMusicEnthusiasts: {0.5, 0.8, 0.6, 0.6, 0.7, 0.8, 0.4, 0.4, 0.1, 0.7, 0.6, 1.0},
}

// Name returns the archetype name for an id, or a generic label for an
// unknown id.
func Name(id int) string {
	if id < 0 || id >= NumArchetypes {
		return "Unknown"
	}
	return archetypeNames[id]
}
