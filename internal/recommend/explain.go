package recommend

import (
	"fmt"
	"strings"
)

// explain builds the short "why this track" line shown next to each
// recommendation.
func explain(c Candidate) string {
	var parts []string

	if c.GenreScore > 0 {
		parts = append(parts, fmt.Sprintf("%d%% genre match", int(c.GenreScore*100)))
	}

	switch {
	case c.Popularity >= 70:
		parts = append(parts, "popular hit")
	case c.Popularity >= 40:
		parts = append(parts, "moderately known")
	case c.Popularity > 0:
		parts = append(parts, "hidden gem")
	default:
		parts = append(parts, "recommended for you")
	}

	return strings.Join(parts, " | ")
}
