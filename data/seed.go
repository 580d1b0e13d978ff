package data

import "fmt"

// SeedKind says whether a seed id names an artist or a track.
type SeedKind string

const (
	SeedArtist SeedKind = "artist"
	SeedTrack  SeedKind = "track"
)

// ParseSeedKind accepts "artist", "track", and "song", which is what the
// search form has always called tracks.
func ParseSeedKind(s string) (SeedKind, error) {
	switch s {
	case "artist":
		return SeedArtist, nil
	case "track", "song":
		return SeedTrack, nil
	default:
		return "", fmt.Errorf("unknown seed kind '%s'", s)
	}
}

// CreativityProfile controls how broadly a candidate pool is grown from a seed.
type CreativityProfile struct {
	// Policy names the policy that produced this profile, like "breadth".
	Policy string

	UseTopTracks         bool
	SimilarArtistBreadth int
	RecommendationLimit  int
}
