package curate

import (
	"context"

	"github.com/amonks/journey/data"
)

// Catalog is the read side of the music provider.
type Catalog interface {
	Track(ctx context.Context, trackID string) (*data.Track, error)
	TopTracks(ctx context.Context, artistID, market string) ([]data.Track, error)
	RelatedArtists(ctx context.Context, artistID string) ([]data.Artist, error)
	Recommendations(ctx context.Context, kind data.SeedKind, seedID string, limit int) ([]data.Track, error)
}

// Playlists is the write side of the music provider.
type Playlists interface {
	CurrentUser(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, userID, name, description string) (string, error)

	// AppendTracks inserts tracks at position, counted from the start of the
	// playlist.
	AppendTracks(ctx context.Context, playlistID string, position int, trackIDs []string) error
}

// PreviewScraper finds audio previews for tracks the catalog didn't give
// one for.
type PreviewScraper interface {
	PreviewURL(ctx context.Context, externalURL string) (string, error)
}
