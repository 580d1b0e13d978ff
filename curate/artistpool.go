package curate

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/logging"
	"github.com/amonks/journey/workers"
)

// ArtistTarget is how many artists an expansion collects for a trip: two
// per full half hour, plus six.
func ArtistTarget(trip time.Duration) int {
	return int(trip/(30*time.Minute))*2 + 6
}

// BuildArtistExpandedPool grows an artist list out from seed over the
// related-artists graph, then pools those artists' top tracks.
func (c *Curator) BuildArtistExpandedPool(ctx context.Context, seed data.Artist, trip time.Duration) ([]data.Track, error) {
	artists, err := c.ExpandArtists(ctx, seed, trip)
	if err != nil {
		return nil, err
	}
	return c.ArtistTopTracks(ctx, artists)
}

// ExpandArtists returns exactly ArtistTarget(trip) artists, seed first.
//
// Each step picks a random artist that hasn't been expanded yet and appends
// all of its related artists. If every artist has been expanded and the
// list is still short, it fails with ErrInfeasiblePool.
func (c *Curator) ExpandArtists(ctx context.Context, seed data.Artist, trip time.Duration) ([]data.Artist, error) {
	if trip <= 0 {
		return nil, fmt.Errorf("%w: trip duration %s is not positive", ErrInvalidArgument, trip)
	}
	if seed.SpotifyID == "" {
		return nil, fmt.Errorf("%w: seed artist has no id", ErrInvalidArgument)
	}

	target := ArtistTarget(trip)
	artists := []data.Artist{seed}
	expanded := map[int]struct{}{}
	log := logging.Ctx(ctx)

	for len(artists) < target {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var unexpanded []int
		for i := range artists {
			if _, ok := expanded[i]; !ok {
				unexpanded = append(unexpanded, i)
			}
		}
		if len(unexpanded) == 0 {
			return nil, fmt.Errorf("%w: artist graph exhausted at %d of %d artists", ErrInfeasiblePool, len(artists), target)
		}

		base := unexpanded[c.rng.IntN(len(unexpanded))]
		expanded[base] = struct{}{}

		related, err := c.catalog.RelatedArtists(ctx, artists[base].SpotifyID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProvider, err)
		}
		log.Debug().Str("artist", artists[base].SpotifyID).Int("related", len(related)).Msg("expanded artist")
		artists = append(artists, related...)
	}

	return artists[:target], nil
}

// ArtistTopTracks pools the top tracks of every artist but the last, in
// artist order. The first artist is the seed.
func (c *Curator) ArtistTopTracks(ctx context.Context, artists []data.Artist) ([]data.Track, error) {
	if len(artists) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(artists)-1)
	for _, artist := range artists[:len(artists)-1] {
		ids = append(ids, artist.SpotifyID)
	}
	return c.topTracks(ctx, ids)
}

// topTracks fetches top tracks for each artist concurrently and flattens
// them in input order. A failure doesn't cancel the other fetches, so on
// failure it returns exactly the tracks of the artists before the first one
// that failed.
func (c *Curator) topTracks(ctx context.Context, artistIDs []string) ([]data.Track, error) {
	results, ok, err := workers.MapAll(ctx, c.opts.Workers, artistIDs, func(ctx context.Context, id string) ([]data.Track, error) {
		return c.catalog.TopTracks(ctx, id, c.opts.Market)
	})

	var pool []data.Track
	for i, tracks := range results {
		if !ok[i] {
			break
		}
		pool = append(pool, tracks...)
	}
	if err != nil {
		return pool, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return pool, nil
}
