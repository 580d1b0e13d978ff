package curate

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/logging"
)

// A policy-expanded pool keeps growing until it is this much longer than
// the trip, so the selector has room to work.
const topUpMargin = 300 * time.Second

// BuildPolicyExpandedPool grows a pool from a seed artist or track under the
// creativity profile the curator's policy gives for level.
//
// If a catalog call fails, the pool gathered so far is returned along with
// an error wrapping ErrProvider.
func (c *Curator) BuildPolicyExpandedPool(ctx context.Context, seedID string, kind data.SeedKind, level int, trip time.Duration) ([]data.Track, error) {
	profile, err := c.opts.Policy.Resolve(level)
	if err != nil {
		return nil, err
	}
	if trip <= 0 {
		return nil, fmt.Errorf("%w: trip duration %s is not positive", ErrInvalidArgument, trip)
	}

	artistID, seedTrack, err := c.resolveSeed(ctx, seedID, kind)
	if err != nil {
		return nil, err
	}

	log := logging.Ctx(ctx)
	log.Debug().
		Str("policy", profile.Policy).
		Bool("top_tracks", profile.UseTopTracks).
		Int("breadth", profile.SimilarArtistBreadth).
		Int("recommendations", profile.RecommendationLimit).
		Msg("resolved creativity")

	var related []data.Artist
	if profile.SimilarArtistBreadth > 0 {
		related, err = c.catalog.RelatedArtists(ctx, artistID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProvider, err)
		}
	}

	var pool []data.Track

	// how many related artists have had their top tracks pooled
	consumed := 0

	if profile.UseTopTracks {
		consumed = min(profile.SimilarArtistBreadth, len(related))
		ids := []string{artistID}
		for _, artist := range related[:consumed] {
			ids = append(ids, artist.SpotifyID)
		}
		tracks, err := c.topTracks(ctx, ids)
		pool = append(pool, tracks...)
		if err != nil {
			return pool, err
		}

		if len(related) == 0 {
			if kind == data.SeedTrack {
				pool = append(pool, *seedTrack)
			} else {
				tracks, err := c.catalog.TopTracks(ctx, artistID, c.opts.Market)
				if err != nil {
					return pool, fmt.Errorf("%w: %w", ErrProvider, err)
				}
				pool = append(pool, tracks...)
			}
		}
	}

	if profile.RecommendationLimit > 0 {
		tracks, err := c.catalog.Recommendations(ctx, kind, seedID, profile.RecommendationLimit)
		if err != nil {
			return pool, fmt.Errorf("%w: %w", ErrProvider, err)
		}
		pool = append(pool, tracks...)
	}

	goal := (trip + topUpMargin).Seconds()
	total := data.TotalSeconds(pool)
	for iteration := 0; total < goal; iteration++ {
		if err := ctx.Err(); err != nil {
			return pool, err
		}
		if iteration >= c.opts.TopUpIterations {
			log.Warn().Int("iterations", iteration).Float64("seconds", total).Float64("goal", goal).Msg("gave up topping up pool")
			break
		}

		contributed := false
		if profile.UseTopTracks && consumed < len(related) {
			next := related[consumed]
			consumed++
			tracks, err := c.catalog.TopTracks(ctx, next.SpotifyID, c.opts.Market)
			if err != nil {
				return pool, fmt.Errorf("%w: %w", ErrProvider, err)
			}
			pool = append(pool, tracks...)
			total += data.TotalSeconds(tracks)
			contributed = true
		}
		if profile.RecommendationLimit > 0 {
			tracks, err := c.catalog.Recommendations(ctx, kind, seedID, profile.RecommendationLimit)
			if err != nil {
				return pool, fmt.Errorf("%w: %w", ErrProvider, err)
			}
			pool = append(pool, tracks...)
			total += data.TotalSeconds(tracks)
			contributed = true
		}
		if !contributed {
			log.Warn().Float64("seconds", total).Float64("goal", goal).Msg("nothing left to top up pool with")
			break
		}
	}

	return pool, nil
}

// resolveSeed returns the artist a seed stands for. Track seeds stand for
// their primary artist; the track itself is returned too.
func (c *Curator) resolveSeed(ctx context.Context, seedID string, kind data.SeedKind) (string, *data.Track, error) {
	if seedID == "" {
		return "", nil, fmt.Errorf("%w: empty seed id", ErrInvalidArgument)
	}
	switch kind {
	case data.SeedArtist:
		return seedID, nil, nil
	case data.SeedTrack:
		track, err := c.catalog.Track(ctx, seedID)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrProvider, err)
		}
		artistID := track.PrimaryArtist().SpotifyID
		if artistID == "" {
			return "", nil, fmt.Errorf("%w: track '%s' has no artist", ErrProvider, seedID)
		}
		return artistID, track, nil
	default:
		return "", nil, fmt.Errorf("%w: unknown seed kind '%s'", ErrInvalidArgument, kind)
	}
}
