package curate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/logging"
	"github.com/google/uuid"
)

// Strategy names how a run grows its candidate pool.
type Strategy string

const (
	// StrategyArtist walks the related-artists graph (BuildArtistExpandedPool).
	StrategyArtist Strategy = "artist"

	// StrategyPolicy follows a creativity profile (BuildPolicyExpandedPool).
	StrategyPolicy Strategy = "policy"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyArtist, StrategyPolicy:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: unknown strategy '%s'", ErrInvalidArgument, s)
	}
}

// A Request describes one playlist to curate.
type Request struct {
	Strategy Strategy
	SeedKind data.SeedKind
	SeedID   string

	// Only used by StrategyPolicy.
	Creativity int

	Trip time.Duration

	// Stop after selection, without creating a playlist.
	DryRun bool
}

// A Run is everything one curation did. Each stage fills in its part, so a
// Run that stopped early still shows how far it got.
type Run struct {
	ID        string
	Request   Request
	StartedAt time.Time

	// Only set by StrategyArtist.
	Artists []data.Artist

	Pool       []data.Track
	Selection  Selection
	Unused     []data.Track
	Submission *Submission
}

// BuildPool starts a run and grows its candidate pool with the request's
// strategy. The returned Run is never nil.
func (c *Curator) BuildPool(ctx context.Context, req Request) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Request:   req,
		StartedAt: time.Now(),
	}
	return run, c.buildPool(logging.WithRunID(ctx, run.ID), run)
}

func (c *Curator) buildPool(ctx context.Context, run *Run) error {
	req := run.Request
	if req.Trip <= 0 {
		return fmt.Errorf("%w: trip duration %s is not positive", ErrInvalidArgument, req.Trip)
	}

	logging.Ctx(ctx).Info().
		Str("strategy", string(req.Strategy)).
		Str("seed", req.SeedID).
		Str("kind", string(req.SeedKind)).
		Dur("trip", req.Trip).
		Msg("building pool")

	var err error
	switch req.Strategy {
	case StrategyArtist:
		err = c.artistPool(ctx, run)
	case StrategyPolicy:
		run.Pool, err = c.BuildPolicyExpandedPool(ctx, req.SeedID, req.SeedKind, req.Creativity, req.Trip)
	default:
		err = fmt.Errorf("%w: unknown strategy '%s'", ErrInvalidArgument, req.Strategy)
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int("tracks", len(run.Pool)).Float64("seconds", data.TotalSeconds(run.Pool)).Msg("built pool")
	return nil
}

// Curate builds a pool, selects from it, and, unless the request is a dry
// run, materializes the selection.
//
// The returned Run is never nil. If a stage fails, the error is returned
// along with the Run as it stood.
func (c *Curator) Curate(ctx context.Context, req Request) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Request:   req,
		StartedAt: time.Now(),
	}
	ctx = logging.WithRunID(ctx, run.ID)
	log := logging.Ctx(ctx)

	if err := c.buildPool(ctx, run); err != nil {
		return run, err
	}

	pool := slices.Clone(run.Pool)
	Shuffle(c.rng, pool)
	var err error
	run.Selection, run.Unused, err = Select(c.rng, pool, req.Trip, c.opts.Overshoot, c.opts.MaxAttempts)
	if err != nil {
		return run, err
	}
	Shuffle(c.rng, run.Selection.Tracks)
	log.Info().Int("tracks", len(run.Selection.Tracks)).Float64("seconds", run.Selection.AchievedSeconds).Msg("selected")

	if c.opts.EnrichPreviews && c.previews != nil {
		n := EnrichPreviews(ctx, c.previews, run.Selection.Tracks, c.opts.Workers)
		log.Debug().Int("previews", n).Msg("enriched previews")
	}

	if req.DryRun {
		return run, nil
	}

	run.Submission, err = c.MaterializeSelection(ctx, run.Selection)
	if err != nil {
		return run, err
	}
	return run, nil
}

func (c *Curator) artistPool(ctx context.Context, run *Run) error {
	seed := data.Artist{SpotifyID: run.Request.SeedID}
	switch run.Request.SeedKind {
	case data.SeedArtist:
	case data.SeedTrack:
		artistID, track, err := c.resolveSeed(ctx, run.Request.SeedID, data.SeedTrack)
		if err != nil {
			return err
		}
		seed = data.Artist{SpotifyID: artistID, Name: track.PrimaryArtist().Name}
	default:
		return fmt.Errorf("%w: unknown seed kind '%s'", ErrInvalidArgument, run.Request.SeedKind)
	}

	artists, err := c.ExpandArtists(ctx, seed, run.Request.Trip)
	if err != nil {
		return err
	}
	run.Artists = artists

	run.Pool, err = c.ArtistTopTracks(ctx, artists)
	return err
}

// Journal flattens a run into the rows the run journal stores.
func (run *Run) Journal(overshoot time.Duration) data.Run {
	row := data.Run{
		ID:               run.ID,
		Strategy:         string(run.Request.Strategy),
		SeedKind:         string(run.Request.SeedKind),
		SeedID:           run.Request.SeedID,
		Creativity:       run.Request.Creativity,
		TargetSeconds:    run.Request.Trip.Seconds(),
		OvershootSeconds: overshoot.Seconds(),
		AchievedSeconds:  run.Selection.AchievedSeconds,
		CreatedAt:        run.StartedAt,
	}

	for i, t := range run.Selection.Tracks {
		row.Tracks = append(row.Tracks, data.RunTrack{
			RunID:          run.ID,
			Position:       i,
			TrackSpotifyID: t.SpotifyID,
			Name:           t.Name,
			ArtistName:     t.PrimaryArtist().Name,
			DurationMS:     t.DurationMS,
		})
	}

	if run.Submission == nil {
		return row
	}
	row.PlaylistID = run.Submission.PlaylistID
	for _, b := range run.Submission.Batches {
		row.Batches = append(row.Batches, JournalBatch(run.ID, b, run.StartedAt))
	}
	return row
}

// JournalBatch converts a batch outcome into a journal row.
func JournalBatch(runID string, b Batch, at time.Time) data.RunBatch {
	row := data.RunBatch{
		RunID:           runID,
		BatchIndex:      b.Index,
		TrackSpotifyIDs: strings.Join(b.TrackIDs, ","),
	}
	switch {
	case b.Submitted:
		row.SubmittedAt = sql.NullTime{Time: at, Valid: true}
	case b.Err != nil:
		row.FailedAt = sql.NullTime{Time: at, Valid: true}
		row.Error = b.Err.Error()
	}
	return row
}

// BatchesFromJournal rebuilds a run's batches from its journal rows, for
// retrying. Pass every row, not only the failed ones, so retried batches
// land in the right place.
func BatchesFromJournal(rows []data.RunBatch) []Batch {
	batches := make([]Batch, len(rows))
	for i, row := range rows {
		batches[i] = Batch{Index: row.BatchIndex, Submitted: row.SubmittedAt.Valid}
		if row.TrackSpotifyIDs != "" {
			batches[i].TrackIDs = strings.Split(row.TrackSpotifyIDs, ",")
		}
		if row.Error != "" {
			batches[i].Err = errors.New(row.Error)
		}
	}
	return batches
}
