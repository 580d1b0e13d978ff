package curate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/amonks/journey/data"
	"github.com/amonks/journey/logging"
)

// BatchSize is the most tracks a single append call may carry.
const BatchSize = 100

// A Batch is one append call's worth of track ids. Submitted is set once
// the call succeeds; Err is set if the last attempt failed.
type Batch struct {
	Index     int
	TrackIDs  []string
	Submitted bool
	Err       error
}

// A Submission records a playlist and how each of its batches went.
type Submission struct {
	PlaylistID string
	TrackIDs   []string
	Batches    []Batch
}

// Failed returns the batches that weren't appended.
func (s *Submission) Failed() []Batch {
	var failed []Batch
	for _, b := range s.Batches {
		if !b.Submitted {
			failed = append(failed, b)
		}
	}
	return failed
}

// Chunk splits ids into consecutive batches of at most size.
func Chunk(ids []string, size int) []Batch {
	var batches []Batch
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, Batch{
			Index:    len(batches),
			TrackIDs: ids[start:end],
		})
	}
	return batches
}

// Materialize creates a playlist for the current user and appends ids to it
// in order, BatchSize at a time.
//
// A failed batch doesn't stop the ones after it. If any failed, the returned
// Submission says which, and the error wraps ErrPartialSubmission. Calling
// Materialize twice creates two playlists.
func Materialize(ctx context.Context, playlists Playlists, name, description string, ids []string) (*Submission, error) {
	userID, err := playlists.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	playlistID, err := playlists.CreatePlaylist(ctx, userID, name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	logging.Ctx(ctx).Info().Str("playlist", playlistID).Int("tracks", len(ids)).Msg("created playlist")

	sub := &Submission{
		PlaylistID: playlistID,
		TrackIDs:   ids,
		Batches:    Chunk(ids, BatchSize),
	}
	return sub, RetryBatches(ctx, playlists, playlistID, sub.Batches)
}

// RetryBatches sends every batch that isn't Submitted, in Index order,
// recording each outcome in the batch. batches must be all of a playlist's
// batches: each one is inserted after the tracks of the submitted batches
// before it, so the playlist ends up in Index order however many attempts
// it takes. Materialize uses it for the first attempt too.
func RetryBatches(ctx context.Context, playlists Playlists, playlistID string, batches []Batch) error {
	log := logging.Ctx(ctx)

	order := make([]*Batch, len(batches))
	for i := range batches {
		order[i] = &batches[i]
	}
	slices.SortFunc(order, func(a, b *Batch) int { return cmp.Compare(a.Index, b.Index) })

	var (
		errs     []error
		tried    int
		position int
	)
	for _, b := range order {
		if b.Submitted {
			position += len(b.TrackIDs)
			continue
		}
		tried++
		b.Err = nil
		if err := playlists.AppendTracks(ctx, playlistID, position, b.TrackIDs); err != nil {
			b.Err = fmt.Errorf("%w: batch %d: %w", ErrProvider, b.Index, err)
			errs = append(errs, b.Err)
			log.Error().Err(err).Int("batch", b.Index).Int("tracks", len(b.TrackIDs)).Msg("append failed")
			continue
		}
		b.Submitted = true
		position += len(b.TrackIDs)
		log.Debug().Int("batch", b.Index).Int("position", position-len(b.TrackIDs)).Int("tracks", len(b.TrackIDs)).Msg("appended")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %d of %d batches failed: %w", ErrPartialSubmission, len(errs), tried, errors.Join(errs...))
	}
	return nil
}

// MaterializeSelection materializes a selection with the curator's playlist
// name and description.
func (c *Curator) MaterializeSelection(ctx context.Context, sel Selection) (*Submission, error) {
	if c.playlists == nil {
		return nil, fmt.Errorf("%w: curator has no playlist writer", ErrInvalidArgument)
	}
	return Materialize(ctx, c.playlists, c.opts.PlaylistName, c.opts.PlaylistDescription, data.TrackIDs(sel.Tracks))
}
