package curate

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/amonks/journey/data"
)

// A Selection is a run of tracks whose total length is within a window.
type Selection struct {
	Tracks          []data.Track
	AchievedSeconds float64
}

// Select draws tracks from pool at random until their total length is at
// least target and at most target+overshoot.
//
// A draw that would overshoot instead swaps a random selected track for a
// fresh draw; the swapped-out track is dropped. Select takes ownership of
// pool and returns the tracks it didn't use. It fails with ErrInfeasiblePool
// if no track fits the window, if the pool runs out, or after maxAttempts
// draws. maxAttempts <= 0 means DefaultMaxAttempts.
func Select(rng *rand.Rand, pool []data.Track, target, overshoot time.Duration, maxAttempts int) (Selection, []data.Track, error) {
	if target <= 0 {
		return Selection{}, pool, fmt.Errorf("%w: target %s is not positive", ErrInvalidArgument, target)
	}
	if overshoot < 0 {
		return Selection{}, pool, fmt.Errorf("%w: overshoot %s is negative", ErrInvalidArgument, overshoot)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	// Durations are summed in whole milliseconds so the window check is exact.
	lo, hi := target.Milliseconds(), (target + overshoot).Milliseconds()

	if !slices.ContainsFunc(pool, func(t data.Track) bool { return t.DurationMS <= hi }) {
		return Selection{}, pool, fmt.Errorf("%w: none of %d tracks is shorter than %s", ErrInfeasiblePool, len(pool), target+overshoot)
	}

	var (
		selected []data.Track
		current  int64
	)
	for attempt := 0; current < lo || current > hi; attempt++ {
		if attempt >= maxAttempts {
			return selection(selected, current), pool, fmt.Errorf("%w: no fit after %d attempts (at %s of %s)", ErrInfeasiblePool, attempt, msDuration(current), target)
		}
		if len(pool) == 0 {
			return selection(selected, current), pool, fmt.Errorf("%w: pool exhausted at %s of %s", ErrInfeasiblePool, msDuration(current), target)
		}

		i := rng.IntN(len(pool))
		if current+pool[i].DurationMS > hi {
			if len(selected) == 0 {
				continue
			}
			j := rng.IntN(len(pool))
			fresh := pool[j]
			pool = slices.Delete(pool, j, j+1)
			selected[rng.IntN(len(selected))] = fresh
			current = totalMS(selected)
			continue
		}

		selected = append(selected, pool[i])
		current += pool[i].DurationMS
		pool = slices.Delete(pool, i, i+1)
	}

	return selection(selected, current), pool, nil
}

// Shuffle reorders tracks in place.
func Shuffle(rng *rand.Rand, tracks []data.Track) {
	rng.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}

func selection(tracks []data.Track, ms int64) Selection {
	return Selection{Tracks: tracks, AchievedSeconds: float64(ms) / 1000}
}

func totalMS(tracks []data.Track) int64 {
	var ms int64
	for _, t := range tracks {
		ms += t.DurationMS
	}
	return ms
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
