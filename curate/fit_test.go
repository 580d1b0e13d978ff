package curate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEqualTracks(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		pool := makeTracks("t", 20, 200*time.Second)
		sel, rest, err := curate.Select(curate.NewRand(seed), pool, 30*time.Minute, 2*time.Minute, 0)
		require.NoError(t, err)

		// ten would be 2000s, past the window
		assert.Len(t, sel.Tracks, 9)
		assert.Equal(t, 1800.0, sel.AchievedSeconds)
		assert.Len(t, rest, 11)
		assert.Equal(t, sel.AchievedSeconds, data.TotalSeconds(sel.Tracks))
	}
}

func TestSelectLandsInWindow(t *testing.T) {
	var successes int
	for seed := uint64(1); seed <= 100; seed++ {
		rng := curate.NewRand(seed)
		pool := make([]data.Track, 100)
		for i := range pool {
			pool[i] = data.Track{
				SpotifyID:  fmt.Sprintf("t-%d", i),
				DurationMS: int64(120_000 + rng.IntN(280_000)),
			}
		}

		sel, _, err := curate.Select(rng, pool, 30*time.Minute, 2*time.Minute, 0)
		if err != nil {
			assert.ErrorIs(t, err, curate.ErrInfeasiblePool)
			continue
		}
		successes++
		assert.GreaterOrEqual(t, sel.AchievedSeconds, 1800.0)
		assert.LessOrEqual(t, sel.AchievedSeconds, 1920.0)
		assert.InDelta(t, sel.AchievedSeconds, data.TotalSeconds(sel.Tracks), 0.001)
	}
	assert.Positive(t, successes)
}

func TestSelectIsDeterministic(t *testing.T) {
	a, _, err := curate.Select(curate.NewRand(42), makeTracks("t", 40, 190*time.Second), time.Hour, 2*time.Minute, 0)
	require.NoError(t, err)
	b, _, err := curate.Select(curate.NewRand(42), makeTracks("t", 40, 190*time.Second), time.Hour, 2*time.Minute, 0)
	require.NoError(t, err)
	assert.Equal(t, data.TrackIDs(a.Tracks), data.TrackIDs(b.Tracks))
}

func TestSelectNothingFits(t *testing.T) {
	pool := makeTracks("long", 5, 40*time.Minute)
	_, rest, err := curate.Select(curate.NewRand(1), pool, 30*time.Minute, 2*time.Minute, 0)
	assert.ErrorIs(t, err, curate.ErrInfeasiblePool)
	assert.Len(t, rest, 5)
}

func TestSelectPoolExhausted(t *testing.T) {
	pool := makeTracks("short", 2, 100*time.Second)
	_, rest, err := curate.Select(curate.NewRand(1), pool, 30*time.Minute, 2*time.Minute, 0)
	assert.ErrorIs(t, err, curate.ErrInfeasiblePool)
	assert.Empty(t, rest)
}

func TestSelectMaxAttempts(t *testing.T) {
	// the first draw fits and the second overshoots, which uses a third
	pool := makeTracks("t", 3, 1000*time.Second)
	sel, rest, err := curate.Select(curate.NewRand(1), pool, 30*time.Minute, 2*time.Minute, 2)
	assert.ErrorIs(t, err, curate.ErrInfeasiblePool)
	assert.ErrorContains(t, err, "2 attempts")
	assert.Len(t, sel.Tracks, 1)
	assert.Len(t, rest, 1)
}

func TestSelectInvalid(t *testing.T) {
	pool := makeTracks("t", 5, time.Minute)

	_, _, err := curate.Select(curate.NewRand(1), pool, 0, time.Minute, 0)
	assert.ErrorIs(t, err, curate.ErrInvalidArgument)

	_, _, err = curate.Select(curate.NewRand(1), pool, time.Minute, -time.Second, 0)
	assert.ErrorIs(t, err, curate.ErrInvalidArgument)
}

func TestSelectExactFitWithoutOvershoot(t *testing.T) {
	pool := makeTracks("t", 10, time.Minute)
	sel, _, err := curate.Select(curate.NewRand(1), pool, 5*time.Minute, 0, 0)
	require.NoError(t, err)
	assert.Len(t, sel.Tracks, 5)
}

func TestShuffleKeepsTracks(t *testing.T) {
	tracks := makeTracks("t", 30, time.Minute)
	before := data.TrackIDs(tracks)
	curate.Shuffle(curate.NewRand(9), tracks)
	assert.ElementsMatch(t, before, data.TrackIDs(tracks))
}
