package limiter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/journey/limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNextAtPersists(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "next-req")

	lim := limiter.New(filename, 0)
	wait, err := lim.SetNextAt("2")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, wait)

	reloaded := limiter.New(filename, 0)
	require.NoError(t, reloaded.Load())
	assert.WithinDuration(t, lim.NextAt(), reloaded.NextAt(), time.Second)
}

func TestSetNextAtRejectsGarbage(t *testing.T) {
	lim := limiter.New(filepath.Join(t.TempDir(), "next-req"), 0)
	_, err := lim.SetNextAt("soon")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	lim := limiter.New(filepath.Join(t.TempDir(), "nope"), 0)
	require.NoError(t, lim.Load())
	assert.True(t, lim.NextAt().IsZero())
}

func TestWaitClearsExpiredDeadline(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "next-req")
	past := time.Now().Add(-time.Minute).Format(time.UnixDate)
	require.NoError(t, os.WriteFile(filename, []byte(past), 0666))

	lim := limiter.New(filename, 0)
	require.NoError(t, lim.Load())
	require.NoError(t, lim.Wait(context.Background()))

	assert.True(t, lim.NextAt().IsZero())
	_, err := os.Stat(filename)
	assert.True(t, os.IsNotExist(err))
}

func TestWaitHonorsCancellation(t *testing.T) {
	lim := limiter.New(filepath.Join(t.TempDir(), "next-req"), 0)
	_, err := lim.SetNextAt("60")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, lim.Wait(ctx), context.Canceled)
}
