package data_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/amonks/journey/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackHelpers(t *testing.T) {
	tracks := []data.Track{
		{SpotifyID: "a", DurationMS: 200_000, Artists: []data.Artist{{SpotifyID: "x", Name: "X"}, {SpotifyID: "y"}}},
		{SpotifyID: "b", DurationMS: 90_500},
	}

	assert.Equal(t, 200.0, tracks[0].Seconds())
	assert.Equal(t, 290.5, data.TotalSeconds(tracks))
	assert.Equal(t, []string{"a", "b"}, data.TrackIDs(tracks))
	assert.Equal(t, "X", tracks[0].PrimaryArtist().Name)
	assert.Equal(t, data.Artist{}, tracks[1].PrimaryArtist())
}

func TestParseSeedKind(t *testing.T) {
	for in, want := range map[string]data.SeedKind{
		"artist": data.SeedArtist,
		"track":  data.SeedTrack,
		"song":   data.SeedTrack,
	} {
		kind, err := data.ParseSeedKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}

	_, err := data.ParseSeedKind("album")
	assert.Error(t, err)
}

func TestRunStatus(t *testing.T) {
	ok := data.RunBatch{SubmittedAt: sql.NullTime{Time: time.Now(), Valid: true}}
	failed := data.RunBatch{FailedAt: sql.NullTime{Time: time.Now(), Valid: true}, Error: "boom"}

	for _, tt := range []struct {
		name string
		run  data.Run
		want string
	}{
		{"no playlist", data.Run{}, "failed"},
		{"empty playlist", data.Run{PlaylistID: "p"}, "ok"},
		{"all appended", data.Run{PlaylistID: "p", Batches: []data.RunBatch{ok, ok}}, "ok"},
		{"some failed", data.Run{PlaylistID: "p", Batches: []data.RunBatch{ok, failed}}, "partial"},
		{"all failed", data.Run{PlaylistID: "p", Batches: []data.RunBatch{failed, failed}}, "failed"},
	} {
		assert.Equal(t, tt.want, tt.run.Status(), tt.name)
	}
}
