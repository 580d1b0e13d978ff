package readthrough_test

import (
	"path/filepath"
	"testing"

	"github.com/amonks/journey/readthrough"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissThenHit(t *testing.T) {
	rt := readthrough.New(filepath.Join(t.TempDir(), "cache"), "spotify-")

	_, err := rt.Get("https://api.spotify.com/v1/artists/x/top-tracks")
	assert.ErrorIs(t, err, readthrough.ErrMiss)

	require.NoError(t, rt.Set("https://api.spotify.com/v1/artists/x/top-tracks", []byte(`{"tracks":[]}`)))

	bs, err := rt.Get("https://api.spotify.com/v1/artists/x/top-tracks")
	require.NoError(t, err)
	assert.Equal(t, `{"tracks":[]}`, string(bs))
}

func TestKeysDoNotCollide(t *testing.T) {
	rt := readthrough.New(t.TempDir(), "")
	require.NoError(t, rt.Set("a", []byte("1")))
	require.NoError(t, rt.Set("b", []byte("2")))

	a, err := rt.Get("a")
	require.NoError(t, err)
	b, err := rt.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}
