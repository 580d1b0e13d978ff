package curate_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/amonks/journey/data"
)

var errBoom = errors.New("boom")

// makeTracks returns n tracks of the given length, with ids like "prefix-3".
func makeTracks(prefix string, n int, length time.Duration) []data.Track {
	tracks := make([]data.Track, n)
	for i := range tracks {
		tracks[i] = data.Track{
			SpotifyID:  fmt.Sprintf("%s-%d", prefix, i),
			Name:       fmt.Sprintf("%s track %d", prefix, i),
			DurationMS: length.Milliseconds(),
			Artists:    []data.Artist{{SpotifyID: prefix, Name: prefix}},
		}
	}
	return tracks
}

func makeArtists(prefix string, n int) []data.Artist {
	artists := make([]data.Artist, n)
	for i := range artists {
		artists[i] = data.Artist{SpotifyID: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return artists
}

type fakeCatalog struct {
	mu sync.Mutex

	tracks  map[string]data.Track
	related map[string][]data.Artist

	// generates related artists for ids not in related
	relatedFunc func(id string) []data.Artist

	top map[string][]data.Track

	// generates top tracks for ids not in top
	topFunc func(id string) []data.Track

	// how long TopTracks waits before answering, unless ctx ends first
	topDelay map[string]time.Duration

	recs func(call int) []data.Track

	failRelated bool
	failTop     map[string]bool
	failRecs    bool

	relatedCalls []string
	topCalls     []string
	recCalls     int
}

func (f *fakeCatalog) Track(ctx context.Context, id string) (*data.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tracks[id]
	if !ok {
		return nil, fmt.Errorf("no track '%s': %w", id, errBoom)
	}
	return &t, nil
}

func (f *fakeCatalog) TopTracks(ctx context.Context, artistID, market string) ([]data.Track, error) {
	f.mu.Lock()
	f.topCalls = append(f.topCalls, artistID)
	delay := f.topDelay[artistID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTop[artistID] {
		return nil, errBoom
	}
	if tracks, ok := f.top[artistID]; ok {
		return slices.Clone(tracks), nil
	}
	if f.topFunc != nil {
		return f.topFunc(artistID), nil
	}
	return nil, nil
}

func (f *fakeCatalog) RelatedArtists(ctx context.Context, artistID string) ([]data.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relatedCalls = append(f.relatedCalls, artistID)
	if f.failRelated {
		return nil, errBoom
	}
	if artists, ok := f.related[artistID]; ok {
		return slices.Clone(artists), nil
	}
	if f.relatedFunc != nil {
		return f.relatedFunc(artistID), nil
	}
	return nil, nil
}

func (f *fakeCatalog) Recommendations(ctx context.Context, kind data.SeedKind, seedID string, limit int) ([]data.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := f.recCalls
	f.recCalls++
	if f.failRecs {
		return nil, errBoom
	}
	if f.recs == nil {
		return nil, nil
	}
	return f.recs(call), nil
}

type fakePlaylists struct {
	userErr   error
	createErr error

	// append call indexes that fail
	failAppend map[int]bool

	created   []string
	appends   [][]string
	positions []int

	// the remote playlist, as the inserts have left it
	tracks []string
}

func (f *fakePlaylists) CurrentUser(ctx context.Context) (string, error) {
	if f.userErr != nil {
		return "", f.userErr
	}
	return "user", nil
}

func (f *fakePlaylists) CreatePlaylist(ctx context.Context, userID, name, description string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, name)
	return fmt.Sprintf("playlist-%d", len(f.created)), nil
}

func (f *fakePlaylists) AppendTracks(ctx context.Context, playlistID string, position int, ids []string) error {
	call := len(f.appends)
	f.appends = append(f.appends, slices.Clone(ids))
	f.positions = append(f.positions, position)
	if f.failAppend[call] {
		return errBoom
	}
	if position < 0 || position > len(f.tracks) {
		return fmt.Errorf("position %d is past the end of a %d track playlist", position, len(f.tracks))
	}
	f.tracks = slices.Insert(f.tracks, position, ids...)
	return nil
}

type fakeScraper map[string]string

func (f fakeScraper) PreviewURL(ctx context.Context, externalURL string) (string, error) {
	url, ok := f[externalURL]
	if !ok {
		return "", errBoom
	}
	return url, nil
}
