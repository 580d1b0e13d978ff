package spotify

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/amonks/journey/data"
)

// SearchArtists does a search for artists matching the query.
//
// The request is basically,
//
//	https://api.spotify.com/v1/search?q=QUERY&type=artist&limit=10
func (spo *Client) SearchArtists(ctx context.Context, query string, limit, offset int) ([]data.Artist, error) {
	var results struct {
		Artists struct {
			Items []artistObject
		}
	}
	if err := spo.get(ctx, "/search", searchQuery(query, "artist", limit, offset), true, &results); err != nil {
		return nil, fmt.Errorf("error searching artists for '%s': %w", query, err)
	}

	artists := make([]data.Artist, len(results.Artists.Items))
	for i, item := range results.Artists.Items {
		artists[i] = item.toArtist()
	}
	return artists, nil
}

// SearchTracks does a search for tracks matching the query.
func (spo *Client) SearchTracks(ctx context.Context, query string, limit, offset int) ([]data.Track, error) {
	var results struct {
		Tracks struct {
			Items []trackObject
		}
	}
	if err := spo.get(ctx, "/search", searchQuery(query, "track", limit, offset), true, &results); err != nil {
		return nil, fmt.Errorf("error searching tracks for '%s': %w", query, err)
	}

	return toTracks(results.Tracks.Items), nil
}

func searchQuery(query, kind string, limit, offset int) url.Values {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", kind)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// Track fetches a single track by id.
func (spo *Client) Track(ctx context.Context, trackID string) (*data.Track, error) {
	q := url.Values{}
	q.Set("market", spo.market)

	var result trackObject
	if err := spo.get(ctx, "/tracks/"+url.PathEscape(trackID), q, true, &result); err != nil {
		return nil, fmt.Errorf("error fetching track '%s': %w", trackID, err)
	}

	track := result.toTrack()
	return &track, nil
}

// TopTracks fetches an artist's top tracks in the given market, or in the
// client's default market if market is "".
func (spo *Client) TopTracks(ctx context.Context, artistID, market string) ([]data.Track, error) {
	if market == "" {
		market = spo.market
	}
	q := url.Values{}
	q.Set("market", market)

	var results struct {
		Tracks []trackObject
	}
	if err := spo.get(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", q, true, &results); err != nil {
		return nil, fmt.Errorf("error fetching top tracks for '%s': %w", artistID, err)
	}

	return toTracks(results.Tracks), nil
}

// RelatedArtists fetches the artists Spotify considers similar to the given
// one. Spotify returns at most 20.
func (spo *Client) RelatedArtists(ctx context.Context, artistID string) ([]data.Artist, error) {
	var results struct {
		Artists []artistObject
	}
	if err := spo.get(ctx, "/artists/"+url.PathEscape(artistID)+"/related-artists", nil, true, &results); err != nil {
		return nil, fmt.Errorf("error fetching related artists for '%s': %w", artistID, err)
	}

	artists := make([]data.Artist, len(results.Artists))
	for i, item := range results.Artists {
		artists[i] = item.toArtist()
	}
	return artists, nil
}

// Recommendations fetches up to limit tracks seeded by a single artist or
// track. Recommendations are never cached: asking twice is how callers get
// more of them.
func (spo *Client) Recommendations(ctx context.Context, kind data.SeedKind, seedID string, limit int) ([]data.Track, error) {
	q := url.Values{}
	switch kind {
	case data.SeedArtist:
		q.Set("seed_artists", seedID)
	case data.SeedTrack:
		q.Set("seed_tracks", seedID)
	default:
		return nil, fmt.Errorf("invalid seed kind '%s'", kind)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("market", spo.market)

	var results struct {
		Tracks []trackObject
	}
	if err := spo.get(ctx, "/recommendations", q, false, &results); err != nil {
		return nil, fmt.Errorf("error fetching recommendations for %s '%s': %w", kind, seedID, err)
	}

	return toTracks(results.Tracks), nil
}

type artistObject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int64  `json:"popularity"`
	Genres     []string
	Images     []imageObject
}

type imageObject struct {
	Height int64
	Width  int64
	URL    string `json:"url"`
}

func (item artistObject) toArtist() data.Artist {
	images := slices.Clone(item.Images)
	slices.SortStableFunc(images, func(a, b imageObject) int {
		return cmp.Compare(b.Width, a.Width)
	})

	artist := data.Artist{
		SpotifyID:  item.ID,
		Name:       item.Name,
		Popularity: item.Popularity,
		Genres:     item.Genres,
		Images:     make([]string, len(images)),
	}
	for i, image := range images {
		artist.Images[i] = image.URL
	}
	return artist
}

type trackObject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int64  `json:"popularity"`
	DurationMS int64  `json:"duration_ms"`
	PreviewURL string `json:"preview_url"`

	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`

	Album struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
}

func (item trackObject) toTrack() data.Track {
	track := data.Track{
		SpotifyID:      item.ID,
		Name:           item.Name,
		Popularity:     item.Popularity,
		DurationMS:     item.DurationMS,
		AlbumSpotifyID: item.Album.ID,
		AlbumName:      item.Album.Name,
		PreviewURL:     item.PreviewURL,
		ExternalURL:    item.ExternalURLs.Spotify,
		Artists:        make([]data.Artist, len(item.Artists)),
	}
	for i, artist := range item.Artists {
		track.Artists[i] = data.Artist{
			SpotifyID: artist.ID,
			Name:      artist.Name,
		}
	}
	return track
}

func toTracks(items []trackObject) []data.Track {
	tracks := make([]data.Track, 0, len(items))
	for _, item := range items {
		// unavailable tracks come back as null
		if item.ID == "" {
			continue
		}
		tracks = append(tracks, item.toTrack())
	}
	return tracks
}
