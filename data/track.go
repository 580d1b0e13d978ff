package data

// Tracks are fetched from Spotify, either as an artist's top tracks, as
// recommendations, or by id.
type Track struct {
	SpotifyID  string
	Name       string
	Popularity int64

	// DurationMS is the track's playback length, as reported by Spotify.
	DurationMS int64

	AlbumSpotifyID string
	AlbumName      string

	// like "https://p.scdn.co/mp3-preview/8d9a195ffd681f1e359219b39474b98d820c53c5"
	PreviewURL string

	// like "https://open.spotify.com/track/3nzVSyaYk0KNrahyNQS0Ur"
	ExternalURL string

	// The first artist is the track's primary artist.
	Artists []Artist `gorm:"-"`
}

// Seconds returns the track's duration in seconds.
func (t *Track) Seconds() float64 {
	return float64(t.DurationMS) / 1000
}

// PrimaryArtist returns the track's first credited artist, or the zero Artist
// if there isn't one.
func (t *Track) PrimaryArtist() Artist {
	if len(t.Artists) == 0 {
		return Artist{}
	}
	return t.Artists[0]
}

// TotalSeconds sums the durations of the given tracks.
func TotalSeconds(tracks []Track) float64 {
	var total float64
	for i := range tracks {
		total += tracks[i].Seconds()
	}
	return total
}

// TrackIDs returns the spotify ids of the given tracks, in order.
func TrackIDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, track := range tracks {
		ids[i] = track.SpotifyID
	}
	return ids
}
