package data

// Artists come from Spotify's search, related-artists, and track endpoints.
// Artists embedded in tracks usually only carry an id and a name.
type Artist struct {
	SpotifyID  string
	Name       string
	Popularity int64
	Genres     []string

	// Image urls, largest first.
	Images []string
}

// ImageURL returns the artist's largest image, if it has any.
func (a *Artist) ImageURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}
