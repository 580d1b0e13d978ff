package curate

import (
	"math/rand/v2"
	"time"
)

const (
	DefaultOvershoot       = 120 * time.Second
	DefaultMaxAttempts     = 10000
	DefaultTopUpIterations = 100
	DefaultWorkers         = 4

	DefaultPlaylistName        = "Road Trip!"
	DefaultPlaylistDescription = "Made with love on Spotify Journey"
)

type Options struct {
	// Market for top tracks. "" means the catalog's default.
	Market string

	// Creativity policy for policy-expanded pools. Default: Breadth.
	Policy Policy

	Overshoot       time.Duration
	MaxAttempts     int
	TopUpIterations int

	// How many top-track fetches or preview scrapes run at once.
	Workers int

	PlaylistName        string
	PlaylistDescription string

	// Scrape previews for selected tracks that have none.
	EnrichPreviews bool
}

func (opts Options) withDefaults() Options {
	if opts.Policy == nil {
		opts.Policy = Breadth
	}
	if opts.Overshoot <= 0 {
		opts.Overshoot = DefaultOvershoot
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.TopUpIterations <= 0 {
		opts.TopUpIterations = DefaultTopUpIterations
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.PlaylistName == "" {
		opts.PlaylistName = DefaultPlaylistName
	}
	if opts.PlaylistDescription == "" {
		opts.PlaylistDescription = DefaultPlaylistDescription
	}
	return opts
}

// A Curator holds the collaborators a run needs. It is not safe for
// concurrent use, since runs share its random source.
type Curator struct {
	catalog   Catalog
	playlists Playlists
	previews  PreviewScraper
	rng       *rand.Rand
	opts      Options
}

// New creates a Curator. playlists and previews may be nil for callers that
// only build pools or select tracks. A nil rng is seeded from the clock.
func New(catalog Catalog, playlists Playlists, previews PreviewScraper, rng *rand.Rand, opts Options) *Curator {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Curator{
		catalog:   catalog,
		playlists: playlists,
		previews:  previews,
		rng:       rng,
		opts:      opts.withDefaults(),
	}
}

// NewRand returns a random source for the given seed. Seed 0 means a
// different sequence every time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Options returns the curator's options, with defaults filled in.
func (c *Curator) Options() Options {
	return c.opts
}
