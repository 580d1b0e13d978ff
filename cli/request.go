package main

import (
	"fmt"
	"time"

	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/data"
	"github.com/amonks/journey/subcmd"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

type requestFlags struct {
	seed       *string
	kind       *string
	strategy   *string
	creativity *int
	duration   *time.Duration
}

// addRequestFlags registers the flags pool and curate share.
func addRequestFlags(sc *subcmd.Subcommand) *requestFlags {
	return &requestFlags{
		seed:       sc.String("seed", "", "spotify id of the seed artist or track (required)"),
		kind:       sc.String("type", "artist", "what the seed is: 'artist' or 'track'"),
		strategy:   sc.String("strategy", "policy", "how to grow the pool: 'artist' walks related artists, 'policy' follows -creativity"),
		creativity: sc.Int("creativity", 5, "1 sticks close to the seed, 10 strays furthest"),
		duration:   sc.Duration("duration", 0, "how long the trip is, like 2h30m (required)"),
	}
}

func (f *requestFlags) request() (curate.Request, error) {
	if *f.seed == "" {
		return curate.Request{}, fmt.Errorf("-seed is required")
	}
	if *f.duration <= 0 {
		return curate.Request{}, fmt.Errorf("-duration is required")
	}
	kind, err := data.ParseSeedKind(*f.kind)
	if err != nil {
		return curate.Request{}, err
	}
	strategy, err := curate.ParseStrategy(*f.strategy)
	if err != nil {
		return curate.Request{}, err
	}
	return curate.Request{
		Strategy:   strategy,
		SeedKind:   kind,
		SeedID:     *f.seed,
		Creativity: *f.creativity,
		Trip:       *f.duration,
	}, nil
}

func formatSeconds(seconds float64) string {
	return (time.Duration(seconds * float64(time.Second))).Round(time.Second).String()
}
