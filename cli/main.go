// journey builds Spotify playlists that last about as long as a drive.
//
// Settings come from journey.yaml, .env, and the environment; see the config
// package. Every curated playlist is journaled to a sqlite3 database; see
// db/schema.sql.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/journey/config"
	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/db"
	"github.com/amonks/journey/logging"
	"github.com/amonks/journey/sigctx"
	"github.com/amonks/journey/spotify"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: journey $cmd
valid $cmd are 'search', 'pool', 'curate', 'history', 'retry'
for help: journey $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	switch cmd {
	case "search":
		spo, err := newSpotify(cfg)
		if err != nil {
			return err
		}
		return search(ctx, spo, args)

	case "pool":
		spo, err := newSpotify(cfg)
		if err != nil {
			return err
		}
		return pool(ctx, cfg, spo, args)

	case "curate":
		spo, err := newSpotify(cfg)
		if err != nil {
			return err
		}
		db, err := db.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		return curateCmd(ctx, cfg, spo, db, args)

	case "history":
		db, err := db.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		return history(db, args)

	case "retry":
		spo, err := newSpotify(cfg)
		if err != nil {
			return err
		}
		db, err := db.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		return retry(ctx, spo, db, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}

func newSpotify(cfg *config.Config) (*spotify.Client, error) {
	spo, err := spotify.New(spotify.Options{
		ClientID:      cfg.Spotify.ClientID,
		ClientSecret:  cfg.Spotify.ClientSecret,
		RedirectURL:   cfg.Spotify.RedirectURL,
		RefreshToken:  cfg.Spotify.RefreshToken,
		Market:        cfg.Spotify.Market,
		RequestDelay:  cfg.Spotify.RequestDelay,
		Timeout:       cfg.Spotify.Timeout,
		CacheDir:      cfg.Spotify.CacheDir,
		RateLimitFile: cfg.Spotify.RateLimitFile,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating spotify client: %w", err)
	}
	return spo, nil
}

func newCurator(cfg *config.Config, spo *spotify.Client, enrichPreviews bool) (*curate.Curator, error) {
	policy, err := curate.PolicyByName(cfg.Curation.Policy)
	if err != nil {
		return nil, err
	}
	return curate.New(spo, spo, spo, curate.NewRand(cfg.Curation.Seed), curate.Options{
		Market:              cfg.Spotify.Market,
		Policy:              policy,
		Overshoot:           cfg.Curation.Overshoot,
		MaxAttempts:         cfg.Curation.MaxAttempts,
		TopUpIterations:     cfg.Curation.TopUpIterations,
		Workers:             cfg.Curation.Workers,
		PlaylistName:        cfg.Curation.PlaylistName,
		PlaylistDescription: cfg.Curation.PlaylistDescription,
		EnrichPreviews:      enrichPreviews || cfg.Curation.PreviewEnrichment,
	}), nil
}
