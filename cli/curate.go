package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/amonks/journey/config"
	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/db"
	"github.com/amonks/journey/spotify"
	"github.com/amonks/journey/subcmd"
)

func curateCmd(ctx context.Context, cfg *config.Config, spo *spotify.Client, db *db.DB, args []string) error {
	subcmd := subcmd.New("curate", "build a playlist about as long as a trip, and save it to spotify")
	flags := addRequestFlags(subcmd)
	overshoot := subcmd.Duration("overshoot", cfg.Curation.Overshoot, "how much longer than the trip the playlist may run")
	dryRun := subcmd.Bool("dry-run", false, "print the playlist without saving it")
	previews := subcmd.Bool("previews", false, "look up audio previews for tracks that lack one")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	req, err := flags.request()
	if err != nil {
		subcmd.Usage()
		return err
	}
	req.DryRun = *dryRun
	if *overshoot <= 0 {
		return fmt.Errorf("%w: -overshoot must be positive, got %s", curate.ErrInvalidArgument, *overshoot)
	}
	cfg.Curation.Overshoot = *overshoot

	c, err := newCurator(cfg, spo, *previews)
	if err != nil {
		return err
	}

	run, curateErr := c.Curate(ctx, req)
	if len(run.Selection.Tracks) == 0 {
		return curateErr
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printTracks(tw, run.Selection.Tracks)
	tw.Flush()

	printer.Printf("\n%d tracks, %s for a %s trip\n",
		len(run.Selection.Tracks),
		formatSeconds(run.Selection.AchievedSeconds),
		req.Trip.Round(time.Second))

	if req.DryRun || run.Submission == nil {
		return curateErr
	}

	journal := run.Journal(c.Options().Overshoot)
	if err := db.RecordRun(&journal); err != nil {
		return errors.Join(curateErr, err)
	}

	fmt.Printf("playlist %s (run %s)\n", run.Submission.PlaylistID, run.ID)
	if errors.Is(curateErr, curate.ErrPartialSubmission) {
		fmt.Printf("%d of %d batches failed; to try them again: journey retry %s\n",
			len(run.Submission.Failed()), len(run.Submission.Batches), run.ID)
	}
	return curateErr
}
